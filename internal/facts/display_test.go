package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionFromName(t *testing.T) {
	tests := []struct {
		name string
		want Connection
	}{
		{"HDMI-1", ConnHDMI},
		{"DP-2", ConnDisplayPort},
		{"DisplayPort", ConnDisplayPort},
		{"USB-C Display", ConnUSB},
		{"VIRTUAL1", ConnVirtual},
		{"dummy-0", ConnVirtual},
		{"Miracast Receiver", ConnWireless},
		{"eDP-1", ConnUnknown},
		{"HDPVR Display", ConnUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, connectionFromName(tt.name), tt.name)
	}
}
