package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSuggestsCapture(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"OBS Studio", true},
		{"zoom.us", true},
		{"Cluely", true},
		{"Interview Helper", true},
		{"vim", false},
		{"sshd", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nameSuggestsCapture(tt.name), tt.name)
	}
}
