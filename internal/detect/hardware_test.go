package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GekkoQuest/fairview/internal/facts"
)

func TestEvaluateHardwareSingleDisplayNoBaseline(t *testing.T) {
	d := facts.DisplayFacts{
		Count:    1,
		Displays: []facts.Display{{ID: "eDP-1", Name: "eDP-1", Primary: true}},
	}

	result := EvaluateHardware(d, nil)

	assert.Zero(t, result.Risk)
	assert.Empty(t, result.Findings)
}

func TestEvaluateHardwareExtraDisplayCap(t *testing.T) {
	d := facts.DisplayFacts{Count: 5}

	result := EvaluateHardware(d, nil)

	require.Len(t, result.Findings, 1)
	assert.InDelta(t, 0.15, result.Findings[0].Risk, 1e-9, "0.05 per extra display caps at 0.15")
	assert.InDelta(t, 0.15, result.Risk, 1e-9)
}

func TestEvaluateHardwareTwoDisplays(t *testing.T) {
	result := EvaluateHardware(facts.DisplayFacts{Count: 2}, nil)

	assert.InDelta(t, 0.05, result.Risk, 1e-9)
}

func TestEvaluateHardwareBaselineDiff(t *testing.T) {
	baseline := NewBaseline()
	baseline.AddSample(nil, facts.DisplayFacts{
		Count:    1,
		Displays: []facts.Display{{ID: "eDP-1", Name: "built-in"}},
	})

	d := facts.DisplayFacts{
		Count: 2,
		Displays: []facts.Display{
			{ID: "eDP-1", Name: "built-in"},
			{ID: "HDMI-1", Name: "external panel", Connection: facts.ConnHDMI},
		},
	}
	result := EvaluateHardware(d, baseline)

	// 0.05 extra display + 0.4 count changed + 0.3 new display.
	assert.InDelta(t, 0.75, result.Risk, 1e-9)

	var newDisplay *int
	for i, f := range result.Findings {
		if f.NewSinceBaseline != nil && *f.NewSinceBaseline {
			idx := i
			newDisplay = &idx
		}
	}
	require.NotNil(t, newDisplay, "new display finding must be flagged")
	assert.Equal(t, "external panel", result.Findings[*newDisplay].Subject)
}

func TestEvaluateHardwareUnchangedTopologyAgainstBaseline(t *testing.T) {
	baseline := NewBaseline()
	baseline.AddSample(nil, facts.DisplayFacts{
		Count:    1,
		Displays: []facts.Display{{ID: "eDP-1"}},
	})

	d := facts.DisplayFacts{Count: 1, Displays: []facts.Display{{ID: "eDP-1"}}}
	result := EvaluateHardware(d, baseline)

	assert.Zero(t, result.Risk)
}

func TestEvaluateHardwareSignatureContributions(t *testing.T) {
	d := facts.DisplayFacts{
		Count:          1,
		Displays:       []facts.Display{{ID: "v1", Name: "dummy display", Connection: facts.ConnVirtual}},
		VirtualDisplay: true,
		HDMISplitter:   true,
		RemoteDesktop:  true,
	}

	result := EvaluateHardware(d, nil)

	// 0.5 virtual + 0.7 splitter + 0.8 remote desktop clamps to 1.
	assert.InDelta(t, 1.0, result.Risk, 1e-9)
	assert.Len(t, result.Findings, 3)
}

func TestEvaluateHardwareUSBAndWirelessDisplays(t *testing.T) {
	d := facts.DisplayFacts{
		Count: 1,
		Displays: []facts.Display{
			{ID: "u1", Name: "usb panel", Connection: facts.ConnUSB},
			{ID: "w1", Name: "miracast", Connection: facts.ConnWireless},
		},
	}

	result := EvaluateHardware(d, nil)

	assert.InDelta(t, 0.45, result.Risk, 1e-9)
}

func TestEvaluateHardwareSkipsDiffWithoutDisplayObservations(t *testing.T) {
	// The prelude merged process samples but every display refresh failed:
	// the snapshot holds no display facts to diff against.
	baseline := NewBaseline()
	baseline.AddProcesses([]facts.Process{{Name: "initd", Path: "/sbin/initd"}})

	d := facts.DisplayFacts{
		Count:    1,
		Displays: []facts.Display{{ID: "eDP-1", Name: "built-in"}},
	}
	result := EvaluateHardware(d, baseline)

	assert.Zero(t, result.Risk, "unobserved baseline displays must not read as count 0")
	assert.Empty(t, result.Findings)
}

func TestEvaluateHardwareIdempotent(t *testing.T) {
	baseline := NewBaseline()
	baseline.AddSample(nil, facts.DisplayFacts{Count: 1, Displays: []facts.Display{{ID: "eDP-1"}}})
	d := facts.DisplayFacts{
		Count: 2,
		Displays: []facts.Display{
			{ID: "eDP-1"},
			{ID: "HDMI-1", Name: "hdmi", Connection: facts.ConnHDMI},
		},
		RemoteDesktop: true,
	}

	first := EvaluateHardware(d, baseline)
	second := EvaluateHardware(d, baseline)

	assert.Equal(t, first, second)
}
