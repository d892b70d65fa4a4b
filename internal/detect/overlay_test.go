package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GekkoQuest/fairview/internal/facts"
)

func TestEvaluateOverlayEmpty(t *testing.T) {
	result := EvaluateOverlay(nil)

	assert.Zero(t, result.Risk)
	assert.Empty(t, result.Findings)
	assert.False(t, result.Failed, "unsupported platforms report zero risk, not failure")
}

func TestEvaluateOverlayPerWindowContribution(t *testing.T) {
	windows := []facts.OverlayWindow{
		{Handle: 0x1a2b, OwnerPID: 42, Width: 800, Height: 600, Transparent: true, Topmost: true},
		{Handle: 0x3c4d, OwnerPID: 43, Width: 200, Height: 100, Topmost: true},
	}

	result := EvaluateOverlay(windows)

	assert.InDelta(t, 0.5, result.Risk, 1e-9)
	require.Len(t, result.Findings, 2)
	assert.Equal(t, int32(42), result.Findings[0].PID)
	assert.Contains(t, result.Findings[0].Reasons, "click-through transparent")
	assert.Contains(t, result.Findings[1].Reasons, "always on top")
}

func TestEvaluateOverlayClampsAtOne(t *testing.T) {
	windows := make([]facts.OverlayWindow, 6)
	for i := range windows {
		windows[i] = facts.OverlayWindow{Handle: uintptr(i), Width: 100, Height: 100, Topmost: true}
	}

	result := EvaluateOverlay(windows)

	assert.InDelta(t, 1.0, result.Risk, 1e-9)
	assert.Len(t, result.Findings, 6)
}
