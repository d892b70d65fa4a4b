package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GekkoQuest/fairview/internal/config"
)

func TestEvaluateAudioInactive(t *testing.T) {
	result := EvaluateAudio(false, config.Default())

	assert.Zero(t, result.Risk)
	assert.Empty(t, result.Findings)
}

func TestEvaluateAudioActiveUsesConfiguredRisk(t *testing.T) {
	cfg := config.Default()
	cfg.Thresholds.Audio = 0.45

	result := EvaluateAudio(true, cfg)

	assert.InDelta(t, 0.45, result.Risk, 1e-9)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0].Reasons[0], "audio capture")
}
