package detect

import (
	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/models"
)

// EvaluateAudio maps the boolean capture fact to a fixed module risk. The
// audio threshold doubles as the reported risk value when capture is active.
func EvaluateAudio(captureActive bool, cfg *config.Config) models.ModuleResult {
	result := models.ModuleResult{Module: models.ModuleAudio}
	if !captureActive {
		return result
	}
	result.Risk = clamp01(cfg.Thresholds.Audio)
	result.Findings = []models.Finding{{
		Subject: "audio",
		Risk:    result.Risk,
		Reasons: []string{"real-time audio capture active"},
	}}
	return result
}
