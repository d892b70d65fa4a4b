package detect

import (
	"strings"

	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/facts"
	"github.com/GekkoQuest/fairview/internal/models"
)

// Per-signal risk contributions for the process calculator.
const (
	processScreenCaptureRisk  = 0.3
	processAudioCaptureRisk   = 0.3
	processAccessibilityRisk  = 0.2
	processSuspiciousNameRisk = 0.4
	processNewSinceBaseline   = 0.3
)

var suspiciousNamePatterns = []string{
	"cluely", "interview", "gpt", "chatgpt", "llm", "copilot",
	"aiassistant", "ai-assistant", "interview-bot", "interview-ai",
}

// EvaluateProcess scores every non-whitelisted process additively over its
// capability and identity signals. Module risk is the worst single offender;
// a process becomes a finding only at or above the process threshold.
func EvaluateProcess(procs []facts.Process, baseline *Baseline, cfg *config.Config) models.ModuleResult {
	result := models.ModuleResult{Module: models.ModuleProcess}

	var maxScore float64
	for _, p := range procs {
		if whitelisted(p.Name, p.Path, cfg.Whitelist) {
			continue
		}

		var score float64
		var reasons []string

		if p.ScreenCapture {
			score += processScreenCaptureRisk
			reasons = append(reasons, "has screen capture capability")
		}
		if p.AudioCapture {
			score += processAudioCaptureRisk
			reasons = append(reasons, "has audio capture capability")
		}
		if p.Accessibility {
			score += processAccessibilityRisk
			reasons = append(reasons, "has accessibility API access")
		}
		if SuspiciousName(p.Name) {
			score += processSuspiciousNameRisk
			reasons = append(reasons, "name matches suspicious pattern")
		}

		var novelty *bool
		if baseline != nil && baseline.SawProcesses() {
			isNew := !baseline.HasProcess(p.Name, p.Path)
			novelty = models.Bool(isNew)
			if isNew {
				score += processNewSinceBaseline
				reasons = append(reasons, "started after baseline capture")
			}
		}

		score = clamp01(score)
		if score > maxScore {
			maxScore = score
		}
		if score >= cfg.Thresholds.Process && len(reasons) > 0 {
			result.Findings = append(result.Findings, models.Finding{
				Subject:          p.Name,
				PID:              p.PID,
				Path:             p.Path,
				Risk:             score,
				Reasons:          reasons,
				NewSinceBaseline: novelty,
			})
		}
	}

	result.Risk = maxScore
	return result
}

// SuspiciousName reports whether a process name matches the fixed
// interview-assistant pattern list.
func SuspiciousName(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range suspiciousNamePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
