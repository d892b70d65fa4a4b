package detect

import (
	"fmt"

	"github.com/GekkoQuest/fairview/internal/facts"
	"github.com/GekkoQuest/fairview/internal/models"
)

// Fixed contribution per discovered overlay window.
const overlayWindowRisk = 0.25

// EvaluateOverlay produces one finding per hidden/transparent/topmost window
// and sums a fixed per-window contribution. Platforms without overlay
// enumeration report zero windows, which is risk 0, not a failure.
func EvaluateOverlay(windows []facts.OverlayWindow) models.ModuleResult {
	result := models.ModuleResult{Module: models.ModuleOverlay}

	var risk float64
	for _, w := range windows {
		reasons := []string{"layered window"}
		if w.Transparent {
			reasons = append(reasons, "click-through transparent")
		}
		if w.Topmost {
			reasons = append(reasons, "always on top")
		}
		risk += overlayWindowRisk
		result.Findings = append(result.Findings, models.Finding{
			Subject: fmt.Sprintf("window 0x%x (%dx%d at %d,%d)", w.Handle, w.Width, w.Height, w.X, w.Y),
			PID:     int32(w.OwnerPID),
			Risk:    overlayWindowRisk,
			Reasons: reasons,
		})
	}

	result.Risk = clamp01(risk)
	return result
}
