package detect

import (
	"fmt"

	"github.com/GekkoQuest/fairview/internal/facts"
	"github.com/GekkoQuest/fairview/internal/models"
)

// Per-signal risk contributions for the hardware calculator.
const (
	hardwareExtraDisplayRisk    = 0.05
	hardwareExtraDisplayCap     = 0.15
	hardwareCountChangedRisk    = 0.4
	hardwareNewDisplayRisk      = 0.3
	hardwareVirtualDisplayRisk  = 0.5
	hardwareHDMISplitterRisk    = 0.7
	hardwareUSBDisplayRisk      = 0.2
	hardwareWirelessDisplayRisk = 0.25
	hardwareRemoteDesktopRisk   = 0.8
)

// EvaluateHardware scores the display topology additively: extra displays,
// changes against the baseline, virtual/splitter signatures and an active
// remote desktop session. Each fired contribution becomes a finding.
func EvaluateHardware(d facts.DisplayFacts, baseline *Baseline) models.ModuleResult {
	result := models.ModuleResult{Module: models.ModuleHardware}

	var risk float64
	add := func(subject string, contribution float64, reason string, novelty *bool) {
		risk += contribution
		result.Findings = append(result.Findings, models.Finding{
			Subject:          subject,
			Risk:             contribution,
			Reasons:          []string{reason},
			NewSinceBaseline: novelty,
		})
	}

	if d.Count > 1 {
		extra := hardwareExtraDisplayRisk * float64(d.Count-1)
		if extra > hardwareExtraDisplayCap {
			extra = hardwareExtraDisplayCap
		}
		add("displays", extra, fmt.Sprintf("%d displays attached", d.Count), nil)
	}

	if baseline != nil && baseline.SawDisplays() {
		if baseline.DisplayCount != d.Count {
			add("displays", hardwareCountChangedRisk,
				fmt.Sprintf("display count changed after baseline (was %d, now %d)",
					baseline.DisplayCount, d.Count), nil)
		}
		for _, display := range d.Displays {
			if !baseline.HasDisplay(display.ID) {
				add(display.Name, hardwareNewDisplayRisk,
					"display connected after baseline capture", models.Bool(true))
			}
		}
	}

	if d.VirtualDisplay {
		add("displays", hardwareVirtualDisplayRisk, "virtual display signature detected", nil)
	}
	if d.HDMISplitter {
		add("displays", hardwareHDMISplitterRisk, "HDMI splitter signature detected", nil)
	}

	for _, display := range d.Displays {
		switch display.Connection {
		case facts.ConnUSB:
			add(display.Name, hardwareUSBDisplayRisk, "USB display attached", nil)
		case facts.ConnWireless:
			add(display.Name, hardwareWirelessDisplayRisk, "wireless display attached", nil)
		}
	}

	if d.RemoteDesktop {
		add("session", hardwareRemoteDesktopRisk, "remote desktop session active", nil)
	}

	result.Risk = clamp01(risk)
	return result
}
