// Package models defines the data types shared across the scan pipeline.
package models

import "time"

// Finding is one flagged item produced by a detection module during a scan.
// Findings are ephemeral and recomputed on every tick.
type Finding struct {
	Subject string   `json:"subject"`
	PID     int32    `json:"pid,omitempty"`
	Path    string   `json:"path,omitempty"`
	Risk    float64  `json:"risk"`
	Reasons []string `json:"reasons"`
	// NewSinceBaseline is nil when no baseline was collected and novelty
	// cannot be determined.
	NewSinceBaseline *bool `json:"new_since_baseline,omitempty"`
}

// ModuleResult aggregates one module's findings for a single scan.
type ModuleResult struct {
	Module        string    `json:"module"`
	Risk          float64   `json:"risk"`
	Findings      []Finding `json:"findings,omitempty"`
	Failed        bool      `json:"failed"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

// VMVerdict is the virtual-machine classification for one scan.
type VMVerdict struct {
	IsVM       bool     `json:"is_vm"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
}

// ModuleFailure records a module that could not complete its evaluation.
type ModuleFailure struct {
	Module string `json:"module"`
	Cause  string `json:"cause"`
}

// ScanResult is the per-tick aggregate handed to report sinks. Once emitted
// it is immutable.
type ScanResult struct {
	ScanNumber         int64           `json:"scan_number"`
	Timestamp          time.Time       `json:"timestamp"`
	Hostname           string          `json:"hostname"`
	Modules            []ModuleResult  `json:"modules"`
	VM                 *VMVerdict      `json:"vm,omitempty"`
	OverallRisk        float64         `json:"overall_risk"`
	ThresholdExceeded  bool            `json:"threshold_exceeded"`
	NoModulesEvaluated bool            `json:"no_modules_evaluated,omitempty"`
	Failures           []ModuleFailure `json:"failures,omitempty"`
	Severity           string          `json:"severity"`
}

// Module names as they appear in results, weights and failure entries.
const (
	ModuleProcess  = "process"
	ModuleHardware = "hardware"
	ModuleAudio    = "audio"
	ModuleOverlay  = "overlay"
	ModuleVM       = "vm"
)

// SeverityFromRisk maps a normalized risk score to a severity label.
func SeverityFromRisk(risk float64) string {
	switch {
	case risk >= 0.8:
		return "critical"
	case risk >= 0.6:
		return "high"
	case risk >= 0.4:
		return "medium"
	case risk >= 0.2:
		return "low"
	default:
		return "info"
	}
}

// Bool returns a pointer to b, for the optional novelty flag on findings.
func Bool(b bool) *bool { return &b }
