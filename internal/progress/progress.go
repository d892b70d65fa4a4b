// Package progress renders a lightweight scan status line: rewritten in
// place when stdout is a TTY, appended line-by-line otherwise.
package progress

import (
	"fmt"
	"sync"

	"github.com/GekkoQuest/fairview/internal/models"
)

// Tracker prints one status line per completed scan.
type Tracker struct {
	mu    sync.Mutex
	isTTY bool
}

// NewTracker creates a status tracker
func NewTracker() *Tracker {
	return &Tracker{isTTY: isTerminal()}
}

// Update prints the status line for a completed scan.
func (t *Tracker) Update(result models.ScanResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	findings := 0
	for _, m := range result.Modules {
		findings += len(m.Findings)
	}

	line := fmt.Sprintf("scan #%d | risk %.2f (%s) | %d finding(s)",
		result.ScanNumber, result.OverallRisk, result.Severity, findings)
	if len(result.Failures) > 0 {
		line += fmt.Sprintf(" | %d module(s) failed", len(result.Failures))
	}
	if result.ThresholdExceeded {
		line += " | THRESHOLD EXCEEDED"
	}

	if t.isTTY {
		fmt.Print("\r\033[K  " + line)
	} else {
		fmt.Println("  [*] " + line)
	}
}

// Finish clears the status line (TTY mode)
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isTTY {
		fmt.Print("\r\033[K")
	}
}
