package detect

import (
	"time"

	"github.com/GekkoQuest/fairview/internal/facts"
)

type processIdentity struct {
	name string
	path string
}

// Baseline is the snapshot of process identities and display topology seen
// before monitoring starts. It is written only during the baseline prelude
// and read-only afterwards; a nil *Baseline means baseline collection was
// disabled and novelty cannot be determined.
type Baseline struct {
	CapturedAt   time.Time
	DisplayCount int
	Samples      int

	processSamples int
	displaySamples int
	processes      map[processIdentity]struct{}
	displayIDs     map[string]struct{}
}

// NewBaseline returns an empty snapshot ready to absorb samples.
func NewBaseline() *Baseline {
	return &Baseline{
		CapturedAt: time.Now(),
		processes:  make(map[processIdentity]struct{}),
		displayIDs: make(map[string]struct{}),
	}
}

// AddProcesses merges one process observation. Membership is by (name, path)
// identity, not pid: restarted processes stay recognized.
func (b *Baseline) AddProcesses(procs []facts.Process) {
	for _, p := range procs {
		b.processes[processIdentity{name: p.Name, path: p.Path}] = struct{}{}
	}
	b.processSamples++
}

// AddDisplays merges one display topology observation.
func (b *Baseline) AddDisplays(displays facts.DisplayFacts) {
	for _, d := range displays.Displays {
		b.displayIDs[d.ID] = struct{}{}
	}
	b.DisplayCount = displays.Count
	b.displaySamples++
}

// AddSample merges one complete observation covering both domains. A domain
// whose refresh errored must be left out entirely (via the per-domain
// methods) rather than merged as a zero value, or the frozen snapshot would
// diff every later scan against facts that were never observed.
func (b *Baseline) AddSample(procs []facts.Process, displays facts.DisplayFacts) {
	b.AddProcesses(procs)
	b.AddDisplays(displays)
	b.Samples++
}

// SawProcesses reports whether at least one process sample was merged.
// Process novelty is unknown, not "new", until then.
func (b *Baseline) SawProcesses() bool { return b.processSamples > 0 }

// SawDisplays reports whether at least one display sample was merged.
// Display diffing is skipped until then.
func (b *Baseline) SawDisplays() bool { return b.displaySamples > 0 }

// HasProcess reports whether the identity was present during the baseline
// window.
func (b *Baseline) HasProcess(name, path string) bool {
	_, ok := b.processes[processIdentity{name: name, path: path}]
	return ok
}

// HasDisplay reports whether the display identifier was present during the
// baseline window.
func (b *Baseline) HasDisplay(id string) bool {
	_, ok := b.displayIDs[id]
	return ok
}

// ProcessCount returns the number of distinct process identities captured.
func (b *Baseline) ProcessCount() int { return len(b.processes) }
