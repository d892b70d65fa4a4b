// Package detect turns raw facts into bounded per-module risk: one
// calculator per detection domain, a baseline/diff engine, the VM confidence
// scorer and the weighted risk aggregator. Every function here is pure over
// its inputs; the only shared state is the read-only baseline.
package detect

import (
	"strings"

	"github.com/GekkoQuest/fairview/internal/config"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// whitelisted reports whether a process is excluded from suspicion, by name
// substring or by executable directory prefix. Whitelist checks apply before
// any scoring, independent of baseline membership.
func whitelisted(name, path string, wl config.WhitelistConfig) bool {
	nameLower := strings.ToLower(name)
	for _, entry := range wl.Processes {
		if strings.Contains(nameLower, strings.ToLower(entry)) {
			return true
		}
	}
	pathLower := strings.ToLower(path)
	for _, dir := range wl.Directories {
		if pathLower != "" && strings.HasPrefix(pathLower, strings.ToLower(dir)) {
			return true
		}
	}
	return false
}
