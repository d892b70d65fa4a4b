// Package output persists and renders completed scan results. Writers are
// report sinks: each scan result is handed over immutably and must
// round-trip its full field set losslessly where the format allows.
package output

import "github.com/GekkoQuest/fairview/internal/models"

// Writer is the interface that all report sinks implement.
type Writer interface {
	Write(result models.ScanResult) error
	Close() error
}
