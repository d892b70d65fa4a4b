package output

import "github.com/GekkoQuest/fairview/internal/models"

// MultiWriter fans out writes to all active writers
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter from the given writers
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write writes a scan result to all writers
func (mw *MultiWriter) Write(result models.ScanResult) error {
	for _, w := range mw.writers {
		if err := w.Write(result); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all writers
func (mw *MultiWriter) Close() error {
	var firstErr error
	for _, w := range mw.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// compile-time interface check
var _ Writer = (*MultiWriter)(nil)
