package output

import (
	"encoding/json"
	"os"

	"github.com/GekkoQuest/fairview/internal/models"
)

// JSONWriter appends scan results to a file as JSON lines.
type JSONWriter struct {
	file *os.File
	enc  *json.Encoder
}

// compile-time interface check
var _ Writer = (*JSONWriter)(nil)

// NewJSONWriter creates a JSON-lines writer, appending to outputPath.
func NewJSONWriter(outputPath string) (*JSONWriter, error) {
	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{file: file, enc: json.NewEncoder(file)}, nil
}

// Write appends one scan result as a JSON line.
func (jw *JSONWriter) Write(result models.ScanResult) error {
	return jw.enc.Encode(result)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
