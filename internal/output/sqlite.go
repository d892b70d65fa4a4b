package output

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/GekkoQuest/fairview/internal/models"
)

// SQLiteWriter writes scan results to a SQLite database
type SQLiteWriter struct {
	db *sql.DB
}

// compile-time interface check
var _ Writer = (*SQLiteWriter)(nil)

// NewSQLiteWriter creates a new SQLite writer
func NewSQLiteWriter(outputPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, err
	}

	writer := &SQLiteWriter{db: db}

	if err := writer.createSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return writer, nil
}

// createSchema creates the database schema
func (w *SQLiteWriter) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_number INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		hostname TEXT NOT NULL,
		overall_risk REAL NOT NULL,
		threshold_exceeded BOOLEAN NOT NULL,
		no_modules_evaluated BOOLEAN NOT NULL,
		severity TEXT NOT NULL,
		modules TEXT NOT NULL,
		vm TEXT,
		failures TEXT NOT NULL DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_scan_number ON scans(scan_number);
	CREATE INDEX IF NOT EXISTS idx_severity ON scans(severity);
	CREATE INDEX IF NOT EXISTS idx_threshold_exceeded ON scans(threshold_exceeded);
	`

	_, err := w.db.Exec(schema)
	return err
}

// Write inserts one scan result. Nested structures are stored as JSON so the
// full field set survives a round trip through the database.
func (w *SQLiteWriter) Write(result models.ScanResult) error {
	modulesJSON, err := json.Marshal(result.Modules)
	if err != nil {
		return fmt.Errorf("marshal modules: %w", err)
	}
	failuresJSON, err := json.Marshal(result.Failures)
	if err != nil {
		return fmt.Errorf("marshal failures: %w", err)
	}
	var vmJSON []byte
	if result.VM != nil {
		if vmJSON, err = json.Marshal(result.VM); err != nil {
			return fmt.Errorf("marshal vm verdict: %w", err)
		}
	}

	_, err = w.db.Exec(`
		INSERT INTO scans (
			scan_number, timestamp, hostname, overall_risk,
			threshold_exceeded, no_modules_evaluated, severity,
			modules, vm, failures
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ScanNumber,
		result.Timestamp.Format(time.RFC3339Nano),
		result.Hostname,
		result.OverallRisk,
		result.ThresholdExceeded,
		result.NoModulesEvaluated,
		result.Severity,
		string(modulesJSON),
		nullableString(vmJSON),
		string(failuresJSON),
	)
	return err
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// Close closes the database
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}
