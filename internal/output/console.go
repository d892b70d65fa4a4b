package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/GekkoQuest/fairview/internal/models"
)

// ConsoleWriter renders each scan result as a table followed by finding
// details.
type ConsoleWriter struct {
	out io.Writer
}

// compile-time interface check
var _ Writer = (*ConsoleWriter)(nil)

// NewConsoleWriter creates a console writer targeting stdout.
func NewConsoleWriter() *ConsoleWriter {
	return &ConsoleWriter{out: os.Stdout}
}

// Write renders one scan result.
func (cw *ConsoleWriter) Write(result models.ScanResult) error {
	t := table.NewWriter()
	t.SetOutputMirror(cw.out)
	t.SetTitle(fmt.Sprintf("Scan #%d on %s at %s",
		result.ScanNumber, result.Hostname, result.Timestamp.Format("15:04:05")))
	t.AppendHeader(table.Row{"Module", "Risk", "Findings", "Status"})

	for _, m := range result.Modules {
		status := "ok"
		if m.Failed {
			status = "FAILED: " + m.FailureReason
		}
		t.AppendRow(table.Row{m.Module, fmt.Sprintf("%.2f", m.Risk), len(m.Findings), status})
	}
	if result.VM != nil {
		status := "not a VM"
		if result.VM.IsVM {
			status = "VIRTUAL MACHINE"
		}
		t.AppendRow(table.Row{models.ModuleVM, fmt.Sprintf("%.2f", result.VM.Confidence), len(result.VM.Reasons), status})
	}

	verdict := result.Severity
	if result.ThresholdExceeded {
		verdict = "THRESHOLD EXCEEDED (" + result.Severity + ")"
	}
	if result.NoModulesEvaluated {
		verdict = "no modules evaluated"
	}
	t.AppendFooter(table.Row{"overall", fmt.Sprintf("%.2f", result.OverallRisk), "", verdict})
	t.Render()

	for _, m := range result.Modules {
		for _, f := range m.Findings {
			fmt.Fprintf(cw.out, "  [%s] %s (risk %.2f)\n", m.Module, f.Subject, f.Risk)
			for _, reason := range f.Reasons {
				fmt.Fprintf(cw.out, "      * %s\n", reason)
			}
		}
	}
	if result.VM != nil {
		for _, reason := range result.VM.Reasons {
			fmt.Fprintf(cw.out, "  [vm] %s\n", reason)
		}
	}
	fmt.Fprintln(cw.out)
	return nil
}

// Close is a no-op for the console.
func (cw *ConsoleWriter) Close() error { return nil }
