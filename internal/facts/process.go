package facts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Applications known to legitimately hold capture permissions. Used as a
// capability heuristic on platforms where per-process permission bits are
// not directly queryable.
var captureCapableApps = []string{
	"obs", "zoom", "teams", "discord", "slack", "chrome", "firefox",
}

// Names that suggest an interview-assistant tool; these are assumed to hold
// capture capabilities when present.
var captureSuspectNames = []string{
	"cluely", "interview", "assistant", "helper",
}

// SystemProcessProvider enumerates processes via gopsutil and probes
// capability flags per platform.
type SystemProcessProvider struct{}

// NewProcessProvider returns the gopsutil-backed process provider.
func NewProcessProvider() *SystemProcessProvider {
	return &SystemProcessProvider{}
}

// Processes returns the current process list with capability flags.
func (p *SystemProcessProvider) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	out := make([]Process, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.Name()
		if err != nil {
			// Process exited between enumeration and inspection.
			continue
		}
		exe, _ := proc.Exe()

		entry := Process{
			PID:  proc.Pid,
			Name: name,
			Path: exe,
		}
		p.probeCapabilities(&entry)
		out = append(out, entry)
	}
	return out, nil
}

func (p *SystemProcessProvider) probeCapabilities(proc *Process) {
	switch runtime.GOOS {
	case "linux":
		proc.ScreenCapture = nameSuggestsCapture(proc.Name)
		proc.AudioCapture = linuxAudioCapture(proc.PID)
		proc.Accessibility = linuxAccessibility(proc.PID)
	default:
		// macOS TCC and the Windows capability store cannot be read
		// per-process without elevated access; fall back to the name
		// heuristic for all three flags.
		capture := nameSuggestsCapture(proc.Name)
		proc.ScreenCapture = capture
		proc.AudioCapture = capture
		proc.Accessibility = capture
	}
}

func nameSuggestsCapture(name string) bool {
	lower := strings.ToLower(name)
	for _, app := range captureCapableApps {
		if strings.Contains(lower, app) {
			return true
		}
	}
	for _, s := range captureSuspectNames {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// linuxAudioCapture reports whether the process holds an open handle to an
// audio device or sound server socket.
func linuxAudioCapture(pid int32) bool {
	fdDir := fmt.Sprintf("/proc/%d/fd", pid)
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		link, err := os.Readlink(filepath.Join(fdDir, entry.Name()))
		if err != nil {
			continue
		}
		if strings.Contains(link, "/dev/snd") ||
			strings.Contains(link, "pulse") ||
			strings.Contains(link, "pipewire") {
			return true
		}
	}
	return false
}

// linuxAccessibility reports whether the process has AT-SPI libraries mapped.
func linuxAccessibility(pid int32) bool {
	maps, err := os.ReadFile(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return false
	}
	return strings.Contains(string(maps), "at-spi") || strings.Contains(string(maps), "atspi")
}
