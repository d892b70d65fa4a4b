//go:build !windows

package facts

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ExecDisplayProvider reads display topology from platform tools
// (system_profiler on macOS, xrandr on Linux). A missing or failing tool
// yields an empty topology, not an error: headless hosts are a normal case.
type ExecDisplayProvider struct{}

// NewDisplayProvider returns the display provider for this platform.
func NewDisplayProvider() DisplayProvider { return &ExecDisplayProvider{} }

// Displays returns the current display topology.
func (d *ExecDisplayProvider) Displays(ctx context.Context) (DisplayFacts, error) {
	var f DisplayFacts
	switch runtime.GOOS {
	case "darwin":
		f = darwinDisplays(ctx)
	default:
		f = linuxDisplays(ctx)
	}
	f.RemoteDesktop = remoteDesktopActive(ctx)
	return f, nil
}

func darwinDisplays(ctx context.Context) DisplayFacts {
	var f DisplayFacts

	out, err := exec.CommandContext(ctx, "system_profiler", "SPDisplaysDataType").Output()
	if err != nil {
		return f
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Display Type:") {
			continue
		}
		displayType := strings.TrimSpace(strings.TrimPrefix(line, "Display Type:"))
		display := Display{
			ID:         fmt.Sprintf("display_%d", len(f.Displays)),
			Name:       displayType,
			Primary:    len(f.Displays) == 0,
			Connection: connectionFromName(displayType),
		}
		if display.Connection == ConnVirtual {
			f.VirtualDisplay = true
		}
		f.Displays = append(f.Displays, display)
	}
	f.Count = len(f.Displays)
	return f
}

func linuxDisplays(ctx context.Context) DisplayFacts {
	var f DisplayFacts

	out, err := exec.CommandContext(ctx, "xrandr", "--query").Output()
	if err != nil {
		return f
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, " connected") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[0]
		display := Display{
			ID:         name,
			Name:       name,
			Primary:    strings.Contains(line, "primary"),
			Connection: connectionFromName(name),
		}
		if display.Connection == ConnVirtual {
			f.VirtualDisplay = true
		}
		f.Displays = append(f.Displays, display)
	}
	f.Count = len(f.Displays)
	return f
}

// remoteDesktopActive checks for an active screen-sharing session: a VNC
// listener on :5900 on macOS, any :590x listener on Linux.
func remoteDesktopActive(ctx context.Context) bool {
	if runtime.GOOS == "darwin" {
		out, err := exec.CommandContext(ctx, "lsof", "-i", ":5900").Output()
		if err != nil {
			return false
		}
		return len(strings.Split(strings.TrimSpace(string(out)), "\n")) > 1
	}

	out, err := exec.CommandContext(ctx, "netstat", "-tuln").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, ":590") && strings.Contains(line, "LISTEN") {
			return true
		}
	}
	return false
}
