//go:build windows

package facts

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/StackExchange/wmi"
)

type win32DesktopMonitor struct {
	Name        string
	PNPDeviceID string
	Status      string
}

// WMIDisplayProvider reads display topology from WMI.
type WMIDisplayProvider struct{}

// NewDisplayProvider returns the display provider for this platform.
func NewDisplayProvider() DisplayProvider { return &WMIDisplayProvider{} }

// Displays returns the current display topology.
func (d *WMIDisplayProvider) Displays(ctx context.Context) (DisplayFacts, error) {
	var monitors []win32DesktopMonitor
	if err := wmi.Query("SELECT Name, PNPDeviceID, Status FROM Win32_DesktopMonitor", &monitors); err != nil {
		return DisplayFacts{}, err
	}

	var f DisplayFacts
	for i, m := range monitors {
		lower := strings.ToLower(m.Name)
		if strings.Contains(lower, "virtual") || strings.Contains(lower, "dummy") ||
			(strings.Contains(lower, "usb") && strings.Contains(lower, "display")) {
			f.VirtualDisplay = true
		}
		// Splitters and dummy plugs enumerate as generic PnP monitors.
		if strings.Contains(m.Name, "Generic PnP") || strings.Contains(m.Name, "Generic Non-PnP") {
			f.HDMISplitter = true
		}

		id := m.PNPDeviceID
		if id == "" {
			id = m.Name
		}
		f.Displays = append(f.Displays, Display{
			ID:         id,
			Name:       m.Name,
			Primary:    i == 0,
			Connection: connectionFromName(m.Name),
		})
	}
	f.Count = len(f.Displays)
	f.RemoteDesktop = windowsRemoteDesktopActive(ctx)
	return f, nil
}

func windowsRemoteDesktopActive(ctx context.Context) bool {
	if session := os.Getenv("SESSIONNAME"); strings.HasPrefix(session, "RDP-") {
		return true
	}
	out, err := exec.CommandContext(ctx, "qwinsta").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "rdp-") && strings.Contains(line, "Active") {
			return true
		}
	}
	return false
}
