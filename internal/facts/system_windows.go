//go:build windows

package facts

import (
	"context"
	"net"
	"os"
	"strings"

	"github.com/StackExchange/wmi"
)

type win32ComputerSystem struct {
	Manufacturer string
	Model        string
}

// HostSystemProvider reads system identity from WMI and the CPUID hypervisor
// leaves.
type HostSystemProvider struct{}

// NewSystemProvider returns the system identity provider for this platform.
func NewSystemProvider() *HostSystemProvider { return &HostSystemProvider{} }

// Identity returns the model string, hostname and MAC addresses used for VM
// fingerprinting.
func (s *HostSystemProvider) Identity(_ context.Context) (Identity, error) {
	var ident Identity

	var systems []win32ComputerSystem
	if err := wmi.Query("SELECT Manufacturer, Model FROM Win32_ComputerSystem", &systems); err == nil && len(systems) > 0 {
		ident.SystemModel = strings.TrimSpace(systems[0].Manufacturer + " " + systems[0].Model)
	}

	if hostname, err := os.Hostname(); err == nil {
		ident.Hostname = hostname
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return ident, err
	}
	for _, iface := range ifaces {
		mac := iface.HardwareAddr.String()
		if mac == "" || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		ident.MACs = append(ident.MACs, MACAddress{Interface: iface.Name, Address: mac})
	}
	return ident, nil
}
