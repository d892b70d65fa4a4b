//go:build !windows

package facts

import (
	"context"
	"net"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// HostSystemProvider reads system identity from the host and the CPUID
// hypervisor leaves.
type HostSystemProvider struct{}

// NewSystemProvider returns the system identity provider for this platform.
func NewSystemProvider() *HostSystemProvider { return &HostSystemProvider{} }

// Identity returns the model string, hostname and MAC addresses used for VM
// fingerprinting.
func (s *HostSystemProvider) Identity(ctx context.Context) (Identity, error) {
	ident := Identity{SystemModel: systemModel(ctx)}

	if info, err := host.InfoWithContext(ctx); err == nil {
		ident.Hostname = info.Hostname
	} else if hostname, err := os.Hostname(); err == nil {
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

func systemModel(ctx context.Context) string {
	if runtime.GOOS == "darwin" {
		out, err := exec.CommandContext(ctx, "sysctl", "-n", "hw.model").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}

	var parts []string
	for _, path := range []string{
		"/sys/devices/virtual/dmi/id/sys_vendor",
		"/sys/devices/virtual/dmi/id/product_name",
	} {
		if data, err := os.ReadFile(path); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				parts = append(parts, v)
			}
		}
	}
	return strings.Join(parts, " ")
}
