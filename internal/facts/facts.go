// Package facts gathers raw per-domain system facts: running processes with
// capability flags, display topology, audio capture activity, overlay
// windows, CPUID hypervisor state and system identity. Providers are thin
// platform wrappers; all scoring happens in internal/detect.
package facts

import "context"

// Process is one running process with its probed capability flags.
type Process struct {
	PID           int32
	Name          string
	Path          string
	ScreenCapture bool
	AudioCapture  bool
	Accessibility bool
}

// Connection classifies how a display is attached.
type Connection string

const (
	ConnHDMI        Connection = "hdmi"
	ConnDisplayPort Connection = "displayport"
	ConnUSB         Connection = "usb"
	ConnVirtual     Connection = "virtual"
	ConnWireless    Connection = "wireless"
	ConnUnknown     Connection = "unknown"
)

// Display is one attached display.
type Display struct {
	ID         string
	Name       string
	Primary    bool
	Connection Connection
}

// DisplayFacts is the display topology observed in one refresh.
type DisplayFacts struct {
	Count          int
	Displays       []Display
	VirtualDisplay bool
	HDMISplitter   bool
	RemoteDesktop  bool
}

// OverlayWindow is a hidden/transparent/topmost window candidate.
type OverlayWindow struct {
	Handle      uintptr
	OwnerPID    uint32
	X, Y        int32
	Width       uint32
	Height      uint32
	Transparent bool
	Topmost     bool
}

// CPUIDFacts carries the hypervisor-related CPUID state. VendorSignature is
// the 12-character ASCII string from leaf 0x40000000 EBX/ECX/EDX, empty when
// the hypervisor bit is unset.
type CPUIDFacts struct {
	HypervisorPresent bool
	VendorSignature   string
}

// MACAddress pairs a network interface with its hardware address.
type MACAddress struct {
	Interface string
	Address   string
}

// Identity is the system fingerprinting input for VM detection.
type Identity struct {
	Hostname    string
	SystemModel string
	MACs        []MACAddress
}

// ProcessProvider enumerates running processes. Must be callable repeatedly
// without leaking handles.
type ProcessProvider interface {
	Processes(ctx context.Context) ([]Process, error)
}

// DisplayProvider reports the current display topology.
type DisplayProvider interface {
	Displays(ctx context.Context) (DisplayFacts, error)
}

// AudioProvider reports whether real-time audio capture is active.
type AudioProvider interface {
	CaptureActive(ctx context.Context) (bool, error)
}

// OverlayProvider enumerates overlay window candidates. Supported reports
// whether enumeration works on this platform; unsupported providers return
// an empty list, which scores as zero risk rather than a failure.
type OverlayProvider interface {
	Windows(ctx context.Context) ([]OverlayWindow, error)
	Supported() bool
}

// SystemProvider reports CPUID and identity facts for VM detection.
type SystemProvider interface {
	CPUID() CPUIDFacts
	Identity(ctx context.Context) (Identity, error)
}

// Providers bundles every fact source consumed by a scan session.
type Providers struct {
	Process ProcessProvider
	Display DisplayProvider
	Audio   AudioProvider
	Overlay OverlayProvider
	System  SystemProvider
}

// NewProviders returns the real platform-backed providers.
func NewProviders() Providers {
	return Providers{
		Process: NewProcessProvider(),
		Display: NewDisplayProvider(),
		Audio:   NewAudioProvider(),
		Overlay: NewOverlayProvider(),
		System:  NewSystemProvider(),
	}
}
