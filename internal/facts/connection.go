package facts

import "strings"

// connectionFromName classifies a display attachment from its reported name
// or identifier. Shared by every platform's display provider.
func connectionFromName(name string) Connection {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "hdmi"):
		return ConnHDMI
	case strings.Contains(lower, "displayport") || strings.HasPrefix(lower, "dp"):
		return ConnDisplayPort
	case strings.Contains(lower, "usb"):
		return ConnUSB
	case strings.Contains(lower, "virtual") || strings.Contains(lower, "dummy"):
		return ConnVirtual
	case strings.Contains(lower, "miracast") || strings.Contains(lower, "wireless"):
		return ConnWireless
	default:
		return ConnUnknown
	}
}
