package detect

import (
	"fmt"
	"strings"

	"github.com/GekkoQuest/fairview/internal/facts"
	"github.com/GekkoQuest/fairview/internal/models"
)

// VM scorer step contributions.
const (
	vmHypervisorBitRisk   = 0.1
	vmKnownVendorRisk     = 0.8
	vmAmbiguousVendorRisk = 0.3
	vmSystemStringRisk    = 0.6
	vmMACVendorRisk       = 0.5
)

// Known CPUID leaf 0x40000000 vendor signatures, keyed by the signature
// with trailing NULs and spaces stripped.
var vmVendorSignatures = map[string]string{
	"VMwareVMware": "VMware",
	"VBoxVBoxVBox": "VirtualBox",
	"KVMKVMKVM":    "QEMU/KVM",
	"TCGTCGTCGTCG": "QEMU",
	"XenVMMXenVMM": "Xen",
	"Microsoft Hv": "Microsoft Hyper-V",
	"prl hyperv":   "Parallels",
}

// VM-indicative tokens matched case-insensitively against the system model
// string and hostname.
var vmSystemTokens = []string{
	"virtualbox", "vmware", "qemu", "kvm", "innotek", "oracle",
	"xen", "bochs", "parallels", "bhyve", "virtual machine", "hvm dom",
}

// Known virtual network adapter OUIs (first three MAC octets, lowercase).
var vmMACPrefixes = []struct {
	prefix string
	vendor string
}{
	{"00:05:69", "VMware"},
	{"00:0c:29", "VMware"},
	{"00:1c:14", "VMware"},
	{"00:50:56", "VMware"},
	{"08:00:27", "VirtualBox"},
	{"52:54:00", "QEMU/KVM"},
	{"00:16:3e", "Xen"},
	{"00:1c:42", "Parallels"},
}

// ScoreVM combines CPUID, system fingerprinting and network adapter evidence
// into a VM verdict. Steps contribute independently; the sum is clamped once
// at the end. Reasons are reported in evaluation order (CPUID, system,
// network) for reproducibility.
func ScoreVM(cpu facts.CPUIDFacts, ident facts.Identity, threshold float64) models.VMVerdict {
	var confidence float64
	var reasons []string

	// Step 1: CPUID hypervisor bit and vendor signature. A recognized
	// vendor replaces the base contribution. Microsoft Hv is ambiguous
	// (host-side Hyper-V and WSL2 set it too) and contributes less.
	if cpu.HypervisorPresent {
		sig := strings.TrimRight(cpu.VendorSignature, "\x00 ")
		vendor, known := vmVendorSignatures[sig]
		switch {
		case known && sig == "Microsoft Hv":
			confidence += vmAmbiguousVendorRisk
			reasons = append(reasons, fmt.Sprintf(
				"hypervisor vendor %s (ambiguous: could be host Hyper-V or WSL2)", vendor))
		case known:
			confidence += vmKnownVendorRisk
			reasons = append(reasons, "hypervisor vendor detected: "+vendor)
		default:
			confidence += vmHypervisorBitRisk
			reasons = append(reasons, "hypervisor bit set, unknown vendor")
		}
	}

	// Step 2: system model and hostname fingerprinting, one contribution
	// regardless of how many tokens match.
	if token, field, value := matchSystemToken(ident); token != "" {
		confidence += vmSystemStringRisk
		reasons = append(reasons, fmt.Sprintf("%s %q matches VM token %q", field, value, token))
	}

	// Step 3: network adapter OUIs, one contribution regardless of how
	// many adapters match.
	macReasons := matchMACVendors(ident.MACs)
	if len(macReasons) > 0 {
		confidence += vmMACVendorRisk
		reasons = append(reasons, macReasons...)
	}

	confidence = clamp01(confidence)
	return models.VMVerdict{
		IsVM:       confidence >= threshold,
		Confidence: confidence,
		Reasons:    reasons,
	}
}

func matchSystemToken(ident facts.Identity) (token, field, value string) {
	model := strings.ToLower(ident.SystemModel)
	hostname := strings.ToLower(ident.Hostname)
	for _, t := range vmSystemTokens {
		if model != "" && strings.Contains(model, t) {
			return t, "system model", ident.SystemModel
		}
		if hostname != "" && strings.Contains(hostname, t) {
			return t, "hostname", ident.Hostname
		}
	}
	return "", "", ""
}

func matchMACVendors(macs []facts.MACAddress) []string {
	var reasons []string
	for _, mac := range macs {
		addr := strings.ToLower(mac.Address)
		for _, oui := range vmMACPrefixes {
			if strings.HasPrefix(addr, oui.prefix) {
				reasons = append(reasons, fmt.Sprintf(
					"%s network adapter OUI on %s", oui.vendor, mac.Interface))
				break
			}
		}
	}
	return reasons
}
