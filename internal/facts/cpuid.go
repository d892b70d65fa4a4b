package facts

import "github.com/klauspost/cpuid/v2"

// CPUID reports the hypervisor-present bit (leaf 1 ECX bit 31) and the
// vendor signature from leaf 0x40000000. Hypervisor state is static per run
// but cheap enough to re-read every scan.
func (s *HostSystemProvider) CPUID() CPUIDFacts {
	return CPUIDFacts{
		HypervisorPresent: cpuid.CPU.VM(),
		VendorSignature:   cpuid.CPU.HypervisorVendorString,
	}
}
