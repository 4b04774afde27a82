// Package firmware models the boot-time memory map handed over by the
// platform firmware and the source abstraction used to fetch it.
package firmware

import "fmt"

// PageSize is the size in bytes of one firmware-reported page.
const PageSize = 4096

// MemoryType classifies a firmware-reported memory range. The numbering
// follows the UEFI memory type table.
type MemoryType uint32

const (
	MemoryReserved            MemoryType = 0
	MemoryLoaderCode          MemoryType = 1
	MemoryLoaderData          MemoryType = 2
	MemoryBootServicesCode    MemoryType = 3
	MemoryBootServicesData    MemoryType = 4
	MemoryRuntimeServicesCode MemoryType = 5
	MemoryRuntimeServicesData MemoryType = 6

	// MemoryConventional is general-purpose usable RAM. It is the only
	// type the inventory retains.
	MemoryConventional MemoryType = 7

	MemoryUnusable    MemoryType = 8
	MemoryACPIReclaim MemoryType = 9
	MemoryACPINVS     MemoryType = 10
	MemoryMMIO        MemoryType = 11
)

// String returns a short name for the memory type.
func (t MemoryType) String() string {
	switch t {
	case MemoryReserved:
		return "reserved"
	case MemoryLoaderCode:
		return "loader-code"
	case MemoryLoaderData:
		return "loader-data"
	case MemoryBootServicesCode:
		return "boot-services-code"
	case MemoryBootServicesData:
		return "boot-services-data"
	case MemoryRuntimeServicesCode:
		return "runtime-services-code"
	case MemoryRuntimeServicesData:
		return "runtime-services-data"
	case MemoryConventional:
		return "conventional"
	case MemoryUnusable:
		return "unusable"
	case MemoryACPIReclaim:
		return "acpi-reclaim"
	case MemoryACPINVS:
		return "acpi-nvs"
	case MemoryMMIO:
		return "mmio"
	default:
		return fmt.Sprintf("type-%d", uint32(t))
	}
}

// IsUsable reports whether ranges of this type are free for general
// allocation after the firmware handoff.
func (t MemoryType) IsUsable() bool {
	return t == MemoryConventional
}

// MemoryDescriptor is one entry of the firmware memory map.
type MemoryDescriptor struct {
	Type      MemoryType // Classification of the range
	PhysStart uint64     // Physical start address
	PageCount uint64     // Length of the range in pages
}

// Bytes returns the length of the described range in bytes.
func (d MemoryDescriptor) Bytes() uint64 {
	return d.PageCount * PageSize
}

// String returns a string representation of the descriptor.
func (d MemoryDescriptor) String() string {
	return fmt.Sprintf("%s: 0x%X +%d pages", d.Type, d.PhysStart, d.PageCount)
}
