// Package inventory discovers and stores the physical memory ranges the
// firmware reports as free for general allocation.
package inventory

import (
	"fmt"

	"kcore/firmware"
)

// PhysAddr represents a physical memory address.
type PhysAddr uint64

func (a PhysAddr) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// ByteSize represents a size of a physical memory range.
type ByteSize uint64

func (s ByteSize) String() string {
	return fmt.Sprintf("%d bytes", uint64(s))
}

// KiB returns the size in whole KiB.
func (s ByteSize) KiB() uint64 {
	return uint64(s) / 1024
}

// MemoryRegion is one usable physical range. Regions are immutable once
// recorded; a discovery pass replaces the whole snapshot, never single
// entries.
type MemoryRegion struct {
	Start PhysAddr // Physical start address
	Size  ByteSize // Length of the region in bytes
}

// End returns the exclusive end address of the region.
func (r MemoryRegion) End() PhysAddr {
	return r.Start + PhysAddr(r.Size)
}

// Contains reports whether addr falls inside the region.
func (r MemoryRegion) Contains(addr PhysAddr) bool {
	return addr >= r.Start && addr < r.End()
}

// String renders the region the way the boot shell prints it.
func (r MemoryRegion) String() string {
	return fmt.Sprintf("Usable region: %s - %s (%d KiB)", r.Start, r.End(), r.Size.KiB())
}

// RegionForAddr returns the region containing addr, or nil.
func RegionForAddr(addr PhysAddr, regions []MemoryRegion) *MemoryRegion {
	for i := range regions {
		if regions[i].Contains(addr) {
			return &regions[i]
		}
	}
	return nil
}

// TotalBytes sums the sizes of all regions.
func TotalBytes(regions []MemoryRegion) ByteSize {
	var total ByteSize
	for _, r := range regions {
		total += r.Size
	}
	return total
}

// regionFromDescriptor converts one usable firmware descriptor.
func regionFromDescriptor(d firmware.MemoryDescriptor) MemoryRegion {
	return MemoryRegion{
		Start: PhysAddr(d.PhysStart),
		Size:  ByteSize(d.Bytes()),
	}
}
