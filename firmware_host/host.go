// Package firmware_host implements firmware.MemorySource on top of host
// statistics, as a portable source for running the boot shell on a
// development machine.
package firmware_host

import (
	"fmt"

	"kcore/firmware"

	"github.com/shirou/gopsutil/v4/mem"
)

// HostSource synthesizes a firmware memory map from the host's physical
// memory total: the legacy low megabyte reported reserved, the rest
// conventional.
type HostSource struct{}

// New creates a HostSource.
func New() *HostSource {
	return &HostSource{}
}

// MapSize returns the encoded size of the synthesized map.
func (s *HostSource) MapSize() (int, error) {
	descs, err := s.descriptors()
	if err != nil {
		return 0, err
	}
	return len(descs) * firmware.DescriptorSize, nil
}

// MemoryMap encodes the synthesized map into buf.
func (s *HostSource) MemoryMap(buf []byte) (int, error) {
	descs, err := s.descriptors()
	if err != nil {
		return 0, err
	}
	return firmware.EncodeDescriptors(buf, descs)
}

func (s *HostSource) descriptors() ([]firmware.MemoryDescriptor, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("virtual memory stats: %w", err)
	}

	const lowMeg = 0x100000
	total := vm.Total
	if total <= lowMeg {
		return nil, fmt.Errorf("implausible host memory total %d", total)
	}

	return []firmware.MemoryDescriptor{
		{Type: firmware.MemoryReserved, PhysStart: 0, PageCount: lowMeg / firmware.PageSize},
		{Type: firmware.MemoryConventional, PhysStart: lowMeg, PageCount: (total - lowMeg) / firmware.PageSize},
	}, nil
}
