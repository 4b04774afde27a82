//go:build linux

// Package firmware_linux implements firmware.MemorySource for Linux hosts
// by parsing the physical address map the kernel exposes in /proc/iomem.
package firmware_linux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"kcore/firmware"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"golang.org/x/sys/unix"
)

// IomemSource reads the host physical memory layout from /proc/iomem and
// reports it as a firmware memory map. "System RAM" ranges become
// conventional memory; every other top-level range is reported reserved.
//
// Reading /proc/iomem addresses needs root; without it every range reads
// as zero and the source falls back to a single region synthesized from
// sysinfo.
type IomemSource struct {
	path string
	log  *logger.Logger
}

// New creates an IomemSource over /proc/iomem.
func New() *IomemSource {
	return NewWithPath("/proc/iomem")
}

// NewWithPath creates an IomemSource over an alternate iomem-format file.
func NewWithPath(path string) *IomemSource {
	return &IomemSource{
		path: path,
		log:  logger.NewLogger(coloransi.Color(coloransi.Cyan, coloransi.ColorOrange, "iomem")),
	}
}

// MapSize returns the encoded size of the current memory map.
func (s *IomemSource) MapSize() (int, error) {
	descs, err := s.descriptors()
	if err != nil {
		return 0, err
	}
	return len(descs) * firmware.DescriptorSize, nil
}

// MemoryMap encodes the current memory map into buf.
func (s *IomemSource) MemoryMap(buf []byte) (int, error) {
	descs, err := s.descriptors()
	if err != nil {
		return 0, err
	}
	return firmware.EncodeDescriptors(buf, descs)
}

func (s *IomemSource) descriptors() ([]firmware.MemoryDescriptor, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer file.Close()

	descs, err := parseIomem(file)
	if err != nil {
		return nil, err
	}
	if len(descs) == 0 || allZero(descs) {
		// Unprivileged reads see zeroed ranges.
		s.log.Warn("iomem unreadable, synthesizing map from sysinfo")
		return sysinfoDescriptors()
	}
	return descs, nil
}

// parseIomem reads top-level lines of the /proc/iomem format, e.g.
//
//	00001000-0009ffff : System RAM
//	000a0000-000fffff : Reserved
//
// Nested (indented) entries subdivide their parent and are skipped.
func parseIomem(r io.Reader) ([]firmware.MemoryDescriptor, error) {
	var descs []firmware.MemoryDescriptor
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' {
			continue
		}

		rangePart, name, ok := strings.Cut(line, " : ")
		if !ok {
			continue
		}

		startStr, endStr, ok := strings.Cut(strings.TrimSpace(rangePart), "-")
		if !ok {
			continue
		}

		start, err := strconv.ParseUint(startStr, 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(endStr, 16, 64)
		if err != nil || end < start {
			continue
		}

		typ := firmware.MemoryReserved
		if name == "System RAM" {
			typ = firmware.MemoryConventional
		}

		// iomem ranges are inclusive.
		descs = append(descs, firmware.MemoryDescriptor{
			Type:      typ,
			PhysStart: start,
			PageCount: (end - start + 1) / firmware.PageSize,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return descs, nil
}

func allZero(descs []firmware.MemoryDescriptor) bool {
	for _, d := range descs {
		if d.PhysStart != 0 || d.PageCount != 0 {
			return false
		}
	}
	return true
}

// sysinfoDescriptors builds a one-region map covering total RAM, starting
// above the legacy low megabyte.
func sysinfoDescriptors() ([]firmware.MemoryDescriptor, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return nil, fmt.Errorf("sysinfo: %w", err)
	}
	total := uint64(si.Totalram) * uint64(si.Unit)
	return []firmware.MemoryDescriptor{
		{Type: firmware.MemoryReserved, PhysStart: 0, PageCount: 0x100000 / firmware.PageSize},
		{Type: firmware.MemoryConventional, PhysStart: 0x100000, PageCount: total / firmware.PageSize},
	}, nil
}
