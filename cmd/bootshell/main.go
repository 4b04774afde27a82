// Command bootshell is the firmware-to-kernel handoff driver: it picks a
// firmware memory source, runs one discovery pass, prints the usable
// regions, and optionally idles the way the real boot loop does.
package main

import (
	"flag"
	"fmt"
	"os"

	"kcore/config"
	"kcore/firmware"
	"kcore/firmware_host"
	"kcore/inventory"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	sourceFlag := flag.String("source", cfg.Source, "memory map source: demo, host or iomem")
	bufferFlag := flag.Int("buffer", cfg.BufferSize, "working buffer size in bytes")
	capacityFlag := flag.Int("capacity", cfg.Capacity, "region table capacity")
	idleFlag := flag.Bool("idle", cfg.Idle, "idle after boot instead of exiting")
	flag.Parse()

	log := logger.NewLogger(coloransi.Color(coloransi.Green, coloransi.ColorOrange, "bootshell"))
	log.Infoln("Booting OS")
	logBanner(log)

	src, err := pickSource(*sourceFlag)
	if err != nil {
		fmt.Printf("Error selecting source: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	inv := inventory.NewWithSize(*capacityFlag, *bufferFlag)
	if err := inv.Discover(src); err != nil {
		// Both failure classes are unrecoverable at this stage: without
		// a memory map the kernel cannot reason about available memory.
		log.Warn("Memory discovery failed: ", err)
		os.Exit(1)
	}

	for _, region := range inv.Snapshot() {
		fmt.Println(region)
	}
	if inv.Truncated() {
		log.Warn("Region table truncated; later usable regions were dropped")
	}
	log.Infoln("Total usable:", inventory.TotalBytes(inv.Snapshot()).KiB(), "KiB in", inv.Len(), "regions")

	if *idleFlag {
		log.Infoln("Boot complete, idling")
		select {}
	}
}

// pickSource maps a source name to a firmware.MemorySource. The iomem
// source is platform-specific and resolved in the platform files.
func pickSource(name string) (firmware.MemorySource, error) {
	switch name {
	case config.SourceDemo:
		return demoSource(), nil
	case config.SourceHost:
		return firmware_host.New(), nil
	case config.SourceIomem:
		return platformSource()
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

// demoSource is a small fixed map resembling a qemu machine: usable RAM
// split around the legacy reserved hole.
func demoSource() *firmware.StaticSource {
	return firmware.NewStaticSource(
		firmware.MemoryDescriptor{Type: firmware.MemoryConventional, PhysStart: 0x1000, PageCount: 0x9F},
		firmware.MemoryDescriptor{Type: firmware.MemoryReserved, PhysStart: 0xA0000, PageCount: 0x60},
		firmware.MemoryDescriptor{Type: firmware.MemoryLoaderCode, PhysStart: 0x100000, PageCount: 0x100},
		firmware.MemoryDescriptor{Type: firmware.MemoryConventional, PhysStart: 0x200000, PageCount: 0x1FE00},
		firmware.MemoryDescriptor{Type: firmware.MemoryACPIReclaim, PhysStart: 0x7FE00000, PageCount: 0x40},
		firmware.MemoryDescriptor{Type: firmware.MemoryConventional, PhysStart: 0x100000000, PageCount: 0x40000},
	)
}
