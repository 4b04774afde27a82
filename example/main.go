package main

import (
	"fmt"

	"kcore/firmware"
	"kcore/inventory"
	"kcore/process"
)

func main() {
	// This example walks through the two entry points of the core: one
	// memory discovery pass, and one process lifecycle.

	// 1. Describe a firmware memory map. On real hardware this comes
	// from the platform firmware; here a static source stands in.
	src := firmware.NewStaticSource(
		firmware.MemoryDescriptor{Type: firmware.MemoryConventional, PhysStart: 0x1000, PageCount: 2},
		firmware.MemoryDescriptor{Type: firmware.MemoryReserved, PhysStart: 0x3000, PageCount: 5},
		firmware.MemoryDescriptor{Type: firmware.MemoryConventional, PhysStart: 0x10000, PageCount: 16},
	)

	// 2. Discover usable regions. The inventory sizes its working
	// buffer against the reported map size plus headroom, so a map that
	// grows between the probe and the fetch still fits.
	inv := inventory.New()
	if err := inv.Discover(src); err != nil {
		fmt.Printf("Discovery failed: %v\n", err)
		return
	}
	for _, region := range inv.Snapshot() {
		fmt.Println(region)
	}

	// 3. Create a process and drive it through its lifecycle. Every
	// transition outside the edge set is rejected.
	p := process.New(1, 0, "init", 0)
	_ = p.Admit()
	_ = p.Dispatch(10)
	_ = p.Block(25, process.WaitOnDevice(3))

	if target, ok := p.WaitingOn(); ok {
		fmt.Printf("pid %d blocked on %s\n", p.PID(), target)
	}

	_ = p.Wake()
	_ = p.Dispatch(40)
	_ = p.Terminate(55, 0)

	if code, ok := p.ExitCode(); ok {
		fmt.Printf("pid %d exited with code %d after %d ticks of CPU\n",
			p.PID(), code, p.CPUTime())
	}
}
