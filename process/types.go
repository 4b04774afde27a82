// Package process defines the process control block, its lifecycle state
// machine, and the blocking-target taxonomy the scheduler builds on.
package process

import "fmt"

// ProcessID represents a unique identifier for a process. A PID is unique
// among live processes; reuse after termination is the PID allocator's
// concern, not modelled here.
type ProcessID uint64

// VirtAddr represents a virtual address inside a process address space.
type VirtAddr uint64

func (a VirtAddr) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// PhysAddr represents a physical address, e.g. the root page table frame.
type PhysAddr uint64

func (a PhysAddr) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Tick is a kernel timebase value used for time accounting.
type Tick uint64

// Fixed table dimensions of the PCB.
const (
	// NameLen is the fixed width of a process name. Shorter names are
	// zero-padded.
	NameLen = 32

	// MaxHandles is the number of descriptor-handle slots per process.
	MaxHandles = 64

	// NumSignals is the number of signal handler slots per process.
	NumSignals = 32

	// NumRegisters is the number of general-purpose registers saved in
	// the CPU context.
	NumRegisters = 32
)

// Segment describes one virtual memory region of a process as a base
// address and a growth limit. Heap and stack may grow at runtime but
// never past MaxSize.
type Segment struct {
	Base    VirtAddr
	MaxSize uint64
}

// RegisterFile holds the general-purpose register values saved during a
// context switch.
type RegisterFile [NumRegisters]uint64

// Context is the saved CPU state of a descheduled process. It is only
// meaningful while the process is not Running; the hardware holds the
// live values otherwise.
type Context struct {
	Regs  RegisterFile
	PC    VirtAddr // Instruction pointer to resume at
	SP    VirtAddr // Stack pointer
	Flags uint64   // Saved flags register
}

// handleEntry is one slot of the per-process descriptor-handle table.
type handleEntry struct {
	id   uint32
	used bool
}
