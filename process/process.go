package process

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrInvalidTransition is returned when a lifecycle transition is
	// requested that the state machine does not allow. The process is
	// left unchanged.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrBadSignal is returned for a signal number outside the table.
	ErrBadSignal = errors.New("signal number out of range")

	// ErrHandleTableFull is returned when no descriptor-handle slot is
	// free.
	ErrHandleTableFull = errors.New("handle table full")

	// ErrBadHandle is returned for a handle slot that is out of range
	// or not in use.
	ErrBadHandle = errors.New("bad handle slot")

	// ErrSegmentLimit is returned when a heap or stack growth request
	// would exceed the segment's maximum size.
	ErrSegmentLimit = errors.New("segment growth past max size")
)

// Process is a process control block: the kernel's complete record of one
// schedulable execution unit. Fields are unexported so the lifecycle
// invariants hold for every reachable value:
//
//   - a wait target is recorded if and only if the process is Blocked
//   - a wakeup time is recorded only for timer waits
//   - an exit code is recorded if and only if the process is Terminated,
//     and is set exactly once
//
// The model defines no locking. A scheduler consuming it must serialize
// transitions per process; no two concurrent transitions for the same PID.
type Process struct {
	pid  ProcessID
	ppid ProcessID
	name [NameLen]byte

	state     ProcessState
	priority  uint8  // 0 = highest
	timeslice uint32 // Quantum in ticks

	exitCode int32
	exited   bool

	code  Segment
	data  Segment
	heap  Segment
	stack Segment

	heapUsed  uint64
	stackUsed uint64

	pageTableRoot PhysAddr
	kernelStack   VirtAddr

	ctx Context

	waitingOn  WaitTarget
	waiting    bool
	wakeupTime Tick
	sleeping   bool

	handles [MaxHandles]handleEntry

	sigPending  uint64
	sigHandlers [NumSignals]VirtAddr

	createdAt     Tick
	cpuTime       Tick
	lastScheduled Tick
}

// New creates a process in the New state. The name is truncated to
// NameLen bytes and zero-padded.
func New(pid, ppid ProcessID, name string, now Tick) *Process {
	p := &Process{
		pid:       pid,
		ppid:      ppid,
		createdAt: now,
	}
	copy(p.name[:], name)
	return p
}

// PID returns the process identifier.
func (p *Process) PID() ProcessID {
	return p.pid
}

// PPID returns the parent process identifier.
func (p *Process) PPID() ProcessID {
	return p.ppid
}

// Name returns the process name with zero padding stripped.
func (p *Process) Name() string {
	n := 0
	for n < NameLen && p.name[n] != 0 {
		n++
	}
	return string(p.name[:n])
}

// State returns the current lifecycle state.
func (p *Process) State() ProcessState {
	return p.state
}

// Priority returns the scheduling priority, 0 being highest.
func (p *Process) Priority() uint8 {
	return p.priority
}

// SetPriority records a new scheduling priority. Priority is a scheduler
// input; the process never changes it itself.
func (p *Process) SetPriority(prio uint8) {
	p.priority = prio
}

// Timeslice returns the quantum granted to the process.
func (p *Process) Timeslice() uint32 {
	return p.timeslice
}

// SetTimeslice records a new quantum.
func (p *Process) SetTimeslice(quantum uint32) {
	p.timeslice = quantum
}

// ExitCode returns the exit code and whether the process has terminated.
func (p *Process) ExitCode() (int32, bool) {
	return p.exitCode, p.exited
}

// WaitingOn returns the blocking target and whether one is recorded. A
// target is recorded exactly while the process is Blocked.
func (p *Process) WaitingOn() (WaitTarget, bool) {
	return p.waitingOn, p.waiting
}

// WakeupTime returns the wakeup deadline and whether one is recorded.
// A deadline is only recorded for timer waits.
func (p *Process) WakeupTime() (Tick, bool) {
	return p.wakeupTime, p.sleeping
}

// CreatedAt returns the tick the process was created at.
func (p *Process) CreatedAt() Tick {
	return p.createdAt
}

// CPUTime returns the total ticks the process has spent Running.
func (p *Process) CPUTime() Tick {
	return p.cpuTime
}

// LastScheduled returns the tick of the most recent dispatch.
func (p *Process) LastScheduled() Tick {
	return p.lastScheduled
}

// fail reports an attempted transition the edge set does not contain.
func (p *Process) fail(to ProcessState) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.state, to)
}

// Admit moves a New process to Ready once its address space and handle
// table are initialized.
func (p *Process) Admit() error {
	if p.state != StateNew {
		return p.fail(StateReady)
	}
	p.state = StateReady
	return nil
}

// Dispatch moves a Ready process onto a CPU. The dispatch tick is
// recorded for time accounting.
func (p *Process) Dispatch(now Tick) error {
	if p.state != StateReady {
		return p.fail(StateRunning)
	}
	p.state = StateRunning
	p.lastScheduled = now
	return nil
}

// Preempt moves a Running process back to Ready, either because its
// quantum expired or a higher-priority process became ready.
func (p *Process) Preempt(now Tick) error {
	if p.state != StateRunning {
		return p.fail(StateReady)
	}
	p.accountRun(now)
	p.state = StateReady
	return nil
}

// Block moves a Running process to Blocked waiting on target. Timer
// waits carry a deadline and must use Sleep instead.
func (p *Process) Block(now Tick, target WaitTarget) error {
	if p.state != StateRunning || target.Kind == WaitTimer {
		return p.fail(StateBlocked)
	}
	p.accountRun(now)
	p.state = StateBlocked
	p.waitingOn = target
	p.waiting = true
	return nil
}

// Sleep moves a Running process to Blocked on the timer until wakeAt.
func (p *Process) Sleep(now, wakeAt Tick) error {
	if p.state != StateRunning {
		return p.fail(StateBlocked)
	}
	p.accountRun(now)
	p.state = StateBlocked
	p.waitingOn = WaitOnTimer()
	p.waiting = true
	p.wakeupTime = wakeAt
	p.sleeping = true
	return nil
}

// Wake moves a Blocked process to Ready once its target is satisfied and
// clears the blocking metadata.
func (p *Process) Wake() error {
	if p.state != StateBlocked {
		return p.fail(StateReady)
	}
	p.state = StateReady
	p.clearWait()
	return nil
}

// Suspend administratively pauses a Running, Ready or Blocked process.
// A suspended process keeps its scheduling metadata but is not
// schedulable until resumed.
func (p *Process) Suspend(now Tick) error {
	switch p.state {
	case StateRunning:
		p.accountRun(now)
	case StateReady, StateBlocked:
	default:
		return p.fail(StateSuspended)
	}
	p.state = StateSuspended
	p.clearWait()
	return nil
}

// Resume moves a Suspended process back to Ready.
func (p *Process) Resume() error {
	if p.state != StateSuspended {
		return p.fail(StateReady)
	}
	p.state = StateReady
	return nil
}

// Terminate ends a Running, Blocked or Suspended process with code. The
// exit code is set here, exactly once; Terminated has no outgoing
// transitions.
func (p *Process) Terminate(now Tick, code int32) error {
	switch p.state {
	case StateRunning:
		p.accountRun(now)
	case StateBlocked, StateSuspended:
	default:
		return p.fail(StateTerminated)
	}
	p.state = StateTerminated
	p.clearWait()
	p.exitCode = code
	p.exited = true
	return nil
}

// accountRun charges the elapsed run interval on every Running exit.
func (p *Process) accountRun(now Tick) {
	if now > p.lastScheduled {
		p.cpuTime += now - p.lastScheduled
	}
}

func (p *Process) clearWait() {
	p.waitingOn = WaitTarget{}
	p.waiting = false
	p.wakeupTime = 0
	p.sleeping = false
}

// SetSegments records the virtual memory layout of the process.
func (p *Process) SetSegments(code, data, heap, stack Segment) {
	p.code = code
	p.data = data
	p.heap = heap
	p.stack = stack
	p.heapUsed = 0
	p.stackUsed = 0
}

// Code returns the code segment.
func (p *Process) Code() Segment { return p.code }

// Data returns the data segment.
func (p *Process) Data() Segment { return p.data }

// Heap returns the heap segment.
func (p *Process) Heap() Segment { return p.heap }

// Stack returns the stack segment.
func (p *Process) Stack() Segment { return p.stack }

// HeapUsed returns the currently committed heap size in bytes.
func (p *Process) HeapUsed() uint64 { return p.heapUsed }

// StackUsed returns the currently committed stack size in bytes.
func (p *Process) StackUsed() uint64 { return p.stackUsed }

// GrowHeap commits delta more bytes of heap. Growth never passes the
// segment's maximum size.
func (p *Process) GrowHeap(delta uint64) error {
	if p.heapUsed+delta > p.heap.MaxSize {
		return fmt.Errorf("%w: heap %d+%d > %d", ErrSegmentLimit, p.heapUsed, delta, p.heap.MaxSize)
	}
	p.heapUsed += delta
	return nil
}

// GrowStack commits delta more bytes of stack.
func (p *Process) GrowStack(delta uint64) error {
	if p.stackUsed+delta > p.stack.MaxSize {
		return fmt.Errorf("%w: stack %d+%d > %d", ErrSegmentLimit, p.stackUsed, delta, p.stack.MaxSize)
	}
	p.stackUsed += delta
	return nil
}

// PageTableRoot returns the physical address of the root page table.
func (p *Process) PageTableRoot() PhysAddr {
	return p.pageTableRoot
}

// SetPageTableRoot records the physical address of the root page table,
// used when switching onto this address space.
func (p *Process) SetPageTableRoot(root PhysAddr) {
	p.pageTableRoot = root
}

// KernelStack returns the base of the process's kernel stack.
func (p *Process) KernelStack() VirtAddr {
	return p.kernelStack
}

// SetKernelStack records the kernel stack base used during privilege
// transitions.
func (p *Process) SetKernelStack(base VirtAddr) {
	p.kernelStack = base
}

// Context returns the saved CPU context and whether it is meaningful:
// while the process is Running the hardware holds the live values.
func (p *Process) Context() (Context, bool) {
	return p.ctx, p.state != StateRunning
}

// SetContext records the CPU context to resume from at the next dispatch.
func (p *Process) SetContext(ctx Context) {
	p.ctx = ctx
}

// InstallHandle stores a descriptor handle in the first free slot and
// returns the slot index.
func (p *Process) InstallHandle(id uint32) (int, error) {
	for i := range p.handles {
		if !p.handles[i].used {
			p.handles[i] = handleEntry{id: id, used: true}
			return i, nil
		}
	}
	return 0, ErrHandleTableFull
}

// ReleaseHandle frees a handle slot.
func (p *Process) ReleaseHandle(slot int) error {
	if slot < 0 || slot >= MaxHandles || !p.handles[slot].used {
		return fmt.Errorf("%w: %d", ErrBadHandle, slot)
	}
	p.handles[slot] = handleEntry{}
	return nil
}

// Handle returns the descriptor handle in slot, if the slot is in use.
func (p *Process) Handle(slot int) (uint32, bool) {
	if slot < 0 || slot >= MaxHandles || !p.handles[slot].used {
		return 0, false
	}
	return p.handles[slot].id, true
}

// OpenHandles returns the number of handle slots in use.
func (p *Process) OpenHandles() int {
	n := 0
	for i := range p.handles {
		if p.handles[i].used {
			n++
		}
	}
	return n
}

// PostSignal marks signal sig pending. The bitmap holds 64 signals.
func (p *Process) PostSignal(sig uint8) error {
	if sig >= 64 {
		return fmt.Errorf("%w: %d", ErrBadSignal, sig)
	}
	p.sigPending |= 1 << sig
	return nil
}

// SignalPending reports whether signal sig is pending.
func (p *Process) SignalPending(sig uint8) bool {
	return sig < 64 && p.sigPending&(1<<sig) != 0
}

// TakeSignal removes and returns the lowest pending signal.
func (p *Process) TakeSignal() (uint8, bool) {
	if p.sigPending == 0 {
		return 0, false
	}
	sig := uint8(bits.TrailingZeros64(p.sigPending))
	p.sigPending &^= 1 << sig
	return sig, true
}

// SetSignalHandler records the handler address for signal sig. Handler
// entries reference code; the zero address means no handler installed.
func (p *Process) SetSignalHandler(sig uint8, addr VirtAddr) error {
	if sig >= NumSignals {
		return fmt.Errorf("%w: %d", ErrBadSignal, sig)
	}
	p.sigHandlers[sig] = addr
	return nil
}

// SignalHandler returns the handler address for signal sig, if one is
// installed.
func (p *Process) SignalHandler(sig uint8) (VirtAddr, bool) {
	if sig >= NumSignals || p.sigHandlers[sig] == 0 {
		return 0, false
	}
	return p.sigHandlers[sig], true
}

// String returns a one-line summary of the PCB.
func (p *Process) String() string {
	return fmt.Sprintf("pid %d (%s) %s prio=%d", p.pid, p.Name(), p.state, p.priority)
}
