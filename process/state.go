package process

// ProcessState represents the lifecycle state of a process.
type ProcessState int

const (
	// StateNew is the state of a freshly created process, not yet
	// admitted to scheduling.
	StateNew ProcessState = iota

	// StateReady means the process can be dispatched but is not on a CPU.
	StateReady

	// StateRunning means the process is executing on a CPU.
	StateRunning

	// StateBlocked means the process is waiting on a WaitTarget.
	StateBlocked

	// StateSuspended means the process is administratively paused and
	// not schedulable until resumed.
	StateSuspended

	// StateTerminated is terminal: the process has exited and holds an
	// exit code.
	StateTerminated
)

// String returns the state name.
func (s ProcessState) String() string {
	switch s {
	case StateNew:
		return "New"
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateBlocked:
		return "Blocked"
	case StateSuspended:
		return "Suspended"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
