package process

import "fmt"

// WaitKind identifies the class of resource a blocked process awaits.
type WaitKind int

const (
	// WaitPID waits for another process to terminate or change state.
	WaitPID WaitKind = iota

	// WaitIODevice waits on an I/O device completion.
	WaitIODevice

	// WaitTimer waits for a wakeup time to pass.
	WaitTimer

	// WaitSemaphore waits on a semaphore to become available.
	WaitSemaphore

	// WaitMessageQueue waits for a message to arrive in a queue.
	WaitMessageQueue
)

// String returns the wait kind name.
func (k WaitKind) String() string {
	switch k {
	case WaitPID:
		return "pid"
	case WaitIODevice:
		return "io-device"
	case WaitTimer:
		return "timer"
	case WaitSemaphore:
		return "semaphore"
	case WaitMessageQueue:
		return "message-queue"
	default:
		return "unknown"
	}
}

// WaitTarget identifies what resumes a Blocked process. Wake resolution
// lives in the subsystem that owns the target; the process model only
// records it.
type WaitTarget struct {
	Kind WaitKind
	ID   uint64 // Target identifier; unused for WaitTimer
}

// WaitOnPID targets another process by PID.
func WaitOnPID(pid ProcessID) WaitTarget {
	return WaitTarget{Kind: WaitPID, ID: uint64(pid)}
}

// WaitOnDevice targets an I/O device by identifier.
func WaitOnDevice(id uint32) WaitTarget {
	return WaitTarget{Kind: WaitIODevice, ID: uint64(id)}
}

// WaitOnTimer targets the timer; the wakeup time lives on the process.
func WaitOnTimer() WaitTarget {
	return WaitTarget{Kind: WaitTimer}
}

// WaitOnSemaphore targets a semaphore by identifier.
func WaitOnSemaphore(id uint32) WaitTarget {
	return WaitTarget{Kind: WaitSemaphore, ID: uint64(id)}
}

// WaitOnQueue targets a message queue by identifier.
func WaitOnQueue(id uint32) WaitTarget {
	return WaitTarget{Kind: WaitMessageQueue, ID: uint64(id)}
}

// String returns a string representation of the wait target.
func (t WaitTarget) String() string {
	if t.Kind == WaitTimer {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.ID)
}
