package inventory

import (
	"errors"
	"fmt"
	"sync"

	"kcore/firmware"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

const (
	// DefaultCapacity is the number of region slots an inventory holds
	// unless configured otherwise.
	DefaultCapacity = 32

	// DefaultBufferSize is the default working-buffer size for the raw
	// memory map, 16 KiB.
	DefaultBufferSize = 4 * firmware.PageSize

	// HeadroomDescriptors is the number of extra descriptor-equivalents
	// the working buffer must hold above the reported map size, to
	// tolerate the map growing between the size probe and the fetch.
	HeadroomDescriptors = 8
)

var (
	// ErrBufferTooSmall is returned when the working buffer cannot hold
	// the reported map size plus headroom. Fatal at boot: there is no
	// allocator to grow the buffer with.
	ErrBufferTooSmall = errors.New("memory map buffer too small")

	// ErrFetchFailed is returned when the firmware source fails to
	// produce the memory map.
	ErrFetchFailed = errors.New("failed to retrieve memory map")
)

// Inventory holds the usable memory regions found by the most recent
// discovery pass. Storage is fixed-capacity: once full, collection stops
// and the result is marked truncated.
//
// Discovery is a single-writer operation; the mutex serializes a later
// re-discovery (e.g. after hot-plug) against readers.
type Inventory struct {
	mu        sync.Mutex
	log       *logger.Logger
	buf       []byte
	regions   []MemoryRegion
	count     int
	truncated bool
}

// New creates an empty inventory with default capacity and buffer size.
func New() *Inventory {
	return NewWithSize(DefaultCapacity, DefaultBufferSize)
}

// NewWithSize creates an empty inventory holding up to capacity regions,
// with a working buffer of bufferSize bytes for the raw map.
func NewWithSize(capacity, bufferSize int) *Inventory {
	return &Inventory{
		log:     logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "meminv")),
		buf:     make([]byte, bufferSize),
		regions: make([]MemoryRegion, capacity),
	}
}

// Capacity returns the number of region slots.
func (inv *Inventory) Capacity() int {
	return len(inv.regions)
}

// Discover queries src for the current memory map and replaces the stored
// snapshot with every usable region found, in firmware enumeration order.
// On error the prior snapshot is left untouched.
func (inv *Inventory) Discover(src firmware.MemorySource) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	size, err := src.MapSize()
	if err != nil {
		return fmt.Errorf("%w: size probe: %v", ErrFetchFailed, err)
	}

	// The map may grow between the size probe and the fetch, so the
	// buffer must hold the reported size plus headroom.
	needed := size + HeadroomDescriptors*firmware.DescriptorSize
	if len(inv.buf) < needed {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, needed, len(inv.buf))
	}

	n, err := src.MemoryMap(inv.buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	descs, err := firmware.ParseDescriptors(inv.buf[:n])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	// No failure is possible past this point; replace the snapshot.
	inv.count = 0
	inv.truncated = false
	for _, d := range descs {
		if !d.Type.IsUsable() {
			inv.log.Debugln("Skipping", d.Type.String(), "region at", PhysAddr(d.PhysStart).String())
			continue
		}
		if inv.count == len(inv.regions) {
			inv.truncated = true
			inv.log.Warn("Region table full, remaining usable regions dropped")
			break
		}
		inv.regions[inv.count] = regionFromDescriptor(d)
		inv.count++
	}

	inv.log.Infoln("Discovery complete:", inv.count, "usable regions,",
		TotalBytes(inv.regions[:inv.count]).KiB(), "KiB total")

	return nil
}

// Snapshot returns a copy of the regions found by the most recent
// discovery pass, in discovery order. It is empty before the first pass.
func (inv *Inventory) Snapshot() []MemoryRegion {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	out := make([]MemoryRegion, inv.count)
	copy(out, inv.regions[:inv.count])
	return out
}

// Len returns the number of valid regions in the current snapshot.
func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.count
}

// Truncated reports whether the most recent discovery pass ran out of
// region slots before exhausting the usable descriptors.
func (inv *Inventory) Truncated() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.truncated
}
