package firmware

// MemorySource is the interface a platform firmware exposes for memory map
// retrieval. Implementations exist for real platform data (firmware_linux,
// firmware_host) and for in-memory fixtures (StaticSource).
//
// The map may change shape between MapSize and MemoryMap: other firmware
// activity can add or remove descriptors in that window. Callers must size
// their buffer with headroom above the reported size.
type MemorySource interface {
	// MapSize returns the number of bytes currently required to hold the
	// encoded memory map.
	MapSize() (int, error)

	// MemoryMap writes the current encoded memory map into buf and
	// returns the number of bytes written.
	MemoryMap(buf []byte) (int, error)
}
