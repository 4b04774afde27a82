package firmware

// StaticSource is a MemorySource backed by an in-memory descriptor list.
// It serves as the demo source for the boot shell and as the test double
// for inventory discovery.
type StaticSource struct {
	// Descriptors is the map reported by both MapSize and MemoryMap.
	Descriptors []MemoryDescriptor

	// Late is appended to the map on fetch only, simulating a map that
	// grew between the size probe and the fetch.
	Late []MemoryDescriptor

	// FetchErr, if set, makes MemoryMap fail with this error.
	FetchErr error
}

// NewStaticSource creates a StaticSource over the given descriptors.
func NewStaticSource(descs ...MemoryDescriptor) *StaticSource {
	return &StaticSource{Descriptors: descs}
}

// MapSize returns the encoded size of the descriptor list, excluding any
// late-arriving entries.
func (s *StaticSource) MapSize() (int, error) {
	return len(s.Descriptors) * DescriptorSize, nil
}

// MemoryMap encodes the descriptor list, plus any late entries, into buf.
func (s *StaticSource) MemoryMap(buf []byte) (int, error) {
	if s.FetchErr != nil {
		return 0, s.FetchErr
	}
	descs := s.Descriptors
	if len(s.Late) > 0 {
		descs = append(append([]MemoryDescriptor(nil), descs...), s.Late...)
	}
	return EncodeDescriptors(buf, descs)
}
