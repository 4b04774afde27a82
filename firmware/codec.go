package firmware

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// DescriptorSize is the wire size of one encoded descriptor: type (u32),
// reserved padding (u32), physical start (u64), page count (u64), all
// little-endian.
const DescriptorSize = 24

var (
	// ErrBufferFull is returned when an encode target cannot hold the
	// full descriptor sequence.
	ErrBufferFull = errors.New("buffer too small for memory map")

	// ErrMalformedMap is returned when a fetched map is not a whole
	// number of descriptors.
	ErrMalformedMap = errors.New("malformed memory map")
)

// EncodeDescriptors writes descs into buf in wire layout and returns the
// number of bytes written.
func EncodeDescriptors(buf []byte, descs []MemoryDescriptor) (int, error) {
	need := len(descs) * DescriptorSize
	if len(buf) < need {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferFull, need, len(buf))
	}
	off := 0
	for _, d := range descs {
		binary.LittleEndian.PutUint32(buf[off:], uint32(d.Type))
		binary.LittleEndian.PutUint32(buf[off+4:], 0)
		binary.LittleEndian.PutUint64(buf[off+8:], d.PhysStart)
		binary.LittleEndian.PutUint64(buf[off+16:], d.PageCount)
		off += DescriptorSize
	}
	return off, nil
}

// ParseDescriptors decodes every descriptor in buf, preserving order.
func ParseDescriptors(buf []byte) ([]MemoryDescriptor, error) {
	if len(buf)%DescriptorSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole descriptor count", ErrMalformedMap, len(buf))
	}
	descs := make([]MemoryDescriptor, 0, len(buf)/DescriptorSize)
	for off := 0; off < len(buf); off += DescriptorSize {
		descs = append(descs, MemoryDescriptor{
			Type:      MemoryType(binary.LittleEndian.Uint32(buf[off:])),
			PhysStart: binary.LittleEndian.Uint64(buf[off+8:]),
			PageCount: binary.LittleEndian.Uint64(buf[off+16:]),
		})
	}
	return descs, nil
}
