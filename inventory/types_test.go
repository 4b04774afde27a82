package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionString(t *testing.T) {
	r := MemoryRegion{Start: 0x1000, Size: 8192}
	assert.Equal(t, "Usable region: 0x1000 - 0x3000 (8 KiB)", r.String())

	r = MemoryRegion{Start: 0x100000, Size: 0x100000}
	assert.Equal(t, "Usable region: 0x100000 - 0x200000 (1024 KiB)", r.String())
}

func TestRegionContains(t *testing.T) {
	r := MemoryRegion{Start: 0x1000, Size: 0x1000}

	assert.True(t, r.Contains(0x1000))
	assert.True(t, r.Contains(0x1FFF))
	assert.False(t, r.Contains(0x2000), "end is exclusive")
	assert.False(t, r.Contains(0xFFF))
}

func TestRegionForAddr(t *testing.T) {
	regions := []MemoryRegion{
		{Start: 0x1000, Size: 0x1000},
		{Start: 0x10000, Size: 0x10000},
	}

	r := RegionForAddr(0x18000, regions)
	assert.NotNil(t, r)
	assert.Equal(t, PhysAddr(0x10000), r.Start)

	assert.Nil(t, RegionForAddr(0x5000, regions))
}

func TestTotalBytes(t *testing.T) {
	regions := []MemoryRegion{
		{Start: 0x1000, Size: 8192},
		{Start: 0x10000, Size: 65536},
	}

	assert.Equal(t, ByteSize(73728), TotalBytes(regions))
	assert.Equal(t, ByteSize(0), TotalBytes(nil))
}

func TestByteSizeKiB(t *testing.T) {
	assert.Equal(t, uint64(8), ByteSize(8192).KiB())
	assert.Equal(t, uint64(0), ByteSize(1023).KiB())
}
