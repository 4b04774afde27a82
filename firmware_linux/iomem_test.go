//go:build linux

package firmware_linux

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kcore/firmware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIomem = `00000000-00000fff : Reserved
00001000-0009ffff : System RAM
000a0000-000fffff : Reserved
  000f0000-000fffff : System ROM
00100000-7fedffff : System RAM
  01000000-01a00ac6 : Kernel code
  01a00ac7-01ffffff : Kernel data
7fee0000-7fefffff : ACPI Tables
100000000-17fffffff : System RAM
`

func TestParseIomem(t *testing.T) {
	descs, err := parseIomem(strings.NewReader(sampleIomem))
	require.NoError(t, err)
	require.Len(t, descs, 6, "nested entries must be skipped")

	assert.Equal(t, firmware.MemoryReserved, descs[0].Type)

	assert.Equal(t, firmware.MemoryConventional, descs[1].Type)
	assert.Equal(t, uint64(0x1000), descs[1].PhysStart)
	assert.Equal(t, uint64(0x9F), descs[1].PageCount, "iomem end addresses are inclusive")

	assert.Equal(t, firmware.MemoryConventional, descs[3].Type)
	assert.Equal(t, uint64(0x100000), descs[3].PhysStart)
	assert.Equal(t, uint64(0x7FDE0), descs[3].PageCount)

	// Non-RAM names all map to reserved.
	assert.Equal(t, firmware.MemoryReserved, descs[4].Type)

	assert.Equal(t, firmware.MemoryConventional, descs[5].Type)
	assert.Equal(t, uint64(0x100000000), descs[5].PhysStart)
	assert.Equal(t, uint64(0x80000), descs[5].PageCount)
}

func TestParseIomemSkipsGarbageLines(t *testing.T) {
	descs, err := parseIomem(strings.NewReader("not an iomem line\nzz-qq : System RAM\n\n"))
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestIomemSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iomem")
	require.NoError(t, os.WriteFile(path, []byte(sampleIomem), 0o644))

	src := NewWithPath(path)

	size, err := src.MapSize()
	require.NoError(t, err)
	assert.Equal(t, 6*firmware.DescriptorSize, size)

	buf := make([]byte, size+8*firmware.DescriptorSize)
	n, err := src.MemoryMap(buf)
	require.NoError(t, err)

	descs, err := firmware.ParseDescriptors(buf[:n])
	require.NoError(t, err)
	assert.Len(t, descs, 6)
}

func TestSysinfoDescriptors(t *testing.T) {
	descs, err := sysinfoDescriptors()
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, firmware.MemoryReserved, descs[0].Type)
	assert.Equal(t, firmware.MemoryConventional, descs[1].Type)
	assert.NotZero(t, descs[1].PageCount)
}
