package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gones/internal/cartridge"
)

func TestPpuBusPatternTableWindow(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorHorizontal)
	b.SetBytes(0x0000, []uint8{0x11, 0x22, 0x33})
	require.Equal(t, uint8(0x11), b.Read(0x0000))
	require.Equal(t, uint8(0x33), b.Read(0x0002))
}

func TestPpuBusHorizontalMirroring(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorHorizontal)
	b.Write(0x2000, 0xAA)
	require.Equal(t, uint8(0xAA), b.Read(0x2400), "top mirrors share the first bank")
	b.Write(0x2800, 0xBB)
	require.Equal(t, uint8(0xBB), b.Read(0x2C00), "bottom mirrors share the second bank")
	require.NotEqual(t, b.Read(0x2000), b.Read(0x2800))
}

func TestPpuBusVerticalMirroring(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorVertical)
	b.Write(0x2000, 0xAA)
	require.Equal(t, uint8(0xAA), b.Read(0x2800))
	b.Write(0x2400, 0xBB)
	require.Equal(t, uint8(0xBB), b.Read(0x2C00))
}

func TestPpuBusNametableMirrorRegion(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorVertical)
	b.Write(0x2000, 0x77)
	require.Equal(t, uint8(0x77), b.Read(0x3000), "$3000-$3EFF mirrors $2000-$2EFF")
}

func TestPpuBusPaletteTiedPairMirror(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorHorizontal)
	b.Write(0x3F10, 0x16)
	require.Equal(t, uint8(0x16), b.Read(0x3F00))
	b.Write(0x3F00, 0x2D)
	require.Equal(t, uint8(0x2D), b.Read(0x3F10))
}

func TestPpuBusPaletteMirrorRegion(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorHorizontal)
	b.Write(0x3F05, 0x09)
	require.Equal(t, uint8(0x09), b.Read(0x3F25))
}

func TestPpuBusSetMirroringChangesLiveMapping(t *testing.T) {
	b := NewPpuBus(cartridge.MirrorHorizontal)
	b.SetMirroring(cartridge.MirrorSingleUpper)
	b.Write(0x2000, 0x01)
	require.Equal(t, uint8(0x01), b.Read(0x2400), "single-screen-upper maps every nametable to bank 1")
	require.Equal(t, uint8(0x01), b.Read(0x2C00))
}
