package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type flatVRAM struct {
	mem [0x4000]uint8
}

func (v *flatVRAM) Read(address uint16) uint8  { return v.mem[address&0x3FFF] }
func (v *flatVRAM) Write(address uint16, value uint8) { v.mem[address&0x3FFF] = value }

type nmiSink struct{ requested int }

func (n *nmiSink) RequestNMI() { n.requested++ }

func warmedPPU() (*PPU, *flatVRAM) {
	p := New()
	p.PowerOn()
	v := &flatVRAM{}
	p.SetVRAM(v)
	p.dots = (warmUpCPUCycles + 1) * 3
	return p, v
}

func TestPpustatusReadClearsVBlankAndWriteLatch(t *testing.T) {
	p, _ := warmedPPU()
	p.status |= 0x80
	p.w = true
	status := p.ReadRegister(0x2002)
	require.NotZero(t, status&0x80)
	require.Zero(t, p.status&0x80)
	require.False(t, p.w)
}

func TestPpuctrlIgnoredBeforeWarmUp(t *testing.T) {
	p := New()
	p.PowerOn()
	p.WriteRegister(0x2000, 0x80)
	require.Zero(t, p.ctrl)
}

func TestPpuctrlAppliedAfterWarmUp(t *testing.T) {
	p, _ := warmedPPU()
	p.WriteRegister(0x2000, 0x80)
	require.EqualValues(t, 0x80, p.ctrl)
}

func TestOamDataWriteAutoIncrements(t *testing.T) {
	p, _ := warmedPPU()
	p.WriteRegister(0x2003, 0x05)
	p.WriteRegister(0x2004, 0xAB)
	require.EqualValues(t, 0x06, p.oamAddr)
	require.EqualValues(t, 0xAB, p.oam[5])
}

func TestPpuScrollTwoWriteSequence(t *testing.T) {
	p, _ := warmedPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	require.EqualValues(t, 15, p.t&0x1F)
	require.EqualValues(t, 5, p.x)
	p.WriteRegister(0x2005, 0x5E) // coarse Y = 11, fine Y = 6
	require.EqualValues(t, 11, (p.t>>5)&0x1F)
	require.EqualValues(t, 6, (p.t>>12)&0x07)
}

func TestPpuAddrTwoWriteSequenceLatchesV(t *testing.T) {
	p, _ := warmedPPU()
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	require.EqualValues(t, 0x2108, p.v)
}

func TestPpuDataWriteAndBufferedRead(t *testing.T) {
	p, v := warmedPPU()
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x10)
	require.EqualValues(t, 0x0010, p.v)
	v.mem[0x0010] = 0x99

	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x10)
	first := p.ReadRegister(0x2007) // returns stale buffer, not $99 yet
	require.NotEqualValues(t, 0x99, first)
	second := p.ReadRegister(0x2007) // now reading $0011, but buffer holds the refill from $0010
	require.EqualValues(t, 0x99, second)
}

func TestPaletteReadBypassesBuffer(t *testing.T) {
	p, v := warmedPPU()
	v.mem[0x3F05] = 0x16
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x05)
	require.EqualValues(t, 0x16, p.ReadRegister(0x2007))
}

func TestVBlankSetAndNMIAtScanline241Dot1(t *testing.T) {
	p := New()
	p.PowerOn()
	p.SetVRAM(&flatVRAM{})
	nmi := &nmiSink{}
	p.SetNMIRequester(nmi)
	p.ctrl = 0x80 // bypass the warm-up gate, set directly

	p.StepTo(uint64(241*dotsPerScanline + 1))
	require.NotZero(t, p.status&0x80)
	require.Equal(t, 1, nmi.requested)
}

func TestPreRenderClearsStatusFlagsAtDot1(t *testing.T) {
	p := New()
	p.PowerOn()
	p.SetVRAM(&flatVRAM{})
	p.status = 0x80 | 0x40 | 0x20
	p.StepTo(uint64(261*dotsPerScanline + 2))
	require.Zero(t, p.status&(0x80|0x40|0x20))
}

func TestSpriteEvaluationFillsSecondaryOAM(t *testing.T) {
	p, _ := warmedPPU()
	p.oam[0], p.oam[1], p.oam[2], p.oam[3] = 9, 0x01, 0x00, 20 // sprite 0 visible on scanline 10
	p.scanline = 10
	p.evaluateSprites()
	require.Equal(t, 1, p.spriteCount)
	require.EqualValues(t, 0, p.spriteIndex[0])
}

func TestSpriteOverflowSetAfterNinthMatch(t *testing.T) {
	p, _ := warmedPPU()
	for i := 0; i < 9; i++ {
		base := i * 4
		p.oam[base] = 9 // all visible on scanline 10
		p.oam[base+3] = uint8(i * 8)
	}
	p.scanline = 10
	p.evaluateSprites()
	require.Equal(t, 8, p.spriteCount)
	require.NotZero(t, p.status&0x20)
}

func TestOamReadDuringEvalWindowReturnsFF(t *testing.T) {
	p, _ := warmedPPU()
	p.oam[0] = 0x42
	p.scanline = 5
	p.dot = 100
	require.EqualValues(t, 0xFF, p.ReadRegister(0x2004))
}

func TestProtectModeSuppressesStatusSideEffects(t *testing.T) {
	p, _ := warmedPPU()
	p.SetProtectMode(true)
	p.status |= 0x80
	p.w = true
	status := p.ReadRegister(0x2002)
	require.NotZero(t, status&0x80)
	require.NotZero(t, p.status&0x80, "protect mode must not clear VBlank")
	require.True(t, p.w, "protect mode must not clear the write latch")
}
