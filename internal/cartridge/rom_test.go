package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeWindow is a flat 64KB byte window standing in for either the CPU's
// cartridge window or the PPU's pattern-table window in tests.
type fakeWindow struct {
	mem [0x10000]uint8
}

func (w *fakeWindow) SetBytes(addr uint16, data []uint8) {
	copy(w.mem[addr:], data)
}

func (w *fakeWindow) read(addr uint16, length int) []uint8 {
	out := make([]uint8, length)
	copy(out, w.mem[addr:int(addr)+length])
	return out
}

func buildINES(prgBanks, chrBanks, flag6, flag7 uint8, prgFill, chrFill uint8) []uint8 {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	buf.WriteByte(flag6)
	buf.WriteByte(flag7)
	buf.Write(make([]uint8, 8)) // bytes 8-15

	prg := bytes.Repeat([]uint8{prgFill}, int(prgBanks)*16384)
	buf.Write(prg)
	if chrBanks > 0 {
		chr := bytes.Repeat([]uint8{chrFill}, int(chrBanks)*8192)
		buf.Write(chr)
	}
	return buf.Bytes()
}

func TestLoadReaderNROM(t *testing.T) {
	rom, err := LoadReader(bytes.NewReader(buildINES(2, 1, 0, 0, 0xAB, 0xCD)))
	require.NoError(t, err)

	cpu, ppu := &fakeWindow{}, &fakeWindow{}
	rom.Mapper.OnLoad(cpu, ppu)
	require.Equal(t, uint8(0xAB), cpu.mem[0x8000])
	require.Equal(t, uint8(0xAB), cpu.mem[0xFFFF])
	require.Equal(t, uint8(0xCD), ppu.mem[0x0000])
}

func TestLoadReaderNROMMirrorsSingleBank(t *testing.T) {
	rom, err := LoadReader(bytes.NewReader(buildINES(1, 1, 0, 0, 0x42, 0)))
	require.NoError(t, err)
	cpu, ppu := &fakeWindow{}, &fakeWindow{}
	rom.Mapper.OnLoad(cpu, ppu)
	require.Equal(t, uint8(0x42), cpu.mem[0x8000])
	require.Equal(t, uint8(0x42), cpu.mem[0xC000], "16KB PRG mirrors into the upper half")
}

func TestLoadReaderBadMagic(t *testing.T) {
	data := buildINES(1, 1, 0, 0, 0, 0)
	data[0] = 'X'
	_, err := LoadReader(bytes.NewReader(data))
	require.Error(t, err)
}

func TestLoadReaderUnsupportedMapper(t *testing.T) {
	_, err := LoadReader(bytes.NewReader(buildINES(1, 1, 0xF0, 0, 0, 0)))
	require.Error(t, err)
}

func TestLoadReaderZeroPRG(t *testing.T) {
	_, err := LoadReader(bytes.NewReader(buildINES(0, 1, 0, 0, 0, 0)))
	require.Error(t, err)
}

func TestMapperMMC1PRGModeFixLast(t *testing.T) {
	prg := make([]uint8, 4*0x4000)
	for bank := 0; bank < 4; bank++ {
		for i := range prg[bank*0x4000 : (bank+1)*0x4000] {
			prg[bank*0x4000+i] = uint8(bank)
		}
	}
	m := NewMMC1(prg, nil, false)
	cpu, ppu := &fakeWindow{}, &fakeWindow{}
	m.OnLoad(cpu, ppu)
	// Power-on control word fixes the last bank at $C000.
	require.Equal(t, uint8(3), cpu.mem[0xFFFF])

	// Select PRG bank 1 via the 5-write shift sequence at $E000.
	writeShift(m, cpu, ppu, 0xE000, 0x01)
	require.Equal(t, uint8(1), cpu.mem[0x8000])
	require.Equal(t, uint8(3), cpu.mem[0xC000], "last bank stays fixed")
}

func writeShift(m *MMC1, cpu, ppu Window, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		m.WriteReg(cpu, ppu, addr, (value>>i)&1)
	}
}

func TestMapperMMC3PRGModeSwap(t *testing.T) {
	prg := make([]uint8, 8*0x2000)
	for bank := 0; bank < 8; bank++ {
		for i := range prg[bank*0x2000 : (bank+1)*0x2000] {
			prg[bank*0x2000+i] = uint8(bank)
		}
	}
	m := NewMMC3(prg, nil, MirrorHorizontal, false)
	cpu, ppu := &fakeWindow{}, &fakeWindow{}
	m.OnLoad(cpu, ppu)
	require.Equal(t, uint8(7), cpu.mem[0xE000], "E000 fixed to last bank")

	// Select register 6 then write bank data = 2.
	m.WriteReg(cpu, ppu, 0x8000, 0x06)
	m.WriteReg(cpu, ppu, 0x8001, 0x02)
	require.Equal(t, uint8(2), cpu.mem[0x8000])
	require.Equal(t, uint8(6), cpu.mem[0xC000], "second-last bank")
}

func TestMapperMMC3IRQCounter(t *testing.T) {
	prg := make([]uint8, 8*0x2000)
	m := NewMMC3(prg, nil, MirrorHorizontal, false)
	m.irqLatch = 4
	m.irqEnabled = true
	m.irqReload = true

	// The first clock reloads the counter to 4; four more count it down to 0.
	for i := 0; i < 5; i++ {
		require.False(t, m.IRQPending())
		m.ClockScanline()
	}
	require.True(t, m.IRQPending())
	m.ClearIRQ()
	require.False(t, m.IRQPending())
}

func TestMapper474Submapper0(t *testing.T) {
	prg := append(make([]uint8, nrom383Padding), 0xAA)
	prg = append(prg, make([]uint8, 100)...)
	m := NewMapper474(prg, nil, 0, MirrorHorizontal)
	cpu, ppu := &fakeWindow{}, &fakeWindow{}
	m.OnLoad(cpu, ppu)
	require.Equal(t, uint8(0xAA), cpu.mem[nrom383Start])
	require.Equal(t, uint16(nrom383Start), m.Info().EntryAddr)
}

func TestMapper474Submapper3SRAMRoundTrip(t *testing.T) {
	prg := append(make([]uint8, nrom320Padding), 0x11)
	prg = append(prg, make([]uint8, 100)...)
	m := NewMapper474(prg, nil, 3, MirrorVertical)
	cpu, ppu := &fakeWindow{}, &fakeWindow{}
	m.OnLoad(cpu, ppu)

	saved := make([]uint8, nrom320SavePadding+nrom320SaveMax)
	saved[nrom320SavePadding] = 0x55
	m.OnLoadSRAM(cpu, saved)
	require.Equal(t, uint8(0x55), cpu.mem[nrom320SaveStart])

	roundTripped := m.OnSaveSRAM(cpu, cpu.read)
	require.Equal(t, uint8(0x55), roundTripped[nrom320SavePadding])
}
