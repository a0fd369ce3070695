package cartridge

// Mapper474 implements the three Akerasoft NROM-variant submappers: NROM-383,
// NROM-368 and NROM-320 (with an optional battery-backed 8KB SRAM variant).
// PRG is copied once into the CPU's cartridge window at a submapper-specific
// start address, skipping a small header pad baked into the ROM image.
// Grounded on
// _examples/original_source/lib/src/mappers/nes_mapper_474.cpp, which this
// reproduces byte-for-byte in layout (start addresses, pad sizes, and the
// save-variant's 32-byte SRAM offset).
type Mapper474 struct {
	prg []uint8
	chr []uint8

	submapper uint8
	mirroring Mirroring
}

const (
	nrom383Start   = 0x4020
	nrom383Padding = 0x20
	nrom368Start   = 0x4800
	nrom368Padding = 0x800
	nrom320Start   = 0x6000
	nrom320Padding = 0x2000

	nrom320SaveStart   = 0x4020
	nrom320SavePadding = 0x20
	nrom320SaveMax     = 0x1FE0
	nrom320SaveSize    = 0x2000
)

// NewMapper474 builds the mapper for the given NES 2.0 submapper number
// (0..3) as declared in the ROM header.
func NewMapper474(prg, chr []uint8, submapper uint8, mirroring Mirroring) *Mapper474 {
	return &Mapper474{prg: prg, chr: chr, submapper: submapper, mirroring: mirroring}
}

func (m *Mapper474) hasSRAM() bool { return m.submapper == 3 }

func (m *Mapper474) OnLoad(cpu, ppu Window) {
	switch m.submapper {
	case 0:
		cpu.SetBytes(nrom383Start, m.prg[nrom383Padding:])
	case 1:
		cpu.SetBytes(nrom368Start, m.prg[nrom368Padding:])
	case 2, 3:
		cpu.SetBytes(nrom320Start, m.prg[nrom320Padding:])
	}
	ppu.SetBytes(0x0000, m.chr)
}

func (m *Mapper474) OnLoadSRAM(cpu Window, data []uint8) {
	if !m.hasSRAM() || len(data) <= nrom320SavePadding {
		return
	}
	n := min(len(data)-nrom320SavePadding, nrom320SaveMax)
	cpu.SetBytes(nrom320SaveStart, data[nrom320SavePadding:nrom320SavePadding+n])
}

func (m *Mapper474) OnSaveSRAM(cpu Window, read func(addr uint16, length int) []uint8) []uint8 {
	if !m.hasSRAM() {
		return nil
	}
	out := make([]uint8, nrom320SavePadding+nrom320SaveMax)
	copy(out[nrom320SavePadding:], read(nrom320SaveStart, nrom320SaveMax))
	return out
}

func (m *Mapper474) WriteReg(cpu, ppu Window, addr uint16, value uint8) {}

func (m *Mapper474) Info() Info {
	info := Info{Mirroring: m.mirroring}
	switch m.submapper {
	case 0:
		info.EntryAddr = nrom383Start
	case 1:
		info.EntryAddr = nrom368Start
	case 2:
		info.EntryAddr = nrom320Start
	case 3:
		info.EntryAddr = nrom320Start
		info.SRAMAddr = nrom320SaveStart
		info.SRAMSize = nrom320SaveSize
	}
	return info
}
