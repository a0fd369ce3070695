package cartridge

// MMC3 is iNES mapper 4: eight bank-select registers R0-R7 reached through
// paired even/odd addresses in $8000-$FFFF, plus a scanline IRQ counter
// clocked by the PPU's A12 toggling. Bank layout grounded on
// andrewthecodertx/go-nes-emulator's Mapper4 and on the register-bit layout
// documented in _examples/original_source/lib/src/nes_mapper_mmc3.cpp.
type MMC3 struct {
	prg []uint8
	chr []uint8

	prgBanks uint8 // 8KB PRG banks
	chrIsRAM bool

	bankSelect uint8
	regs       [8]uint8
	mirroring  Mirroring

	hasSRAM bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

// NewMMC3 builds an MMC3 mapper. mirroring is the header's initial mirroring
// (the mapper's own mirroring register overrides it after the first write).
func NewMMC3(prg, chr []uint8, mirroring Mirroring, hasSRAM bool) *MMC3 {
	m := &MMC3{
		prg:       prg,
		prgBanks:  uint8(len(prg) / 0x2000),
		mirroring: mirroring,
		hasSRAM:   hasSRAM,
	}
	if len(chr) == 0 {
		m.chr = make([]uint8, 0x2000)
		m.chrIsRAM = true
	} else {
		m.chr = chr
	}
	return m
}

func (m *MMC3) OnLoad(cpu, ppu Window) {
	last := m.bank8(m.prgBanks - 1)
	cpu.SetBytes(0xE000, m.prg[last:last+0x2000])
	m.syncPRG(cpu)
	m.syncCHR(ppu)
}

func (m *MMC3) OnLoadSRAM(cpu Window, data []uint8) {
	if m.hasSRAM && len(data) > 0 {
		cpu.SetBytes(0x6000, data[:min(len(data), 0x2000)])
	}
}

func (m *MMC3) OnSaveSRAM(cpu Window, read func(addr uint16, length int) []uint8) []uint8 {
	if !m.hasSRAM {
		return nil
	}
	return read(0x6000, 0x2000)
}

func (m *MMC3) WriteReg(cpu, ppu Window, addr uint16, value uint8) {
	odd := addr&1 != 0
	switch {
	case addr < 0xA000:
		if odd {
			m.writeBankData(cpu, ppu, value)
		} else {
			m.bankSelect = value
			m.syncPRG(cpu)
			m.syncCHR(ppu)
		}
	case addr < 0xC000:
		if odd {
			// PRG-RAM protect: not modeled, SRAM is always writable here.
		} else {
			if value&1 == 0 {
				m.mirroring = MirrorVertical
			} else {
				m.mirroring = MirrorHorizontal
			}
		}
	case addr < 0xE000:
		if odd {
			m.irqReload = true
		} else {
			m.irqLatch = value
		}
	default:
		if odd {
			m.irqEnabled = true
		} else {
			m.irqEnabled = false
			m.irqPending = false
		}
	}
}

func (m *MMC3) writeBankData(cpu, ppu Window, value uint8) {
	m.regs[m.bankSelect&0x07] = value
	m.syncPRG(cpu)
	m.syncCHR(ppu)
}

func (m *MMC3) bank8(bank uint8) int { return int(bank) * 0x2000 }

func (m *MMC3) syncPRG(cpu Window) {
	swappable := m.bank8(m.regs[6] % m.prgBanks)
	secondLast := m.bank8(m.prgBanks - 2)

	if m.bankSelect&0x40 == 0 {
		cpu.SetBytes(0x8000, m.prg[swappable:swappable+0x2000])
		cpu.SetBytes(0xC000, m.prg[secondLast:secondLast+0x2000])
	} else {
		cpu.SetBytes(0xC000, m.prg[swappable:swappable+0x2000])
		cpu.SetBytes(0x8000, m.prg[secondLast:secondLast+0x2000])
	}
	r7 := m.bank8(m.regs[7] % m.prgBanks)
	cpu.SetBytes(0xA000, m.prg[r7:r7+0x2000])
}

func (m *MMC3) syncCHR(ppu Window) {
	inverted := m.bankSelect&0x80 != 0

	two := [2]uint16{0x0000, 0x0800}
	one := [4]uint16{0x1000, 0x1400, 0x1800, 0x1C00}
	if inverted {
		two = [2]uint16{0x1000, 0x1800}
		one = [4]uint16{0x0000, 0x0400, 0x0800, 0x0C00}
	}

	m.chrSet(ppu, two[0], m.regs[0]&^1, 0x800)
	m.chrSet(ppu, two[1], m.regs[1]&^1, 0x800)
	for i := 0; i < 4; i++ {
		m.chrSet(ppu, one[i], m.regs[2+i], 0x400)
	}
}

func (m *MMC3) chrSet(ppu Window, addr uint16, bank uint8, size int) {
	off := int(bank) * size
	if off+size > len(m.chr) {
		return
	}
	ppu.SetBytes(addr, m.chr[off:off+size])
}

// ClockScanline advances the IRQ counter one step. The PPU calls this once
// per scanline at the dot where real MMC3 hardware observes a PPU A12 rising
// edge, approximated here as the start of sprite-pattern fetches (dot 260)
// on scanlines where background or sprite rendering is enabled.
func (m *MMC3) ClockScanline() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

// IRQPending reports whether the mapper has an unacknowledged IRQ request.
func (m *MMC3) IRQPending() bool { return m.irqPending }

// ClearIRQ acknowledges the pending IRQ.
func (m *MMC3) ClearIRQ() { m.irqPending = false }

func (m *MMC3) Info() Info {
	info := Info{
		HasRegisters:  true,
		RegisterStart: 0x8000,
		RegisterEnd:   0xFFFF,
		Mirroring:     m.mirroring,
	}
	if m.hasSRAM {
		info.SRAMAddr = 0x6000
		info.SRAMSize = 0x2000
	}
	return info
}
