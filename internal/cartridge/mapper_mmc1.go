package cartridge

// MMC1 is iNES mapper 1: a serial 5-bit shift register feeds one of four
// internal registers (control, CHR bank 0, CHR bank 1, PRG bank) selected by
// address bits 13-14 of the write. Grounded on the shift-register and
// bank-mode semantics of andrewthecodertx/go-nes-emulator's Mapper1, adapted
// to the memory-mapped-at-bank-switch Window style used throughout this
// package.
type MMC1 struct {
	prg []uint8
	chr []uint8

	prgBanks uint8 // 16KB PRG banks
	chrIsRAM bool

	shift      uint8
	shiftCount uint8

	control  uint8 // mirroring(1:0), prgMode(3:2), chrMode(4)
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	hasSRAM bool
}

// NewMMC1 builds an MMC1 mapper. hasSRAM reports whether the cartridge's
// header declared battery-backed PRG-RAM.
func NewMMC1(prg, chr []uint8, hasSRAM bool) *MMC1 {
	m := &MMC1{
		prg:      prg,
		prgBanks: uint8(len(prg) / 0x4000),
		shift:    0x10,
		control:  0x0C, // power-on: PRG mode 3 (fix last bank at $C000)
		hasSRAM:  hasSRAM,
	}
	if len(chr) == 0 {
		m.chr = make([]uint8, 0x2000)
		m.chrIsRAM = true
	} else {
		m.chr = chr
	}
	return m
}

func (m *MMC1) mirroring() Mirroring {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleLower
	case 1:
		return MirrorSingleUpper
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func (m *MMC1) OnLoad(cpu, ppu Window) {
	m.syncPRG(cpu)
	m.syncCHR(ppu)
}

func (m *MMC1) OnLoadSRAM(cpu Window, data []uint8) {
	if m.hasSRAM && len(data) > 0 {
		cpu.SetBytes(0x6000, data[:min(len(data), 0x2000)])
	}
}

func (m *MMC1) OnSaveSRAM(cpu Window, read func(addr uint16, length int) []uint8) []uint8 {
	if !m.hasSRAM {
		return nil
	}
	return read(0x6000, 0x2000)
}

func (m *MMC1) WriteReg(cpu, ppu Window, addr uint16, value uint8) {
	if value&0x80 != 0 {
		m.shift = 0x10
		m.shiftCount = 0
		m.control |= 0x0C
		m.syncPRG(cpu)
		return
	}

	m.shift = (m.shift >> 1) | ((value & 1) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	result := m.shift
	m.shift = 0x10
	m.shiftCount = 0

	switch {
	case addr < 0xA000:
		m.control = result
	case addr < 0xC000:
		m.chrBank0 = result
	case addr < 0xE000:
		m.chrBank1 = result
	default:
		m.prgBank = result & 0x0F
	}
	m.syncPRG(cpu)
	m.syncCHR(ppu)
}

func (m *MMC1) syncPRG(cpu Window) {
	prgMode := (m.control >> 2) & 0x03
	switch prgMode {
	case 0, 1:
		bank := (m.prgBank &^ 1)
		lo := m.bankOffset(bank)
		if lo+0x8000 <= len(m.prg) {
			cpu.SetBytes(0x8000, m.prg[lo:lo+0x8000])
		}
	case 2:
		cpu.SetBytes(0x8000, m.prg[0:0x4000])
		hi := m.bankOffset(m.prgBank)
		cpu.SetBytes(0xC000, m.prg[hi:hi+0x4000])
	default: // 3: fix last bank at $C000
		lo := m.bankOffset(m.prgBank)
		cpu.SetBytes(0x8000, m.prg[lo:lo+0x4000])
		last := m.bankOffset(m.prgBanks - 1)
		cpu.SetBytes(0xC000, m.prg[last:last+0x4000])
	}
}

func (m *MMC1) bankOffset(bank uint8) int {
	return int(bank) * 0x4000
}

func (m *MMC1) syncCHR(ppu Window) {
	if (m.control>>4)&1 == 0 {
		// 8KB mode: chrBank0's low bits select an 8KB bank.
		bank := int(m.chrBank0 &^ 1)
		off := bank * 0x1000
		if off+0x2000 <= len(m.chr) {
			ppu.SetBytes(0x0000, m.chr[off:off+0x2000])
		}
		return
	}
	off0 := int(m.chrBank0) * 0x1000
	if off0+0x1000 <= len(m.chr) {
		ppu.SetBytes(0x0000, m.chr[off0:off0+0x1000])
	}
	off1 := int(m.chrBank1) * 0x1000
	if off1+0x1000 <= len(m.chr) {
		ppu.SetBytes(0x1000, m.chr[off1:off1+0x1000])
	}
}

func (m *MMC1) Info() Info {
	info := Info{
		HasRegisters:  true,
		RegisterStart: 0x8000,
		RegisterEnd:   0xFFFF,
		Mirroring:     m.mirroring(),
	}
	if m.hasSRAM {
		info.SRAMAddr = 0x6000
		info.SRAMSize = 0x2000
	}
	return info
}
