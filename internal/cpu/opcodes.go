package cpu

type opcodeInfo struct {
	mode   AddrMode
	cycles uint8
	exec   func(c *CPU, mode AddrMode) bool // returns true to add one conditional page-cross cycle
}

var opcodeTable [256]opcodeInfo

// --- load/store ---

func (c *CPU) ld(mode AddrMode, reg *uint8) bool {
	addr, crossed := c.operandAddr(mode)
	*reg = c.bus.Read(addr)
	c.setZN(*reg)
	return crossed
}

func (c *CPU) st(mode AddrMode, value uint8) bool {
	addr, _ := c.operandAddr(mode)
	c.bus.Write(addr, value)
	return false
}

// --- ALU ---

func (c *CPU) doADC(operand uint8) {
	carry := uint16(0)
	if c.flag(FlagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(operand) + carry
	result := uint8(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^operand)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) adc(mode AddrMode) bool {
	addr, crossed := c.operandAddr(mode)
	c.doADC(c.bus.Read(addr))
	return crossed
}

func (c *CPU) sbc(mode AddrMode) bool {
	addr, crossed := c.operandAddr(mode)
	c.doADC(^c.bus.Read(addr))
	return crossed
}

func (c *CPU) and(mode AddrMode) bool {
	addr, crossed := c.operandAddr(mode)
	c.A &= c.bus.Read(addr)
	c.setZN(c.A)
	return crossed
}

func (c *CPU) ora(mode AddrMode) bool {
	addr, crossed := c.operandAddr(mode)
	c.A |= c.bus.Read(addr)
	c.setZN(c.A)
	return crossed
}

func (c *CPU) eor(mode AddrMode) bool {
	addr, crossed := c.operandAddr(mode)
	c.A ^= c.bus.Read(addr)
	c.setZN(c.A)
	return crossed
}

func (c *CPU) compare(mode AddrMode, reg uint8) bool {
	addr, crossed := c.operandAddr(mode)
	m := c.bus.Read(addr)
	c.setFlag(FlagC, reg >= m)
	c.setZN(reg - m)
	return crossed
}

func (c *CPU) bit(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	m := c.bus.Read(addr)
	c.setFlag(FlagZ, c.A&m == 0)
	c.setFlag(FlagV, m&0x40 != 0)
	c.setFlag(FlagN, m&0x80 != 0)
	return false
}

// --- read-modify-write ---

func (c *CPU) asl(mode AddrMode) bool {
	if mode == modeAccumulator {
		c.setFlag(FlagC, c.A&0x80 != 0)
		c.A <<= 1
		c.setZN(c.A)
		return false
	}
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.bus.Write(addr, v)
	c.setZN(v)
	return false
}

func (c *CPU) lsr(mode AddrMode) bool {
	if mode == modeAccumulator {
		c.setFlag(FlagC, c.A&0x01 != 0)
		c.A >>= 1
		c.setZN(c.A)
		return false
	}
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.bus.Write(addr, v)
	c.setZN(v)
	return false
}

func (c *CPU) rol(mode AddrMode) bool {
	oldC := uint8(0)
	if c.flag(FlagC) {
		oldC = 1
	}
	if mode == modeAccumulator {
		c.setFlag(FlagC, c.A&0x80 != 0)
		c.A = (c.A << 1) | oldC
		c.setZN(c.A)
		return false
	}
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | oldC
	c.bus.Write(addr, v)
	c.setZN(v)
	return false
}

func (c *CPU) ror(mode AddrMode) bool {
	oldC := uint8(0)
	if c.flag(FlagC) {
		oldC = 0x80
	}
	if mode == modeAccumulator {
		c.setFlag(FlagC, c.A&0x01 != 0)
		c.A = (c.A >> 1) | oldC
		c.setZN(c.A)
		return false
	}
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | oldC
	c.bus.Write(addr, v)
	c.setZN(v)
	return false
}

func (c *CPU) inc(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.setZN(v)
	return false
}

func (c *CPU) dec(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.setZN(v)
	return false
}

// --- branches ---

func (c *CPU) branch(cond bool) bool {
	offset := int8(c.fetch())
	if !cond {
		return false
	}
	old := c.PC
	target := uint16(int32(old) + int32(offset))
	c.PC = target
	extra := uint8(1)
	if old&0xFF00 != target&0xFF00 {
		extra = 2
	}
	c.addCPUCycles(extra)
	return false
}

// --- jumps / subroutines / interrupts ---

func (c *CPU) jmp(mode AddrMode) bool {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	ptr := lo | hi<<8
	if mode == modeAbsolute {
		c.PC = ptr
		return false
	}
	var lo2, hi2 uint16
	if ptr&0x00FF == 0x00FF {
		lo2 = uint16(c.bus.Read(ptr))
		hi2 = uint16(c.bus.Read(ptr & 0xFF00)) // the indirect-JMP page-wrap bug
	} else {
		lo2 = uint16(c.bus.Read(ptr))
		hi2 = uint16(c.bus.Read(ptr + 1))
	}
	c.PC = lo2 | hi2<<8
	return false
}

func (c *CPU) jsr(AddrMode) bool {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	target := lo | hi<<8
	c.pushWord(c.PC - 1)
	c.PC = target
	return false
}

func (c *CPU) rts(AddrMode) bool {
	c.PC = c.popWord() + 1
	return false
}

func (c *CPU) rti(AddrMode) bool {
	p := c.pop()
	c.P = (p &^ FlagB) | FlagU
	c.PC = c.popWord()
	return false
}

func (c *CPU) brk(AddrMode) bool {
	c.PC++ // BRK's second byte is a padding byte, skipped
	c.pushWord(c.PC)
	c.push(c.P | FlagB | FlagU)
	c.P |= FlagI
	c.PC = c.readWord(irqVector)
	c.stopRequested = true
	return false
}

// --- stack / registers / flags ---

func (c *CPU) pha(AddrMode) bool { c.push(c.A); return false }
func (c *CPU) pla(AddrMode) bool { c.A = c.pop(); c.setZN(c.A); return false }
func (c *CPU) php(AddrMode) bool { c.push(c.P | FlagB | FlagU); return false }
func (c *CPU) plp(AddrMode) bool { p := c.pop(); c.P = (p &^ FlagB) | FlagU; return false }

func (c *CPU) tax(AddrMode) bool { c.X = c.A; c.setZN(c.X); return false }
func (c *CPU) tay(AddrMode) bool { c.Y = c.A; c.setZN(c.Y); return false }
func (c *CPU) txa(AddrMode) bool { c.A = c.X; c.setZN(c.A); return false }
func (c *CPU) tya(AddrMode) bool { c.A = c.Y; c.setZN(c.A); return false }
func (c *CPU) tsx(AddrMode) bool { c.X = c.S; c.setZN(c.X); return false }
func (c *CPU) txs(AddrMode) bool { c.S = c.X; return false }

func (c *CPU) inx(AddrMode) bool { c.X++; c.setZN(c.X); return false }
func (c *CPU) iny(AddrMode) bool { c.Y++; c.setZN(c.Y); return false }
func (c *CPU) dex(AddrMode) bool { c.X--; c.setZN(c.X); return false }
func (c *CPU) dey(AddrMode) bool { c.Y--; c.setZN(c.Y); return false }

func (c *CPU) clc(AddrMode) bool { c.setFlag(FlagC, false); return false }
func (c *CPU) sec(AddrMode) bool { c.setFlag(FlagC, true); return false }
func (c *CPU) cli(AddrMode) bool { c.setFlag(FlagI, false); return false }
func (c *CPU) sei(AddrMode) bool { c.setFlag(FlagI, true); return false }
func (c *CPU) clv(AddrMode) bool { c.setFlag(FlagV, false); return false }
func (c *CPU) cld(AddrMode) bool { c.setFlag(FlagD, false); return false }
func (c *CPU) sed(AddrMode) bool { c.setFlag(FlagD, true); return false }

func (c *CPU) nop(mode AddrMode) bool {
	if mode == modeImplied {
		return false
	}
	_, crossed := c.operandAddr(mode)
	return crossed
}

func (c *CPU) kilOp(AddrMode) bool { c.kil(); return false }

// --- unofficial opcodes exercised by common test ROMs ---

func (c *CPU) lax(mode AddrMode) bool {
	addr, crossed := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.A, c.X = v, v
	c.setZN(v)
	return crossed
}

func (c *CPU) sax(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	c.bus.Write(addr, c.A&c.X)
	return false
}

func (c *CPU) dcp(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.setFlag(FlagC, c.A >= v)
	c.setZN(c.A - v)
	return false
}

func (c *CPU) isc(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.doADC(^v)
	return false
}

func (c *CPU) slo(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.bus.Write(addr, v)
	c.A |= v
	c.setZN(c.A)
	return false
}

func (c *CPU) sre(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.bus.Write(addr, v)
	c.A ^= v
	c.setZN(c.A)
	return false
}

func (c *CPU) rla(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	oldC := uint8(0)
	if c.flag(FlagC) {
		oldC = 1
	}
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x80 != 0)
	v = (v << 1) | oldC
	c.bus.Write(addr, v)
	c.A &= v
	c.setZN(c.A)
	return false
}

func (c *CPU) rra(mode AddrMode) bool {
	addr, _ := c.operandAddr(mode)
	oldC := uint8(0)
	if c.flag(FlagC) {
		oldC = 0x80
	}
	v := c.bus.Read(addr)
	c.setFlag(FlagC, v&0x01 != 0)
	v = (v >> 1) | oldC
	c.bus.Write(addr, v)
	c.doADC(v)
	return false
}

func unsupportedExec(opcode uint8) func(*CPU, AddrMode) bool {
	return func(c *CPU, _ AddrMode) bool {
		c.unsupported(opcode)
		return false
	}
}

func init() {
	set := func(op uint8, mode AddrMode, cycles uint8, exec func(c *CPU, mode AddrMode) bool) {
		opcodeTable[op] = opcodeInfo{mode: mode, cycles: cycles, exec: exec}
	}
	storeA := func(c *CPU, mode AddrMode) bool { return c.st(mode, c.A) }
	storeX := func(c *CPU, mode AddrMode) bool { return c.st(mode, c.X) }
	storeY := func(c *CPU, mode AddrMode) bool { return c.st(mode, c.Y) }
	cmpA := func(c *CPU, mode AddrMode) bool { return c.compare(mode, c.A) }
	cmpX := func(c *CPU, mode AddrMode) bool { return c.compare(mode, c.X) }
	cmpY := func(c *CPU, mode AddrMode) bool { return c.compare(mode, c.Y) }

	ldA := func(c *CPU, m AddrMode) bool { return c.ld(m, &c.A) }
	ldX := func(c *CPU, m AddrMode) bool { return c.ld(m, &c.X) }
	ldY := func(c *CPU, m AddrMode) bool { return c.ld(m, &c.Y) }

	set(0xA9, modeImmediate, 2, ldA)
	set(0xA5, modeZeroPage, 3, ldA)
	set(0xB5, modeZeroPageX, 4, ldA)
	set(0xAD, modeAbsolute, 4, ldA)
	set(0xBD, modeAbsoluteX, 4, ldA)
	set(0xB9, modeAbsoluteY, 4, ldA)
	set(0xA1, modeIndirectX, 6, ldA)
	set(0xB1, modeIndirectY, 5, ldA)

	set(0xA2, modeImmediate, 2, ldX)
	set(0xA6, modeZeroPage, 3, ldX)
	set(0xB6, modeZeroPageY, 4, ldX)
	set(0xAE, modeAbsolute, 4, ldX)
	set(0xBE, modeAbsoluteY, 4, ldX)

	set(0xA0, modeImmediate, 2, ldY)
	set(0xA4, modeZeroPage, 3, ldY)
	set(0xB4, modeZeroPageX, 4, ldY)
	set(0xAC, modeAbsolute, 4, ldY)
	set(0xBC, modeAbsoluteX, 4, ldY)

	set(0x85, modeZeroPage, 3, storeA)
	set(0x95, modeZeroPageX, 4, storeA)
	set(0x8D, modeAbsolute, 4, storeA)
	set(0x9D, modeAbsoluteX, 5, storeA)
	set(0x99, modeAbsoluteY, 5, storeA)
	set(0x81, modeIndirectX, 6, storeA)
	set(0x91, modeIndirectY, 6, storeA)

	set(0x86, modeZeroPage, 3, storeX)
	set(0x96, modeZeroPageY, 4, storeX)
	set(0x8E, modeAbsolute, 4, storeX)

	set(0x84, modeZeroPage, 3, storeY)
	set(0x94, modeZeroPageX, 4, storeY)
	set(0x8C, modeAbsolute, 4, storeY)

	set(0xAA, modeImplied, 2, (*CPU).tax)
	set(0xA8, modeImplied, 2, (*CPU).tay)
	set(0x8A, modeImplied, 2, (*CPU).txa)
	set(0x98, modeImplied, 2, (*CPU).tya)
	set(0xBA, modeImplied, 2, (*CPU).tsx)
	set(0x9A, modeImplied, 2, (*CPU).txs)

	set(0x48, modeImplied, 3, (*CPU).pha)
	set(0x68, modeImplied, 4, (*CPU).pla)
	set(0x08, modeImplied, 3, (*CPU).php)
	set(0x28, modeImplied, 4, (*CPU).plp)

	set(0x29, modeImmediate, 2, (*CPU).and)
	set(0x25, modeZeroPage, 3, (*CPU).and)
	set(0x35, modeZeroPageX, 4, (*CPU).and)
	set(0x2D, modeAbsolute, 4, (*CPU).and)
	set(0x3D, modeAbsoluteX, 4, (*CPU).and)
	set(0x39, modeAbsoluteY, 4, (*CPU).and)
	set(0x21, modeIndirectX, 6, (*CPU).and)
	set(0x31, modeIndirectY, 5, (*CPU).and)

	set(0x09, modeImmediate, 2, (*CPU).ora)
	set(0x05, modeZeroPage, 3, (*CPU).ora)
	set(0x15, modeZeroPageX, 4, (*CPU).ora)
	set(0x0D, modeAbsolute, 4, (*CPU).ora)
	set(0x1D, modeAbsoluteX, 4, (*CPU).ora)
	set(0x19, modeAbsoluteY, 4, (*CPU).ora)
	set(0x01, modeIndirectX, 6, (*CPU).ora)
	set(0x11, modeIndirectY, 5, (*CPU).ora)

	set(0x49, modeImmediate, 2, (*CPU).eor)
	set(0x45, modeZeroPage, 3, (*CPU).eor)
	set(0x55, modeZeroPageX, 4, (*CPU).eor)
	set(0x4D, modeAbsolute, 4, (*CPU).eor)
	set(0x5D, modeAbsoluteX, 4, (*CPU).eor)
	set(0x59, modeAbsoluteY, 4, (*CPU).eor)
	set(0x41, modeIndirectX, 6, (*CPU).eor)
	set(0x51, modeIndirectY, 5, (*CPU).eor)

	set(0x24, modeZeroPage, 3, (*CPU).bit)
	set(0x2C, modeAbsolute, 4, (*CPU).bit)

	set(0x69, modeImmediate, 2, (*CPU).adc)
	set(0x65, modeZeroPage, 3, (*CPU).adc)
	set(0x75, modeZeroPageX, 4, (*CPU).adc)
	set(0x6D, modeAbsolute, 4, (*CPU).adc)
	set(0x7D, modeAbsoluteX, 4, (*CPU).adc)
	set(0x79, modeAbsoluteY, 4, (*CPU).adc)
	set(0x61, modeIndirectX, 6, (*CPU).adc)
	set(0x71, modeIndirectY, 5, (*CPU).adc)

	set(0xE9, modeImmediate, 2, (*CPU).sbc)
	set(0xEB, modeImmediate, 2, (*CPU).sbc) // unofficial USBC alias
	set(0xE5, modeZeroPage, 3, (*CPU).sbc)
	set(0xF5, modeZeroPageX, 4, (*CPU).sbc)
	set(0xED, modeAbsolute, 4, (*CPU).sbc)
	set(0xFD, modeAbsoluteX, 4, (*CPU).sbc)
	set(0xF9, modeAbsoluteY, 4, (*CPU).sbc)
	set(0xE1, modeIndirectX, 6, (*CPU).sbc)
	set(0xF1, modeIndirectY, 5, (*CPU).sbc)

	set(0xC9, modeImmediate, 2, cmpA)
	set(0xC5, modeZeroPage, 3, cmpA)
	set(0xD5, modeZeroPageX, 4, cmpA)
	set(0xCD, modeAbsolute, 4, cmpA)
	set(0xDD, modeAbsoluteX, 4, cmpA)
	set(0xD9, modeAbsoluteY, 4, cmpA)
	set(0xC1, modeIndirectX, 6, cmpA)
	set(0xD1, modeIndirectY, 5, cmpA)

	set(0xE0, modeImmediate, 2, cmpX)
	set(0xE4, modeZeroPage, 3, cmpX)
	set(0xEC, modeAbsolute, 4, cmpX)

	set(0xC0, modeImmediate, 2, cmpY)
	set(0xC4, modeZeroPage, 3, cmpY)
	set(0xCC, modeAbsolute, 4, cmpY)

	set(0xE6, modeZeroPage, 5, (*CPU).inc)
	set(0xF6, modeZeroPageX, 6, (*CPU).inc)
	set(0xEE, modeAbsolute, 6, (*CPU).inc)
	set(0xFE, modeAbsoluteX, 7, (*CPU).inc)
	set(0xE8, modeImplied, 2, (*CPU).inx)
	set(0xC8, modeImplied, 2, (*CPU).iny)

	set(0xC6, modeZeroPage, 5, (*CPU).dec)
	set(0xD6, modeZeroPageX, 6, (*CPU).dec)
	set(0xCE, modeAbsolute, 6, (*CPU).dec)
	set(0xDE, modeAbsoluteX, 7, (*CPU).dec)
	set(0xCA, modeImplied, 2, (*CPU).dex)
	set(0x88, modeImplied, 2, (*CPU).dey)

	set(0x0A, modeAccumulator, 2, (*CPU).asl)
	set(0x06, modeZeroPage, 5, (*CPU).asl)
	set(0x16, modeZeroPageX, 6, (*CPU).asl)
	set(0x0E, modeAbsolute, 6, (*CPU).asl)
	set(0x1E, modeAbsoluteX, 7, (*CPU).asl)

	set(0x4A, modeAccumulator, 2, (*CPU).lsr)
	set(0x46, modeZeroPage, 5, (*CPU).lsr)
	set(0x56, modeZeroPageX, 6, (*CPU).lsr)
	set(0x4E, modeAbsolute, 6, (*CPU).lsr)
	set(0x5E, modeAbsoluteX, 7, (*CPU).lsr)

	set(0x2A, modeAccumulator, 2, (*CPU).rol)
	set(0x26, modeZeroPage, 5, (*CPU).rol)
	set(0x36, modeZeroPageX, 6, (*CPU).rol)
	set(0x2E, modeAbsolute, 6, (*CPU).rol)
	set(0x3E, modeAbsoluteX, 7, (*CPU).rol)

	set(0x6A, modeAccumulator, 2, (*CPU).ror)
	set(0x66, modeZeroPage, 5, (*CPU).ror)
	set(0x76, modeZeroPageX, 6, (*CPU).ror)
	set(0x6E, modeAbsolute, 6, (*CPU).ror)
	set(0x7E, modeAbsoluteX, 7, (*CPU).ror)

	set(0x4C, modeAbsolute, 3, (*CPU).jmp)
	set(0x6C, modeIndirect, 5, (*CPU).jmp)
	set(0x20, modeImplied, 6, (*CPU).jsr)
	set(0x60, modeImplied, 6, (*CPU).rts)
	set(0x40, modeImplied, 6, (*CPU).rti)
	set(0x00, modeImplied, 7, (*CPU).brk)

	branchOp := func(flag uint8, wantSet bool) func(c *CPU, mode AddrMode) bool {
		return func(c *CPU, _ AddrMode) bool { return c.branch(c.flag(flag) == wantSet) }
	}
	set(0x10, modeRelative, 2, branchOp(FlagN, false))
	set(0x30, modeRelative, 2, branchOp(FlagN, true))
	set(0x50, modeRelative, 2, branchOp(FlagV, false))
	set(0x70, modeRelative, 2, branchOp(FlagV, true))
	set(0x90, modeRelative, 2, branchOp(FlagC, false))
	set(0xB0, modeRelative, 2, branchOp(FlagC, true))
	set(0xD0, modeRelative, 2, branchOp(FlagZ, false))
	set(0xF0, modeRelative, 2, branchOp(FlagZ, true))

	set(0x18, modeImplied, 2, (*CPU).clc)
	set(0x38, modeImplied, 2, (*CPU).sec)
	set(0x58, modeImplied, 2, (*CPU).cli)
	set(0x78, modeImplied, 2, (*CPU).sei)
	set(0xB8, modeImplied, 2, (*CPU).clv)
	set(0xD8, modeImplied, 2, (*CPU).cld)
	set(0xF8, modeImplied, 2, (*CPU).sed)

	set(0xEA, modeImplied, 2, (*CPU).nop)
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, modeImplied, 2, (*CPU).nop)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, modeImmediate, 2, (*CPU).nop)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, modeZeroPage, 3, (*CPU).nop)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, modeZeroPageX, 4, (*CPU).nop)
	}
	set(0x0C, modeAbsolute, 4, (*CPU).nop)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, modeAbsoluteX, 4, (*CPU).nop)
	}

	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		set(op, modeImplied, 2, (*CPU).kilOp)
	}

	set(0xA7, modeZeroPage, 3, (*CPU).lax)
	set(0xB7, modeZeroPageY, 4, (*CPU).lax)
	set(0xAF, modeAbsolute, 4, (*CPU).lax)
	set(0xBF, modeAbsoluteY, 4, (*CPU).lax)
	set(0xA3, modeIndirectX, 6, (*CPU).lax)
	set(0xB3, modeIndirectY, 5, (*CPU).lax)

	set(0x87, modeZeroPage, 3, (*CPU).sax)
	set(0x97, modeZeroPageY, 4, (*CPU).sax)
	set(0x8F, modeAbsolute, 4, (*CPU).sax)
	set(0x83, modeIndirectX, 6, (*CPU).sax)

	set(0xC7, modeZeroPage, 5, (*CPU).dcp)
	set(0xD7, modeZeroPageX, 6, (*CPU).dcp)
	set(0xCF, modeAbsolute, 6, (*CPU).dcp)
	set(0xDF, modeAbsoluteX, 7, (*CPU).dcp)
	set(0xDB, modeAbsoluteY, 7, (*CPU).dcp)
	set(0xC3, modeIndirectX, 8, (*CPU).dcp)
	set(0xD3, modeIndirectY, 8, (*CPU).dcp)

	set(0xE7, modeZeroPage, 5, (*CPU).isc)
	set(0xF7, modeZeroPageX, 6, (*CPU).isc)
	set(0xEF, modeAbsolute, 6, (*CPU).isc)
	set(0xFF, modeAbsoluteX, 7, (*CPU).isc)
	set(0xFB, modeAbsoluteY, 7, (*CPU).isc)
	set(0xE3, modeIndirectX, 8, (*CPU).isc)
	set(0xF3, modeIndirectY, 8, (*CPU).isc)

	set(0x07, modeZeroPage, 5, (*CPU).slo)
	set(0x17, modeZeroPageX, 6, (*CPU).slo)
	set(0x0F, modeAbsolute, 6, (*CPU).slo)
	set(0x1F, modeAbsoluteX, 7, (*CPU).slo)
	set(0x1B, modeAbsoluteY, 7, (*CPU).slo)
	set(0x03, modeIndirectX, 8, (*CPU).slo)
	set(0x13, modeIndirectY, 8, (*CPU).slo)

	set(0x47, modeZeroPage, 5, (*CPU).sre)
	set(0x57, modeZeroPageX, 6, (*CPU).sre)
	set(0x4F, modeAbsolute, 6, (*CPU).sre)
	set(0x5F, modeAbsoluteX, 7, (*CPU).sre)
	set(0x5B, modeAbsoluteY, 7, (*CPU).sre)
	set(0x43, modeIndirectX, 8, (*CPU).sre)
	set(0x53, modeIndirectY, 8, (*CPU).sre)

	set(0x27, modeZeroPage, 5, (*CPU).rla)
	set(0x37, modeZeroPageX, 6, (*CPU).rla)
	set(0x2F, modeAbsolute, 6, (*CPU).rla)
	set(0x3F, modeAbsoluteX, 7, (*CPU).rla)
	set(0x3B, modeAbsoluteY, 7, (*CPU).rla)
	set(0x23, modeIndirectX, 8, (*CPU).rla)
	set(0x33, modeIndirectY, 8, (*CPU).rla)

	set(0x67, modeZeroPage, 5, (*CPU).rra)
	set(0x77, modeZeroPageX, 6, (*CPU).rra)
	set(0x6F, modeAbsolute, 6, (*CPU).rra)
	set(0x7F, modeAbsoluteX, 7, (*CPU).rra)
	set(0x7B, modeAbsoluteY, 7, (*CPU).rra)
	set(0x63, modeIndirectX, 8, (*CPU).rra)
	set(0x73, modeIndirectY, 8, (*CPU).rra)

	// Stubbed-to-fail unofficial combos (spec.md §4.4 allows these to fail).
	set(0x4B, modeImmediate, 2, unsupportedExec(0x4B)) // ALR
	set(0x0B, modeImmediate, 2, unsupportedExec(0x0B)) // ANC
	set(0x2B, modeImmediate, 2, unsupportedExec(0x2B)) // ANC
	set(0x6B, modeImmediate, 2, unsupportedExec(0x6B)) // ARR
	set(0xCB, modeImmediate, 2, unsupportedExec(0xCB)) // AXS
	set(0x8B, modeImmediate, 2, unsupportedExec(0x8B)) // XAA
	set(0x9F, modeAbsoluteY, 5, unsupportedExec(0x9F)) // AHX
	set(0x93, modeIndirectY, 6, unsupportedExec(0x93)) // AHX
	set(0x9B, modeAbsoluteY, 5, unsupportedExec(0x9B)) // TAS
	set(0xBB, modeAbsoluteY, 4, unsupportedExec(0xBB)) // LAS

	for i := range opcodeTable {
		if opcodeTable[i].exec == nil {
			opcodeTable[i] = opcodeInfo{mode: modeImplied, cycles: 2, exec: unsupportedExec(uint8(i))}
		}
	}
}
