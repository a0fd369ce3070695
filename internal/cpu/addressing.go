package cpu

// AddrMode identifies a 6502 addressing mode.
type AddrMode int

const (
	modeImplied AddrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect // JMP only
	modeIndirectX
	modeIndirectY
	modeRelative
)

// operandAddr resolves the effective address for a read/write/RMW
// instruction's addressing mode, advancing PC past the operand bytes it
// consumes. Implied, Accumulator and Relative modes are handled by their own
// instruction logic instead of through here.
func (c *CPU) operandAddr(mode AddrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeImmediate:
		addr = c.PC
		c.PC++

	case modeZeroPage:
		addr = uint16(c.fetch())

	case modeZeroPageX:
		base := c.fetch()
		addr = uint16(base + c.X)

	case modeZeroPageY:
		base := c.fetch()
		addr = uint16(base + c.Y)

	case modeAbsolute:
		lo := uint16(c.fetch())
		hi := uint16(c.fetch())
		addr = lo | hi<<8

	case modeAbsoluteX:
		lo := uint16(c.fetch())
		hi := uint16(c.fetch())
		base := lo | hi<<8
		addr = base + uint16(c.X)
		pageCrossed = base&0xFF00 != addr&0xFF00

	case modeAbsoluteY:
		lo := uint16(c.fetch())
		hi := uint16(c.fetch())
		base := lo | hi<<8
		addr = base + uint16(c.Y)
		pageCrossed = base&0xFF00 != addr&0xFF00

	case modeIndirectX:
		base := c.fetch()
		ptr := base + c.X
		lo := uint16(c.bus.Read(uint16(ptr)))
		hi := uint16(c.bus.Read(uint16(ptr + 1)))
		addr = lo | hi<<8

	case modeIndirectY:
		ptr := c.fetch()
		lo := uint16(c.bus.Read(uint16(ptr)))
		hi := uint16(c.bus.Read(uint16(ptr + 1)))
		base := lo | hi<<8
		addr = base + uint16(c.Y)
		pageCrossed = base&0xFF00 != addr&0xFF00
	}
	return addr, pageCrossed
}
