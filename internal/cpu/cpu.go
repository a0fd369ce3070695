// Package cpu implements the NES's 6502-derived CPU: registers, addressing
// modes, the full official and commonly-emulated unofficial instruction set,
// and the cycle-accurate step_to loop that interleaves instruction execution
// with pending NMI/IRQ/DMA events.
package cpu

// Flag bit positions within the P status register.
const (
	FlagC uint8 = 1 << 0 // carry
	FlagZ uint8 = 1 << 1 // zero
	FlagI uint8 = 1 << 2 // interrupt disable
	FlagD uint8 = 1 << 3 // decimal (settable, ignored by the ALU)
	FlagB uint8 = 1 << 4 // break (only meaningful in a pushed copy)
	FlagU uint8 = 1 << 5 // unused, always reads 1 on a pushed copy
	FlagV uint8 = 1 << 6 // overflow
	FlagN uint8 = 1 << 7 // negative
)

const (
	stackBase   = 0x0100
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Bus is everything the CPU needs from the system around it: the 64 KiB
// address space, and the two side-channel requests it can make of it (a
// pending OAM DMA, and a pending mapper IRQ).
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// TakeDMARequest reports and clears a pending OAM DMA latched by a write
	// to $4014.
	TakeDMARequest() (page uint8, ok bool)
	// OAMDMA performs the 256-byte transfer from the given CPU page.
	OAMDMA(page uint8)
}

// IRQSource is implemented by mappers (MMC3) that can assert the CPU's IRQ
// line. The CPU acknowledges a serviced IRQ by calling ClearIRQ.
type IRQSource interface {
	IRQPending() bool
	ClearIRQ()
}

// CPU holds the 6502 register file and the master-clock-synchronized
// execution loop described in spec.md §4.4. Its internal cycle counter is in
// PPU-dot units (one CPU cycle = three dots) so it can be compared directly
// against the PPU's own counter.
type CPU struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	P       uint8

	bus Bus
	irq IRQSource // nil if the loaded cartridge's mapper has no IRQ line

	cycle uint64 // master clock, in PPU-dot units

	nmiPending bool

	stopRequested     bool
	stopAtInfiniteLoop bool
	unsupportedOpcode  uint8
	hasUnsupported     bool

	haltedKIL bool
}

// New creates a CPU wired to bus. PowerOn must be called before stepping.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// SetIRQSource attaches the cartridge mapper's IRQ line, if it has one. Pass
// nil for mappers with no IRQ support.
func (c *CPU) SetIRQSource(src IRQSource) {
	c.irq = src
}

// SetStopAtInfiniteLoop enables the test-only "stop on JMP to self" feature.
func (c *CPU) SetStopAtInfiniteLoop(enabled bool) {
	c.stopAtInfiniteLoop = enabled
}

// PowerOn sets the register file to its documented power-up state and loads
// PC from the reset vector.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = 0x24 // I and U set
	c.PC = c.readWord(resetVector)
	c.cycle = 0
	c.nmiPending = false
	c.stopRequested = false
	c.hasUnsupported = false
	c.haltedKIL = false
}

// Reset reinitializes registers from the reset vector without touching RAM,
// matching real hardware reset behavior.
func (c *CPU) Reset() {
	c.S -= 3
	c.P |= FlagI
	c.PC = c.readWord(resetVector)
	c.nmiPending = false
	c.haltedKIL = false
}

// RequestNMI latches an NMI, serviced at the next instruction boundary.
func (c *CPU) RequestNMI() {
	c.nmiPending = true
}

// Cycle returns the CPU's master-clock position, in PPU-dot units.
func (c *CPU) Cycle() uint64 { return c.cycle }

// StopRequested reports whether the CPU halted itself (BRK/KIL/unsupported
// opcode/infinite-loop detection).
func (c *CPU) StopRequested() bool { return c.stopRequested }

// UnsupportedOpcode returns the last UnsupportedOpcode encoding hit, and
// whether one has occurred at all.
func (c *CPU) UnsupportedOpcode() (uint8, bool) { return c.unsupportedOpcode, c.hasUnsupported }

// StepTo runs instructions and serviced events until the CPU's cycle counter
// reaches target or the machine stops, per spec.md §4.4's event order: NMI,
// then a pending mapper IRQ, then a pending OAM DMA, then one instruction.
func (c *CPU) StepTo(target uint64) {
	for c.cycle < target && !c.stopRequested {
		switch {
		case c.nmiPending:
			c.serviceNMI()
		case c.irq != nil && c.irq.IRQPending() && c.P&FlagI == 0:
			c.serviceIRQ()
		default:
			if page, ok := c.bus.TakeDMARequest(); ok {
				c.serviceDMA(page)
				continue
			}
			c.step()
		}
	}
}

func (c *CPU) serviceNMI() {
	c.nmiPending = false
	c.pushWord(c.PC)
	c.push((c.P &^ FlagB) | FlagU)
	c.P |= FlagI
	c.PC = c.readWord(nmiVector)
	c.addCPUCycles(7)
}

func (c *CPU) serviceIRQ() {
	c.irq.ClearIRQ()
	c.pushWord(c.PC)
	c.push((c.P &^ FlagB) | FlagU)
	c.P |= FlagI
	c.PC = c.readWord(irqVector)
	c.addCPUCycles(7)
}

func (c *CPU) serviceDMA(page uint8) {
	stall := uint64(513)
	if c.cycle/3%2 != 0 {
		stall = 514
	}
	c.bus.OAMDMA(page)
	c.cycle += stall * 3
}

func (c *CPU) step() {
	pc := c.PC
	opcode := c.fetch()
	instr := opcodeTable[opcode]

	if c.stopAtInfiniteLoop && instr.mode == modeAbsolute && opcode == 0x4C {
		target := uint16(c.bus.Read(pc+1)) | uint16(c.bus.Read(pc+2))<<8
		if target == pc {
			c.stopRequested = true
		}
	}

	extra := instr.exec(c, instr.mode)
	cycles := instr.cycles
	if extra {
		cycles++
	}
	c.addCPUCycles(cycles)
}

// addCPUCycles advances the master clock by n CPU cycles (3 dots each).
func (c *CPU) addCPUCycles(n uint8) {
	c.cycle += uint64(n) * 3
}

func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return lo | hi<<8
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.S), v)
	c.S--
}

func (c *CPU) pop() uint8 {
	c.S++
	return c.bus.Read(stackBase + uint16(c.S))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

func (c *CPU) setZN(v uint8) {
	if v == 0 {
		c.P |= FlagZ
	} else {
		c.P &^= FlagZ
	}
	if v&0x80 != 0 {
		c.P |= FlagN
	} else {
		c.P &^= FlagN
	}
}

func (c *CPU) setFlag(flag uint8, set bool) {
	if set {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) flag(flag uint8) bool { return c.P&flag != 0 }

// unsupported marks the machine stopped due to an UnsupportedOpcode error.
func (c *CPU) unsupported(opcode uint8) {
	c.unsupportedOpcode = opcode
	c.hasUnsupported = true
	c.stopRequested = true
}

func (c *CPU) kil() {
	c.haltedKIL = true
	c.stopRequested = true
}
