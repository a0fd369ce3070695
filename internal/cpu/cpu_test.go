package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testBus is a flat 64 KiB RAM with no DMA/mapper wiring, enough to drive the
// CPU through a byte stream and inspect the resulting state.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) Read(address uint16) uint8 { return b.mem[address] }
func (b *testBus) Write(address uint16, value uint8) { b.mem[address] = value }
func (b *testBus) TakeDMARequest() (uint8, bool) { return 0, false }
func (b *testBus) OAMDMA(uint8) {}

func (b *testBus) load(addr uint16, bytes ...uint8) {
	copy(b.mem[addr:], bytes)
}

func newTestCPU(resetVec uint16) (*CPU, *testBus) {
	bus := &testBus{}
	bus.mem[resetVector] = uint8(resetVec)
	bus.mem[resetVector+1] = uint8(resetVec >> 8)
	c := New(bus)
	c.PowerOn()
	return c, bus
}

func TestPowerOnState(t *testing.T) {
	c, _ := newTestCPU(0x8000)
	require.EqualValues(t, 0x8000, c.PC)
	require.EqualValues(t, 0xFD, c.S)
	require.EqualValues(t, 0x24, c.P)
}

func TestLdaStaAdcIncLdyIny(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0xA9, 0x10, // LDA #$10
		0x85, 0x20, // STA $20
		0x69, 0x05, // ADC #$05
		0xE6, 0x20, // INC $20
		0xA4, 0x20, // LDY $20
		0xC8,       // INY
		0x00,       // BRK
	)
	c.StepTo(1000)
	require.EqualValues(t, 0x15, c.A)
	require.EqualValues(t, 0x11, bus.mem[0x20])
	require.EqualValues(t, 0x12, c.Y)
}

func TestAdcCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0xA9, 0x7F, // LDA #$7F
		0x69, 0x01, // ADC #$01 -> overflow, A=$80
		0x00,
	)
	c.StepTo(1000)
	require.EqualValues(t, 0x80, c.A)
	require.True(t, c.flag(FlagV))
	require.True(t, c.flag(FlagN))
	require.False(t, c.flag(FlagC))
}

func TestSbcBorrow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0x38,       // SEC (no borrow going in)
		0xA9, 0x05, // LDA #$05
		0xE9, 0x06, // SBC #$06 -> underflow, sets C=0 (borrow occurred)
		0x00,
	)
	c.StepTo(1000)
	require.EqualValues(t, 0xFF, c.A)
	require.False(t, c.flag(FlagC))
}

func TestIndirectJmpPageWrapBug(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.mem[0x02FF] = 0x40
	bus.mem[0x0200] = 0x80 // high byte comes from $0200, not $0300
	bus.mem[0x0300] = 0x12 // if the bug were absent this byte would be used
	c.StepTo(5 * 3) // the JMP alone (5 CPU cycles); stop before the BRK at $8040
	require.EqualValues(t, 0x8040, c.PC)
}

func TestBranchPageCrossCost(t *testing.T) {
	c, bus := newTestCPU(0x80F0)
	bus.load(0x80F0, 0xF0, 0x20) // BEQ +$20, crosses from page $80 to $81
	c.P |= FlagZ
	before := c.Cycle()
	c.StepTo(before + 1) // the branch alone, not the BRK it lands on
	require.EqualValues(t, (before/3+4)*3, c.Cycle())
}

func TestBranchNotTakenCostsTwoCycles(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xF0, 0x20) // BEQ, Z clear
	c.P &^= FlagZ
	before := c.Cycle()
	c.StepTo(before + 1) // the branch alone, not the BRK that follows it
	require.EqualValues(t, before+2*3, c.Cycle())
}

func TestPhpPushesStatusWithBAndUSet(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0xA9, 0x00, // LDA #0 sets Z
		0x08,       // PHP
		0x68,       // PLA -> A = pushed status (Z|U|unused bits)
	)
	c.StepTo(1000)
	pushed := c.A
	require.NotZero(t, pushed&FlagB)
	require.NotZero(t, pushed&FlagU)
	require.NotZero(t, pushed&FlagZ)
}

func TestJsrRtsRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	bus.load(0x9000, 0x60)             // RTS
	c.StepTo((6 + 6) * 3)              // JSR + RTS only; stop before the BRK at $8003
	require.EqualValues(t, 0x8003, c.PC)
}

func TestStackPushPullRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0xA9, 0x42, // LDA #$42
		0x48,       // PHA
		0xA9, 0x00, // LDA #$00
		0x68,       // PLA
	)
	c.StepTo(1000)
	require.EqualValues(t, 0x42, c.A)
}

func TestCompareSetsCarryOnGreaterOrEqual(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0xA9, 0x10, // LDA #$10
		0xC9, 0x10, // CMP #$10
	)
	c.StepTo(1000)
	require.True(t, c.flag(FlagC))
	require.True(t, c.flag(FlagZ))
}

func TestOamDmaStallIsOddEvenSensitive(t *testing.T) {
	c, _ := newTestCPU(0x8000)
	c.serviceDMA(0x02) // cycle 0 is even -> 513-cycle stall
	require.EqualValues(t, 513*3, c.Cycle())

	c2, _ := newTestCPU(0x8000)
	c2.addCPUCycles(1) // advance to an odd CPU cycle
	c2.serviceDMA(0x02)
	require.EqualValues(t, 3+514*3, c2.Cycle())
}

func TestTxsDoesNotAffectFlags(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000,
		0xA2, 0x00, // LDX #$00 sets Z
		0x9A,       // TXS
	)
	c.StepTo((2 + 2) * 3) // LDX + TXS only; the BRK after them would push to the stack
	require.True(t, c.flag(FlagZ), "TXS must not touch flags, LDX #0 already set Z")
	require.EqualValues(t, 0x00, c.S)
}

func TestUnsupportedOpcodeStopsMachine(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x8B) // XAA, deliberately unsupported
	c.StepTo(1000)
	require.True(t, c.StopRequested())
	op, has := c.UnsupportedOpcode()
	require.True(t, has)
	require.EqualValues(t, 0x8B, op)
}

func TestKilHalts(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x02)
	c.StepTo(1000)
	require.True(t, c.StopRequested())
}
