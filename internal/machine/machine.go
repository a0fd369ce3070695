// Package machine wires the CPU, PPU, the two memory buses, a loaded
// cartridge mapper and the two controller ports into the single
// coordination point described by the driver model: a shared master clock,
// in PPU-dot units, that each component's step_to catches up to in turn.
package machine

import (
	"fmt"
	"os"

	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
)

// EntryMode selects how the CPU's initial PC is derived once a ROM loads.
type EntryMode int

const (
	// ResetVectorMode loads PC from the reset vector at $FFFC/$FFFD, as real
	// hardware does.
	ResetVectorMode EntryMode = iota
	// DirectMode uses the mapper's declared entry address, if it has one,
	// falling back to the reset vector otherwise.
	DirectMode
)

// Machine owns every component of a running NES and drives the stepping
// loop: Step(n) advances the master clock by n dots, then lets the CPU and
// PPU each run until they reach it.
type Machine struct {
	cpu   *cpu.CPU
	ppu   *ppu.PPU
	apu   *apu.APU
	input *input.State

	cpuBus *memory.CpuBus
	ppuBus *memory.PpuBus

	mapper   cartridge.Mapper
	romPath  string
	sramSize uint16

	masterCycle uint64
}

// New builds a Machine with its components wired together but no cartridge
// loaded yet; call LoadROM before PowerOn.
func New() *Machine {
	m := &Machine{
		ppu:   ppu.New(),
		apu:   apu.New(),
		input: input.NewState(),
	}
	m.cpuBus = memory.NewCpuBus(m.ppu, m.apu, m.input)
	m.cpu = cpu.New(m.cpuBus)
	m.ppuBus = memory.NewPpuBus(cartridge.MirrorHorizontal)
	m.ppu.SetVRAM(m.ppuBus)
	m.ppu.SetNMIRequester(m.cpu)
	return m
}

// CPU returns the CPU component, for tests and debug tooling.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// PPU returns the PPU component, for tests and debug tooling.
func (m *Machine) PPU() *ppu.PPU { return m.ppu }

// RAM returns the CPU bus, for tests that want to poke or inspect memory
// directly.
func (m *Machine) RAM() *memory.CpuBus { return m.cpuBus }

// MasterCycle returns the machine's shared clock position, in PPU-dot units.
func (m *Machine) MasterCycle() uint64 { return m.masterCycle }

// LoadROM parses the iNES/NES 2.0 image at path, wires its mapper into both
// buses, restores any battery-backed SRAM, powers on the CPU and positions
// its PC per mode. PPU state is left as it was. A later PowerOn reloads PC
// from the reset vector, which discards a DirectMode entry address.
func (m *Machine) LoadROM(path string, mode EntryMode) error {
	rom, err := cartridge.Load(path)
	if err != nil {
		return err
	}
	m.romPath = path
	m.mapper = rom.Mapper
	m.sramSize = rom.SRAMSize

	m.ppuBus = memory.NewPpuBus(rom.Mapper.Info().Mirroring)
	m.ppu.SetVRAM(m.ppuBus)
	m.cpuBus.SetMapper(rom.Mapper, m.ppuBus)
	rom.Mapper.OnLoad(m.cpuBus, m.ppuBus)

	if irq, ok := rom.Mapper.(cpu.IRQSource); ok {
		m.cpu.SetIRQSource(irq)
	} else {
		m.cpu.SetIRQSource(nil)
	}
	if sc, ok := rom.Mapper.(ppu.ScanlineClocked); ok {
		m.ppu.SetScanlineIRQSource(sc)
	} else {
		m.ppu.SetScanlineIRQSource(nil)
	}

	if rom.SRAMSize > 0 {
		if data, err := os.ReadFile(path + ".sav"); err == nil {
			rom.Mapper.OnLoadSRAM(m.cpuBus, data)
		}
	}

	m.cpu.PowerOn()
	if mode == DirectMode {
		if entry := rom.Mapper.Info().EntryAddr; entry != 0 {
			m.cpu.PC = entry
		}
	}
	return nil
}

// PowerOn resets every component to its documented power-up state, matching
// a cold boot with a cartridge already inserted.
func (m *Machine) PowerOn() {
	m.cpuBus.PowerOn()
	m.cpu.PowerOn()
	m.ppu.PowerOn()
	m.apu.Reset()
	m.input.Reset()
	m.masterCycle = 0
}

// Reset reinitializes CPU and PPU transient state from the reset vector,
// preserving RAM/VRAM contents, matching real hardware reset behavior.
func (m *Machine) Reset() {
	m.cpuBus.Reset()
	m.cpu.Reset()
	m.ppu.Reset()
	m.input.Reset()
}

// RegisterInput attaches a host button source to a controller port.
func (m *Machine) RegisterInput(port input.Port, src input.Source) {
	m.input.Register(port, src)
}

// UnregisterInput detaches any button source from a controller port.
func (m *Machine) UnregisterInput(port input.Port) {
	m.input.Unregister(port)
}

// StopAfterFrame tells the PPU to request a machine stop once frame_count
// exceeds n, the headless-test knob described for the driver.
func (m *Machine) StopAfterFrame(n uint64) {
	m.ppu.StopAfterFrame(n)
}

// StopRequested reports whether the CPU or PPU has asked the driver to stop
// (BRK/KIL/unsupported opcode, or a reached frame limit).
func (m *Machine) StopRequested() bool {
	return m.cpu.StopRequested() || m.ppu.StopRequested()
}

// Step advances the master clock by nDots and lets the CPU and PPU each
// catch up to it in turn, the single coordination point of the whole
// system.
func (m *Machine) Step(nDots uint64) {
	m.masterCycle += nDots
	m.cpu.StepTo(m.masterCycle)
	m.ppu.StepTo(m.masterCycle)
}

// RunFrame steps the machine until the PPU completes one more frame or the
// machine stops, a convenience for front ends that drive by frame rather
// than by dot count.
func (m *Machine) RunFrame() {
	target := m.ppu.FrameCount() + 1
	for m.ppu.FrameCount() < target && !m.StopRequested() {
		m.Step(341)
	}
}

// Save persists the loaded cartridge's battery-backed SRAM, if any, to
// <path>.sav.
func (m *Machine) Save(path string) error {
	if m.mapper == nil || m.sramSize == 0 {
		return nil
	}
	data := m.mapper.OnSaveSRAM(m.cpuBus, m.cpuBus.ReadSRAM)
	if err := os.WriteFile(path+".sav", data, 0644); err != nil {
		return fmt.Errorf("machine: save sram: %w", err)
	}
	return nil
}
