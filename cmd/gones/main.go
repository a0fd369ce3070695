// Command gones runs the NES emulator: a GUI session via Ebitengine, or a
// headless run for scripted testing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gones/internal/config"
	"gones/internal/machine"
	"gones/internal/ui"
	"gones/internal/version"
)

var (
	romPath    string
	configPath string
	headless   bool
	frameLimit uint64
	directMode bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "gones",
		Short:   "A cycle-synchronized NES emulator",
		Version: version.GetVersion(),
		RunE:    runEmulator,
	}
	root.Flags().StringVarP(&romPath, "rom", "r", "", "path to an iNES/NES 2.0 ROM file")
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a JSON config file (default: config/gones.json)")
	root.Flags().BoolVar(&headless, "headless", false, "run without a window, stepping a fixed number of frames")
	root.Flags().Uint64Var(&frameLimit, "frames", 120, "frame count for --headless runs")
	root.Flags().BoolVar(&directMode, "direct-entry", false, "start execution at the mapper's declared entry address instead of the reset vector")
	return root
}

func runEmulator(cmd *cobra.Command, args []string) error {
	if romPath == "" {
		return fmt.Errorf("gones: --rom is required")
	}
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("gones: %w", err)
	}

	m := machine.New()
	m.PowerOn()
	mode := machine.ResetVectorMode
	if directMode {
		mode = machine.DirectMode
	}
	if err := m.LoadROM(romPath, mode); err != nil {
		return fmt.Errorf("gones: load rom: %w", err)
	}

	if headless {
		return runHeadless(m, romPath)
	}
	if err := ui.Run(m, cfg, "gones - "+romPath); err != nil {
		return fmt.Errorf("gones: %w", err)
	}
	return m.Save(romPath)
}

func runHeadless(m *machine.Machine, romPath string) error {
	m.StopAfterFrame(frameLimit)
	for m.PPU().FrameCount() < frameLimit && !m.StopRequested() {
		m.RunFrame()
	}
	fmt.Printf("gones: ran %d frames\n", m.PPU().FrameCount())
	return m.Save(romPath)
}
