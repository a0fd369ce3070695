// Package ui is the Ebitengine front end: it drives one Machine one frame
// per tick, converts its palette-index frame buffer to RGB, and feeds both
// controller ports from the host keyboard.
package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/config"
	"gones/internal/input"
	"gones/internal/machine"
)

const (
	nesWidth  = 256
	nesHeight = 240
)

// keyboardSource polls the host keyboard for one controller port's button
// state, per a configured key mapping.
type keyboardSource struct {
	keys [8]ebiten.Key
	has  [8]bool
}

var buttonOrder = [8]input.Button{
	input.ButtonA, input.ButtonB, input.ButtonSelect, input.ButtonStart,
	input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight,
}

func newKeyboardSource(m config.KeyMapping) *keyboardSource {
	s := &keyboardSource{}
	bind := func(i int, name string) {
		if k, ok := keyByName(name); ok {
			s.keys[i] = k
			s.has[i] = true
		}
	}
	bind(0, m.A)
	bind(1, m.B)
	bind(2, m.Select)
	bind(3, m.Start)
	bind(4, m.Up)
	bind(5, m.Down)
	bind(6, m.Left)
	bind(7, m.Right)
	return s
}

// Poll implements input.Source.
func (s *keyboardSource) Poll() uint8 {
	var mask uint8
	for i, btn := range buttonOrder {
		if s.has[i] && ebiten.IsKeyPressed(s.keys[i]) {
			mask |= uint8(btn)
		}
	}
	return mask
}

// Game adapts a Machine to ebiten.Game.
type Game struct {
	m          *machine.Machine
	cfg        *config.Config
	pix        *image.RGBA
	frameImage *ebiten.Image
	title      string
	frames     uint64
}

// NewGame builds a Game driving m, with both controller ports wired from
// the keyboard per cfg's key bindings.
func NewGame(m *machine.Machine, cfg *config.Config, title string) *Game {
	m.RegisterInput(input.Port1, newKeyboardSource(cfg.Input.Player1))
	m.RegisterInput(input.Port2, newKeyboardSource(cfg.Input.Player2))
	return &Game{
		m:          m,
		cfg:        cfg,
		pix:        image.NewRGBA(image.Rect(0, 0, nesWidth, nesHeight)),
		frameImage: ebiten.NewImage(nesWidth, nesHeight),
		title:      title,
	}
}

// Update implements ebiten.Game: one NES frame per tick.
func (g *Game) Update() error {
	g.m.RunFrame()
	g.frames++
	if g.cfg.Debug.ShowFPS && g.frames%60 == 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("%s - %.1f FPS", g.title, ebiten.ActualFPS()))
	}
	return nil
}

// Draw implements ebiten.Game: converts the PPU's palette-index frame
// buffer to RGBA and blits it, scaled to fill the window.
func (g *Game) Draw(screen *ebiten.Image) {
	fb := g.m.PPU().FrameBuffer()
	for i, idx := range fb {
		rgb := nesPalette[idx&0x3F]
		g.pix.Pix[i*4+0] = rgb[0]
		g.pix.Pix[i*4+1] = rgb[1]
		g.pix.Pix[i*4+2] = rgb[2]
		g.pix.Pix[i*4+3] = 0xFF
	}
	g.frameImage.WritePixels(g.pix.Pix)

	bounds := screen.Bounds()
	sx := float64(bounds.Dx()) / nesWidth
	sy := float64(bounds.Dy()) / nesHeight
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(g.frameImage, op)
}

// Layout implements ebiten.Game: the logical screen always matches the
// outer window, letting Draw scale the NES frame to fit it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window titled title and drives m until the window closes.
func Run(m *machine.Machine, cfg *config.Config, title string) error {
	scale := cfg.Window.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(nesWidth*scale, nesHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Video.VSync)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	return ebiten.RunGame(NewGame(m, cfg, title))
}
