// Package ppu implements the NES Picture Processing Unit (2C02): its
// scanline/dot state machine, background and sprite pipelines, and the
// memory-mapped register file the CPU bus dispatches $2000-$2007 to.
package ppu

const (
	dotsPerScanline = 341
	scanlinesPerFrame = 262
	visibleScanlines  = 240
	warmUpCPUCycles   = 29658
)

// VRAM is the PPU's 16 KiB address space (pattern tables, nametables,
// palette RAM), with mirroring already applied by the implementation.
type VRAM interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// NMIRequester is the CPU side of the NMI latch the PPU raises at the start
// of VBlank.
type NMIRequester interface {
	RequestNMI()
}

// ScanlineClocked is implemented by mappers (MMC3) whose IRQ counter clocks
// once per visible/pre-render scanline while rendering is active.
type ScanlineClocked interface {
	ClockScanline()
}

// PPU is the 2C02: registers, OAM, and the dot-stepped rendering pipeline.
type PPU struct {
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002 (only bits 7/6/5 meaningful)
	oamAddr uint8

	v, t uint16
	x    uint8
	w    bool

	latch uint8 // last byte written to any PPU register (open-bus reads)
	readBuffer uint8

	vram    VRAM
	nmi     NMIRequester
	scanIRQ ScanlineClocked

	oam          [256]uint8
	secondaryOAM [32]uint8
	spriteIndex  [8]uint8 // original OAM index of each secondary-OAM slot
	spriteCount  int

	scanline int
	dot      int
	dots     uint64 // master dot counter, compared against StepTo's target
	frame    uint64
	oddFrame bool

	frameBuffer [256 * visibleScanlines]uint8

	stopRequested bool
	stopAfterFrame uint64
	hasFrameLimit  bool

	protect bool // suppresses $2002/$2007 read side effects for debug tracing
}

// New creates an unwired PPU. PowerOn must be called, and SetVRAM/
// SetNMIRequester before StepTo does anything useful.
func New() *PPU {
	return &PPU{}
}

func (p *PPU) SetVRAM(v VRAM)                { p.vram = v }
func (p *PPU) SetNMIRequester(n NMIRequester) { p.nmi = n }
func (p *PPU) SetScanlineIRQSource(s ScanlineClocked) { p.scanIRQ = s }
func (p *PPU) SetProtectMode(enabled bool)    { p.protect = enabled }

// StopAfterFrame requests the PPU set stop_requested once frame_count
// exceeds n; used by headless test drivers.
func (p *PPU) StopAfterFrame(n uint64) {
	p.stopAfterFrame = n
	p.hasFrameLimit = true
}

func (p *PPU) StopRequested() bool { return p.stopRequested }
func (p *PPU) FrameCount() uint64  { return p.frame }
func (p *PPU) Scanline() int       { return p.scanline }
func (p *PPU) Dot() int            { return p.dot }

// FrameBuffer returns the PPU's frame buffer as 6-bit NES palette color
// bytes, row-major, 256x240. There is a single buffer and rendering writes
// into it pixel by pixel, so it is not double-buffered: mid-frame it holds
// the rows drawn so far this frame and the remaining rows of the previous one.
func (p *PPU) FrameBuffer() *[256 * visibleScanlines]uint8 { return &p.frameBuffer }

func (p *PPU) PowerOn() {
	p.ctrl, p.mask, p.oamAddr = 0, 0, 0
	p.status = 0
	p.v, p.t, p.x = 0, 0, 0
	p.w = false
	p.latch, p.readBuffer = 0, 0
	p.oam = [256]uint8{}
	p.scanline, p.dot = 0, 0
	p.dots = 0
	p.frame = 0
	p.oddFrame = false
	p.stopRequested = false
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// Reset reinitializes transient rendering state without touching OAM or the
// frame buffer's last completed contents.
func (p *PPU) Reset() {
	p.ctrl, p.mask = 0, 0
	p.w = false
	p.scanline, p.dot = 0, 0
	p.stopRequested = false
}

func (p *PPU) warmedUp() bool { return p.dots > warmUpCPUCycles*3 }

// ReadRegister handles a CPU read from $2000-$2007 (already normalized by
// the bus's 8-byte mirroring).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		value := (p.status & 0xE0) | (p.latch & 0x1F)
		if !p.protect {
			p.status &^= 0x80
			p.w = false
		}
		return value
	case 0x2004:
		if p.inSpriteEvalWindow() {
			return 0xFF
		}
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readData()
	default:
		return p.latch
	}
}

// WriteRegister handles a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.latch = value
	switch address {
	case 0x2000:
		if !p.warmedUp() {
			return
		}
		p.ctrl = value
		p.t = (p.t & 0xF3FF) | (uint16(value)&0x03)<<10
	case 0x2001:
		if !p.warmedUp() {
			return
		}
		p.mask = value
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		if !p.warmedUp() {
			return
		}
		p.writeScroll(value)
	case 0x2006:
		if !p.warmedUp() {
			return
		}
		p.writeAddr(value)
	case 0x2007:
		p.writeData(value)
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | uint16(value>>3)
		p.x = value & 0x07
	} else {
		p.t = (p.t & 0x8FFF) | (uint16(value)&0x07)<<12
		p.t = (p.t & 0xFC1F) | (uint16(value)&0xF8)<<2
	}
	p.w = !p.w
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | (uint16(value)&0x3F)<<8
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) readData() uint8 {
	var data uint8
	if p.v&0x3FFF >= 0x3F00 {
		data = p.vram.Read(p.v)
		if !p.protect {
			p.readBuffer = p.vram.Read(p.v - 0x1000)
		}
	} else {
		data = p.readBuffer
		if !p.protect {
			p.readBuffer = p.vram.Read(p.v)
		}
	}
	if !p.protect {
		p.advanceVRAMAddr()
	}
	return data
}

func (p *PPU) writeData(value uint8) {
	p.vram.Write(p.v, value)
	p.advanceVRAMAddr()
}

func (p *PPU) advanceVRAMAddr() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}

func (p *PPU) inSpriteEvalWindow() bool {
	return p.scanline < visibleScanlines && p.dot >= 65 && p.dot <= 256
}

func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }
func (p *PPU) renderingEnabled() bool  { return p.backgroundEnabled() || p.spritesEnabled() }

// OAM DMA is driven by the CPU bus through WriteRegister(0x2004, ...), so it
// needs no dedicated method here.

// StepTo runs dots until the PPU's counter reaches target or the machine
// stops.
func (p *PPU) StepTo(target uint64) {
	for p.dots < target && !p.stopRequested {
		p.step()
	}
}

func (p *PPU) step() {
	p.dots++

	if p.scanline < visibleScanlines && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel(p.dot - 1)
	}
	if p.scanline < visibleScanlines && p.dot == 65 && p.renderingEnabled() {
		p.evaluateSprites()
	}
	if p.renderingEnabled() && p.scanIRQ != nil && p.dot == 260 &&
		(p.scanline < visibleScanlines || p.scanline == scanlinesPerFrame-1) {
		p.scanIRQ.ClockScanline()
	}

	p.dot++
	if p.scanline == scanlinesPerFrame-1 && p.dot == dotsPerScanline-1 && p.oddFrame && p.renderingEnabled() {
		p.dot++ // skip the last dot of pre-render on odd frames
	}
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
			if p.hasFrameLimit && p.frame > p.stopAfterFrame {
				p.stopRequested = true
			}
		}
	}

	if p.scanline == visibleScanlines+1 && p.dot == 1 {
		p.status |= 0x80
		if p.ctrl&0x80 != 0 && p.nmi != nil {
			p.nmi.RequestNMI()
		}
	}
	if p.scanline == scanlinesPerFrame-1 && p.dot == 1 {
		p.status &^= 0x40 | 0x20 | 0x80
	}
}

// renderPixel computes and stores one output pixel at (x, scanline).
func (p *PPU) renderPixel(x int) {
	if p.vram == nil || !p.renderingEnabled() {
		return
	}
	bgColor, bgPalette := p.backgroundPixel(x, p.scanline)
	sprColor, sprPalette, sprBehind, isSprite0 := p.spritePixel(x, p.scanline)

	if bgColor == 0 && sprColor == 0 {
		p.frameBuffer[p.scanline*256+x] = p.readPaletteByte(0x3F00)
		return
	}
	if bgColor != 0 && sprColor != 0 && x >= 1 && x <= 255 && isSprite0 {
		p.status |= 0x40
	}

	var index uint16
	if sprColor != 0 && (bgColor == 0 || !sprBehind) {
		index = 0x3F10 + uint16(sprPalette)*4 + uint16(sprColor)
	} else {
		index = 0x3F00 + uint16(bgPalette)*4 + uint16(bgColor)
	}
	value := p.readPaletteByte(index)
	if p.mask&0x01 != 0 {
		value &= 0x30
	}
	p.frameBuffer[p.scanline*256+x] = value
}

func (p *PPU) readPaletteByte(addr uint16) uint8 { return p.vram.Read(addr) & 0x3F }

// backgroundPixel resolves the 2-bit color index and palette for (x,y) by
// fetching the tile directly rather than simulating dot-accurate shift
// registers, per the allowance that observable VRAM order/timing only needs
// to be preserved at the 8-dot granularity.
func (p *PPU) backgroundPixel(x, y int) (color, palette uint8) {
	if !p.backgroundEnabled() || (x < 8 && p.mask&0x02 == 0) {
		return 0, 0
	}
	scrollX := int(p.v&0x1F)*8 + int(p.x)
	scrollY := int((p.v>>5)&0x1F)*8 + int((p.v>>12)&0x07)
	baseNametable := int((p.v >> 10) & 0x03)

	worldX := x + scrollX
	worldY := y + scrollY
	tileColGlobal := worldX / 8
	tileRowGlobal := worldY / 8
	pixelInTileX := worldX % 8
	pixelInTileY := worldY % 8

	horiz := (baseNametable & 1) ^ (tileColGlobal/32)&1
	vert := ((baseNametable >> 1) & 1) ^ (tileRowGlobal/30)&1
	nametable := vert<<1 | horiz
	tileCol := tileColGlobal % 32
	tileRow := tileRowGlobal % 30

	ntAddr := uint16(0x2000) | uint16(nametable)<<10 | uint16(tileRow)<<5 | uint16(tileCol)
	tileID := p.vram.Read(ntAddr)

	atAddr := uint16(0x23C0) | uint16(nametable)<<10 | uint16(tileRow/4)<<3 | uint16(tileCol/4)
	atByte := p.vram.Read(atAddr)
	quadrant := ((tileRow%4)/2)*2 + (tileCol%4)/2
	palette = (atByte >> (quadrant * 2)) & 0x03

	patternBase := uint16(0x0000)
	if p.ctrl&0x10 != 0 {
		patternBase = 0x1000
	}
	patternAddr := patternBase + uint16(tileID)*16 + uint16(pixelInTileY)
	lo := p.vram.Read(patternAddr)
	hi := p.vram.Read(patternAddr + 8)
	bit := 7 - pixelInTileX
	color = (((hi>>bit)&1)<<1) | ((lo >> bit) & 1)
	return color, palette
}

// spritePixel resolves the frontmost opaque sprite pixel at (x,y) from
// secondary OAM, as filled in by evaluateSprites for this scanline.
func (p *PPU) spritePixel(x, y int) (color, palette uint8, behind, isSprite0 bool) {
	if !p.spritesEnabled() || (x < 8 && p.mask&0x04 == 0) {
		return 0, 0, false, false
	}
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	for i := 0; i < p.spriteCount; i++ {
		base := i * 4
		sy := int(p.secondaryOAM[base])
		tile := p.secondaryOAM[base+1]
		attr := p.secondaryOAM[base+2]
		sx := int(p.secondaryOAM[base+3])

		if x < sx || x >= sx+8 {
			continue
		}
		row := y - (sy + 1)
		if row < 0 || row >= height {
			continue
		}
		col := x - sx
		if attr&0x40 != 0 {
			col = 7 - col
		}
		if attr&0x80 != 0 {
			row = height - 1 - row
		}
		c := p.spriteTilePixel(tile, col, row, height)
		if c == 0 {
			continue
		}
		return c, attr & 0x03, attr&0x20 != 0, p.spriteIndex[i] == 0
	}
	return 0, 0, false, false
}

func (p *PPU) spriteTilePixel(tile uint8, col, row, height int) uint8 {
	var patternBase uint16
	if height == 16 {
		if tile&0x01 != 0 {
			patternBase = 0x1000
		}
		tile &^= 0x01
		if row >= 8 {
			tile++
			row -= 8
		}
	} else if p.ctrl&0x08 != 0 {
		patternBase = 0x1000
	}
	addr := patternBase + uint16(tile)*16 + uint16(row)
	lo := p.vram.Read(addr)
	hi := p.vram.Read(addr + 8)
	bit := 7 - col
	return ((hi>>bit)&1)<<1 | (lo>>bit)&1
}

func (p *PPU) evaluateSprites() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	for i := range p.spriteIndex {
		p.spriteIndex[i] = 0xFF
	}
	p.spriteCount = 0

	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	for sprite := 0; sprite < 64; sprite++ {
		base := sprite * 4
		sy := int(p.oam[base])
		if p.scanline < sy+1 || p.scanline >= sy+1+height {
			continue
		}
		if p.spriteCount >= 8 {
			p.status |= 0x20
			break
		}
		dst := p.spriteCount * 4
		copy(p.secondaryOAM[dst:dst+4], p.oam[base:base+4])
		p.spriteIndex[p.spriteCount] = uint8(sprite)
		p.spriteCount++
	}
}
