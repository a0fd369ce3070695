package ui

import "github.com/hajimehoshi/ebiten/v2"

// keyByName resolves the small set of key names the config file uses. It
// returns ok=false for anything unrecognized, so a typo in the config file
// degrades to an unbound button rather than a panic.
func keyByName(name string) (ebiten.Key, bool) {
	switch name {
	case "Up", "ArrowUp":
		return ebiten.KeyArrowUp, true
	case "Down", "ArrowDown":
		return ebiten.KeyArrowDown, true
	case "Left", "ArrowLeft":
		return ebiten.KeyArrowLeft, true
	case "Right", "ArrowRight":
		return ebiten.KeyArrowRight, true
	case "Enter":
		return ebiten.KeyEnter, true
	case "Space":
		return ebiten.KeySpace, true
	case "RightShift":
		return ebiten.KeyShiftRight, true
	case "RightControl":
		return ebiten.KeyControlRight, true
	case "A":
		return ebiten.KeyA, true
	case "B":
		return ebiten.KeyB, true
	case "J":
		return ebiten.KeyJ, true
	case "K":
		return ebiten.KeyK, true
	case "M":
		return ebiten.KeyM, true
	case "N":
		return ebiten.KeyN, true
	case "S":
		return ebiten.KeyS, true
	case "D":
		return ebiten.KeyD, true
	case "W":
		return ebiten.KeyW, true
	case "Z":
		return ebiten.KeyZ, true
	default:
		return 0, false
	}
}
