package console

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Button bits as they appear on the serial line, LSB first.
const (
	BUTTON_A = 1 << iota
	BUTTON_B
	BUTTON_SELECT
	BUTTON_START
	BUTTON_UP
	BUTTON_DOWN
	BUTTON_LEFT
	BUTTON_RIGHT
)

var keys = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,    // Up
	ebiten.KeyDown,  // Down
	ebiten.KeyLeft,  // Left
	ebiten.KeyRight, // Right
}

func pollKeys() uint8 {
	var buttons uint8
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			buttons |= 1 << i
		}
	}
	return buttons
}

// controller models the standard NES pad's shift register. Writing
// bit 0 high starts the strobe; dropping it back low latches the
// current button state. Reads then return one button per read, A
// first, inverted on the bus (pressed reads as 0).
type controller struct {
	strobe  bool
	buttons uint8 // live state
	latched uint8
	reads   uint8
}

func (c *controller) SetButtons(buttons uint8) {
	c.buttons = buttons
}

func (c *controller) write(val uint8) {
	if val&0x01 == 0x01 {
		c.strobe = true
		return
	}

	if c.strobe {
		c.strobe = false
		c.latched = c.buttons
		c.reads = 0
	}
}

func (c *controller) read() uint8 {
	var bit uint8
	switch {
	case c.strobe:
		// While the strobe is high every read sees button A.
		bit = c.buttons & 0x01
	case c.reads < 8:
		bit = (c.latched >> c.reads) & 0x01
		c.reads++
	default:
		// Exhausted pads return 0, which inverts to 1 on the bus.
		bit = 0
	}

	return ^bit & 0x01
}
