package interact

import "math"

// Pointer tracks one mouse button to tell clicks from drags.
type Pointer struct {
	X, Y float64

	// ClickSlop is how far in pixels the pointer may travel between press
	// and release and still count as a click.
	ClickSlop float64

	down           bool
	pressX, pressY float64
}

func (p *Pointer) Down() bool {
	return p.down
}

func (p *Pointer) Press(x, y float64) {
	p.down = true
	p.pressX, p.pressY = x, y
	p.X, p.Y = x, y
}

// Move records a new position and returns the delta from the last one.
func (p *Pointer) Move(x, y float64) (dx, dy float64) {
	dx, dy = x-p.X, y-p.Y
	p.X, p.Y = x, y
	return dx, dy
}

// Release ends the press and reports whether it was a click.
func (p *Pointer) Release(x, y float64) bool {
	if !p.down {
		return false
	}
	p.down = false
	p.X, p.Y = x, y
	return math.Hypot(x-p.pressX, y-p.pressY) <= p.ClickSlop
}
