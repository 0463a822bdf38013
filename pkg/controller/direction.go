package controller

import (
	"github.com/tuffrabit/tinygo-nezoba/pkg/keys"
)

// Direction accumulates D-pad keys of one cycle.
// Positive X is right, positive Y is up.
type Direction struct {
	X, Y int8
}

// Add moves the accumulator by the unit vector of a D-pad key.
// Center and non-direction keys leave it unchanged.
func (d *Direction) Add(k keys.Key) {
	switch k {
	case keys.DPadUp:
		d.Y++
	case keys.DPadDown:
		d.Y--
	case keys.DPadLeft:
		d.X--
	case keys.DPadRight:
		d.X++
	case keys.DPadUpRight:
		d.Y++
		d.X++
	case keys.DPadDownRight:
		d.Y--
		d.X++
	case keys.DPadUpLeft:
		d.Y++
		d.X--
	case keys.DPadDownLeft:
		d.Y--
		d.X--
	}
}

// Clamp limits both axes to [-1, 1].
func (d *Direction) Clamp() {
	d.X = clamp(d.X)
	d.Y = clamp(d.Y)
}

func clamp(v int8) int8 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// dpadOf is indexed by [x+1][y+1].
var dpadOf = [3][3]keys.Key{
	{keys.DPadDownLeft, keys.DPadLeft, keys.DPadUpLeft},
	{keys.DPadDown, keys.DPadCenter, keys.DPadUp},
	{keys.DPadDownRight, keys.DPadRight, keys.DPadUpRight},
}

// DPad returns the D-pad state of a clamped accumulator.
func (d Direction) DPad() keys.Key {
	c := d
	c.Clamp()
	return dpadOf[c.X+1][c.Y+1]
}
