// Package controller runs the per-cycle control loop: it resolves pressed
// buttons through the active mapping, gates turbo keys, cleans opposite
// directions and sends the result to the gamepad.
package controller

import (
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/keys"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
)

// TurboPeriod is how often the turbo phase flips. A turbo key held down is
// pressed for one period and released for the next.
const TurboPeriod = 1600 * time.Millisecond / 120

// MaxPresses bounds the number of key presses in one cycle.
const MaxPresses = mapping.NumButtons * mapping.SlotsPerButton

// Gamepad is the emulated gamepad the loop reports to.
type Gamepad interface {
	Begin()
	ReleaseAll()
	Press(k keys.Key)
	SetDPad(k keys.Key)
	Commit()
}

// Input is the debounced button state.
type Input interface {
	Refresh(now time.Time)
	IsPressed(b mapping.Button) bool
}

// Emission is the effect of one resolved slot.
type Emission struct {
	Key keys.Key
	// Direction is set for D-pad keys, which feed the accumulator
	// instead of being pressed.
	Direction bool
}

// Report is what one cycle sent to the gamepad.
type Report struct {
	Presses  [MaxPresses]keys.Key
	NPresses int
	DPad     keys.Key
	Turbo    bool
}

// Pressed returns the keys pressed in this cycle in emission order.
func (r *Report) Pressed() []keys.Key {
	return r.Presses[:r.NPresses]
}

// Has reports whether k was pressed in this cycle.
func (r *Report) Has(k keys.Key) bool {
	for _, p := range r.Pressed() {
		if p == k {
			return true
		}
	}
	return false
}

// Controller owns all state mutated by the control loop.
type Controller struct {
	active mapping.Active
	input  Input
	pad    Gamepad

	turbo      bool
	lastToggle time.Time

	cycles uint32
	report Report
}

// New returns a controller for an active mapping.
// The turbo phase starts off and flips on the first cycle.
func New(active mapping.Active, in Input, pad Gamepad) *Controller {
	return &Controller{
		active: active,
		input:  in,
		pad:    pad,
	}
}

// Active returns the active mapping.
func (c *Controller) Active() *mapping.Active {
	return &c.active
}

// TurboPhase returns the current turbo phase.
func (c *Controller) TurboPhase() bool {
	return c.turbo
}

// Cycles returns the number of completed cycles.
func (c *Controller) Cycles() uint32 {
	return c.cycles
}

// Step runs one control-loop cycle at time now and returns what was reported.
// The returned report is reused by the next Step.
func (c *Controller) Step(now time.Time) *Report {
	c.pad.ReleaseAll()

	if now.Sub(c.lastToggle) >= TurboPeriod {
		c.lastToggle = now
		c.turbo = !c.turbo
	}

	c.input.Refresh(now)

	c.report.NPresses = 0
	c.report.Turbo = c.turbo

	var dir Direction
	for b := mapping.Button(0); b < mapping.NumButtons; b++ {
		if !c.input.IsPressed(b) {
			continue
		}
		for _, slot := range c.active.Slots[b] {
			e, ok := resolveSlot(slot, c.turbo)
			if !ok {
				continue
			}
			if e.Direction {
				dir.Add(e.Key)
				continue
			}
			c.pad.Press(e.Key)
			c.report.Presses[c.report.NPresses] = e.Key
			c.report.NPresses++
		}
	}

	dir.Clamp()
	c.report.DPad = dir.DPad()
	c.pad.SetDPad(c.report.DPad)

	c.pad.Commit()
	c.cycles++
	return &c.report
}

// resolveSlot returns what a slot of a pressed button produces in the
// current turbo phase. Turbo buttons only press while the phase is on.
// Turbo is never applied to directions.
func resolveSlot(slot mapping.Slot, phase bool) (Emission, bool) {
	k := slot.Key
	switch {
	case k.IsButton():
		if slot.Turbo && !phase {
			return Emission{}, false
		}
		return Emission{Key: k}, true
	case k.IsDPad():
		return Emission{Key: k, Direction: true}, true
	}
	// no-op and stick keys produce nothing
	return Emission{}, false
}

// Run steps the controller forever, or until stop returns true.
// now supplies the time of each cycle.
func (c *Controller) Run(now func() time.Time, stop func() bool) {
	for stop == nil || !stop() {
		c.Step(now())
	}
}
