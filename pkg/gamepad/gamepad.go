// Package gamepad implements a Nintendo Switch compatible HID gamepad using Report ID 4.
// This is designed to work with the composite HID descriptor.
//
// Pad only buffers state; nothing reaches the host until Commit is called.
// This allows atomic updates - release, press and set the D-pad, then send once.
package gamepad

import (
	"github.com/tuffrabit/tinygo-nezoba/pkg/keys"
)

// ReportID is the HID report ID of the gamepad in the composite descriptor.
const ReportID = 0x04

// ReportSize is the report length including the report ID.
//
//	Byte 0: Report ID (4)
//	Byte 1: Buttons low byte (buttons 0-7)
//	Byte 2: Buttons high byte (buttons 8-13)
//	Byte 3: Hat switch (0-7, 0x0F centered)
//	Byte 4: Left stick X
//	Byte 5: Left stick Y
//	Byte 6: Right stick X
//	Byte 7: Right stick Y
//	Byte 8: Vendor specific
const ReportSize = 9

// Button is a bit index in the report button field.
type Button uint8

// Switch button bits
const (
	ButtonY       Button = 0
	ButtonB       Button = 1
	ButtonA       Button = 2
	ButtonX       Button = 3
	ButtonL       Button = 4
	ButtonR       Button = 5
	ButtonZL      Button = 6
	ButtonZR      Button = 7
	ButtonMinus   Button = 8
	ButtonPlus    Button = 9
	ButtonLStick  Button = 10
	ButtonRStick  Button = 11
	ButtonHome    Button = 12
	ButtonCapture Button = 13
)

// Hat is a hat-switch value.
type Hat uint8

const (
	HatUp        Hat = 0
	HatUpRight   Hat = 1
	HatRight     Hat = 2
	HatDownRight Hat = 3
	HatDown      Hat = 4
	HatDownLeft  Hat = 5
	HatLeft      Hat = 6
	HatUpLeft    Hat = 7
	HatCenter    Hat = 0x0F
)

// AxisCenter is the resting value of every stick axis.
const AxisCenter = 0x80

// buttonOf maps regular-button keys to report bits, indexed by key - keys.A.
var buttonOf = [keys.Capture - keys.A + 1]Button{
	ButtonA,
	ButtonB,
	ButtonX,
	ButtonY,
	ButtonL,
	ButtonR,
	ButtonZL,
	ButtonZR,
	ButtonHome,
	ButtonPlus,
	ButtonMinus,
	ButtonLStick,
	ButtonRStick,
	ButtonCapture,
}

// hatOf maps D-pad keys to hat values, indexed by key - keys.DPadUp.
var hatOf = [keys.DPadCenter - keys.DPadUp + 1]Hat{
	HatUp,
	HatUpRight,
	HatRight,
	HatDownRight,
	HatDown,
	HatDownLeft,
	HatLeft,
	HatUpLeft,
	HatCenter,
}

// ButtonFor returns the report bit of a regular-button key.
func ButtonFor(k keys.Key) (Button, bool) {
	if !k.IsButton() {
		return 0, false
	}
	return buttonOf[k-keys.A], true
}

// HatFor returns the hat value of a D-pad key.
func HatFor(k keys.Key) (Hat, bool) {
	if !k.IsDPad() {
		return HatCenter, false
	}
	return hatOf[k-keys.DPadUp], true
}

// Sender transmits one report to the host.
type Sender interface {
	Send(report []byte)
}

// Pad buffers the gamepad state between commits.
type Pad struct {
	tx      Sender
	buttons uint16
	hat     Hat
	axes    [4]uint8
	report  [ReportSize]byte
	last    [ReportSize]byte
	sent    bool
	started bool
}

// New returns a pad sending reports through tx.
func New(tx Sender) *Pad {
	p := &Pad{tx: tx}
	p.Reset()
	return p
}

// Begin resets the state and sends a neutral report.
func (p *Pad) Begin() {
	p.Reset()
	p.started = true
	p.sent = false
	p.Commit()
}

// Reset clears all buttons, centers the hat and the sticks.
func (p *Pad) Reset() {
	p.buttons = 0
	p.hat = HatCenter
	p.axes = [4]uint8{AxisCenter, AxisCenter, AxisCenter, AxisCenter}
}

// ReleaseAll releases every button. The hat is left as is since every
// cycle sets it.
func (p *Pad) ReleaseAll() {
	p.buttons = 0
}

// Press presses the button bound to k. Non-button keys are ignored.
func (p *Pad) Press(k keys.Key) {
	if b, ok := ButtonFor(k); ok {
		p.buttons |= 1 << b
	}
}

// Release releases the button bound to k.
func (p *Pad) Release(k keys.Key) {
	if b, ok := ButtonFor(k); ok {
		p.buttons &^= 1 << b
	}
}

// IsPressed returns true if the button bound to k is currently pressed.
func (p *Pad) IsPressed(k keys.Key) bool {
	b, ok := ButtonFor(k)
	return ok && p.buttons&(1<<b) != 0
}

// SetDPad sets the hat from a D-pad key. Other keys are ignored.
func (p *Pad) SetDPad(k keys.Key) {
	if h, ok := HatFor(k); ok {
		p.hat = h
	}
}

// Hat returns the buffered hat value.
func (p *Pad) Hat() Hat { return p.hat }

// Buttons returns the buffered button bits.
func (p *Pad) Buttons() uint16 { return p.buttons }

// Commit sends the buffered state as one report. A report equal to the last
// one sent is dropped.
func (p *Pad) Commit() {
	if !p.started {
		return
	}
	p.report[0] = ReportID
	p.report[1] = byte(p.buttons)
	p.report[2] = byte(p.buttons >> 8)
	p.report[3] = byte(p.hat)
	p.report[4] = p.axes[0]
	p.report[5] = p.axes[1]
	p.report[6] = p.axes[2]
	p.report[7] = p.axes[3]
	p.report[8] = 0
	if p.sent && p.report == p.last {
		return
	}
	p.last = p.report
	p.sent = true
	p.tx.Send(p.report[:])
}
