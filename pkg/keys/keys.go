// Package keys enumerates the logical key identifiers a button can be mapped to.
// Identifiers are grouped into contiguous ranges so classification is a pair of
// comparisons.
package keys

// Key is a logical gamepad event (a button, a D-pad direction, a stick direction or nothing).
type Key uint8

// Count is the number of key identifiers.
const Count = 42

const (
	Noop Key = 0

	// D-pad directions
	DPadUp        Key = 1
	DPadUpRight   Key = 2
	DPadRight     Key = 3
	DPadDownRight Key = 4
	DPadDown      Key = 5
	DPadDownLeft  Key = 6
	DPadLeft      Key = 7
	DPadUpLeft    Key = 8
	DPadCenter    Key = 9

	// Regular buttons
	A       Key = 10
	B       Key = 11
	X       Key = 12
	Y       Key = 13
	L       Key = 14
	R       Key = 15
	ZL      Key = 16
	ZR      Key = 17
	Home    Key = 18
	Plus    Key = 19
	Minus   Key = 20
	LStick  Key = 21 // Left stick click
	RStick  Key = 22 // Right stick click
	Capture Key = 23

	// Left stick directions (reserved, not emitted by the control loop)
	LSUp        Key = 24
	LSUpRight   Key = 25
	LSRight     Key = 26
	LSDownRight Key = 27
	LSDown      Key = 28
	LSDownLeft  Key = 29
	LSLeft      Key = 30
	LSUpLeft    Key = 31
	LSCenter    Key = 32

	// Right stick directions (reserved)
	RSUp        Key = 33
	RSUpRight   Key = 34
	RSRight     Key = 35
	RSDownRight Key = 36
	RSDown      Key = 37
	RSDownLeft  Key = 38
	RSLeft      Key = 39
	RSUpLeft    Key = 40
	RSCenter    Key = 41
)

// Category is the class a key belongs to.
type Category uint8

const (
	CategoryNoop Category = iota
	CategoryButton
	CategoryDPad
	CategoryLeftStick
	CategoryRightStick
	CategoryInvalid
)

// IsNoop reports whether k is the no-op key.
func (k Key) IsNoop() bool { return k == Noop }

// IsButton reports whether k is a regular button.
func (k Key) IsButton() bool { return A <= k && k <= Capture }

// IsDPad reports whether k is a D-pad direction (center included).
func (k Key) IsDPad() bool { return DPadUp <= k && k <= DPadCenter }

// IsLeftStick reports whether k is a left stick direction.
func (k Key) IsLeftStick() bool { return LSUp <= k && k <= LSCenter }

// IsRightStick reports whether k is a right stick direction.
func (k Key) IsRightStick() bool { return RSUp <= k && k <= RSCenter }

// Valid reports whether k is inside the identifier space.
func (k Key) Valid() bool { return k < Count }

// Category classifies k. Identifiers outside [0, Count) are CategoryInvalid.
func (k Key) Category() Category {
	switch {
	case k.IsNoop():
		return CategoryNoop
	case k.IsDPad():
		return CategoryDPad
	case k.IsButton():
		return CategoryButton
	case k.IsLeftStick():
		return CategoryLeftStick
	case k.IsRightStick():
		return CategoryRightStick
	}
	return CategoryInvalid
}

var names = [Count]string{
	"NOOP",
	"DP_UP", "DP_UP_RIGHT", "DP_RIGHT", "DP_DOWN_RIGHT",
	"DP_DOWN", "DP_DOWN_LEFT", "DP_LEFT", "DP_UP_LEFT", "DP_CENTER",
	"A", "B", "X", "Y", "L", "R", "ZL", "ZR",
	"HOME", "PLUS", "MINUS", "LS_PRESS", "RS_PRESS", "CAPTURE",
	"LS_UP", "LS_UP_RIGHT", "LS_RIGHT", "LS_DOWN_RIGHT",
	"LS_DOWN", "LS_DOWN_LEFT", "LS_LEFT", "LS_UP_LEFT", "LS_CENTER",
	"RS_UP", "RS_UP_RIGHT", "RS_RIGHT", "RS_DOWN_RIGHT",
	"RS_DOWN", "RS_DOWN_LEFT", "RS_LEFT", "RS_UP_LEFT", "RS_CENTER",
}

// String returns the key name, e.g. "DP_UP" or "ZR".
func (k Key) String() string {
	if !k.Valid() {
		return "INVALID"
	}
	return names[k]
}

func (c Category) String() string {
	switch c {
	case CategoryNoop:
		return "noop"
	case CategoryButton:
		return "button"
	case CategoryDPad:
		return "dpad"
	case CategoryLeftStick:
		return "left-stick"
	case CategoryRightStick:
		return "right-stick"
	}
	return "invalid"
}
