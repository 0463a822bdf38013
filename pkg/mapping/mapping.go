// Package mapping holds the compiled-in button-to-key configurations and the
// active mapping selected at boot.
//
// The button order used by every Config is the physical order defined by the
// Button constants, and ButtonPins maps the same order onto expander pins.
// The two must be edited together.
package mapping

import (
	"errors"

	"github.com/tuffrabit/tinygo-nezoba/pkg/keys"
)

const (
	NumButtons     = 15
	SlotsPerButton = 3
	NumConfigs     = 16

	// ConfigSize is the encoded size of one Config in bytes.
	ConfigSize = NumButtons * SlotsPerButton

	turboBit = 0x80
)

// Button is a physical button identifier in [0, NumButtons).
//
//	         -:12 +:13  home:14
//
//	left:0 down:1 right:2      X:4  Y:5  ZL:6 ZR:7
//	                           A:8  B:9  L:10 R:11
//	              up:3
type Button uint8

const (
	ButtonLeft  Button = 0
	ButtonDown  Button = 1
	ButtonRight Button = 2
	ButtonUp    Button = 3
	ButtonX     Button = 4
	ButtonY     Button = 5
	ButtonZL    Button = 6
	ButtonZR    Button = 7
	ButtonA     Button = 8
	ButtonB     Button = 9
	ButtonL     Button = 10
	ButtonR     Button = 11
	ButtonMinus Button = 12
	ButtonPlus  Button = 13
	ButtonHome  Button = 14
)

// ButtonPins maps each button to its expander pin (0-7 GPIOA, 8-15 GPIOB).
// Expander pin 14 is not a button: it carries the 4th configuration bit.
var ButtonPins = [NumButtons]uint8{
	// left down right up  X  Y  ZL
	11, 12, 13, 7, 0, 1, 2,
	// ZR A  B  L  R  -  +  home
	8, 3, 4, 5, 6, 9, 10, 15,
}

// Slot is one key assignment of a button, optionally with turbo.
type Slot struct {
	Key   keys.Key
	Turbo bool
}

// None is the empty slot.
var None = Slot{}

// Plain returns a slot pressing k.
func Plain(k keys.Key) Slot { return Slot{Key: k} }

// Turbo returns a slot repeatedly pressing k while held.
func Turbo(k keys.Key) Slot { return Slot{Key: k, Turbo: true} }

// Encode packs the slot into one byte: bit 7 is turbo, bits 0-6 the key.
func (s Slot) Encode() byte {
	b := byte(s.Key) &^ turboBit
	if s.Turbo {
		b |= turboBit
	}
	return b
}

// DecodeSlot unpacks a byte produced by Encode.
func DecodeSlot(b byte) Slot {
	return Slot{Key: keys.Key(b &^ turboBit), Turbo: b&turboBit != 0}
}

// Config is one complete button-to-key assignment.
type Config struct {
	Name  string
	Slots [NumButtons][SlotsPerButton]Slot
}

// Active is the mapping in effect, fixed after boot.
type Active struct {
	Index uint8
	Slots [NumButtons][SlotsPerButton]Slot
}

// Errors
var (
	ErrInvalidConfig = errors.New("configuration index out of range")
	ErrInvalidKey    = errors.New("key out of range")
	ErrTurboNotKey   = errors.New("turbo on a non-button key")
	ErrInvalidSize   = errors.New("invalid mapping size")
)

// Load copies configuration index of Table into an Active mapping.
func Load(index uint8) (Active, error) {
	return LoadFrom(&Table, index)
}

// LoadFrom copies configuration index of table into an Active mapping.
func LoadFrom(table *[NumConfigs]Config, index uint8) (Active, error) {
	if int(index) >= NumConfigs {
		return Active{}, ErrInvalidConfig
	}
	a := Active{Index: index}
	for b := 0; b < NumButtons; b++ {
		a.Slots[b][0] = table[index].Slots[b][0]
		a.Slots[b][1] = table[index].Slots[b][1]
		a.Slots[b][2] = table[index].Slots[b][2]
	}
	return a, nil
}

// Validate checks every slot of c: keys must be in range and only regular
// buttons may carry turbo.
func (c *Config) Validate() error {
	for b := range c.Slots {
		for _, s := range c.Slots[b] {
			if !s.Key.Valid() {
				return ErrInvalidKey
			}
			if s.Turbo && !s.Key.IsButton() {
				return ErrTurboNotKey
			}
		}
	}
	return nil
}

// Validate checks every configuration of table.
func Validate(table *[NumConfigs]Config) error {
	for i := range table {
		if err := table[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarshalBinary encodes the slots of c in button order, 3 bytes per button.
func (c *Config) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ConfigSize)
	encodeSlots(buf, &c.Slots)
	return buf, nil
}

// UnmarshalBinary decodes the slots of c. The name is not part of the encoding.
func (c *Config) UnmarshalBinary(data []byte) error {
	if len(data) < ConfigSize {
		return ErrInvalidSize
	}
	for b := 0; b < NumButtons; b++ {
		for s := 0; s < SlotsPerButton; s++ {
			c.Slots[b][s] = DecodeSlot(data[b*SlotsPerButton+s])
		}
	}
	return c.Validate()
}

// MarshalBinary encodes the active slots like Config.MarshalBinary,
// prefixed with the configuration index.
func (a *Active) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 1+ConfigSize)
	buf[0] = a.Index
	encodeSlots(buf[1:], &a.Slots)
	return buf, nil
}

func encodeSlots(buf []byte, slots *[NumButtons][SlotsPerButton]Slot) {
	for b := 0; b < NumButtons; b++ {
		for s := 0; s < SlotsPerButton; s++ {
			buf[b*SlotsPerButton+s] = slots[b][s].Encode()
		}
	}
}
