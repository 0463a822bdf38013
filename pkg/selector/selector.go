// Package selector reads the 4-bit configuration switch at boot.
//
// Three bits are wired to local pins and read once. The fourth goes through
// the expander and is polled until two consecutive readings agree.
package selector

import (
	"errors"
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/expander"
)

const (
	// Local pins carrying configuration bits 1-3
	PinCfg1 uint8 = 1
	PinCfg2 uint8 = 4
	PinCfg3 uint8 = 3

	// PinCfg4 is the expander pin (GPB6) carrying configuration bit 4.
	PinCfg4 uint8 = 14

	// PollDelay is the wait before each read of the expander bit.
	PollDelay = 5 * time.Millisecond

	// DefaultMaxAttempts bounds the polling of the expander bit.
	DefaultMaxAttempts = 200
)

var ErrUnstable = errors.New("configuration bit did not settle")

// Pins is the local pin interface. Read returns true for a high level.
type Pins interface {
	ConfigureInputPullup(pin uint8)
	Read(pin uint8) bool
}

// Bits are the four switch positions, true when the switch is on (pin low).
type Bits [4]bool

// Index combines the bits, first bit most significant.
func (b Bits) Index() uint8 {
	var idx uint8
	for _, on := range b {
		idx <<= 1
		if on {
			idx |= 1
		}
	}
	return idx
}

// Selector derives the configuration index from the switch.
type Selector struct {
	Pins  Pins
	Bus   expander.Bus
	Sleep func(time.Duration)

	// MaxAttempts caps expander reads while waiting for a stable value.
	// Zero or less polls forever.
	MaxAttempts int
}

// New returns a selector with the default attempt cap and time.Sleep.
func New(pins Pins, bus expander.Bus) *Selector {
	return &Selector{
		Pins:        pins,
		Bus:         bus,
		Sleep:       time.Sleep,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// ConfigurePins sets the local configuration pins as pull-up inputs.
func (s *Selector) ConfigurePins() {
	s.Pins.ConfigureInputPullup(PinCfg1)
	s.Pins.ConfigureInputPullup(PinCfg2)
	s.Pins.ConfigureInputPullup(PinCfg3)
}

// Select reads the switch and returns the configuration index in [0, 16).
func (s *Selector) Select() (uint8, Bits, error) {
	var bits Bits
	bits[0] = !s.Pins.Read(PinCfg1)
	bits[1] = !s.Pins.Read(PinCfg2)
	bits[2] = !s.Pins.Read(PinCfg3)

	raw, err := s.settle(expander.Register(PinCfg4))
	if err != nil {
		return 0, bits, err
	}
	bits[3] = raw&expander.Mask(PinCfg4) == 0

	return bits.Index(), bits, nil
}

// settle reads reg until two consecutive readings agree.
// The first reading is compared against 0x00.
func (s *Selector) settle(reg uint8) (uint8, error) {
	var last uint8
	for attempt := 0; s.MaxAttempts <= 0 || attempt < s.MaxAttempts; attempt++ {
		s.Sleep(PollDelay)
		raw, err := s.Bus.ReadRegister(reg)
		if err != nil {
			raw = 0
		}
		if raw == last {
			return raw, nil
		}
		last = raw
	}
	return 0, ErrUnstable
}
