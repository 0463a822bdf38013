// Package input polls the expander banks and debounces them.
//
// Debouncing is time-windowed: a raw reading is accepted once it has stayed
// unchanged for longer than DebounceWindow. Any change restarts the window.
package input

import (
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/expander"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
)

// DebounceWindow is how long a bank reading must stay stable before it is accepted.
const DebounceWindow = 5 * time.Millisecond

// Bank is the debounce state of one 8-bit expander bank.
type Bank struct {
	Accepted   uint8     // debounced state
	Previous   uint8     // raw reading of the previous cycle
	LastChange time.Time // last time the raw reading changed
}

// NewBank returns a bank with every pin released.
func NewBank() Bank {
	return Bank{
		Accepted: expander.Idle,
		Previous: expander.Idle,
	}
}

// Update feeds one raw reading taken at now.
// It reports whether the accepted state changed.
func (b *Bank) Update(raw uint8, now time.Time) bool {
	if raw != b.Previous {
		b.LastChange = now
	}
	changed := false
	if now.Sub(b.LastChange) > DebounceWindow && raw != b.Accepted {
		b.Accepted = raw
		changed = true
	}
	b.Previous = raw
	return changed
}

// Reader exposes the debounced pressed/released state of every button.
type Reader struct {
	bus   expander.Bus
	banks [2]Bank
}

// NewReader returns a reader polling bus.
func NewReader(bus expander.Bus) *Reader {
	return &Reader{
		bus:   bus,
		banks: [2]Bank{NewBank(), NewBank()},
	}
}

// Refresh reads GPIOA then GPIOB and updates both banks.
// A failed read counts as an idle bank (all released).
func (r *Reader) Refresh(now time.Time) {
	for i := range r.banks {
		raw, err := r.bus.ReadRegister(expander.GPIORegister(expander.Bank(i)))
		if err != nil {
			raw = expander.Idle
		}
		r.banks[i].Update(raw, now)
	}
}

// IsPressed reports whether button is pressed in the accepted state.
// Inputs are pulled up, so a 0 bit means pressed.
func (r *Reader) IsPressed(button mapping.Button) bool {
	pin := mapping.ButtonPins[button]
	return r.banks[expander.BankOf(pin)].Accepted&expander.Mask(pin) == 0
}

// Banks returns a copy of the bank states.
func (r *Reader) Banks() [2]Bank {
	return r.banks
}
