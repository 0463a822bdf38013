package expander

import (
	"tinygo.org/x/drivers"
)

// I2C is the expander on a real two-wire bus.
// Buffers are kept in the struct so polling does not allocate.
type I2C struct {
	bus     drivers.I2C
	address uint16
	w       [2]byte
	r       [1]byte
}

// NewI2C returns an expander bound to bus at the default address.
func NewI2C(bus drivers.I2C) *I2C {
	return &I2C{
		bus:     bus,
		address: Address,
	}
}

// ReadRegister reads one byte from reg.
func (d *I2C) ReadRegister(reg uint8) (uint8, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.address, d.w[:1], d.r[:]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

// WriteRegister writes value to reg.
func (d *I2C) WriteRegister(reg, value uint8) error {
	d.w[0] = reg
	d.w[1] = value
	return d.bus.Tx(d.address, d.w[:], nil)
}
