// Package expander talks to the MCP23017 16-bit I/O expander that carries the
// button switches. Pins are numbered 0-15: 0-7 are GPIOA, 8-15 are GPIOB,
// matching the Adafruit MCP23017 library numbering.
package expander

import "errors"

// Address is the 7-bit bus address with A0, A1 and A2 tied to ground.
const Address = 0x20

// Register addresses (IOCON.BANK = 0, paired layout)
const (
	RegIODIRA   = 0x00
	RegIODIRB   = 0x01
	RegGPINTENA = 0x04
	RegGPINTENB = 0x05
	RegGPPUA    = 0x0C
	RegGPPUB    = 0x0D
	RegGPIOA    = 0x12
	RegGPIOB    = 0x13
)

// NumPins is the number of expander pins.
const NumPins = 16

// Idle is the bank level with every pull-up input released.
const Idle uint8 = 0xFF

// Bank identifies one 8-pin group.
type Bank uint8

const (
	BankA Bank = 0
	BankB Bank = 1
)

var ErrInvalidPin = errors.New("invalid expander pin")

// Bus is the byte-oriented register interface to the expander.
type Bus interface {
	ReadRegister(reg uint8) (uint8, error)
	WriteRegister(reg, value uint8) error
}

// BankOf returns the bank a pin belongs to.
func BankOf(pin uint8) Bank {
	if pin < 8 {
		return BankA
	}
	return BankB
}

// Mask returns the bit of pin inside its bank byte.
func Mask(pin uint8) uint8 {
	return 1 << (pin & 0x07)
}

// Register returns the GPIO register holding pin.
func Register(pin uint8) uint8 {
	if BankOf(pin) == BankA {
		return RegGPIOA
	}
	return RegGPIOB
}

// GPIORegister returns the GPIO register of a bank.
func GPIORegister(b Bank) uint8 {
	if b == BankA {
		return RegGPIOA
	}
	return RegGPIOB
}

// Configure sets all 16 pins as inputs with pull-ups and interrupts disabled.
func Configure(bus Bus) error {
	writes := [...][2]uint8{
		{RegIODIRA, 0xFF},
		{RegIODIRB, 0xFF},
		// turn off interrupt triggers (for good measure)
		{RegGPINTENA, 0x00},
		{RegGPINTENB, 0x00},
		{RegGPPUA, 0xFF},
		{RegGPPUB, 0xFF},
	}
	for _, w := range writes {
		if err := bus.WriteRegister(w[0], w[1]); err != nil {
			return err
		}
	}
	return nil
}
