package expander

// Write records one register write seen by a Fake.
type Write struct {
	Reg   uint8
	Value uint8
}

// Fake is an in-memory expander for tests and the host simulator.
// GPIO reads return the pin levels set with SetPin unless a scripted
// value is queued for that register.
type Fake struct {
	Regs    [0x16]uint8
	Writes  []Write
	Reads   int
	ReadErr error

	levels [2]uint8
	queued map[uint8][]uint8
}

// NewFake returns a fake with every pin released (high).
func NewFake() *Fake {
	return &Fake{
		levels: [2]uint8{Idle, Idle},
		queued: make(map[uint8][]uint8),
	}
}

// SetPin drives pin high (released) or low (pressed).
func (f *Fake) SetPin(pin uint8, high bool) {
	b := BankOf(pin)
	if high {
		f.levels[b] |= Mask(pin)
	} else {
		f.levels[b] &^= Mask(pin)
	}
}

// Press pulls pin low.
func (f *Fake) Press(pin uint8) { f.SetPin(pin, false) }

// Release lets pin float high.
func (f *Fake) Release(pin uint8) { f.SetPin(pin, true) }

// SetBank sets the raw level byte of a bank.
func (f *Fake) SetBank(b Bank, level uint8) { f.levels[b] = level }

// Level returns the raw level byte of a bank.
func (f *Fake) Level(b Bank) uint8 { return f.levels[b] }

// Queue schedules values to be returned by successive reads of reg
// before falling back to the pin levels.
func (f *Fake) Queue(reg uint8, values ...uint8) {
	f.queued[reg] = append(f.queued[reg], values...)
}

// ReadRegister implements Bus.
func (f *Fake) ReadRegister(reg uint8) (uint8, error) {
	f.Reads++
	if f.ReadErr != nil {
		return 0, f.ReadErr
	}
	if q := f.queued[reg]; len(q) > 0 {
		f.queued[reg] = q[1:]
		return q[0], nil
	}
	switch reg {
	case RegGPIOA:
		return f.levels[BankA], nil
	case RegGPIOB:
		return f.levels[BankB], nil
	}
	if int(reg) < len(f.Regs) {
		return f.Regs[reg], nil
	}
	return 0, nil
}

// WriteRegister implements Bus.
func (f *Fake) WriteRegister(reg, value uint8) error {
	f.Writes = append(f.Writes, Write{Reg: reg, Value: value})
	if int(reg) < len(f.Regs) {
		f.Regs[reg] = value
	}
	return nil
}
