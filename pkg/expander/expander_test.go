package expander

import (
	"errors"
	"testing"
)

func TestPinHelpers(t *testing.T) {
	tests := []struct {
		pin  uint8
		bank Bank
		mask uint8
		reg  uint8
	}{
		{0, BankA, 0x01, RegGPIOA},
		{7, BankA, 0x80, RegGPIOA},
		{8, BankB, 0x01, RegGPIOB},
		{14, BankB, 0x40, RegGPIOB},
		{15, BankB, 0x80, RegGPIOB},
	}

	for _, tt := range tests {
		if got := BankOf(tt.pin); got != tt.bank {
			t.Errorf("BankOf(%d): expected %d, got %d", tt.pin, tt.bank, got)
		}
		if got := Mask(tt.pin); got != tt.mask {
			t.Errorf("Mask(%d): expected 0x%02x, got 0x%02x", tt.pin, tt.mask, got)
		}
		if got := Register(tt.pin); got != tt.reg {
			t.Errorf("Register(%d): expected 0x%02x, got 0x%02x", tt.pin, tt.reg, got)
		}
	}
}

func TestConfigure(t *testing.T) {
	f := NewFake()
	if err := Configure(f); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	want := map[uint8]uint8{
		RegIODIRA:   0xFF,
		RegIODIRB:   0xFF,
		RegGPINTENA: 0x00,
		RegGPINTENB: 0x00,
		RegGPPUA:    0xFF,
		RegGPPUB:    0xFF,
	}
	if len(f.Writes) != len(want) {
		t.Fatalf("Expected %d writes, got %d", len(want), len(f.Writes))
	}
	for _, w := range f.Writes {
		v, ok := want[w.Reg]
		if !ok {
			t.Errorf("Unexpected write to 0x%02x", w.Reg)
			continue
		}
		if w.Value != v {
			t.Errorf("Register 0x%02x: expected 0x%02x, got 0x%02x", w.Reg, v, w.Value)
		}
	}
}

func TestFakeLevels(t *testing.T) {
	f := NewFake()
	f.Press(3)
	f.Press(12)

	a, _ := f.ReadRegister(RegGPIOA)
	b, _ := f.ReadRegister(RegGPIOB)
	if a != 0xF7 {
		t.Errorf("GPIOA: expected 0xF7, got 0x%02x", a)
	}
	if b != 0xEF {
		t.Errorf("GPIOB: expected 0xEF, got 0x%02x", b)
	}

	f.Release(3)
	a, _ = f.ReadRegister(RegGPIOA)
	if a != 0xFF {
		t.Errorf("GPIOA after release: expected 0xFF, got 0x%02x", a)
	}
}

func TestFakeQueue(t *testing.T) {
	f := NewFake()
	f.Queue(RegGPIOB, 0x00, 0x40)

	for i, want := range []uint8{0x00, 0x40, 0xFF} {
		got, err := f.ReadRegister(RegGPIOB)
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("read %d: expected 0x%02x, got 0x%02x", i, want, got)
		}
	}
}

type fakeI2C struct {
	addr uint16
	w    []byte
	resp byte
	err  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.addr = addr
	f.w = append(f.w[:0], w...)
	if len(r) > 0 {
		r[0] = f.resp
	}
	return f.err
}

func TestI2C(t *testing.T) {
	bus := &fakeI2C{resp: 0xA5}
	d := NewI2C(bus)

	v, err := d.ReadRegister(RegGPIOA)
	if err != nil {
		t.Fatalf("ReadRegister failed: %v", err)
	}
	if v != 0xA5 {
		t.Errorf("Expected 0xA5, got 0x%02x", v)
	}
	if bus.addr != Address {
		t.Errorf("Expected address 0x%02x, got 0x%02x", Address, bus.addr)
	}
	if len(bus.w) != 1 || bus.w[0] != RegGPIOA {
		t.Errorf("Expected register write [0x12], got %v", bus.w)
	}

	if err := d.WriteRegister(RegGPPUA, 0xFF); err != nil {
		t.Fatalf("WriteRegister failed: %v", err)
	}
	if len(bus.w) != 2 || bus.w[0] != RegGPPUA || bus.w[1] != 0xFF {
		t.Errorf("Expected [0x0c 0xff], got %v", bus.w)
	}

	bus.err = errors.New("nack")
	if _, err := d.ReadRegister(RegGPIOB); err == nil {
		t.Error("Expected error on NACK")
	}
}
