package boot

import (
	"errors"
	"testing"
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/config"
	"github.com/tuffrabit/tinygo-nezoba/pkg/expander"
	"github.com/tuffrabit/tinygo-nezoba/pkg/keys"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
	"github.com/tuffrabit/tinygo-nezoba/pkg/selector"
)

type fakePins struct {
	levels     map[uint8]bool
	configured []uint8
}

// newFakePins sets the three local switches, true is on (pin low).
func newFakePins(cfg1, cfg2, cfg3 bool) *fakePins {
	return &fakePins{levels: map[uint8]bool{
		selector.PinCfg1: !cfg1,
		selector.PinCfg2: !cfg2,
		selector.PinCfg3: !cfg3,
	}}
}

func (p *fakePins) ConfigureInputPullup(pin uint8) { p.configured = append(p.configured, pin) }
func (p *fakePins) Read(pin uint8) bool { return p.levels[pin] }

type fakePad struct {
	begun   int
	presses []keys.Key
	commits int
}

func (p *fakePad) Begin() { p.begun++ }
func (p *fakePad) ReleaseAll() { p.presses = p.presses[:0] }
func (p *fakePad) Press(k keys.Key) { p.presses = append(p.presses, k) }
func (p *fakePad) SetDPad(k keys.Key) {}
func (p *fakePad) Commit() { p.commits++ }

type fakeRecords struct {
	boots  []uint8
	faults []config.Fault
	err    error
}

func (r *fakeRecords) RecordBoot(index, switchBits uint8) error {
	r.boots = append(r.boots, index)
	return r.err
}

func (r *fakeRecords) RecordFault(f config.Fault) error {
	r.faults = append(r.faults, f)
	return r.err
}

// brokenBus refuses writes.
type brokenBus struct {
	*expander.Fake
}

func (b brokenBus) WriteRegister(reg, value uint8) error {
	return errors.New("nack")
}

func newHardware(pins *fakePins, bus expander.Bus) (Hardware, *fakePad, *fakeRecords) {
	pad := &fakePad{}
	rec := &fakeRecords{}
	return Hardware{
		Pins:    pins,
		Bus:     bus,
		Pad:     pad,
		Sleep:   func(time.Duration) {},
		Records: rec,
	}, pad, rec
}

func TestBootSelectsConfig(t *testing.T) {
	f := expander.NewFake()
	hw, pad, rec := newHardware(newFakePins(false, false, true), f)

	ctrl, info, err := Boot(hw)
	if err != nil {
		t.Fatalf("Boot failed: %v", err)
	}
	if info.Index != 2 {
		t.Errorf("Expected config 2, got %d", info.Index)
	}
	if info.Name != mapping.Table[2].Name {
		t.Errorf("Expected name %q, got %q", mapping.Table[2].Name, info.Name)
	}
	if ctrl.Active().Index != 2 {
		t.Errorf("Expected active index 2, got %d", ctrl.Active().Index)
	}
	if pad.begun != 1 {
		t.Errorf("Expected Begin once, got %d", pad.begun)
	}
	if len(rec.boots) != 1 || rec.boots[0] != 2 {
		t.Errorf("Expected boot of config 2 recorded, got %v", rec.boots)
	}
	if len(rec.faults) != 0 {
		t.Errorf("Expected no faults, got %v", rec.faults)
	}
}

func TestBootConfiguresInputs(t *testing.T) {
	f := expander.NewFake()
	pins := newFakePins(false, false, false)
	hw, _, _ := newHardware(pins, f)

	if _, _, err := Boot(hw); err != nil {
		t.Fatalf("Boot failed: %v", err)
	}
	if len(pins.configured) != 3 {
		t.Errorf("Expected 3 local pins configured, got %v", pins.configured)
	}
	if f.Regs[expander.RegGPPUA] != 0xFF || f.Regs[expander.RegGPPUB] != 0xFF {
		t.Errorf("Expected expander pull-ups enabled, got 0x%x 0x%x", f.Regs[expander.RegGPPUA], f.Regs[expander.RegGPPUB])
	}
}

func TestBootExpanderBit(t *testing.T) {
	f := expander.NewFake()
	f.Press(selector.PinCfg4)
	hw, _, _ := newHardware(newFakePins(true, false, false), f)

	_, info, err := Boot(hw)
	if err != nil {
		t.Fatalf("Boot failed: %v", err)
	}
	if info.Index != 9 {
		t.Errorf("Expected config 9, got %d", info.Index)
	}
}

func TestBootRunsMapping(t *testing.T) {
	f := expander.NewFake()
	hw, pad, _ := newHardware(newFakePins(false, false, false), f)

	ctrl, _, err := Boot(hw)
	if err != nil {
		t.Fatalf("Boot failed: %v", err)
	}

	// Hold A long enough to pass the debounce window
	f.Press(mapping.ButtonPins[mapping.ButtonA])
	start := time.Unix(0, 0)
	for i := 0; i < 7; i++ {
		ctrl.Step(start.Add(time.Duration(i) * time.Millisecond))
	}

	want := mapping.Table[0].Slots[mapping.ButtonA][0].Key
	found := false
	for _, k := range pad.presses {
		if k == want {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s pressed, got %v", want, pad.presses)
	}
}

func TestBootUnstableSwitch(t *testing.T) {
	f := expander.NewFake()
	reg := expander.Register(selector.PinCfg4)
	for i := 0; i < 10; i++ {
		f.Queue(reg, 0xFF, 0x00)
	}
	hw, pad, rec := newHardware(newFakePins(false, false, false), f)
	hw.MaxAttempts = 20

	ctrl, _, err := Boot(hw)
	if ctrl != nil {
		t.Error("Expected no controller")
	}
	if !errors.Is(err, selector.ErrUnstable) {
		t.Fatalf("Expected ErrUnstable, got %v", err)
	}
	if FaultOf(err) != config.FaultUnstableSwitch {
		t.Errorf("Expected FaultUnstableSwitch, got %s", FaultOf(err))
	}
	if pad.begun != 0 {
		t.Error("Gamepad should not start on a fatal boot")
	}
	if len(rec.faults) != 1 || rec.faults[0] != config.FaultUnstableSwitch {
		t.Errorf("Expected fault recorded, got %v", rec.faults)
	}
}

func TestBootExpanderFault(t *testing.T) {
	hw, _, rec := newHardware(newFakePins(false, false, false), brokenBus{expander.NewFake()})

	_, _, err := Boot(hw)
	if FaultOf(err) != config.FaultExpander {
		t.Fatalf("Expected FaultExpander, got %v", err)
	}
	if len(rec.faults) != 1 {
		t.Errorf("Expected one fault recorded, got %v", rec.faults)
	}
}

func TestBootInvalidTable(t *testing.T) {
	table := mapping.Table
	table[5].Slots[mapping.ButtonUp][1] = mapping.Turbo(keys.DPadUp)

	hw, _, _ := newHardware(newFakePins(false, false, false), expander.NewFake())
	hw.Table = &table

	_, _, err := Boot(hw)
	if FaultOf(err) != config.FaultInvalidTable {
		t.Fatalf("Expected FaultInvalidTable, got %v", err)
	}
	if !errors.Is(err, mapping.ErrTurboNotKey) {
		t.Errorf("Expected ErrTurboNotKey, got %v", err)
	}
}

func TestBootRecordFailureNotFatal(t *testing.T) {
	hw, pad, rec := newHardware(newFakePins(false, false, false), expander.NewFake())
	rec.err = errors.New("flash full")

	if _, _, err := Boot(hw); err != nil {
		t.Fatalf("Boot should survive a record failure: %v", err)
	}
	if pad.begun != 1 {
		t.Error("Expected gamepad started")
	}
}

func TestBootWithoutRecords(t *testing.T) {
	hw, _, _ := newHardware(newFakePins(true, true, true), expander.NewFake())
	hw.Records = nil

	_, info, err := Boot(hw)
	if err != nil {
		t.Fatalf("Boot failed: %v", err)
	}
	if info.Index != 14 {
		t.Errorf("Expected config 14, got %d", info.Index)
	}
}

func TestFaultOf(t *testing.T) {
	if FaultOf(errors.New("x")) != config.FaultNone {
		t.Error("Plain errors carry no fault")
	}
	err := &FatalError{Fault: config.FaultInvalidConfig, Err: mapping.ErrInvalidConfig}
	if err.Error() != "invalid config: configuration index out of range" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
