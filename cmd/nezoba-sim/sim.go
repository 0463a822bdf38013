package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/tuffrabit/tinygo-nezoba/pkg/boot"
	"github.com/tuffrabit/tinygo-nezoba/pkg/controller"
	"github.com/tuffrabit/tinygo-nezoba/pkg/expander"
	"github.com/tuffrabit/tinygo-nezoba/pkg/gamepad"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
	"github.com/tuffrabit/tinygo-nezoba/pkg/selector"
)

// simPins holds the three local switches. Unset pins read high (off).
type simPins map[uint8]bool

func (p simPins) ConfigureInputPullup(pin uint8) {
	if _, ok := p[pin]; !ok {
		p[pin] = true
	}
}

func (p simPins) Read(pin uint8) bool {
	level, ok := p[pin]
	return !ok || level
}

// hidPrinter prints every report the pad commits.
type hidPrinter struct {
	out     io.Writer
	enabled bool
}

func (h *hidPrinter) Send(report []byte) {
	if h.enabled {
		fmt.Fprintf(h.out, "  hid % X\n", report)
	}
}

// Sim drives the controller with switch and button states typed as text.
type Sim struct {
	out   io.Writer
	bus   *expander.Fake
	pad   *gamepad.Pad
	ctrl  *controller.Controller
	now   time.Time
	hold  int
	cycle time.Duration
	cfg4  bool
	n     int
}

func NewSim(out io.Writer, s settings) *Sim {
	return &Sim{
		out:   out,
		bus:   expander.NewFake(),
		pad:   gamepad.New(&hidPrinter{out: out, enabled: s.HID}),
		now:   time.Unix(0, 0),
		hold:  s.Hold,
		cycle: s.Cycle,
	}
}

// parseBits reads up to 4 words of 0 (off) or 1 (on). Missing bits are off.
func (s *Sim) parseBits(line string) (selector.Bits, error) {
	var bits selector.Bits
	words, err := shlex.Split(line)
	if err != nil {
		return bits, err
	}
	for i, w := range words {
		if i >= len(bits) {
			break
		}
		switch w {
		case "1":
			bits[i] = true
		case "0":
		default:
			fmt.Fprintf(s.out, "bit value %s unknown\n", w)
		}
	}
	return bits, nil
}

// Boot sets the switch from line and boots the controller.
func (s *Sim) Boot(line string) (boot.Info, error) {
	bits, err := s.parseBits(line)
	if err != nil {
		return boot.Info{}, err
	}

	pins := simPins{
		selector.PinCfg1: !bits[0],
		selector.PinCfg2: !bits[1],
		selector.PinCfg3: !bits[2],
	}
	s.cfg4 = bits[3]
	s.bus.SetPin(selector.PinCfg4, !s.cfg4)

	ctrl, info, err := boot.Boot(boot.Hardware{
		Pins:  pins,
		Bus:   s.bus,
		Pad:   s.pad,
		Sleep: func(d time.Duration) { s.now = s.now.Add(d) },
	})
	if err != nil {
		return info, err
	}
	s.ctrl = ctrl
	fmt.Fprintf(s.out, "SETUP: config %d (%s)\n", info.Index, info.Name)
	return info, nil
}

// parseButtons returns the buttons listed in line. Unknown words are
// reported and skipped.
func (s *Sim) parseButtons(line string) ([]mapping.Button, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, err
	}
	var buttons []mapping.Button
	for _, w := range words {
		v, err := strconv.Atoi(w)
		if err != nil || v < 0 || v >= mapping.NumButtons {
			fmt.Fprintf(s.out, "button %s not valid\n", w)
			continue
		}
		buttons = append(buttons, mapping.Button(v))
	}
	return buttons, nil
}

// Feed holds the buttons listed in line for the configured number of cycles
// and prints what the last cycle reported.
func (s *Sim) Feed(line string) (*controller.Report, error) {
	buttons, err := s.parseButtons(line)
	if err != nil {
		return nil, err
	}

	s.bus.SetBank(expander.BankA, expander.Idle)
	s.bus.SetBank(expander.BankB, expander.Idle)
	s.bus.SetPin(selector.PinCfg4, !s.cfg4)
	for _, b := range buttons {
		s.bus.Press(mapping.ButtonPins[b])
	}

	var report *controller.Report
	for i := 0; i < s.hold; i++ {
		s.now = s.now.Add(s.cycle)
		report = s.ctrl.Step(s.now)
	}
	s.n++
	fmt.Fprintf(s.out, "CONTROL LOOP ITERATION #%d: %s\n", s.n, describe(report))
	return report, nil
}

func describe(r *controller.Report) string {
	var b strings.Builder
	b.WriteString("press [")
	for i, k := range r.Pressed() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(k.String())
	}
	b.WriteString("] dpad ")
	b.WriteString(r.DPad.String())
	if r.Turbo {
		b.WriteString(" turbo")
	}
	return b.String()
}
