// Package boot brings the controller from reset to a running control loop.
package boot

import (
	"errors"
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/config"
	"github.com/tuffrabit/tinygo-nezoba/pkg/controller"
	"github.com/tuffrabit/tinygo-nezoba/pkg/debug"
	"github.com/tuffrabit/tinygo-nezoba/pkg/expander"
	"github.com/tuffrabit/tinygo-nezoba/pkg/input"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
	"github.com/tuffrabit/tinygo-nezoba/pkg/selector"
)

// Records persists the outcome of a boot. storage.Manager implements it.
type Records interface {
	RecordBoot(index, switchBits uint8) error
	RecordFault(f config.Fault) error
}

// Hardware is everything Boot touches.
type Hardware struct {
	Pins  selector.Pins
	Bus   expander.Bus
	Pad   controller.Gamepad
	Sleep func(time.Duration)

	// Records may be nil when flash is unavailable.
	Records Records

	// Table defaults to mapping.Table.
	Table *[mapping.NumConfigs]mapping.Config

	// MaxAttempts overrides selector.DefaultMaxAttempts when non-zero.
	MaxAttempts int
}

// Info describes the configuration chosen at boot.
type Info struct {
	Index uint8
	Bits  selector.Bits
	Name  string
}

// FatalError stops the boot. The firmware halts and shows Fault.
type FatalError struct {
	Fault config.Fault
	Err   error
}

func (e *FatalError) Error() string {
	return e.Fault.String() + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Boot configures the inputs, selects and loads a configuration, starts the
// gamepad and returns a controller ready to run.
func Boot(hw Hardware) (*controller.Controller, Info, error) {
	var info Info

	table := hw.Table
	if table == nil {
		table = &mapping.Table
	}

	sel := selector.New(hw.Pins, hw.Bus)
	if hw.Sleep != nil {
		sel.Sleep = hw.Sleep
	}
	if hw.MaxAttempts != 0 {
		sel.MaxAttempts = hw.MaxAttempts
	}

	sel.ConfigurePins()
	if err := expander.Configure(hw.Bus); err != nil {
		return nil, info, fail(hw, config.FaultExpander, err)
	}

	if err := mapping.Validate(table); err != nil {
		return nil, info, fail(hw, config.FaultInvalidTable, err)
	}

	index, bits, err := sel.Select()
	info.Index, info.Bits = index, bits
	if err != nil {
		return nil, info, fail(hw, config.FaultUnstableSwitch, err)
	}

	active, err := mapping.LoadFrom(table, index)
	if err != nil {
		return nil, info, fail(hw, config.FaultInvalidConfig, err)
	}
	info.Name = table[index].Name
	debug.Printf("boot: config %d (%s)\n", index, info.Name)

	hw.Pad.Begin()

	if hw.Records != nil {
		// losing the record is not worth halting for
		if err := hw.Records.RecordBoot(index, bits.Index()); err != nil {
			debug.Printf("boot: record failed: %v\n", err)
		}
	}

	return controller.New(active, input.NewReader(hw.Bus), hw.Pad), info, nil
}

func fail(hw Hardware, f config.Fault, err error) error {
	debug.Printf("boot: %s: %v\n", f, err)
	if hw.Records != nil {
		if rerr := hw.Records.RecordFault(f); rerr != nil {
			debug.Printf("boot: record failed: %v\n", rerr)
		}
	}
	return &FatalError{Fault: f, Err: err}
}

// FaultOf returns the fault carried by err, FaultNone if it is not fatal.
func FaultOf(err error) config.Fault {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe.Fault
	}
	return config.FaultNone
}
