//go:build tinygo

package main

import (
	"machine"
	"runtime"
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/boot"
	"github.com/tuffrabit/tinygo-nezoba/pkg/debug"
	"github.com/tuffrabit/tinygo-nezoba/pkg/display"
	"github.com/tuffrabit/tinygo-nezoba/pkg/expander"
	"github.com/tuffrabit/tinygo-nezoba/pkg/gamepad"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
	"github.com/tuffrabit/tinygo-nezoba/pkg/protocol"
	"github.com/tuffrabit/tinygo-nezoba/pkg/storage"
	"github.com/tuffrabit/tinygo-nezoba/serial"
)

const (
	// Shared bus of the expander and the display. GPIO1 is a
	// configuration switch, so I2C0 on its default pins is unavailable.
	sdaPin = machine.GPIO26
	sclPin = machine.GPIO27

	blinkInterval = 250 * time.Millisecond
)

// localPins reads the configuration switches wired to the RP2040.
type localPins struct{}

func (localPins) ConfigureInputPullup(pin uint8) {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

func (localPins) Read(pin uint8) bool {
	return machine.Pin(pin).Get()
}

// MAIN THREAD DUTIES
// The control loop runs here, the serial console in its own goroutine.
// Only this goroutine touches I2C1. The console stages display text and
// the loop draws it between two polls.

func main() {
	i2c := machine.I2C1
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400000, // 400kHz fast mode
		SCL:       sclPin,
		SDA:       sdaPin,
	}); err != nil {
		debug.Printf("I2C config failed: %v\n", err)
	}
	// Small delay for bus stabilization
	time.Sleep(10 * time.Millisecond)

	disp := display.NewManager(i2c)

	records, err := storage.New(machine.Flash, true)
	if err != nil {
		debug.Printf("storage unavailable: %v\n", err)
	}

	hw := boot.Hardware{
		Pins:  localPins{},
		Bus:   expander.NewI2C(i2c),
		Pad:   gamepad.Port(),
		Sleep: time.Sleep,
	}
	if records != nil {
		hw.Records = records
	}

	ctrl, info, err := boot.Boot(hw)

	var active *mapping.Active
	if ctrl != nil {
		active = ctrl.Active()
	}
	if records != nil {
		console := serial.NewSerial(machine.Serial, protocol.NewHandler(records, active), disp)
		go console.Handle()
	}

	if err != nil {
		if disp != nil {
			disp.ShowFault(boot.FaultOf(err).String())
			disp.Flush(time.Now(), true)
		}
		halt(disp)
	}

	if disp != nil {
		disp.ShowConfig(info.Index, info.Name)
		disp.Flush(time.Now(), true)
	}

	for {
		now := time.Now()
		ctrl.Step(now)
		if disp != nil {
			disp.Flush(now, false)
		}
		runtime.Gosched()
	}
}

// halt blinks the LED forever. The serial console keeps running so the
// fault can be read back, and its traffic is still drawn.
func halt(disp *display.Manager) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		if disp != nil {
			disp.Flush(time.Now(), false)
		}
		led.High()
		time.Sleep(blinkInterval)
		led.Low()
		time.Sleep(blinkInterval)
	}
}
