//go:build tinygo && !nodebug

// Package display provides SSD1306 OLED display support for debug output.
// The top rows show the selected configuration or a boot fault, the bottom
// rows show serial traffic with incoming frames above outgoing responses.
//
// The panel shares its I2C bus with the expander. Show methods only stage
// text, the control loop draws it with Flush between two input polls.
//
// To build without display support (saves ~1KB RAM and flash), use:
//
//	tinygo build -tags=nodebug -target=pico -o firmware.uf2 .
package display

import (
	"image/color"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	i2cAddress = 0x3C

	// Display dimensions
	screenWidth  = 128
	screenHeight = 64
	charHeight   = 8
)

var white = color.RGBA{255, 255, 255, 255}

// Manager handles the SSD1306 display for debug output.
type Manager struct {
	device *ssd1306.Device
	screen Screen
}

// NewManager initializes the display on an already configured I2C bus.
func NewManager(bus drivers.I2C) *Manager {
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: i2cAddress,
		Width:   screenWidth,
		Height:  screenHeight,
	})

	dev.ClearDisplay()

	mgr := &Manager{
		device: dev,
	}

	mgr.screen.Set(rowTitle, "Nezoba")
	mgr.screen.Set(rowDetail, "Booting...")
	mgr.Flush(time.Now(), true)

	return mgr
}

// ShowConfig stages the configuration selected at boot.
func (m *Manager) ShowConfig(index uint8, name string) { m.screen.showConfig(index, name) }

// ShowFault stages a fatal boot fault.
func (m *Manager) ShowFault(msg string) { m.screen.showFault(msg) }

// ShowIncomingFrame stages an incoming serial frame.
func (m *Manager) ShowIncomingFrame(bytesStr, parsedStr string) {
	m.screen.showIncoming(bytesStr, parsedStr)
}

// ShowOutgoingResponse stages an outgoing serial response.
func (m *Manager) ShowOutgoingResponse(bytesStr, parsedStr string) {
	m.screen.showOutgoing(bytesStr, parsedStr)
}

// ShowError stages a serial error message.
func (m *Manager) ShowError(msg string) { m.screen.showError(msg) }

// Flush redraws the panel if staged text changed, at most once per
// FlushInterval unless force is set. It must run on the goroutine that
// polls the expander.
func (m *Manager) Flush(now time.Time, force bool) {
	text, ok := m.screen.Take(now, force)
	if !ok {
		return
	}
	m.device.ClearBuffer()
	for row, s := range text {
		if s == "" {
			continue
		}
		// tinyfont positions text by its baseline
		baseline := int16(row*charHeight + charHeight - 1)
		tinyfont.WriteLine(m.device, &proggy.TinySZ8pt7b, 0, baseline, s, white)
	}
	m.device.Display()
}
