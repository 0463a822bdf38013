//go:build !tinygo || nodebug

// Package display provides a no-op stub when built with the nodebug tag.
// This saves memory by excluding the SSD1306 driver and display code.
// Host builds use the stub too.
//
// To build without display support, use:
//
//	tinygo build -tags=nodebug -target=pico -o firmware.uf2 .
package display

import (
	"time"

	"tinygo.org/x/drivers"
)

// Manager is a no-op stub when nodebug build tag is used.
type Manager struct{}

// NewManager returns nil when nodebug build tag is used.
// Callers handle a nil display gracefully.
func NewManager(bus drivers.I2C) *Manager {
	return nil
}

// ShowConfig is a no-op in nodebug mode.
func (m *Manager) ShowConfig(index uint8, name string) {}

// ShowFault is a no-op in nodebug mode.
func (m *Manager) ShowFault(msg string) {}

// ShowIncomingFrame is a no-op in nodebug mode.
func (m *Manager) ShowIncomingFrame(bytesStr, parsedStr string) {}

// ShowOutgoingResponse is a no-op in nodebug mode.
func (m *Manager) ShowOutgoingResponse(bytesStr, parsedStr string) {}

// ShowError is a no-op in nodebug mode.
func (m *Manager) ShowError(msg string) {}

// Flush is a no-op in nodebug mode.
func (m *Manager) Flush(now time.Time, force bool) {}
