//go:build debug

// Package debug prints diagnostics to the USB CDC console.
// Output is compiled in only with the debug tag:
//
//	tinygo build -tags=debug -target=pico -o firmware.uf2 .
package debug

import "fmt"

// Enabled reports whether diagnostics are compiled in.
const Enabled = true

// Printf writes a formatted diagnostic line.
func Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
