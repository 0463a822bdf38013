//go:build !debug

package debug

// Enabled reports whether diagnostics are compiled in.
const Enabled = false

// Printf is a no-op without the debug tag.
func Printf(format string, args ...interface{}) {}
