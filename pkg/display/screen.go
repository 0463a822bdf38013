package display

import (
	"strconv"
	"sync"
	"time"
)

// FlushInterval is the minimum time between two redraws of the panel.
const FlushInterval = 100 * time.Millisecond

const (
	cols = 16 // 128 pixels / 8
	rows = 8  // 64 pixels / 8

	// Row assignments
	rowTitle     = 0 // Yellow - configuration number or fault
	rowDetail    = 1 // Yellow - configuration name or fault detail
	rowInBytes   = 4 // Blue - incoming raw bytes
	rowInParsed  = 5 // Blue - incoming parsed
	rowOutBytes  = 6 // Blue - outgoing raw bytes
	rowOutParsed = 7 // Blue - outgoing parsed
)

// Screen is the text staged for the panel. Any goroutine may write rows,
// only the goroutine owning the I2C bus takes them for drawing.
type Screen struct {
	mu        sync.Mutex
	text      [rows]string
	dirty     bool
	lastFlush time.Time
}

// Set stages text for row, truncated to the panel width.
func (s *Screen) Set(row int, text string) {
	if row < 0 || row >= rows {
		return
	}
	s.mu.Lock()
	s.text[row] = truncate(text, cols)
	s.dirty = true
	s.mu.Unlock()
}

// Take returns the staged rows if they changed since the last take and at
// least FlushInterval has passed. force skips the interval.
func (s *Screen) Take(now time.Time, force bool) ([rows]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty || (!force && now.Sub(s.lastFlush) < FlushInterval) {
		return [rows]string{}, false
	}
	s.dirty = false
	s.lastFlush = now
	return s.text, true
}

func (s *Screen) showConfig(index uint8, name string) {
	s.Set(rowTitle, "Config "+strconv.Itoa(int(index)))
	s.Set(rowDetail, name)
}

func (s *Screen) showFault(msg string) {
	s.Set(rowTitle, "HALTED")
	s.Set(rowDetail, msg)
}

func (s *Screen) showIncoming(bytesStr, parsedStr string) {
	s.Set(rowInBytes, "I:"+bytesStr)
	s.Set(rowInParsed, " "+parsedStr)
}

func (s *Screen) showOutgoing(bytesStr, parsedStr string) {
	s.Set(rowOutBytes, "O:"+bytesStr)
	s.Set(rowOutParsed, " "+parsedStr)
}

func (s *Screen) showError(msg string) {
	s.Set(rowOutBytes, "ERR:")
	s.Set(rowOutParsed, msg)
}
