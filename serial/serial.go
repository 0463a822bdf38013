// Package serial runs the inspection protocol on the USB CDC console.
package serial

import (
	"errors"
	"io"
	"time"

	"github.com/tuffrabit/tinygo-nezoba/pkg/display"
	"github.com/tuffrabit/tinygo-nezoba/pkg/protocol"
)

// pollInterval is how long a read waits before checking for input again.
const pollInterval = time.Millisecond

// Port is the subset of machine.Serialer the protocol needs.
type Port interface {
	io.Writer
	Buffered() int
	ReadByte() (byte, error)
}

type Serial struct {
	port      Port
	reader    *portReader
	handler   *protocol.Handler
	display   *display.Manager
	formatter *display.FrameFormatter
}

// NewSerial creates a protocol loop on port. disp may be nil.
func NewSerial(port Port, handler *protocol.Handler, disp *display.Manager) *Serial {
	return &Serial{
		port:      port,
		reader:    &portReader{port: port, sleep: time.Sleep},
		handler:   handler,
		display:   disp,
		formatter: display.NewFrameFormatter(),
	}
}

// Handle serves frames forever.
func (s *Serial) Handle() {
	for {
		s.HandleOne()
	}
}

// HandleOne reads one frame and writes its response. A frame with a bad CRC
// is answered with StatusCRCError, a bad sync byte is skipped silently so the
// reader can find the next frame.
func (s *Serial) HandleOne() error {
	frame, err := protocol.ReadFrame(s.reader)
	if err != nil {
		if s.display != nil {
			s.display.ShowError(s.formatter.FormatError(err))
		}
		if errors.Is(err, protocol.ErrCRCMismatch) {
			return s.respond(&protocol.Response{Status: protocol.StatusCRCError})
		}
		return err
	}

	if s.display != nil {
		s.display.ShowIncomingFrame(s.formatter.FormatIncoming(frame))
	}

	return s.respond(s.handler.Handle(frame))
}

func (s *Serial) respond(resp *protocol.Response) error {
	if s.display != nil {
		s.display.ShowOutgoingResponse(s.formatter.FormatOutgoing(resp))
	}
	return protocol.WriteResponse(s.port, resp)
}

// portReader adapts a Port to io.Reader, blocking until input arrives.
type portReader struct {
	port  Port
	sleep func(time.Duration)
}

func (r *portReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for r.port.Buffered() == 0 {
		r.sleep(pollInterval)
	}

	n := 0
	for n < len(p) && r.port.Buffered() > 0 {
		b, err := r.port.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}
