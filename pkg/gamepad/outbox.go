package gamepad

// outbox holds the report on the wire and at most one waiting report.
// A report submitted while another waits replaces it, so the host always
// gets the newest state once the endpoint frees up.
type outbox struct {
	inFlight [ReportSize]byte
	pending  [ReportSize]byte
	busy     bool
	queued   bool
}

// Submit returns the buffer to transmit now, or nil when the endpoint is
// busy and the report was parked instead.
func (o *outbox) Submit(report []byte) []byte {
	if o.busy {
		copy(o.pending[:], report)
		o.queued = true
		return nil
	}
	copy(o.inFlight[:], report)
	o.busy = true
	return o.inFlight[:]
}

// Done marks the transfer complete and returns the parked report to
// transmit next, or nil when nothing waits.
func (o *outbox) Done() []byte {
	if !o.queued {
		o.busy = false
		return nil
	}
	o.inFlight = o.pending
	o.queued = false
	return o.inFlight[:]
}
