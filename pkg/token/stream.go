package token

// Stream is a forward cursor over events. It is not safe for concurrent use.
type Stream struct {
	events []Event
	pos    int
}

// NewStream returns a stream positioned before the first event.
func NewStream(events []Event) *Stream {
	return &Stream{events: events}
}

// Next returns the next event. ok is false once the stream is exhausted.
func (s *Stream) Next() (ev Event, ok bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	ev = s.events[s.pos]
	s.pos++
	return ev, true
}

// Backup un-reads the last event returned by Next.
func (s *Stream) Backup() {
	if s.pos > 0 {
		s.pos--
	}
}
