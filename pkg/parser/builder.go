package parser

import (
	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/token"
)

// builder holds the state of a single parse.
type builder struct {
	parser *Parser
	note   core.NoteID
	stream *token.Stream
	line   int // last known body line
	offset int // lines taken by the preamble
}

func (b *builder) next() (token.Event, bool) {
	ev, ok := b.stream.Next()
	if ok && ev.Line > 0 {
		b.line = ev.Line
	}
	return ev, ok
}

// at converts a body line to a note line, falling back to the last known line.
func (b *builder) at(line int) int {
	if line == 0 {
		line = b.line
	}
	if line == 0 {
		return 0
	}
	return line + b.offset
}

func (b *builder) fail(construct string, line int, err error) error {
	return &core.ParseError{Note: b.note, Construct: construct, Line: b.at(line), Err: err}
}

// unterminated reports that the context opened by open was never closed.
func (b *builder) unterminated(open token.Event) error {
	return b.fail(open.Tag.String(), open.Line, core.ErrUnterminatedConstruct)
}

// mismatched reports an end event that closes no open context.
func (b *builder) mismatched(ev token.Event) error {
	return b.fail("end of "+ev.Tag.String(), ev.Line, core.ErrUnterminatedConstruct)
}
