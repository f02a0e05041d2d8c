package core

import (
	"errors"
	"fmt"
)

// Error categories. Match them with errors.Is.
var (
	// ErrMalformedPreamble: the preamble is not a mapping. Recoverable.
	ErrMalformedPreamble = errors.New("malformed preamble")
	// ErrUnparsableDate: a date field could not be parsed. Recoverable.
	ErrUnparsableDate = errors.New("unparsable date")
	// ErrUnterminatedConstruct: a context was never closed. Fatal.
	ErrUnterminatedConstruct = errors.New("unterminated construct")
	// ErrUnknownBlockConstruct: a block-level construct is not supported. Fatal.
	ErrUnknownBlockConstruct = errors.New("unknown block construct")
	// ErrUnknownInlineConstruct: an inline construct is not supported.
	// Recoverable unless the parser runs in strict mode.
	ErrUnknownInlineConstruct = errors.New("unknown inline construct")
)

// ParseError is returned when a note cannot be parsed.
type ParseError struct {
	Note      NoteID
	Construct string
	Line      int // 1-based, 0 when unknown
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", location(e.Note, e.Line), describe(e.Construct, e.Err))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Diagnostic reports a recoverable problem. The parse continues.
type Diagnostic struct {
	Note      NoteID
	Construct string
	Line      int
	Err       error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", location(d.Note, d.Line), describe(d.Construct, d.Err))
}

func location(id NoteID, line int) string {
	name := string(id)
	if name == "" {
		name = "<note>"
	}
	if line > 0 {
		return fmt.Sprintf("%s:%d", name, line)
	}
	return name
}

func describe(construct string, err error) string {
	if construct == "" {
		return err.Error()
	}
	return fmt.Sprintf("%v (%s)", err, construct)
}
