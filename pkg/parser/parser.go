// Package parser builds notes from a tokenized markdown body and a decoded preamble.
//
// A Parser holds only configuration. Every call builds its own state, so a single
// Parser may be shared between goroutines.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/metadata"
	"github.com/aretw0/stoat/pkg/token"
)

// Tokenizer turns a markdown body into structural events.
type Tokenizer interface {
	Tokenize(source []byte) ([]token.Event, error)
}

// Preamble separates the preamble mapping from the body.
// A nil mapping means there is no preamble.
type Preamble interface {
	Split(text []byte) (map[string]any, []byte, error)
}

// Parser turns note text into a core.Note.
type Parser struct {
	tokenizer    Tokenizer
	preamble     Preamble
	decoder      *metadata.Decoder
	strict       bool
	logger       *slog.Logger
	onDiagnostic func(core.Diagnostic)
}

// New creates a Parser. A nil preamble treats the whole text as body.
func New(tokenizer Tokenizer, preamble Preamble, opts ...Option) *Parser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Parser{
		tokenizer:    tokenizer,
		preamble:     preamble,
		decoder:      metadata.NewDecoder(o.keys),
		strict:       o.strict,
		logger:       o.logger,
		onDiagnostic: o.onDiagnostic,
	}
}

// Parse parses one note.
//
// Preamble and date problems are reported as diagnostics and never fail the parse.
// Structural problems return a *core.ParseError.
func (p *Parser) Parse(id core.NoteID, text []byte) (*core.Note, error) {
	raw, body := map[string]any(nil), text
	if p.preamble != nil {
		var err error
		raw, body, err = p.preamble.Split(text)
		if err != nil {
			if !errors.Is(err, core.ErrMalformedPreamble) {
				return nil, &core.ParseError{Note: id, Construct: "preamble", Err: err}
			}
			p.report(core.Diagnostic{Note: id, Construct: "preamble", Err: err})
			raw = nil
		}
	}

	meta, diags := p.decoder.Decode(raw)
	for _, d := range diags {
		d.Note = id
		p.report(d)
	}

	events, err := p.tokenizer.Tokenize(body)
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", id, err)
	}

	b := p.newBuilder(id, events)
	b.offset = preambleLines(text, body)
	content, err := b.document()
	if err != nil {
		return nil, err
	}

	p.logger.Debug("note parsed", "note", id, "blocks", len(content))
	return core.NewNote(id, meta, content), nil
}

// Blocks builds a block sequence from a complete event stream.
func (p *Parser) Blocks(events []token.Event) (core.Blocks, error) {
	return p.newBuilder("", events).document()
}

// Spans builds spans from a bare inline event stream, one without an
// enclosing paragraph or heading.
func (p *Parser) Spans(events []token.Event) (core.Spans, error) {
	return p.newBuilder("", events).root()
}

// Inline parses a single paragraph of markdown into spans.
func (p *Parser) Inline(text string) (core.Spans, error) {
	events, err := p.tokenizer.Tokenize([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	blocks, err := p.Blocks(events)
	if err != nil {
		return nil, err
	}

	switch len(blocks) {
	case 0:
		return nil, nil
	case 1:
		if para, ok := blocks[0].(core.Paragraph); ok {
			return para.Spans, nil
		}
	}
	return nil, &core.ParseError{
		Construct: "inline text",
		Err:       fmt.Errorf("%w: expected a single paragraph, got %d blocks", core.ErrUnknownBlockConstruct, len(blocks)),
	}
}

// preambleLines counts the lines preceding body in text, so that reported
// lines refer to the whole note.
func preambleLines(text, body []byte) int {
	if len(body) > len(text) || !bytes.HasSuffix(text, body) {
		return 0
	}
	return bytes.Count(text[:len(text)-len(body)], []byte("\n"))
}

func (p *Parser) newBuilder(id core.NoteID, events []token.Event) *builder {
	return &builder{
		parser: p,
		note:   id,
		stream: token.NewStream(events),
	}
}

func (p *Parser) report(d core.Diagnostic) {
	p.logger.Warn("recoverable parse problem",
		"note", d.Note,
		"construct", d.Construct,
		"line", d.Line,
		"error", d.Err,
	)
	if p.onDiagnostic != nil {
		p.onDiagnostic(d)
	}
}
