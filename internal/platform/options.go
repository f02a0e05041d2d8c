package platform

import (
	"log/slog"

	"github.com/yuin/goldmark"

	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/metadata"
	"github.com/aretw0/stoat/pkg/parser"
)

// options holds the wiring of a parser.
type options struct {
	tokenizer  parser.Tokenizer
	preamble   parser.Preamble
	noPreamble bool
	extensions []goldmark.Extender
	parserOpts []parser.Option
}

// Option defines a functional option for configuring the parser.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithTokenizer replaces the default goldmark tokenizer.
func WithTokenizer(t parser.Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = t
	}
}

// WithPreamble replaces the default frontmatter splitter.
// Passing nil treats the whole text as markdown body.
func WithPreamble(p parser.Preamble) Option {
	return func(o *options) {
		o.preamble = p
		o.noPreamble = p == nil
	}
}

// WithExtensions adds goldmark extensions to the default tokenizer.
// Constructs they introduce reach the parser as unknown tags.
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(o *options) {
		o.extensions = append(o.extensions, exts...)
	}
}

// WithStrict makes unknown inline constructs fail the parse.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.parserOpts = append(o.parserOpts, parser.WithStrict(strict))
	}
}

// WithLogger sets the logger for the parser.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.parserOpts = append(o.parserOpts, parser.WithLogger(logger))
	}
}

// WithDiagnosticHandler registers a callback for recoverable problems.
func WithDiagnosticHandler(fn func(core.Diagnostic)) Option {
	return func(o *options) {
		o.parserOpts = append(o.parserOpts, parser.WithDiagnosticHandler(fn))
	}
}

// WithMetadataKeys changes the preamble keys read for each metadata field.
func WithMetadataKeys(keys metadata.Keys) Option {
	return func(o *options) {
		o.parserOpts = append(o.parserOpts, parser.WithMetadataKeys(keys))
	}
}
