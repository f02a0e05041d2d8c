package stoat

import (
	"log/slog"

	"github.com/yuin/goldmark"

	"github.com/aretw0/stoat/internal/platform"
	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/metadata"
	"github.com/aretw0/stoat/pkg/parser"
	"github.com/aretw0/stoat/pkg/render"
)

// --- Types ---

// Note is a parsed note.
type Note = core.Note

// NoteID identifies a note.
type NoteID = core.NoteID

// Metadata holds the decoded preamble fields.
type Metadata = core.Metadata

// Node is any element of a note tree.
type Node = core.Node

// Diagnostic reports a recoverable parse problem.
type Diagnostic = core.Diagnostic

// ParseError is returned when a note cannot be parsed.
type ParseError = core.ParseError

// Parser parses notes. It is safe for concurrent use.
type Parser = parser.Parser

// Format selects the output of Render.
type Format = render.Format

// MetadataKeys lists the preamble keys read for each metadata field.
type MetadataKeys = metadata.Keys

const (
	Markdown  = render.Markdown
	PlainText = render.PlainText
)

// --- Configuration ---

// Option defines a functional option for configuring the parser.
type Option = platform.Option

// WithStrict makes unknown inline constructs fail the parse instead of being dropped.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithLogger sets the logger. Diagnostics are logged at warn level.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithDiagnosticHandler registers a callback for recoverable problems.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return platform.WithDiagnosticHandler(fn)
}

// WithMetadataKeys changes the preamble keys read for each metadata field.
func WithMetadataKeys(keys MetadataKeys) Option {
	return platform.WithMetadataKeys(keys)
}

// WithTokenizer replaces the goldmark tokenizer.
func WithTokenizer(t parser.Tokenizer) Option {
	return platform.WithTokenizer(t)
}

// WithPreamble replaces the frontmatter splitter. Nil disables preambles.
func WithPreamble(p parser.Preamble) Option {
	return platform.WithPreamble(p)
}

// WithExtensions adds goldmark extensions to the default tokenizer.
func WithExtensions(exts ...goldmark.Extender) Option {
	return platform.WithExtensions(exts...)
}

// --- Factory ---

// New creates a Parser with the default adapters.
func New(opts ...Option) *Parser {
	return platform.New(opts...)
}

// --- Operations ---

// Parse parses a single note with a one-off parser.
// Prefer New when parsing many notes.
func Parse(id NoteID, text []byte, opts ...Option) (*Note, error) {
	return New(opts...).Parse(id, text)
}

// Render serializes a node in the given format.
func Render(n Node, f Format) string {
	return render.Render(n, f)
}

// TextContent returns the text of a node with all markup removed.
func TextContent(n Node) string {
	return core.TextContent(n)
}

// ParseFormat converts a format name ("markdown", "plain") to a Format.
func ParseFormat(s string) (Format, error) {
	return render.ParseFormat(s)
}
