package parser

import (
	"io"
	"log/slog"

	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/metadata"
)

type options struct {
	strict       bool
	logger       *slog.Logger
	onDiagnostic func(core.Diagnostic)
	keys         metadata.Keys
}

// Option configures a Parser.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		keys:   metadata.DefaultKeys(),
	}
}

// WithStrict turns unknown inline constructs into parse failures.
// By default they are dropped, their content kept, and a diagnostic reported.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger. Diagnostics are logged at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDiagnosticHandler registers a callback receiving every recoverable problem.
// The callback runs synchronously on the parsing goroutine.
func WithDiagnosticHandler(fn func(core.Diagnostic)) Option {
	return func(o *options) {
		o.onDiagnostic = fn
	}
}

// WithMetadataKeys changes which preamble keys feed each metadata field.
func WithMetadataKeys(keys metadata.Keys) Option {
	return func(o *options) {
		o.keys = keys
	}
}
