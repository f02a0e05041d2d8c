// Package stoat is the Composition Root for the stoat note parser.
//
// It turns a note (an optional YAML or TOML preamble followed by markdown) into a
// typed tree of blocks, lines and spans, and serializes that tree back to text.
//
// Layers:
//
//   - **Tokenizer** (`pkg/adapters/markdown`): goldmark walks the body into a flat event stream.
//   - **Builders** (`pkg/parser`): recursive descent turns events into `core.Block` and `core.Span` values.
//   - **Metadata** (`pkg/metadata`): lenient decoding of title and dates from the preamble.
//   - **Output** (`pkg/render`, `core.TextContent`): markdown, plain text or bare text content.
//
// Inline anomalies are recoverable by default and reported as diagnostics.
// Block-level anomalies and unterminated constructs fail with a *ParseError.
//
// Usage:
//
//	p := stoat.New(stoat.WithLogger(logger))
//
//	note, err := p.Parse("weekly", text)
//	if err != nil {
//		return err
//	}
//	fmt.Println(stoat.Render(note, stoat.PlainText))
package stoat
