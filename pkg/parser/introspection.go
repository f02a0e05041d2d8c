package parser

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/stoat/pkg/metadata"
)

// ParserState exposes the parser configuration for observability.
type ParserState struct {
	Strict       bool          `json:"strict"`
	Tokenizer    string        `json:"tokenizer"`
	Preamble     string        `json:"preamble"`
	MetadataKeys metadata.Keys `json:"metadata_keys"`
}

// State implements introspection.Introspectable.
func (p *Parser) State() any {
	return ParserState{
		Strict:       p.strict,
		Tokenizer:    componentType(p.tokenizer),
		Preamble:     componentType(p.preamble),
		MetadataKeys: p.decoder.Keys,
	}
}

// ComponentType implements introspection.Component.
func (p *Parser) ComponentType() string {
	return "parser"
}

func componentType(v any) string {
	if v == nil {
		return "none"
	}
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "custom"
}

var _ introspection.Introspectable = (*Parser)(nil)
var _ introspection.Component = (*Parser)(nil)
