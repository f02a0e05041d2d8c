package platform

import (
	"github.com/aretw0/stoat/pkg/adapters/frontmatter"
	"github.com/aretw0/stoat/pkg/adapters/markdown"
	"github.com/aretw0/stoat/pkg/parser"
)

// New wires a parser with the default adapters: goldmark for the body and
// adrg/frontmatter for YAML or TOML preambles.
//
//	p := platform.New(platform.WithStrict(true))
func New(opts ...Option) *parser.Parser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	tokenizer := o.tokenizer
	if tokenizer == nil {
		tokenizer = markdown.NewTokenizer(o.extensions...)
	}

	preamble := o.preamble
	if preamble == nil && !o.noPreamble {
		preamble = frontmatter.NewSplitter()
	}

	return parser.New(tokenizer, preamble, o.parserOpts...)
}
