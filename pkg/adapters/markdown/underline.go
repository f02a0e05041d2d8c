package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindUnderline is the node kind of Underline.
var KindUnderline = ast.NewNodeKind("Underline")

// Underline is an inline node for ++underlined++ text.
type Underline struct {
	ast.BaseInline
}

func (n *Underline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

func (n *Underline) Kind() ast.NodeKind {
	return KindUnderline
}

type underlineDelimiterProcessor struct{}

func (p *underlineDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '+'
}

func (p *underlineDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *underlineDelimiterProcessor) OnMatch(consumes int) ast.Node {
	return &Underline{}
}

var defaultUnderlineDelimiterProcessor = &underlineDelimiterProcessor{}

type underlineParser struct{}

func (s *underlineParser) Trigger() []byte {
	return []byte{'+'}
}

func (s *underlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, defaultUnderlineDelimiterProcessor)
	if node == nil || node.OriginalLength != 2 || before == '+' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (s *underlineParser) CloseBlock(parent ast.Node, pc parser.Context) {}

type underline struct{}

// UnderlineExtension enables ++underline++ spans.
var UnderlineExtension goldmark.Extender = &underline{}

func (e *underline) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&underlineParser{}, 500),
	))
}
