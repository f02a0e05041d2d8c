package markdown

import (
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindHashtag is the node kind of Hashtag.
var KindHashtag = ast.NewNodeKind("Hashtag")

// Hashtag is an inline #tag. Its only child is the tag name as text.
type Hashtag struct {
	ast.BaseInline
}

func (n *Hashtag) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

func (n *Hashtag) Kind() ast.NodeKind {
	return KindHashtag
}

type hashtagParser struct{}

func (p *hashtagParser) Trigger() []byte {
	return []byte{'#'}
}

// Parse accepts '#' followed by letters, digits, '_', '-' or '/', unless the
// '#' follows a letter or digit. A tag never ends with '_', '-' or '/', so
// `_#tag_` closes the emphasis.
func (p *hashtagParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	if before := block.PrecendingCharacter(); unicode.IsLetter(before) || unicode.IsDigit(before) {
		return nil
	}
	line, segment := block.PeekLine()
	n, end := 1, 1
	for n < len(line) {
		r, size := utf8.DecodeRune(line[n:])
		if !isTagRune(r) {
			break
		}
		n += size
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			end = n
		}
	}
	n = end
	if n == 1 {
		return nil
	}

	node := &Hashtag{}
	node.AppendChild(node, ast.NewTextSegment(text.NewSegment(segment.Start+1, segment.Start+n)))
	block.Advance(n)
	return node
}

func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '/'
}

type hashtag struct{}

// HashtagExtension enables #tag spans.
var HashtagExtension goldmark.Extender = &hashtag{}

func (e *hashtag) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&hashtagParser{}, 900),
	))
}
