// Package markdown turns markdown source into the token event stream using goldmark.
package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/aretw0/stoat/pkg/token"
)

// Tokenizer produces token events from a goldmark AST.
// The goldmark engine is safe for concurrent use, and so is the Tokenizer.
type Tokenizer struct {
	md goldmark.Markdown
}

// NewTokenizer builds a tokenizer with strikethrough, underline and hashtag support.
// Additional goldmark extensions may be supplied.
func NewTokenizer(exts ...goldmark.Extender) *Tokenizer {
	extenders := append([]goldmark.Extender{
		extension.Strikethrough,
		UnderlineExtension,
		HashtagExtension,
	}, exts...)

	return &Tokenizer{
		md: goldmark.New(goldmark.WithExtensions(extenders...)),
	}
}

// Tokenize parses source and flattens the tree into events.
// Entering a node yields Start, leaving it yields End.
func (t *Tokenizer) Tokenize(source []byte) ([]token.Event, error) {
	doc := t.md.Parser().Parse(text.NewReader(source))

	w := &walker{
		source: source,
		lines:  lineStarts(source),
	}
	if err := ast.Walk(doc, w.visit); err != nil {
		return nil, err
	}
	w.flush()
	return w.events, nil
}

type walker struct {
	source  []byte
	lines   []int
	events  []token.Event
	pending []byte
	line    int
	hasText bool
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Document:
		return ast.WalkContinue, nil

	case *ast.Text:
		if entering {
			w.text(n.Segment.Value(w.source), w.lineOf(n))
			if n.SoftLineBreak() || n.HardLineBreak() {
				w.text([]byte("\n"), 0)
			}
		}
		return ast.WalkContinue, nil

	case *ast.String:
		if entering {
			w.text(n.Value, w.lineOf(n))
		}
		return ast.WalkContinue, nil

	case *ast.CodeBlock:
		if entering {
			w.codeBlock(n, "")
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		if entering {
			w.codeBlock(n, string(n.Language(w.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeSpan:
		if entering {
			w.codeSpan(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			tag := token.LinkTag(string(n.URL(w.source)))
			line := w.lineOf(n)
			w.emit(token.Event{Kind: token.Start, Tag: tag, Line: line})
			w.emit(token.Event{Kind: token.Text, Text: string(n.Label(w.source)), Line: line})
			w.emit(token.Event{Kind: token.End, Tag: tag})
		}
		return ast.WalkSkipChildren, nil
	}

	tag := w.tagOf(n)

	// Raw HTML and thematic breaks carry no markdown content; they surface
	// as an empty start/end pair so that the builders can apply their policy.
	if isOpaque(n) {
		if entering {
			w.emit(token.Event{Kind: token.Start, Tag: tag, Line: w.lineOf(n)})
			w.emit(token.Event{Kind: token.End, Tag: tag})
		}
		return ast.WalkSkipChildren, nil
	}

	if entering {
		w.emit(token.Event{Kind: token.Start, Tag: tag, Line: w.lineOf(n)})
	} else {
		w.emit(token.Event{Kind: token.End, Tag: tag})
	}
	return ast.WalkContinue, nil
}

func (w *walker) tagOf(n ast.Node) token.Tag {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return token.ParagraphTag
	case *ast.Heading:
		return token.HeadingTag(n.Level)
	case *ast.List:
		tag := token.ListTag(n.IsOrdered())
		if n.IsOrdered() {
			tag.Start = n.Start
		}
		return tag
	case *ast.ListItem:
		return token.ItemTag
	case *ast.Blockquote:
		return token.BlockquoteTag
	case *ast.Emphasis:
		if n.Level >= 2 {
			return token.InlineTag(token.Strong)
		}
		return token.InlineTag(token.Emphasis)
	case *ast.Link:
		return token.LinkTag(string(unescape(n.Destination)))
	case *east.Strikethrough:
		return token.InlineTag(token.Strikethrough)
	case *Underline:
		return token.InlineTag(token.Underline)
	case *Hashtag:
		return token.InlineTag(token.Hashtag)
	}
	return token.UnknownTag(n.Kind().String(), n.Type() == ast.TypeBlock)
}

func isOpaque(n ast.Node) bool {
	switch n.(type) {
	case *ast.HTMLBlock, *ast.RawHTML, *ast.ThematicBreak:
		return true
	}
	return false
}

func (w *walker) codeBlock(n ast.Node, lang string) {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.source))
	}

	// The terminator of the last line belongs to the fence, not the code.
	raw := strings.TrimSuffix(buf.String(), "\n")

	tag := token.CodeBlockTag(lang)
	line := w.lineOf(n)
	w.emit(token.Event{Kind: token.Start, Tag: tag, Line: line})
	if raw != "" {
		w.emit(token.Event{Kind: token.Text, Text: raw, Line: line})
	}
	w.emit(token.Event{Kind: token.End, Tag: tag})
}

func (w *walker) codeSpan(n *ast.CodeSpan) {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(w.source))
		case *ast.String:
			buf.Write(c.Value)
		}
	}

	tag := token.InlineTag(token.Code)
	line := w.lineOf(n)
	w.emit(token.Event{Kind: token.Start, Tag: tag, Line: line})
	w.emit(token.Event{Kind: token.Text, Text: buf.String(), Line: line})
	w.emit(token.Event{Kind: token.End, Tag: tag})
}

// text buffers raw text. Adjacent text nodes become a single event.
func (w *walker) text(b []byte, line int) {
	if !w.hasText {
		w.line = line
		w.hasText = true
	}
	w.pending = append(w.pending, b...)
}

func (w *walker) flush() {
	if !w.hasText {
		return
	}
	w.events = append(w.events, token.Event{
		Kind: token.Text,
		Text: string(unescape(w.pending)),
		Line: w.line,
	})
	w.pending = w.pending[:0]
	w.hasText = false
}

func (w *walker) emit(ev token.Event) {
	w.flush()
	w.events = append(w.events, ev)
}

// lineOf returns the 1-based line of the first source byte under n, or 0.
func (w *walker) lineOf(n ast.Node) int {
	switch n := n.(type) {
	case *ast.Text:
		return w.lineAt(n.Segment.Start)
	case *ast.String:
		return 0
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return w.lineAt(lines.At(0).Start)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if line := w.lineOf(c); line > 0 {
			return line
		}
	}
	return 0
}

func (w *walker) lineAt(offset int) int {
	return sort.SearchInts(w.lines, offset+1)
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

// ComponentType implements introspection.Component.
func (t *Tokenizer) ComponentType() string {
	return "goldmark"
}

var _ introspection.Component = (*Tokenizer)(nil)
