// Document model for parsed notes.
package core

// Node is any element of a parsed note.
//
//sumtype:decl
type Node interface {
	node()
}

// Span is a unit of inline content: Text or Annotation.
//
//sumtype:decl
type Span interface {
	Node
	span()
}

// Block is a top-level structural unit: Header, Paragraph, List, CodeBlock or Blockquote.
//
//sumtype:decl
type Block interface {
	Node
	block()
}

// Spans is an ordered run of inline content.
type Spans []Span

// Lines is the ordered list of items of a List.
type Lines []Line

// Blocks is an ordered sequence of blocks.
type Blocks []Block

func (Spans) node()  {}
func (Lines) node()  {}
func (Blocks) node() {}

// Markup is the kind of formatting an Annotation applies.
type Markup uint8

const (
	Bold Markup = iota + 1
	Italic
	Underline
	Strikeout
	Code
	Link
	Tag
)

func (m Markup) String() string {
	switch m {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strikeout:
		return "strikeout"
	case Code:
		return "code"
	case Link:
		return "link"
	case Tag:
		return "tag"
	}
	return "markup(?)"
}

// Text is raw inline text.
type Text struct {
	Raw string
}

// Annotation wraps inline content with formatting.
// Target is the link destination and is only meaningful for Link.
type Annotation struct {
	Kind   Markup
	Inner  Spans
	Target string
}

func (Text) node()       {}
func (Text) span()       {}
func (Annotation) node() {}
func (Annotation) span() {}

// Line is one list item. Child, when not nil, is a block nested under the item.
// A line with no spans and a child is a label-less container line.
type Line struct {
	Spans Spans
	Child Block
}

func (Line) node() {}

// Header is a heading of level 1 to 6.
type Header struct {
	Level int
	Spans Spans
}

// Paragraph is a run of inline content outside of a list.
type Paragraph struct {
	Spans Spans
}

// List holds the items of an ordered or unordered list.
type List struct {
	Ordered bool
	Items   Lines
}

// CodeBlock is verbatim code. Lang is the fence info string, if any.
type CodeBlock struct {
	Lang string
	Raw  string
}

// Blockquote owns the blocks quoted inside it.
type Blockquote struct {
	Content Blocks
}

func (Header) node()     {}
func (Header) block()    {}
func (Paragraph) node()  {}
func (Paragraph) block() {}
func (List) node()       {}
func (List) block()      {}
func (CodeBlock) node()  {}
func (CodeBlock) block() {}
func (Blockquote) node() {}
func (Blockquote) block() {}
