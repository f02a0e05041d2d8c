// Package token defines the flat event stream produced by a markdown tokenizer
// and consumed by the note builders.
package token

import "fmt"

// Kind is the kind of an Event.
type Kind uint8

const (
	Start Kind = iota + 1
	End
	Text
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	case Text:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Name identifies the construct a Start or End event delimits.
type Name uint8

const (
	Unknown Name = iota
	Paragraph
	Heading
	List
	Item
	CodeBlock
	Blockquote
	Emphasis
	Strong
	Underline
	Strikethrough
	Code
	Link
	Hashtag
)

var names = [...]string{
	Unknown:       "unknown",
	Paragraph:     "paragraph",
	Heading:       "heading",
	List:          "list",
	Item:          "item",
	CodeBlock:     "code block",
	Blockquote:    "blockquote",
	Emphasis:      "emphasis",
	Strong:        "strong",
	Underline:     "underline",
	Strikethrough: "strikethrough",
	Code:          "code",
	Link:          "link",
	Hashtag:       "hashtag",
}

func (n Name) String() string {
	if int(n) < len(names) {
		return names[n]
	}
	return fmt.Sprintf("name(%d)", uint8(n))
}

// Tag describes the construct of a Start or End event.
type Tag struct {
	Name        Name
	Level       int    // heading level
	Ordered     bool   // list
	Start       int    // first number of an ordered list
	Lang        string // code block info string
	Destination string // link target
	Raw         string // original construct name, set for Unknown
	Block       bool   // block-level construct
}

// Closes reports whether an end event carrying t closes a context opened by open.
func (t Tag) Closes(open Tag) bool {
	if t.Name != open.Name {
		return false
	}
	return t.Name != Unknown || t.Raw == open.Raw
}

func (t Tag) String() string {
	switch t.Name {
	case Unknown:
		if t.Raw != "" {
			return t.Raw
		}
	case Heading:
		return fmt.Sprintf("heading %d", t.Level)
	case List:
		if t.Ordered {
			return "ordered list"
		}
		return "unordered list"
	}
	return t.Name.String()
}

// Event is one element of the stream.
type Event struct {
	Kind Kind
	Tag  Tag
	Text string
	Line int // 1-based source line, 0 when unknown
}

func (e Event) String() string {
	switch e.Kind {
	case Text:
		return fmt.Sprintf("text %q", e.Text)
	case Start, End:
		return fmt.Sprintf("%s %s", e.Kind, e.Tag)
	}
	return e.Kind.String()
}

// StartOf returns a Start event for tag.
func StartOf(tag Tag) Event {
	return Event{Kind: Start, Tag: tag}
}

// EndOf returns an End event for tag.
func EndOf(tag Tag) Event {
	return Event{Kind: End, Tag: tag}
}

// TextOf returns a Text event.
func TextOf(s string) Event {
	return Event{Kind: Text, Text: s}
}

// Block tags, for hand-built streams.
var (
	ParagraphTag  = Tag{Name: Paragraph, Block: true}
	ItemTag       = Tag{Name: Item, Block: true}
	BlockquoteTag = Tag{Name: Blockquote, Block: true}
)

// HeadingTag returns the tag of a heading of the given level.
func HeadingTag(level int) Tag {
	return Tag{Name: Heading, Level: level, Block: true}
}

// ListTag returns the tag of a list.
func ListTag(ordered bool) Tag {
	tag := Tag{Name: List, Ordered: ordered, Block: true}
	if ordered {
		tag.Start = 1
	}
	return tag
}

// CodeBlockTag returns the tag of a code block.
func CodeBlockTag(lang string) Tag {
	return Tag{Name: CodeBlock, Lang: lang, Block: true}
}

// InlineTag returns the tag of an inline construct without attributes.
func InlineTag(name Name) Tag {
	return Tag{Name: name}
}

// LinkTag returns the tag of a link to destination.
func LinkTag(destination string) Tag {
	return Tag{Name: Link, Destination: destination}
}

// UnknownTag returns the tag of a construct the tokenizer has no name for.
func UnknownTag(raw string, block bool) Tag {
	return Tag{Name: Unknown, Raw: raw, Block: block}
}
