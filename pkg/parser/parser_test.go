package parser_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stoat/pkg/adapters/frontmatter"
	"github.com/aretw0/stoat/pkg/adapters/markdown"
	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/metadata"
	"github.com/aretw0/stoat/pkg/parser"
)

func newParser(opts ...parser.Option) *parser.Parser {
	return parser.New(markdown.NewTokenizer(), frontmatter.NewSplitter(), opts...)
}

func collect(diags *[]core.Diagnostic) parser.Option {
	return parser.WithDiagnosticHandler(func(d core.Diagnostic) {
		*diags = append(*diags, d)
	})
}

func TestParse_SingleItem(t *testing.T) {
	note, err := newParser().Parse("inbox", []byte("- text\n"))
	require.NoError(t, err)

	assert.Equal(t, core.NoteID("inbox"), note.ID())
	assert.True(t, note.Metadata().IsZero())
	assert.Equal(t, core.Blocks{
		core.List{Items: core.Lines{{Spans: core.Spans{core.Text{Raw: "text"}}}}},
	}, note.Content())
	assert.Equal(t, "text", core.TextContent(note))
}

func TestParse_Metadata(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		src := "---\ntitle: Plans\ncreated: 2023-04-05\nmodified: 2023-04-06 10:00:00\nauthor: ignored\n---\n# Plans\n"
		note, err := newParser().Parse("plans", []byte(src))
		require.NoError(t, err)

		meta := note.Metadata()
		require.NotNil(t, meta.Title)
		assert.Equal(t, "Plans", *meta.Title)
		require.NotNil(t, meta.Created)
		assert.True(t, meta.Created.Equal(time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)))
		require.NotNil(t, meta.Modified)
		assert.True(t, meta.Modified.Equal(time.Date(2023, 4, 6, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("Unquoted Dates", func(t *testing.T) {
		var diags []core.Diagnostic
		src := "---\ncreated: 2023-01-02\nmodified: 2023-01-03T10:00:00Z\n---\n- a\n"
		note, err := newParser(collect(&diags)).Parse("n", []byte(src))
		require.NoError(t, err)
		assert.Empty(t, diags)

		meta := note.Metadata()
		require.NotNil(t, meta.Created)
		assert.True(t, meta.Created.Equal(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
		require.NotNil(t, meta.Modified)
		assert.True(t, meta.Modified.Equal(time.Date(2023, 1, 3, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("Empty Preamble", func(t *testing.T) {
		note, err := newParser().Parse("empty", []byte("---\n{}\n---\n- a\n"))
		require.NoError(t, err)
		assert.True(t, note.Metadata().IsZero())
	})

	t.Run("Unparsable Date", func(t *testing.T) {
		var diags []core.Diagnostic
		src := "---\ntitle: Still here\ncreated: \"not-a-date\"\n---\n- body\n"

		note, err := newParser(collect(&diags)).Parse("dated", []byte(src))
		require.NoError(t, err)

		meta := note.Metadata()
		assert.Nil(t, meta.Created)
		require.NotNil(t, meta.Title)
		assert.Equal(t, "Still here", *meta.Title)
		assert.Len(t, note.Content(), 1)

		require.Len(t, diags, 1)
		assert.Equal(t, core.NoteID("dated"), diags[0].Note)
		assert.True(t, errors.Is(diags[0].Err, core.ErrUnparsableDate))
	})

	t.Run("Malformed Preamble", func(t *testing.T) {
		var diags []core.Diagnostic
		note, err := newParser(collect(&diags)).Parse("odd", []byte("---\n- a\n- b\n---\n- body\n"))
		require.NoError(t, err)

		assert.True(t, note.Metadata().IsZero())
		assert.Equal(t, "body", core.TextContent(note))
		require.Len(t, diags, 1)
		assert.True(t, errors.Is(diags[0].Err, core.ErrMalformedPreamble))
	})

	t.Run("Custom Keys", func(t *testing.T) {
		keys := metadata.Keys{Created: []string{"date", "created"}}
		note, err := newParser(parser.WithMetadataKeys(keys)).Parse("k", []byte("---\ndate: 2020-01-02\n---\n"))
		require.NoError(t, err)
		require.NotNil(t, note.Metadata().Created)
		assert.Equal(t, 2020, note.Metadata().Created.Year())
	})
}

func TestParse_Document(t *testing.T) {
	src := `# Week

Some **bold** text with a [link](notes/a.md).

- one
  - nested
- two #tag

> quoted

` + "```go\nfunc main() {}\n```\n"

	note, err := newParser().Parse("week", []byte(src))
	require.NoError(t, err)

	want := core.Blocks{
		core.Header{Level: 1, Spans: core.Spans{core.Text{Raw: "Week"}}},
		core.Paragraph{Spans: core.Spans{
			core.Text{Raw: "Some "},
			core.Annotation{Kind: core.Bold, Inner: core.Spans{core.Text{Raw: "bold"}}},
			core.Text{Raw: " text with a "},
			core.Annotation{Kind: core.Link, Inner: core.Spans{core.Text{Raw: "link"}}, Target: "notes/a.md"},
			core.Text{Raw: "."},
		}},
		core.List{Items: core.Lines{
			{
				Spans: core.Spans{core.Text{Raw: "one"}},
				Child: core.List{Items: core.Lines{{Spans: core.Spans{core.Text{Raw: "nested"}}}}},
			},
			{Spans: core.Spans{
				core.Text{Raw: "two "},
				core.Annotation{Kind: core.Tag, Inner: core.Spans{core.Text{Raw: "tag"}}},
			}},
		}},
		core.Blockquote{Content: core.Blocks{
			core.Paragraph{Spans: core.Spans{core.Text{Raw: "quoted"}}},
		}},
		core.CodeBlock{Lang: "go", Raw: "func main() {}"},
	}
	assert.Equal(t, want, note.Content())
}

func TestParse_Failures(t *testing.T) {
	t.Run("Unknown Block", func(t *testing.T) {
		_, err := newParser().Parse("rule", []byte("# A\n\n***\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrUnknownBlockConstruct))

		var perr *core.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, core.NoteID("rule"), perr.Note)
		assert.Equal(t, "ThematicBreak", perr.Construct)
	})

	t.Run("Lenient Image", func(t *testing.T) {
		var diags []core.Diagnostic
		note, err := newParser(collect(&diags)).Parse("img", []byte("see ![diagram](d.png)\n"))
		require.NoError(t, err)
		assert.Equal(t, core.Blocks{core.Paragraph{Spans: core.Spans{core.Text{Raw: "see diagram"}}}}, note.Content())
		require.Len(t, diags, 1)
		assert.Equal(t, 1, diags[0].Line)
	})

	t.Run("Line Counts Preamble", func(t *testing.T) {
		var diags []core.Diagnostic
		_, err := newParser(collect(&diags)).Parse("img", []byte("---\ntitle: x\n---\n\nsee ![d](d.png)\n"))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, 5, diags[0].Line)
		assert.Equal(t, "img:5: unknown inline construct (Image)", diags[0].String())
	})

	t.Run("Strict Image", func(t *testing.T) {
		_, err := newParser(parser.WithStrict(true)).Parse("img", []byte("see ![diagram](d.png)\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrUnknownInlineConstruct))
	})
}

func TestParse_Tags(t *testing.T) {
	note, err := newParser().Parse("tags", []byte("- **#x** (#todo)\n"))
	require.NoError(t, err)

	tag := func(name string) core.Annotation {
		return core.Annotation{Kind: core.Tag, Inner: core.Spans{core.Text{Raw: name}}}
	}
	want := core.Blocks{core.List{Items: core.Lines{{Spans: core.Spans{
		core.Annotation{Kind: core.Bold, Inner: core.Spans{tag("x")}},
		core.Text{Raw: " ("},
		tag("todo"),
		core.Text{Raw: ")"},
	}}}}}
	assert.Equal(t, want, note.Content())
}

func TestInline(t *testing.T) {
	p := newParser()

	spans, err := p.Inline("**bold** and _em_")
	require.NoError(t, err)
	assert.Equal(t, core.Spans{
		core.Annotation{Kind: core.Bold, Inner: core.Spans{core.Text{Raw: "bold"}}},
		core.Text{Raw: " and "},
		core.Annotation{Kind: core.Italic, Inner: core.Spans{core.Text{Raw: "em"}}},
	}, spans)
	assert.Equal(t, "bold and em", core.TextContent(spans))

	empty, err := p.Inline("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = p.Inline("- not inline")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownBlockConstruct))
}

func TestParser_State(t *testing.T) {
	p := newParser(parser.WithStrict(true))

	state, ok := p.State().(parser.ParserState)
	require.True(t, ok)
	assert.True(t, state.Strict)
	assert.Equal(t, "goldmark", state.Tokenizer)
	assert.Equal(t, "frontmatter", state.Preamble)
	assert.Equal(t, []string{"title"}, state.MetadataKeys.Title)
	assert.Equal(t, "parser", p.ComponentType())
}
