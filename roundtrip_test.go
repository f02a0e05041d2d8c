package stoat_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aretw0/stoat"
	"github.com/aretw0/stoat/pkg/core"
)

// =============================================================================
// Generators
// =============================================================================

// The generators stay inside the subset that markdown can express without
// ambiguity: words are lowercase letters, annotations are separated by a
// space, an annotation never nests inside one of the same kind, and two
// lists are never adjacent.

func wordGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z]{1,8}`)
}

var nestable = []core.Markup{core.Bold, core.Italic, core.Underline, core.Strikeout, core.Code, core.Link, core.Tag}

func appendText(out core.Spans, s string) core.Spans {
	if n := len(out); n > 0 {
		if prev, ok := out[n-1].(core.Text); ok {
			out[n-1] = core.Text{Raw: prev.Raw + s}
			return out
		}
	}
	return append(out, core.Text{Raw: s})
}

// drawSpans draws a non-empty inline run. ancestors holds the kinds of the
// enclosing annotations.
func drawSpans(t *rapid.T, depth int, ancestors map[core.Markup]bool) core.Spans {
	var out core.Spans
	n := rapid.IntRange(1, 3).Draw(t, "spans")
	for i := 0; i < n; i++ {
		if i > 0 {
			out = appendText(out, " ")
		}

		var kinds []core.Markup
		if depth > 0 {
			for _, k := range nestable {
				if !ancestors[k] {
					kinds = append(kinds, k)
				}
			}
		}
		if len(kinds) == 0 || rapid.Bool().Draw(t, "plain") {
			out = appendText(out, wordGenerator().Draw(t, "word"))
			continue
		}

		kind := rapid.SampledFrom(kinds).Draw(t, "kind")
		ann := core.Annotation{Kind: kind}
		switch kind {
		case core.Code, core.Tag:
			ann.Inner = core.Spans{core.Text{Raw: wordGenerator().Draw(t, "word")}}
		default:
			nested := map[core.Markup]bool{kind: true}
			for k := range ancestors {
				nested[k] = true
			}
			ann.Inner = drawSpans(t, depth-1, nested)
		}
		if kind == core.Link {
			ann.Target = wordGenerator().Draw(t, "target") + ".md"
		}
		out = append(out, ann)
	}
	return out
}

func drawList(t *rapid.T, depth int) core.List {
	list := core.List{Ordered: rapid.Bool().Draw(t, "ordered")}
	n := rapid.IntRange(1, 3).Draw(t, "items")
	for i := 0; i < n; i++ {
		line := core.Line{Spans: drawSpans(t, 2, nil)}
		if depth > 0 && rapid.Bool().Draw(t, "child") {
			line.Child = drawList(t, depth-1)
		}
		list.Items = append(list.Items, line)
	}
	return list
}

func drawBlocks(t *rapid.T, depth int) core.Blocks {
	var out core.Blocks
	n := rapid.IntRange(1, 4).Draw(t, "blocks")
	for i := 0; i < n; i++ {
		kinds := []string{"paragraph", "header", "code"}
		if len(out) == 0 {
			kinds = append(kinds, "list")
		} else if _, prevList := out[len(out)-1].(core.List); !prevList {
			kinds = append(kinds, "list")
		}
		if depth > 0 {
			kinds = append(kinds, "quote")
		}

		switch rapid.SampledFrom(kinds).Draw(t, "block") {
		case "paragraph":
			out = append(out, core.Paragraph{Spans: drawSpans(t, 2, nil)})
		case "header":
			out = append(out, core.Header{
				Level: rapid.IntRange(1, 6).Draw(t, "level"),
				Spans: drawSpans(t, 2, nil),
			})
		case "code":
			words := rapid.SliceOfN(wordGenerator(), 1, 3).Draw(t, "code")
			out = append(out, core.CodeBlock{
				Lang: rapid.SampledFrom([]string{"", "go", "sh"}).Draw(t, "lang"),
				Raw:  strings.Join(words, "\n"),
			})
		case "list":
			out = append(out, drawList(t, 2))
		case "quote":
			out = append(out, core.Blockquote{Content: drawBlocks(t, depth-1)})
		}
	}
	return out
}

// =============================================================================
// Property: markdown output parses back to the same tree
// =============================================================================

func testRender_Roundtrip_Properties(t *rapid.T) {
	blocks := drawBlocks(t, 2)

	md := stoat.Render(blocks, stoat.Markdown)
	note, err := stoat.Parse("roundtrip", []byte(md))
	require.NoError(t, err, "markdown:\n%s", md)
	require.Equal(t, blocks, note.Content(), "markdown:\n%s", md)
}

func TestRender_Roundtrip_Properties(t *testing.T) {
	rapid.Check(t, testRender_Roundtrip_Properties)
}

func FuzzRender_Roundtrip_Properties(f *testing.F) {
	f.Add([]byte{0x00})
	f.Fuzz(rapid.MakeFuzz(testRender_Roundtrip_Properties))
}

func TestRender_Roundtrip(t *testing.T) {
	text := func(s string) core.Text { return core.Text{Raw: s} }
	ann := func(kind core.Markup, inner ...core.Span) core.Annotation {
		return core.Annotation{Kind: kind, Inner: inner}
	}

	tests := []struct {
		name  string
		spans core.Spans
		md    string
	}{
		{"Tag In Bold", core.Spans{ann(core.Bold, ann(core.Tag, text("x")))}, "**#x**"},
		{"Tag In Italic", core.Spans{ann(core.Italic, ann(core.Tag, text("x")))}, "_#x_"},
		{"Tag In Link", core.Spans{core.Annotation{Kind: core.Link, Inner: core.Spans{ann(core.Tag, text("x"))}, Target: "x.md"}}, "[#x](x.md)"},
		{"Tag After Text", core.Spans{text("see "), ann(core.Tag, text("todo"))}, "see #todo"},
	}

	p := stoat.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := stoat.Render(tt.spans, stoat.Markdown)
			assert.Equal(t, tt.md, md)

			spans, err := p.Inline(md)
			require.NoError(t, err)
			assert.Equal(t, tt.spans, spans)
		})
	}

	// Underscore emphasis cannot open or close inside a word, so intraword
	// italic comes back as plain text.
	t.Run("Intraword Italic", func(t *testing.T) {
		md := stoat.Render(core.Spans{text("a"), ann(core.Italic, text("b")), text("c")}, stoat.Markdown)
		assert.Equal(t, "a_b_c", md)

		spans, err := p.Inline(md)
		require.NoError(t, err)
		assert.Equal(t, core.Spans{text("a_b_c")}, spans)
	})
}

// =============================================================================
// Property: plain output carries no annotation delimiters
// =============================================================================

func testRender_PlainHasNoDelimiters_Properties(t *rapid.T) {
	blocks := drawBlocks(t, 2)

	plain := stoat.Render(blocks, stoat.PlainText)
	if strings.ContainsAny(plain, "*_+~`[]()#") {
		t.Fatalf("plain output carries markup:\n%s", plain)
	}
}

func TestRender_PlainHasNoDelimiters_Properties(t *testing.T) {
	rapid.Check(t, testRender_PlainHasNoDelimiters_Properties)
}

// =============================================================================
// Property: annotations never contribute text
// =============================================================================

func testTextContent_Transparent_Properties(t *rapid.T) {
	spans := drawSpans(t, 2, nil)
	kind := rapid.SampledFrom([]core.Markup{
		core.Bold, core.Italic, core.Underline, core.Strikeout, core.Code, core.Link, core.Tag,
	}).Draw(t, "kind")

	wrapped := core.Annotation{Kind: kind, Inner: spans, Target: "target.md"}
	require.Equal(t, stoat.TextContent(spans), stoat.TextContent(wrapped))
}

func TestTextContent_Transparent_Properties(t *testing.T) {
	rapid.Check(t, testTextContent_Transparent_Properties)
}

// =============================================================================
// Property: text content survives a markdown round trip
// =============================================================================

func testTextContent_Roundtrip_Properties(t *rapid.T) {
	blocks := drawBlocks(t, 2)

	note, err := stoat.Parse("text", []byte(stoat.Render(blocks, stoat.Markdown)))
	require.NoError(t, err)
	require.Equal(t, stoat.TextContent(blocks), stoat.TextContent(note))
}

func TestTextContent_Roundtrip_Properties(t *testing.T) {
	rapid.Check(t, testTextContent_Roundtrip_Properties)
}

// =============================================================================
// Re-entrancy
// =============================================================================

func TestParser_Concurrent(t *testing.T) {
	sources := []string{
		"- text\n",
		"---\ntitle: A\n---\n# A\n\n**bold** and _em_\n",
		"1. one\n   - two\n2. three\n",
		"> quoted #tag\n\n```go\nx := 1\n```\n",
		"see ![image](x.png)\n",
	}

	p := stoat.New()

	want := make([]string, len(sources))
	for i, src := range sources {
		note, err := p.Parse(core.NoteID(fmt.Sprint(i)), []byte(src))
		require.NoError(t, err)
		want[i] = stoat.Render(note, stoat.Markdown)
	}

	const workers = 8
	got := make([][]string, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range sources {
				// Interleave the order so that workers do not move in lockstep.
				idx := (i + w) % len(sources)
				note, err := p.Parse(core.NoteID(fmt.Sprint(idx)), []byte(sources[idx]))
				if err != nil {
					got[w] = append(got[w], "error: "+err.Error())
					continue
				}
				got[w] = append(got[w], fmt.Sprintf("%d:%s", idx, stoat.Render(note, stoat.Markdown)))
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.Len(t, got[w], len(sources))
		for _, entry := range got[w] {
			idx, rendered, ok := strings.Cut(entry, ":")
			require.True(t, ok, entry)
			var i int
			_, err := fmt.Sscan(idx, &i)
			require.NoError(t, err, entry)
			assert.Equal(t, want[i], rendered)
		}
	}
}
