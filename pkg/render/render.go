// Package render serializes note trees back to text.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/stoat/pkg/core"
)

// Format selects the output of Render.
type Format uint8

const (
	// Markdown keeps every annotation. The output parses back to the same tree.
	Markdown Format = iota
	// PlainText drops annotation delimiters, heading hashes and code fences
	// but keeps list markers and quote prefixes.
	PlainText
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown format")

func (f Format) String() string {
	switch f {
	case Markdown:
		return "markdown"
	case PlainText:
		return "plain"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// ParseFormat accepts "markdown" (or "md") and "plain" (or "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return Markdown, nil
	case "plain", "text", "txt":
		return PlainText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Render serializes n. Empty sequences and nil render as "".
func Render(n core.Node, f Format) string {
	r := renderer{markdown: f == Markdown}
	return r.node(n)
}

type renderer struct {
	markdown bool
}

func (r renderer) node(n core.Node) string {
	switch n := n.(type) {
	case core.Text:
		if r.markdown {
			return escape(n.Raw)
		}
		return n.Raw
	case core.Annotation:
		return r.annotation(n)
	case core.Spans:
		var sb strings.Builder
		for _, s := range n {
			sb.WriteString(r.node(s))
		}
		return sb.String()
	case core.Line:
		return r.items(core.Lines{n}, false)
	case core.Lines:
		return r.items(n, false)
	case core.Header:
		text := strings.ReplaceAll(r.node(n.Spans), "\n", " ")
		if !r.markdown {
			return text
		}
		hashes := strings.Repeat("#", n.Level)
		if text == "" {
			return hashes
		}
		return hashes + " " + text
	case core.Paragraph:
		return r.node(n.Spans)
	case core.List:
		return r.items(n.Items, n.Ordered)
	case core.CodeBlock:
		if !r.markdown {
			return n.Raw
		}
		return fencedCode(n)
	case core.Blockquote:
		return quote(r.node(n.Content))
	case core.Blocks:
		parts := make([]string, len(n))
		for i, b := range n {
			parts[i] = r.node(b)
		}
		return strings.Join(parts, "\n\n")
	case *core.Note:
		if n == nil {
			return ""
		}
		return r.node(n.Content())
	}
	return ""
}

func (r renderer) annotation(a core.Annotation) string {
	if !r.markdown {
		return r.node(a.Inner)
	}

	switch a.Kind {
	case core.Bold:
		return "**" + r.node(a.Inner) + "**"
	case core.Italic:
		return "_" + r.node(a.Inner) + "_"
	case core.Underline:
		return "++" + r.node(a.Inner) + "++"
	case core.Strikeout:
		return "~~" + r.node(a.Inner) + "~~"
	case core.Code:
		return codeSpan(core.TextContent(a.Inner))
	case core.Link:
		return "[" + r.node(a.Inner) + "](" + linkTarget(a.Target) + ")"
	case core.Tag:
		return "#" + core.TextContent(a.Inner)
	}
	return r.node(a.Inner)
}

// items renders list lines. Continuation lines are indented by the marker
// width so that they stay inside their item.
func (r renderer) items(lines core.Lines, ordered bool) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		marker := "-"
		if ordered {
			marker = strconv.Itoa(i+1) + "."
		}
		parts[i] = r.line(l, marker)
	}
	return strings.Join(parts, "\n")
}

func (r renderer) line(l core.Line, marker string) string {
	indent := strings.Repeat(" ", len(marker)+1)

	var child string
	if l.Child != nil {
		child = indentLines(r.node(l.Child), indent)
	}

	if len(l.Spans) == 0 {
		if child == "" {
			return marker
		}
		return marker + "\n" + child
	}

	out := marker + " " + strings.ReplaceAll(r.node(l.Spans), "\n", "\n"+indent)
	if child != "" {
		out += "\n" + child
	}
	return out
}

// indentLines prefixes every non-blank line of s.
func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

func fencedCode(c core.CodeBlock) string {
	fence := strings.Repeat("`", max(3, longestRun(c.Raw, '`')+1))
	if c.Raw == "" {
		return fence + c.Lang + "\n" + fence
	}
	return fence + c.Lang + "\n" + c.Raw + "\n" + fence
}

func codeSpan(s string) string {
	fence := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") ||
		(strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.TrimSpace(s) != "") {
		s = " " + s + " "
	}
	return fence + s + fence
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

func linkTarget(target string) string {
	if target == "" || strings.ContainsAny(target, " ()<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(target) + ">"
	}
	return target
}

// escape backslash-escapes characters that would otherwise start markup.
func escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	lineStart := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case strings.IndexByte("\\*_`[]~#+<>&!", c) >= 0:
			sb.WriteByte('\\')
		case lineStart && (c == '-' || c == '='):
			sb.WriteByte('\\')
		case lineStart && isDigit(c):
			// "1." or "1)" at the start of a line opens an ordered list.
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '.' || s[j] == ')') {
				sb.WriteString(s[i:j])
				sb.WriteByte('\\')
				i = j - 1
				lineStart = false
				continue
			}
		}
		sb.WriteByte(c)
		lineStart = c == '\n'
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
