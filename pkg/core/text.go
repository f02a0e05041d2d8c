package core

import "strings"

// TextContent returns the human-readable text of n with all markup removed.
//
// Inline runs are concatenated; lines and blocks are joined by a single newline.
// A nil node yields the empty string.
func TextContent(n Node) string {
	switch n := n.(type) {
	case Text:
		return n.Raw
	case Annotation:
		return TextContent(n.Inner)
	case Spans:
		var sb strings.Builder
		for _, s := range n {
			sb.WriteString(TextContent(s))
		}
		return sb.String()
	case Line:
		return lineText(n)
	case Lines:
		return joinText(n)
	case Header:
		return TextContent(n.Spans)
	case Paragraph:
		return TextContent(n.Spans)
	case List:
		return TextContent(n.Items)
	case CodeBlock:
		return n.Raw
	case Blockquote:
		return TextContent(n.Content)
	case Blocks:
		return joinText(n)
	case *Note:
		if n == nil {
			return ""
		}
		return TextContent(n.content)
	}
	return ""
}

func lineText(l Line) string {
	switch {
	case len(l.Spans) == 0 && l.Child == nil:
		return ""
	case len(l.Spans) == 0:
		return TextContent(l.Child)
	case l.Child == nil:
		return TextContent(l.Spans)
	default:
		return TextContent(l.Spans) + "\n" + TextContent(l.Child)
	}
}

func joinText[T Node](nodes []T) string {
	switch len(nodes) {
	case 0:
		return ""
	case 1:
		return TextContent(nodes[0])
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = TextContent(n)
	}
	return strings.Join(parts, "\n")
}
