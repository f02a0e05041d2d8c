package parser

import (
	"strings"

	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/token"
)

// document builds blocks until the stream is exhausted.
func (b *builder) document() (core.Blocks, error) {
	return b.blocks(nil)
}

// blocks builds a block sequence. With a non-nil open event it stops after
// consuming the matching end event; otherwise at the end of the stream.
func (b *builder) blocks(open *token.Event) (core.Blocks, error) {
	var out core.Blocks
	for {
		ev, ok := b.next()
		if !ok {
			if open != nil {
				return nil, b.unterminated(*open)
			}
			return out, nil
		}

		switch ev.Kind {
		case token.End:
			if open != nil && ev.Tag.Closes(open.Tag) {
				return out, nil
			}
			return nil, b.mismatched(ev)
		case token.Text:
			return nil, b.fail("text", ev.Line, core.ErrUnknownBlockConstruct)
		case token.Start:
			blk, err := b.block(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, blk)
		}
	}
}

// block builds the block opened by ev, consuming its end event.
func (b *builder) block(ev token.Event) (core.Block, error) {
	switch ev.Tag.Name {
	case token.Heading:
		if ev.Tag.Level < 1 || ev.Tag.Level > 6 {
			return nil, b.fail(ev.Tag.String(), ev.Line, core.ErrUnknownBlockConstruct)
		}
		spans, err := b.spans(ev)
		if err != nil {
			return nil, err
		}
		return core.Header{Level: ev.Tag.Level, Spans: spans}, nil

	case token.Paragraph:
		spans, err := b.spans(ev)
		if err != nil {
			return nil, err
		}
		return core.Paragraph{Spans: spans}, nil

	case token.List:
		return b.list(ev)

	case token.CodeBlock:
		return b.code(ev)

	case token.Blockquote:
		content, err := b.blocks(&ev)
		if err != nil {
			return nil, err
		}
		return core.Blockquote{Content: content}, nil

	default:
		return nil, b.fail(ev.Tag.String(), ev.Line, core.ErrUnknownBlockConstruct)
	}
}

// code takes the text of a code block verbatim.
func (b *builder) code(open token.Event) (core.Block, error) {
	var sb strings.Builder
	for {
		ev, ok := b.next()
		if !ok {
			return nil, b.unterminated(open)
		}

		switch ev.Kind {
		case token.Text:
			sb.WriteString(ev.Text)
		case token.End:
			if !ev.Tag.Closes(open.Tag) {
				return nil, b.mismatched(ev)
			}
			return core.CodeBlock{Lang: open.Tag.Lang, Raw: sb.String()}, nil
		case token.Start:
			return nil, b.fail(ev.Tag.String()+" in code block", ev.Line, core.ErrUnknownBlockConstruct)
		}
	}
}

func (b *builder) list(open token.Event) (core.Block, error) {
	list := core.List{Ordered: open.Tag.Ordered}
	for {
		ev, ok := b.next()
		if !ok {
			return nil, b.unterminated(open)
		}

		switch {
		case ev.Kind == token.End && ev.Tag.Closes(open.Tag):
			return list, nil
		case ev.Kind == token.End:
			return nil, b.mismatched(ev)
		case ev.Kind == token.Start && ev.Tag.Name == token.Item:
			lines, err := b.item(ev)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, lines...)
		default:
			return nil, b.fail(ev.String()+" in list", ev.Line, core.ErrUnknownBlockConstruct)
		}
	}
}

// item builds the lines of one list item.
//
// The first inline run becomes the line's spans and the first nested block its
// child. Anything after that starts a further line, so an item holding a block
// followed by another block yields a label-less line. An empty item yields one
// empty line.
func (b *builder) item(open token.Event) (core.Lines, error) {
	var (
		lines   core.Lines
		cur     core.Line
		started bool
	)

	addSpans := func(spans core.Spans) {
		if started {
			lines = append(lines, cur)
			cur = core.Line{}
		}
		cur.Spans = spans
		started = true
	}
	addChild := func(child core.Block) {
		if cur.Child != nil {
			lines = append(lines, cur)
			cur = core.Line{}
		}
		cur.Child = child
		started = true
	}

	for {
		ev, ok := b.next()
		if !ok {
			return nil, b.unterminated(open)
		}

		switch {
		case ev.Kind == token.End && ev.Tag.Closes(open.Tag):
			if started || len(lines) == 0 {
				lines = append(lines, cur)
			}
			return lines, nil

		case ev.Kind == token.End:
			return nil, b.mismatched(ev)

		case ev.Kind == token.Start && ev.Tag.Name == token.Paragraph:
			spans, err := b.spans(ev)
			if err != nil {
				return nil, err
			}
			addSpans(spans)

		case ev.Kind == token.Start && ev.Tag.Block:
			child, err := b.block(ev)
			if err != nil {
				return nil, err
			}
			addChild(child)

		default:
			// Inline content placed directly in the item.
			b.stream.Backup()
			spans, err := b.run(open, itemRun)
			if err != nil {
				return nil, err
			}
			addSpans(spans)
		}
	}
}
