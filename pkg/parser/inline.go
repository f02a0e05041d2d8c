package parser

import (
	"github.com/aretw0/stoat/pkg/core"
	"github.com/aretw0/stoat/pkg/token"
)

type runMode uint8

const (
	// closedRun ends by consuming the event that closes the opening tag.
	closedRun runMode = iota
	// itemRun ends, without consuming, at a block start or at the item's end.
	itemRun
	// rootRun has no opening tag and ends with the stream.
	rootRun
)

var markups = map[token.Name]core.Markup{
	token.Strong:        core.Bold,
	token.Emphasis:      core.Italic,
	token.Underline:     core.Underline,
	token.Strikethrough: core.Strikeout,
	token.Code:          core.Code,
	token.Link:          core.Link,
	token.Hashtag:       core.Tag,
}

// spans builds the inline content of open and consumes its end event.
func (b *builder) spans(open token.Event) (core.Spans, error) {
	return b.run(open, closedRun)
}

func (b *builder) root() (core.Spans, error) {
	return b.run(token.Event{}, rootRun)
}

func (b *builder) run(open token.Event, mode runMode) (core.Spans, error) {
	var (
		out     core.Spans
		dropped []token.Tag // unknown constructs whose end is still pending
	)

	for {
		ev, ok := b.next()
		if !ok {
			if mode == rootRun && len(dropped) == 0 {
				return out, nil
			}
			if mode == rootRun {
				return nil, b.fail(dropped[len(dropped)-1].String(), 0, core.ErrUnterminatedConstruct)
			}
			return nil, b.unterminated(open)
		}

		switch ev.Kind {
		case token.Text:
			out = appendText(out, ev.Text)

		case token.End:
			if n := len(dropped); n > 0 {
				if !ev.Tag.Closes(dropped[n-1]) {
					return nil, b.mismatched(ev)
				}
				dropped = dropped[:n-1]
				continue
			}
			if mode != rootRun && ev.Tag.Closes(open.Tag) {
				if mode == itemRun {
					b.stream.Backup()
				}
				return out, nil
			}
			return nil, b.mismatched(ev)

		case token.Start:
			if ev.Tag.Block {
				if mode == itemRun && len(dropped) == 0 {
					b.stream.Backup()
					return out, nil
				}
				return nil, b.fail(ev.Tag.String()+" in inline content", ev.Line, core.ErrUnknownBlockConstruct)
			}

			kind, known := markups[ev.Tag.Name]
			if !known {
				if err := b.unknownInline(ev); err != nil {
					return nil, err
				}
				dropped = append(dropped, ev.Tag)
				continue
			}

			inner, err := b.spans(ev)
			if err != nil {
				return nil, err
			}
			ann := core.Annotation{Kind: kind, Inner: inner}
			if kind == core.Link {
				ann.Target = ev.Tag.Destination
			}
			out = append(out, ann)
		}
	}
}

// unknownInline applies the unknown-construct policy: an error in strict
// mode, a diagnostic otherwise.
func (b *builder) unknownInline(ev token.Event) error {
	if b.parser.strict {
		return b.fail(ev.Tag.String(), ev.Line, core.ErrUnknownInlineConstruct)
	}
	b.parser.report(core.Diagnostic{
		Note:      b.note,
		Construct: ev.Tag.String(),
		Line:      b.at(ev.Line),
		Err:       core.ErrUnknownInlineConstruct,
	})
	return nil
}

// appendText merges adjacent text so that dropped constructs leave a single run.
func appendText(out core.Spans, s string) core.Spans {
	if s == "" {
		return out
	}
	if n := len(out); n > 0 {
		if prev, ok := out[n-1].(core.Text); ok {
			out[n-1] = core.Text{Raw: prev.Raw + s}
			return out
		}
	}
	return append(out, core.Text{Raw: s})
}
