package tag

import (
	"context"
	"log/slog"
	"slices"
)

// parseBlocks captures the declared blocks from the invocation stream.
//
// Each capture stops at the terminator of the current block or of any later
// block. Content always goes to the current block. When a later terminator
// was found, every block up to and including the one it ends is empty.
func (p *parser) parseBlocks(ctx context.Context) (Blocks, error) {
	blocks := make(Blocks, len(p.opts.blocks))
	if len(p.opts.blocks) == 0 {
		return blocks, nil
	}

	if p.inv.Stream == nil {
		return nil, ErrTemplateSyntax.
			Wrapf("tag %q declares blocks but has no content stream", p.inv.Name).
			With(p.attrs()...)
	}

	pending := slices.Clone(p.opts.blocks)

	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]

		terms := make([]string, 0, len(pending)+1)
		terms = append(terms, cur.Terminator)

		for _, b := range pending {
			terms = append(terms, b.Terminator)
		}

		content, matched, err := p.inv.Stream.CaptureUntil(terms)
		if err != nil {
			return nil, err
		}

		blocks[cur.Alias] = content

		for matched != cur.Terminator {
			if len(pending) == 0 {
				return nil, ErrTemplateSyntax.
					Wrapf("tag %q: unexpected block terminator %q", p.inv.Name, matched).
					With(p.attrs(slog.String("terminator", matched))...)
			}

			cur = pending[0]
			pending = pending[1:]
			blocks[cur.Alias] = p.inv.Stream.Empty()
		}

		p.inv.Logger.TraceContext(ctx, "captured block", p.attrs(
			slog.String("alias", cur.Alias),
			slog.String("terminator", matched))...)
	}

	return blocks, nil
}
