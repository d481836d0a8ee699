package loop

import (
	"github.com/mle-editor/mle/internal/dispatch"
	"github.com/mle-editor/mle/internal/keystroke"
)

// pasteIngest implements spec.md §4.5: once the first keystroke of a burst
// resolves to the text-insertion command, peek (non-blocking) at whatever
// further input is already buffered; while it also resolves to the same
// command, fold it into the batch instead of dispatching one turn per
// character. The first keystroke that resolves differently (or the
// absence of any more immediately-available input) ends the burst; a
// keystroke read but not absorbed is requeued so the next turn still
// dispatches it — exactly one leftover keystroke survives a burst.
func (ctx *Context) pasteIngest(matched dispatch.Result, first keystroke.Keystroke) []keystroke.Keystroke {
	peeker, ok := ctx.Input.(PeekSource)
	if !ok {
		return []keystroke.Keystroke{first}
	}

	batch := []keystroke.Keystroke{first}
	for {
		n, err := peeker.Pending()
		if err != nil || n == 0 {
			break
		}
		ks, err := peeker.ReadKeystroke()
		if err != nil {
			break
		}

		var probe dispatch.State
		res := dispatch.Resolve(ctx.View.KeymapStack, &probe, ks, true)
		if res.Outcome == dispatch.Resolved && res.Command == matched.Command {
			batch = append(batch, ks)
			continue
		}
		ctx.pending = append(ctx.pending, ks)
		break
	}
	return batch
}
