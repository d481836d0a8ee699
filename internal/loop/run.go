package loop

import (
	"github.com/mle-editor/mle/internal/async"
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/dispatch"
	"github.com/mle-editor/mle/internal/keystroke"
)

// Run executes ctx's loop body until ctx.RequestExit is called, per
// spec.md §4.3. Nested prompt/menu loops call Run again against a fresh
// Context built with NewContext(ctx, ...) and inspect ctx.Answer when it
// returns.
func Run(ctx *Context) error {
	for {
		if !ctx.SuppressDraw && ctx.Drawer != nil {
			if err := ctx.Drawer.Draw(ctx.View); err != nil {
				ctx.Editor.Log.Error().Err(err).Msg("loop: draw failed")
			}
		}

		if ctx.Mux != nil {
			outcome, err := ctx.Mux.Turn()
			if err != nil {
				ctx.Editor.Log.Error().Err(err).Msg("loop: async multiplexer turn failed")
			}
			if outcome == async.CallAgain {
				continue
			}
		}

		ks, fromUser, err := ctx.acquireInput()
		if err != nil {
			return err
		}

		if fromUser {
			ctx.Editor.Player.RecordInput(ks)
			if ctx.handleMacroToggle(ks) {
				continue
			}
		}

		res := dispatch.Resolve(ctx.View.KeymapStack, &ctx.state, ks, false)
		switch res.Outcome {
		case dispatch.Resolved:
			ctx.dispatch(ks, fromUser, res)
		case dispatch.NeedMoreInput:
			// state already carries the updated binding node/parameter
			// buffers; nothing else to do this turn.
		case dispatch.Unbound:
			// dispatch.Resolve already cleared the chord state on a miss.
		}

		if ctx.shouldExit || (ctx.Depth == 0 && ctx.Editor.ShouldExit) {
			return nil
		}
	}
}

// dispatch runs the resolved command, wiring paste ingestion and clearing
// the chord/parameter state afterward (spec.md §4.3 step 5).
func (ctx *Context) dispatch(ks keystroke.Keystroke, fromUser bool, res dispatch.Result) {
	paste := []keystroke.Keystroke{ks}
	if fromUser && res.Command.Name == command.InsertDataCommandName {
		paste = ctx.pasteIngest(res, ks)
	}

	cctx := &command.Context{
		Editor:      ctx.Editor,
		View:        ctx.View,
		Input:       ks,
		Param:       res.Param,
		Loop:        ctx,
		IsUserInput: fromUser,
	}
	if len(paste) > 1 {
		cctx.PasteBuffer = paste
	}

	if err := res.Command.Execute(cctx); err != nil {
		ctx.Editor.Log.Error().Err(err).Str("command", res.Command.Name).Msg("loop: command failed")
	}
	ctx.state.ClearChord()
	ctx.state.ClearParams()
	ctx.lastCmd = res.Command
}
