package loop

import "github.com/mle-editor/mle/internal/keystroke"

// acquireInput implements spec.md §4.3 step 3: a keystroke requeued by
// paste ingestion takes priority, then the macro replay stream if one is
// active and not exhausted, otherwise the terminal. The bool result is
// true iff the keystroke came from the user (terminal or a requeued
// terminal keystroke), as opposed to macro replay — only user-originated
// input is ever recorded or fed to paste ingestion.
func (ctx *Context) acquireInput() (keystroke.Keystroke, bool, error) {
	if len(ctx.pending) > 0 {
		ks := ctx.pending[0]
		ctx.pending = ctx.pending[1:]
		return ks, true, nil
	}

	if ctx.Editor.Player.IsReplaying() {
		if ks, ok := ctx.Editor.Player.NextReplayInput(); ok {
			return ks, false, nil
		}
		// exhausted: fall through to the terminal for this same turn.
	}

	ks, err := ctx.Input.ReadKeystroke()
	if err != nil {
		return keystroke.Keystroke{}, false, err
	}
	return ks, true, nil
}

// handleMacroToggle implements spec.md §4.3 step 4: if ks is the
// configured macro toggle keystroke, start or stop recording and report
// that the caller should restart its iteration without dispatching ks.
func (ctx *Context) handleMacroToggle(ks keystroke.Keystroke) (handled bool) {
	toggle := ctx.Editor.MacroToggleKey
	if toggle.Mod == 0 && toggle.Rune == 0 && toggle.Special == keystroke.SpecialNone {
		return false // no toggle key configured
	}
	if !ks.Equals(toggle) {
		return false
	}

	if ctx.Editor.Player.IsRecording() {
		ctx.Editor.Player.StopRecording()
		return true
	}
	if ctx.Namer == nil {
		return true
	}
	name, ok := ctx.Namer.PromptMacroName(ctx)
	if ok && name != "" {
		ctx.Editor.Player.StartRecording(name)
	}
	return true
}
