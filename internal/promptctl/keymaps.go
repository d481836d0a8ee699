package promptctl

import "github.com/mle-editor/mle/internal/keymap"

// buildKeymap returns the fixed keymap contract for p.Kind (spec.md §4.5).
// Binding failures here would mean a key-token typo in this package's own
// literal patterns, which Bind would only ever report as a programmer
// error — it is intentionally not propagated as a runtime error.
func (c *Controller) buildKeymap(p Params) *keymap.Keymap {
	reg := c.Editor.Commands
	km := keymap.New("prompt")

	switch p.Kind {
	case KindInput:
		_ = km.Bind("enter", "prompt:accept-input", "", reg)
		_ = km.Bind("tab", "prompt:complete", "", reg)
		_ = km.Bind("C-c", "prompt:cancel", "", reg)
		_ = km.Bind("C-x", "prompt:cancel", "", reg)
		_ = km.Bind("M-c", "prompt:cancel", "", reg)

	case KindYesNo:
		_ = km.Bind("y", "prompt:yes", "", reg)
		_ = km.Bind("n", "prompt:no", "", reg)
		_ = km.Bind("C-c", "prompt:cancel", "", reg)
		_ = km.Bind("C-x", "prompt:cancel", "", reg)
		_ = km.Bind("M-c", "prompt:cancel", "", reg)

	case KindYesNoAll:
		_ = km.Bind("y", "prompt:yes", "", reg)
		_ = km.Bind("n", "prompt:no", "", reg)
		_ = km.Bind("a", "prompt:all", "", reg)
		_ = km.Bind("C-c", "prompt:cancel", "", reg)
		_ = km.Bind("C-x", "prompt:cancel", "", reg)
		_ = km.Bind("M-c", "prompt:cancel", "", reg)

	case KindOK:
		// "any key cancels": every input falls to the default command.
		km.SetDefault("prompt:dismiss", "", reg)

	case KindMenu:
		_ = km.Bind("enter", "prompt:menu-confirm", "", reg)
		_ = km.Bind("C-c", "prompt:menu-cancel", "", reg)

	case KindPromptMenu:
		_ = km.Bind("up", "prompt:promptmenu-move", "up", reg)
		_ = km.Bind("down", "prompt:promptmenu-move", "down", reg)
		_ = km.Bind("pgup", "prompt:promptmenu-move", "pgup", reg)
		_ = km.Bind("pgdn", "prompt:promptmenu-move", "pgdown", reg)
		_ = km.Bind("enter", "prompt:promptmenu-confirm", "", reg)
		_ = km.Bind("C-c", "prompt:cancel", "", reg)

	case KindISearch:
		_ = km.Bind("left", "prompt:isearch-step", "back", reg)
		_ = km.Bind("right", "prompt:isearch-step", "forward", reg)
		_ = km.Bind("M-d", "prompt:isearch-drop-cursors", "", reg)
		_ = km.Bind("C-c", "prompt:cancel", "", reg)
	}

	return km
}
