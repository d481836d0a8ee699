// Package editor implements the editor-wide aggregate (spec.md §3, §5
// "Shared resources"): the keymap/command/macro registries and the views
// collection, all owned and mutated only on the main loop, plus the
// signal-triggered crash-backup path (spec.md §5 "Signals").
package editor

import (
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/keymap"
	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/mle-editor/mle/internal/macro"
	"github.com/mle-editor/mle/internal/view"
	"github.com/rs/zerolog"
)

// Editor owns every shared resource the core mutates, per spec.md §5: the
// keymap registry, command registry, macro registry and views collection.
type Editor struct {
	Keymaps  *keymap.Registry
	Commands *command.Registry
	Macros   *macro.Registry
	Player   *macro.Player
	Views    *view.Collection

	// MacroToggleKey is the configured recording start/stop keystroke
	// (spec.md §6 "-m key"). New sets it to M-r; the zero value means no
	// toggle key is configured.
	MacroToggleKey keystroke.Keystroke

	// PromptOpen enforces "at most one prompt view is open at any
	// instant" (spec.md §8); package promptctl sets/clears it around each
	// nested prompt loop.
	PromptOpen bool

	// WorkDir is where crash backups are written (spec.md §5, "mle.bak.<pid>.<n>
	// in the current directory").
	WorkDir string

	Log zerolog.Logger

	// ShouldExit is polled by the outermost loop context after every turn
	// (spec.md §4.3 step 6). Nested loop contexts carry their own exit
	// flag (package loop); this one only ever stops the top-level loop.
	ShouldExit bool
	ExitCode   int
}

// New constructs an Editor with empty registries and an empty views
// collection, logging through log.
func New(log zerolog.Logger, workDir string) *Editor {
	e := &Editor{
		Keymaps:  keymap.NewRegistry(),
		Commands: command.NewRegistry(),
		Macros:   macro.NewRegistry(),
		Views:    view.NewCollection(),
		WorkDir:  workDir,
		Log:      log,

		MacroToggleKey: keystroke.Keystroke{Mod: keystroke.ModMeta, Rune: 'r'},
	}
	e.Player = macro.NewPlayer(e.Macros)
	return e
}

// OpenView satisfies command.EditorHandle: it opens v as a new top-level,
// active view. Commands that need split/menu placement go through package
// view directly via their own view.Collection reference in Context.Loop;
// this method covers the common "open a plain new view" case a command
// body reaches through ctx.Editor.
func (e *Editor) OpenView(v command.ViewHandle) {
	vv, ok := v.(*view.View)
	if !ok {
		e.Log.Error().Str("type", "unknown").Msg("editor: OpenView given a non-*view.View handle")
		return
	}
	e.Views.Open(vv, nil, true)
}

// CloseView satisfies command.EditorHandle, closing v per the view
// lifecycle rules in spec.md §4.7.
func (e *Editor) CloseView(v command.ViewHandle) {
	vv, ok := v.(*view.View)
	if !ok {
		e.Log.Error().Str("type", "unknown").Msg("editor: CloseView given a non-*view.View handle")
		return
	}
	e.Views.Close(vv, e.blankEdit)
}

func (e *Editor) blankEdit() *view.View {
	return view.New(command.ViewEdit)
}

// RequestExit sets the top-level exit flag with the given process exit
// code (spec.md §6 "Exit codes").
func (e *Editor) RequestExit(code int) {
	e.ShouldExit = true
	e.ExitCode = code
}
