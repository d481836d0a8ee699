// Package promptctl implements the prompt and menu controller (spec.md
// §4.5): a single-line prompt (or full-height menu) view with a fixed
// keymap contract, run through a nested loop context. It depends on
// package loop to re-enter the event loop body, grounded on the same
// dependency direction the teacher's own interactive-mode packages used
// (the higher-level controller depends on the lower-level loop, never the
// reverse).
package promptctl

import (
	"os/exec"

	"github.com/mle-editor/mle/internal/async"
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/editor"
	"github.com/mle-editor/mle/internal/loop"
	"github.com/mle-editor/mle/internal/view"
	"github.com/pkg/errors"
)

// ErrPromptAlreadyOpen is returned by Prompt when another prompt view is
// already open (spec.md §8 "At most one prompt view is open at any
// instant").
var ErrPromptAlreadyOpen = errors.New("promptctl: a prompt is already open")

// Kind selects which fixed keymap contract a prompt exposes (spec.md
// §4.5).
type Kind int

// The seven prompt/menu contracts spec.md §4.5 names.
const (
	KindInput Kind = iota
	KindYesNo
	KindYesNoAll
	KindOK
	KindMenu
	KindPromptMenu
	KindISearch
)

// Sentinel distinguishes the fixed non-text answers a prompt can produce.
type Sentinel int

// Sentinel answers for yes/no(/all) prompts.
const (
	SentinelNone Sentinel = iota
	SentinelYes
	SentinelNo
	SentinelAll
)

// Answer is what Prompt returns: either Cancelled, a Sentinel (yes/no/all),
// or free-form Text (input prompt, or a prompt-menu's selected line).
type Answer struct {
	Cancelled bool
	Sentinel  Sentinel
	Text      string
}

// Params configures one Prompt call.
type Params struct {
	Kind         Kind
	InitialText  string
	OnChange     func(text string)
	MenuCallback view.MenuCallback

	// CompletionCmd is the filename-completion command tab-completion
	// shells out to (spec.md §4.5 "Tab completion"); CompletionShell
	// overrides the interpreter (default "sh", spec.md §6 "Environment").
	CompletionCmd   string
	CompletionShell string
}

// Controller runs prompt/menu loops against a shared editor and terminal
// collaborators.
type Controller struct {
	Editor *editor.Editor
	Input  loop.TerminalSource
	Drawer loop.Drawer
	Namer  loop.NamePrompter
	Mux    *async.Multiplexer

	execCommand func(name string, arg ...string) *exec.Cmd
}

// New returns a Controller wired against the given collaborators.
func New(ed *editor.Editor, in loop.TerminalSource, drawer loop.Drawer, namer loop.NamePrompter, mux *async.Multiplexer) *Controller {
	return &Controller{
		Editor:      ed,
		Input:       in,
		Drawer:      drawer,
		Namer:       namer,
		Mux:         mux,
		execCommand: exec.Command,
	}
}

// Prompt opens a prompt (or menu) view, installs the Kind's fixed keymap,
// and runs a nested loop until the prompt's keymap sets an answer and
// requests exit (spec.md §4.5). parent is the loop context the prompt was
// invoked from, or nil when called from the top level.
func (c *Controller) Prompt(parent *loop.Context, title string, p Params) (Answer, error) {
	if c.Editor.PromptOpen {
		return Answer{}, ErrPromptAlreadyOpen
	}
	c.Editor.PromptOpen = true
	defer func() { c.Editor.PromptOpen = false }()

	// Captured before Open makes v active, since that is the view the
	// prompt was invoked from and the one spec.md §3 says is "restored on
	// exit" — Close's generic nearest-EDIT-view heuristic is not a
	// substitute for this once other views have been switched between the
	// prompt opening and closing (see the Context.PrevActiveView doc).
	invoker := c.Editor.Views.Active()

	typ := command.ViewPrompt
	if p.Kind == KindMenu || p.Kind == KindPromptMenu {
		typ = command.ViewMenu
	}
	v := view.New(typ)
	v.SetPromptString(p.InitialText)
	v.MenuCallback = p.MenuCallback
	v.KeymapStack.Push(c.buildKeymap(p))

	c.Editor.Views.Open(v, nil, true)
	defer func() {
		c.Editor.Views.Close(v, func() *view.View { return view.New(command.ViewEdit) })
		if invoker != nil {
			c.Editor.Views.SetActive(invoker)
		}
	}()

	ctx := loop.NewContext(parent, c.Editor, v, c.Mux, c.Input, c.Drawer, c.Namer)
	ctx.PrevActiveView = invoker
	var answer Answer
	ctx.Answer = &answer

	state := &promptState{params: p, controller: c}
	ctx.Editor.Commands.Register("prompt:accept-input", state.acceptInput, nil)
	ctx.Editor.Commands.Register("prompt:cancel", state.cancel, nil)
	ctx.Editor.Commands.Register("prompt:complete", state.complete, nil)
	ctx.Editor.Commands.Register("prompt:yes", state.yes, nil)
	ctx.Editor.Commands.Register("prompt:no", state.no, nil)
	ctx.Editor.Commands.Register("prompt:all", state.all, nil)
	ctx.Editor.Commands.Register("prompt:dismiss", state.cancel, nil)
	ctx.Editor.Commands.Register("prompt:menu-confirm", state.menuConfirm, nil)
	ctx.Editor.Commands.Register("prompt:menu-cancel", state.menuCancel, nil)
	ctx.Editor.Commands.Register("prompt:promptmenu-move", state.promptMenuMove, nil)
	ctx.Editor.Commands.Register("prompt:promptmenu-confirm", state.promptMenuConfirm, nil)
	ctx.Editor.Commands.Register("prompt:isearch-step", state.isearchStep, nil)
	ctx.Editor.Commands.Register("prompt:isearch-drop-cursors", state.isearchDropCursors, nil)

	if err := loop.Run(ctx); err != nil {
		return Answer{}, err
	}
	return answer, nil
}
