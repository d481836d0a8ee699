// Package loop implements the single-threaded, cooperative event loop
// (spec.md §4.3) and its reentrant nesting: prompts and menus push a fresh
// loop context and re-enter the same loop body (package promptctl). The
// loop owns the dispatch resolver's mutable state (binding node, numeric
// and wildcard parameter buffers) and the macro record/replay decision of
// where a turn's input comes from.
package loop

import (
	"github.com/mle-editor/mle/internal/async"
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/dispatch"
	"github.com/mle-editor/mle/internal/editor"
	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/mle-editor/mle/internal/view"
)

// TerminalSource is the blocking terminal input collaborator (spec.md §5
// "blocking wait for a terminal event"). The concrete implementation
// bridges a decoded tcell event into a keystroke.Keystroke (see package
// termio).
type TerminalSource interface {
	ReadKeystroke() (keystroke.Keystroke, error)
}

// PeekSource is implemented by terminal sources that can report whether
// more input is immediately available without blocking, which paste
// ingestion (spec.md §4.5) needs to classify a burst without stalling.
type PeekSource interface {
	TerminalSource
	Pending() (int, error)
}

// Drawer renders one frame: clear → active edit-view subtree → status →
// prompt → cursors → present (spec.md §4.3 step 1). The concrete
// implementation is an external collaborator per spec.md §1.
type Drawer interface {
	Draw(active *view.View) error
}

// NamePrompter asks the user for a macro name when recording starts
// (spec.md §4.4 "start: prompt for name"). Implemented by package
// promptctl, which already depends on package loop to run its own nested
// loop — loop itself cannot import promptctl without a cycle, so this
// narrow interface is the seam.
type NamePrompter interface {
	PromptMacroName(parent *Context) (name string, ok bool)
}

// Context is one (possibly nested) loop's mutable state (spec.md §4.3,
// "Loops nest ... a loop_depth counter allows collaborators to detect
// nesting").
type Context struct {
	Editor *editor.Editor
	View   *view.View
	Mux    *async.Multiplexer
	Input  TerminalSource
	Drawer Drawer
	Namer  NamePrompter

	// PrevActiveView is whichever view was active in Editor.Views at the
	// moment this context was constructed (spec.md §3 "Loop context" ...
	// "the invoking view (restored on exit)"). A nested prompt/menu loop
	// opens its own view and makes it active, so this is the one piece of
	// "what to reactivate on exit" that close-time heuristics over the
	// all-views ring cannot reliably reconstruct once other views have been
	// switched between opening and closing.
	PrevActiveView *view.View

	// Depth is loop_depth: 0 for the outermost loop, incremented for each
	// nested prompt/menu loop.
	Depth int

	// Answer is populated by a prompt/menu command before it sets
	// shouldExit (spec.md §4.5 "prompt(title, params) -> answer?").
	Answer any

	// SuppressDraw skips step 1 for this turn (spec.md §4.3 step 1 "If not
	// suppressed").
	SuppressDraw bool

	// CompletionTerm and CompletionIndex are the tab-completion stem
	// snapshot and cycling index (spec.md §4.5 "Tab completion"),
	// threaded here because each nested prompt loop gets its own Context
	// and completion state must not leak across prompts.
	CompletionTerm  string
	CompletionIndex int

	shouldExit bool
	state      dispatch.State
	lastCmd    *command.Ref
	pending    []keystroke.Keystroke
}

// NewContext constructs a loop context. parent is nil for the outermost
// loop; a non-nil parent supplies the nesting depth for a prompt/menu's
// reentrant call (spec.md §4.3).
func NewContext(parent *Context, ed *editor.Editor, v *view.View, mux *async.Multiplexer, in TerminalSource, drawer Drawer, namer NamePrompter) *Context {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Context{
		Editor:         ed,
		View:           v,
		Mux:            mux,
		Input:          in,
		Drawer:         drawer,
		Namer:          namer,
		Depth:          depth,
		PrevActiveView: ed.Views.Active(),
	}
}

// RequestExit sets this loop's exit flag, causing Run to return after the
// current turn completes (spec.md §4.3 step 6).
func (ctx *Context) RequestExit() { ctx.shouldExit = true }

// ShouldExit reports whether RequestExit has been called on this context.
func (ctx *Context) ShouldExit() bool { return ctx.shouldExit }

// NumericParams returns the numeric parameter vector accumulated for the
// command currently executing (spec.md §3).
func (ctx *Context) NumericParams() []uint64 { return ctx.state.NumericParams }

// WildcardParams returns the wildcard parameter vector accumulated for the
// command currently executing (spec.md §3).
func (ctx *Context) WildcardParams() []rune { return ctx.state.WildcardParams }

// LastCommand returns the command reference dispatched on the previous
// turn (nil before any command has run this context). Tab completion uses
// this to detect `last_cmd != completion` (spec.md §4.5).
func (ctx *Context) LastCommand() *command.Ref { return ctx.lastCmd }
