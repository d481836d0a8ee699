package command

import "github.com/mle-editor/mle/internal/keystroke"

// ViewType enumerates the kinds of view the core distinguishes (spec.md §3).
type ViewType int

// View kinds. EDIT views hold buffers; PROMPT/STATUS/MENU are ephemeral
// views the prompt/menu controller and status line open.
const (
	ViewEdit ViewType = iota
	ViewPrompt
	ViewStatus
	ViewMenu
)

func (t ViewType) String() string {
	switch t {
	case ViewEdit:
		return "EDIT"
	case ViewPrompt:
		return "PROMPT"
	case ViewStatus:
		return "STATUS"
	case ViewMenu:
		return "MENU"
	default:
		return "UNKNOWN"
	}
}

// ViewHandle is the minimal surface of a View that command bodies and the
// dispatch/loop machinery need. The concrete *view.View type satisfies this
// structurally; command never imports package view, which keeps the
// dependency graph acyclic (keymap -> command, view -> keymap).
type ViewHandle interface {
	Type() ViewType
	PromptString() string
	SetPromptString(string)
}

// CursorHandle is an intentionally opaque placeholder: cursor/mark
// primitives are an external collaborator's concern per spec.md §1. The
// core only ever threads a CursorHandle through, never inspects it.
type CursorHandle any

// LoopHandle is an opaque pointer to the currently running loop context
// (package loop), exposed to command bodies that need to read accumulated
// numeric/wildcard parameters or set the exit flag (e.g. a "quit" command).
// Kept generic here to avoid command depending on package loop.
type LoopHandle any

// EditorHandle is the minimal editor-wide surface a command body can reach
// through its Context: opening and closing views. The concrete
// *editor.Editor type satisfies this structurally.
type EditorHandle interface {
	OpenView(v ViewHandle)
	CloseView(v ViewHandle)
}

// Context is the ephemeral per-dispatch bundle passed to every command
// invocation (spec.md §3 "Command context").
type Context struct {
	Editor EditorHandle
	View   ViewHandle
	Cursor CursorHandle

	// Input is the keystroke that triggered this dispatch.
	Input keystroke.Keystroke
	// Param is the static parameter string carried by the trie leaf, if any.
	Param string

	// Loop is the currently running (possibly nested) loop context.
	Loop LoopHandle

	// PasteBuffer holds the batch of keystrokes collapsed by paste
	// ingestion (spec.md §4.5) when this dispatch represents a paste burst
	// rather than a single keystroke; nil otherwise.
	PasteBuffer []keystroke.Keystroke

	// IsUserInput is false when Input was produced by macro replay rather
	// than live terminal input (spec.md §4.4).
	IsUserInput bool
}
