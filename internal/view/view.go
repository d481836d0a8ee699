// Package view implements the View abstraction (spec.md §3 "View") and the
// editor-wide view collections/lifecycle (spec.md §4.7): a circular
// doubly-linked all-views ring, a doubly-linked top-views list, and
// singly-linked split-parent/split-child relationships.
//
// View satisfies command.ViewHandle structurally (it is never declared to
// implement it; the method set just matches). Importing package command
// here is safe — command imports only keystroke and pkg/errors, neither of
// which imports view, so view -> command cannot form a cycle.
package view

import (
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/keymap"
)

// Rect is a view's screen rectangle, in cells.
type Rect struct {
	X, Y, W, H int
}

// MenuCallback runs when a menu-type view's selection is confirmed
// (spec.md §3 "optional menu-callback").
type MenuCallback func(mv *View) error

// View is the core-relevant subset of an editor view: its buffer and cursor
// are opaque collaborator concerns (spec.md §1 Non-goals), but the keymap
// stack, type, menu callback, prompt string, async-process binding and
// rectangle are read and written directly by dispatch/loop/promptctl.
type View struct {
	// Buffer is an opaque collaborator type; the core never inspects it.
	Buffer any
	// Cursor is an opaque collaborator type; command.CursorHandle plays the
	// same role on the command.Context side of the boundary.
	Cursor command.CursorHandle

	KeymapStack *keymap.Stack
	typ         command.ViewType

	MenuCallback MenuCallback
	// AsyncProc is the opaque async-process binding (package async) feeding
	// this view's buffer, or nil if none is bound.
	AsyncProc any

	Rect Rect

	// InitialLine is the 1-based line requested for this view at open time
	// (spec.md §6 "path:line", §4.7 "optionally moves to a line"), for an
	// external cursor collaborator to act on once the buffer is loaded. 0
	// means no line was requested.
	InitialLine int

	promptStr string

	prevAll, nextAll *View
	prevTop, nextTop *View
	splitParent      *View
	splitChild       *View
}

// New returns a freshly allocated, unlinked view of the given type with its
// own empty keymap stack.
func New(typ command.ViewType) *View {
	return &View{typ: typ, KeymapStack: keymap.NewStack()}
}

// Type reports the view's type, satisfying command.ViewHandle.
func (v *View) Type() command.ViewType { return v.typ }

// PromptString returns the view's prompt/status text, satisfying
// command.ViewHandle.
func (v *View) PromptString() string { return v.promptStr }

// SetPromptString sets the view's prompt/status text, satisfying
// command.ViewHandle.
func (v *View) SetPromptString(s string) { v.promptStr = s }

// SplitParent returns the view's split-parent, or nil if it is a top-level
// view.
func (v *View) SplitParent() *View { return v.splitParent }

// SplitChild returns the view's split-child, or nil if it has none.
func (v *View) SplitChild() *View { return v.splitChild }

// IsTopLevel reports whether v is a member of the top-views list (i.e. has
// no split-parent).
func (v *View) IsTopLevel() bool { return v.splitParent == nil }
