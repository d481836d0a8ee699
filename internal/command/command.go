// Package command implements the editor-wide command registry: named,
// late-bound handles that keymap bindings point at before their functions
// are necessarily registered (spec.md §3 "Command reference", §9 Design
// Note "Command references as late-bound handles").
//
// This package intentionally has no dependency on keymap, view, or the
// event loop — it defines only the minimal interfaces a Context needs
// (ViewHandle, CursorHandle, EditorHandle) so that the concrete types in
// those packages satisfy them structurally, without import cycles.
package command

import "github.com/pkg/errors"

// ErrUnknownCommand is wrapped when Execute is asked to run a Ref whose
// function was never registered.
var ErrUnknownCommand = errors.New("command: function not registered")

// InsertDataCommandName is the well-known name of the text-insertion
// command the event loop checks for when deciding whether to run paste
// ingestion (spec.md §4.5): "if this would be a text-insertion command and
// the input is user-originated, run paste ingestion".
const InsertDataCommandName = "insert-data"

// Func is the signature every command implementation has. Concrete command
// bodies (cut/paste/search/move/…) are external collaborators per spec.md
// §1; the core only ever calls through this signature.
type Func func(ctx *Context) error

// InitHook runs exactly once, the first time a Ref is resolved, before its
// Func is memoized. Collaborators use it for lazy setup (e.g. compiling a
// regex the first time a search command is actually bound and hit).
type InitHook func(ref *Ref) error

// Ref is a named, late-bound command handle. Names are unique within a
// Registry; resolution memoizes the function pointer on first use.
type Ref struct {
	Name     string
	UserData any

	fn       Func
	init     InitHook
	resolved bool
}

// Resolved reports whether this Ref's function has been looked up and
// memoized at least once.
func (r *Ref) Resolved() bool {
	return r != nil && r.resolved
}

// HasFunc reports whether a function has been registered for this Ref,
// regardless of whether it has been resolved (memoized) yet.
func (r *Ref) HasFunc() bool {
	return r != nil && r.fn != nil
}

// resolve runs the init hook (once) and memoizes fn as resolved. It is
// idempotent: subsequent calls are no-ops once resolved is set.
func (r *Ref) resolve() error {
	if r.resolved {
		return nil
	}
	if r.init != nil {
		if err := r.init(r); err != nil {
			return errors.Wrapf(err, "command %q: init hook", r.Name)
		}
	}
	r.resolved = true
	return nil
}

// Execute runs the referenced command against ctx, resolving (and memoizing)
// its function on first use. Returns ErrUnknownCommand wrapped with the
// command name if no function was ever registered.
func (r *Ref) Execute(ctx *Context) error {
	if r == nil {
		return errors.WithStack(ErrUnknownCommand)
	}
	if err := r.resolve(); err != nil {
		return err
	}
	if r.fn == nil {
		return errors.Wrapf(ErrUnknownCommand, "%q", r.Name)
	}
	return r.fn(ctx)
}

// Registry is the editor-wide mapping from command name to Ref. Keymaps may
// reference a name before its function is registered: Get allocates an
// unresolved Ref on first lookup so binding order never matters.
type Registry struct {
	refs map[string]*Ref
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{refs: make(map[string]*Ref)}
}

// Get returns the Ref for name, creating an empty (functionless) one if this
// is the first time name has been seen.
func (reg *Registry) Get(name string) *Ref {
	if r, ok := reg.refs[name]; ok {
		return r
	}
	r := &Ref{Name: name}
	reg.refs[name] = r
	return r
}

// Lookup returns the Ref for name without creating one, and whether it
// exists.
func (reg *Registry) Lookup(name string) (*Ref, bool) {
	r, ok := reg.refs[name]
	return r, ok
}

// Register attaches fn (and optionally an init hook) to the named command,
// creating its Ref if this is the first mention of name.
func (reg *Registry) Register(name string, fn Func, init InitHook) *Ref {
	r := reg.Get(name)
	r.fn = fn
	r.init = init
	r.resolved = false
	return r
}

// Unresolved returns the names of every Ref that has never been resolved
// (i.e. never executed) — useful for a "-x list-unbound" style diagnostic
// the keybinding definitions can be checked against at startup.
func (reg *Registry) Unresolved() []string {
	var out []string
	for name, r := range reg.refs {
		if !r.resolved {
			out = append(out, name)
		}
	}
	return out
}

// Names returns every command name known to the registry, resolved or not.
func (reg *Registry) Names() []string {
	out := make([]string, 0, len(reg.refs))
	for name := range reg.refs {
		out = append(out, name)
	}
	return out
}
