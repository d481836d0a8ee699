// Package macro implements the macro engine (spec.md §4.4): recording a
// linear keystroke buffer, replaying it as a substitute input source, and
// the `name,key1,key2,…` line syntax used by the RC-file/CLI `-M` flag
// (ParseLine) and rendered back by EncodeLine.
package macro

import "github.com/mle-editor/mle/internal/keystroke"

// Macro is a named, recorded sequence of keystrokes.
type Macro struct {
	Name string
	Keys []keystroke.Keystroke
}

// Registry is the editor-wide collection of named macros.
type Registry struct {
	byName map[string]*Macro
}

// NewRegistry returns an empty macro registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Macro)}
}

// Register installs m under its own name, overwriting any prior macro of
// the same name.
func (r *Registry) Register(m *Macro) {
	r.byName[m.Name] = m
}

// Get returns the named macro, or nil if unregistered.
func (r *Registry) Get(name string) (*Macro, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Names returns every registered macro name.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}
