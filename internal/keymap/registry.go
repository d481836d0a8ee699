package keymap

import "github.com/pkg/errors"

// ErrDuplicateKeymap is returned by Registry.Create when name already names
// a keymap.
var ErrDuplicateKeymap = errors.New("keymap: name already registered")

// Registry is the editor-wide collection of named keymaps, keyed by name
// (spec.md §3 "Each keymap is owned by the editor's keymap registry").
type Registry struct {
	byName map[string]*Keymap
}

// NewRegistry returns an empty keymap registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Keymap)}
}

// Create allocates and registers a new, empty keymap named name.
func (r *Registry) Create(name string) (*Keymap, error) {
	if _, exists := r.byName[name]; exists {
		return nil, errors.Wrapf(ErrDuplicateKeymap, "%q", name)
	}
	k := New(name)
	r.byName[name] = k
	return k, nil
}

// GetOrCreate returns the named keymap, creating an empty one if it does not
// exist yet. CLI keymap definitions (-K) use this so repeated -K lines for
// the same name extend rather than clobber it.
func (r *Registry) GetOrCreate(name string) *Keymap {
	if k, ok := r.byName[name]; ok {
		return k
	}
	k := New(name)
	r.byName[name] = k
	return k
}

// Get returns the named keymap, or nil if unregistered.
func (r *Registry) Get(name string) (*Keymap, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// Names returns every registered keymap name.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}

// Destroy releases every registered keymap's trie and empties the registry.
func (r *Registry) Destroy() {
	for _, k := range r.byName {
		k.Destroy()
	}
	r.byName = make(map[string]*Keymap)
}
