package keymap

import (
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/pkg/errors"
)

// Keymap is a named trie root plus the default-command and allow-fallthru
// policy applied when a top-level lookup misses (spec.md §3 "Keymap").
type Keymap struct {
	Name          string
	root          *Node
	DefaultLeaf   *Leaf
	AllowFallthru bool
}

// New creates an empty, named keymap.
func New(name string) *Keymap {
	return &Keymap{Name: name, root: newNode()}
}

// Root returns the synthetic root node whose children are the first-token
// bindings.
func (k *Keymap) Root() *Node {
	return k.root
}

// Bind inserts a binding for pattern, a space-separated key-pattern string
// (spec.md §4.1), pointing at the named command with an optional static
// parameter. The command's Ref is fetched (and pre-registered if unseen)
// from reg, so keymaps may reference commands before their functions are
// registered.
func (k *Keymap) Bind(pattern, cmdName, param string, reg *command.Registry) error {
	path, err := keystroke.ParsePattern(pattern)
	if err != nil {
		return errors.Wrapf(err, "keymap %q: bind %q", k.Name, pattern)
	}
	k.root.insert(path, Leaf{Command: reg.Get(cmdName), Param: param})
	return nil
}

// SetDefault installs the keymap's default command, invoked when no prefix
// of the current input matches at the top level (spec.md §4.2).
func (k *Keymap) SetDefault(cmdName, param string, reg *command.Registry) {
	if cmdName == "" {
		k.DefaultLeaf = nil
		return
	}
	k.DefaultLeaf = &Leaf{Command: reg.Get(cmdName), Param: param}
}

// Destroy releases the keymap's trie in post-order (spec.md §4.1
// "Destruction").
func (k *Keymap) Destroy() {
	k.root.destroy()
}
