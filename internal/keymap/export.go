package keymap

import (
	"strings"

	"github.com/mle-editor/mle/internal/command"
	"github.com/pkg/errors"
	yaml "go.yaml.in/yaml/v3"
)

// exportedBinding is one trie path serialized as a space-joined pattern
// string, mirroring the -k CLI binding form from spec.md §6.
type exportedBinding struct {
	Pattern string `yaml:"pattern"`
	Command string `yaml:"command"`
	Param   string `yaml:"param,omitempty"`
}

// exportedKeymap is the on-disk YAML shape for Export/Import.
type exportedKeymap struct {
	Name          string            `yaml:"name"`
	AllowFallthru bool              `yaml:"allow_fallthru"`
	Default       *exportedBinding  `yaml:"default,omitempty"`
	Bindings      []exportedBinding `yaml:"bindings"`
}

// Export serializes k to YAML: every root-to-leaf trie path becomes one
// binding entry, in the teacher's own export-as-YAML style
// (internal/config keybindings export). It is not the RC-file format, and
// nothing in cmd/mle calls it: the -x flag only records a script path.
func (k *Keymap) Export() ([]byte, error) {
	ex := exportedKeymap{Name: k.Name, AllowFallthru: k.AllowFallthru}
	if k.DefaultLeaf != nil {
		ex.Default = &exportedBinding{Command: k.DefaultLeaf.Command.Name, Param: k.DefaultLeaf.Param}
	}

	var walk func(n *Node, prefix []string)
	walk = func(n *Node, prefix []string) {
		if leaf := n.Leaf(); leaf != nil {
			ex.Bindings = append(ex.Bindings, exportedBinding{
				Pattern: strings.Join(prefix, " "),
				Command: leaf.Command.Name,
				Param:   leaf.Param,
			})
		}
		for ks, child := range n.children {
			walk(child, append(prefix, ks.String()))
		}
	}
	walk(k.root, nil)

	out, err := yaml.Marshal(ex)
	if err != nil {
		return nil, errors.Wrapf(err, "keymap %q: export", k.Name)
	}
	return out, nil
}

// Import builds a new Keymap from YAML produced by Export, resolving
// command names against reg.
func Import(data []byte, reg *command.Registry) (*Keymap, error) {
	var ex exportedKeymap
	if err := yaml.Unmarshal(data, &ex); err != nil {
		return nil, errors.Wrap(err, "keymap: import")
	}
	k := New(ex.Name)
	k.AllowFallthru = ex.AllowFallthru
	if ex.Default != nil {
		k.SetDefault(ex.Default.Command, ex.Default.Param, reg)
	}
	for _, b := range ex.Bindings {
		if err := k.Bind(b.Pattern, b.Command, b.Param, reg); err != nil {
			return nil, errors.Wrapf(err, "keymap %q: import binding %q", ex.Name, b.Pattern)
		}
	}
	return k, nil
}
