// Package keymap implements the trie-indexed keybinding store: trie nodes,
// keymaps (named trie roots with default-command/fallthru semantics), and
// the per-view keymap stack (spec.md §3, §4.1).
package keymap

import (
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/keystroke"
)

// Leaf is the payload carried by a trie node that terminates a binding: the
// late-bound command reference plus an optional static parameter string
// supplied at bind time (spec.md §3, "Keybinding node").
type Leaf struct {
	Command *command.Ref
	Param   string
}

// Node is one trie level. Per the data-model invariant, a node has either
// children, a non-nil leaf, or both — never neither.
type Node struct {
	children map[keystroke.Keystroke]*Node
	leaf     *Leaf
}

func newNode() *Node {
	return &Node{}
}

// Child returns the child reached by ks, if any.
func (n *Node) Child(ks keystroke.Keystroke) (*Node, bool) {
	if n == nil || n.children == nil {
		return nil, false
	}
	c, ok := n.children[ks]
	return c, ok
}

// HasChildren reports whether n owns at least one child edge.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.children) > 0
}

// Leaf returns the node's leaf payload, or nil if n is not a binding
// terminus.
func (n *Node) Leaf() *Leaf {
	if n == nil {
		return nil
	}
	return n.leaf
}

// insertChild grows the trie by one level, reusing an existing child node if
// the prefix already exists (spec.md §4.1 "Construction").
func (n *Node) insertChild(ks keystroke.Keystroke) *Node {
	if n.children == nil {
		n.children = make(map[keystroke.Keystroke]*Node, 4)
	}
	if c, ok := n.children[ks]; ok {
		return c
	}
	c := newNode()
	n.children[ks] = c
	return c
}

// insert walks/creates the path for path, attaching leaf at the terminal
// node. Inserting a pattern whose prefix already exists reuses nodes.
func (n *Node) insert(path []keystroke.Keystroke, leaf Leaf) {
	cur := n
	for _, ks := range path {
		cur = cur.insertChild(ks)
	}
	l := leaf
	cur.leaf = &l
}

// destroy recursively releases n's children in post-order: children are
// visited (and released) before the parent map is cleared. Go's GC reclaims
// the memory regardless, but the explicit, deterministic post-order walk
// keeps the trie's documented ownership contract (each node exclusively
// owned by its parent, spec.md §4.1 "Destruction") a checkable property
// rather than an implicit one.
func (n *Node) destroy() {
	if n == nil {
		return
	}
	for _, c := range n.children {
		c.destroy()
	}
	n.children = nil
	n.leaf = nil
}

// walkPostOrder visits every node reachable from n in post-order, the same
// order destroy releases them in.
func (n *Node) walkPostOrder(visit func(*Node)) {
	if n == nil {
		return
	}
	for _, c := range n.children {
		c.walkPostOrder(visit)
	}
	visit(n)
}
