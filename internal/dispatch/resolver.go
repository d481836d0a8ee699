// Package dispatch implements the resolver that walks a keymap stack's
// tries for each incoming keystroke (spec.md §4.2). It depends only on
// package keymap/keystroke/command — never on the view or event-loop
// packages — so it can be exercised and tested in isolation.
package dispatch

import (
	"strconv"

	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/keymap"
	"github.com/mle-editor/mle/internal/keystroke"
)

// MaxNumericDigits bounds the numeric accumulator (spec.md §4.2 step 1);
// a chord with more leading digits than this aborts as Input overflow
// (spec.md §7) rather than overflowing the parsed uint64.
const MaxNumericDigits = 9

// Outcome classifies what resolving one keystroke produced.
type Outcome int

// The three outcomes a resolve step can produce.
const (
	Unbound Outcome = iota
	NeedMoreInput
	Resolved
)

func (o Outcome) String() string {
	switch o {
	case Unbound:
		return "unbound"
	case NeedMoreInput:
		return "need-more-input"
	case Resolved:
		return "resolved"
	default:
		return "outcome(?)"
	}
}

// Result is what Resolve returns for one keystroke.
type Result struct {
	Outcome Outcome
	Command *command.Ref
	Param   string
}

// State is the subset of a loop context the resolver reads and mutates:
// the mid-traversal binding node and the accumulated numeric/wildcard
// parameter buffers (spec.md §3 "Loop context"). Numeric/wildcard
// parameters persist across NeedMoreInput returns and are cleared by the
// caller once a command executes (spec.md §3 invariant).
type State struct {
	BindingNode    *keymap.Node
	numericBuf     string
	NumericParams  []uint64
	WildcardParams []rune
}

// ClearChord resets mid-chord traversal state: the binding node and the
// in-flight numeric digit buffer. Per spec.md §3 this happens whenever a
// command executes or an input is unbound; it does NOT clear
// NumericParams/WildcardParams, which only clear on command execution
// (the caller's responsibility, since need-more-input must preserve them).
func (s *State) ClearChord() {
	s.BindingNode = nil
	s.numericBuf = ""
}

// ClearParams clears the accumulated numeric and wildcard parameter
// vectors. Callers invoke this after a command executes.
func (s *State) ClearParams() {
	s.NumericParams = nil
	s.WildcardParams = nil
}

// ErrNumericOverflow is the Input-overflow error kind from spec.md §7: the
// numeric buffer exceeded MaxNumericDigits mid-chord.
type ErrNumericOverflow struct{}

func (ErrNumericOverflow) Error() string { return "dispatch: numeric parameter overflow" }

// Resolve walks state.BindingNode (or the top of stack, if nil) for one
// keystroke in. When peek is true, state is left untouched (spec.md §4.2
// "Peek mode"): the returned Result reflects what resolving in would do,
// without committing BindingNode/parameter-buffer changes.
//
// The top-level keymap-stack miss policy (default command, then fallthru
// to the keymap beneath) only applies when state.BindingNode is nil: a
// miss mid-traversal is unbound immediately and discards the partial path
// (spec.md §4.2 "Keymap-stack policy").
func Resolve(stack *keymap.Stack, state *State, in keystroke.Keystroke, peek bool) Result {
	work := *state // shallow copy; slices are only ever appended-to-a-copy below

	if state.BindingNode == nil {
		km := stack.Top()
		if km == nil {
			return commit(state, &work, peek, Result{Outcome: Unbound})
		}
		return resolveTopLevel(stack, km, state, &work, in, peek)
	}

	res, node := step(state.BindingNode, &work, in, peek)
	if node == nil && res.Outcome == Unbound {
		work.ClearChord()
	}
	return commit(state, &work, peek, res)
}

// resolveTopLevel applies one top-level lookup at km, falling through to
// the keymap beneath on a miss when km.AllowFallthru is set.
func resolveTopLevel(stack *keymap.Stack, km *keymap.Keymap, state, work *State, in keystroke.Keystroke, peek bool) Result {
	res, node := step(km.Root(), work, in, peek)
	if node != nil || res.Outcome != Unbound {
		return commit(state, work, peek, res)
	}

	if km.DefaultLeaf != nil {
		work.ClearChord()
		return commit(state, work, peek, Result{Outcome: Resolved, Command: km.DefaultLeaf.Command, Param: km.DefaultLeaf.Param})
	}
	if km.AllowFallthru {
		if below := stack.Below(km); below != nil {
			return resolveTopLevel(stack, below, state, work, in, peek)
		}
	}
	work.ClearChord()
	return commit(state, work, peek, Result{Outcome: Unbound})
}

// step performs the per-step lookup at node for input in, per spec.md §4.2:
// numeric accumulation/finalization, exact match, then wildcard fallback.
// It returns the Result plus the child node actually reached (nil when the
// lookup produced no child at all, i.e. a genuine miss).
func step(node *keymap.Node, work *State, in keystroke.Keystroke, peek bool) (Result, *keymap.Node) {
	numChild, hasNumeric := node.Child(keystroke.Numeric)

	// Step 1: numeric accumulation.
	if in.IsDigit() && hasNumeric {
		if len(work.numericBuf) >= MaxNumericDigits {
			work.ClearChord()
			return Result{Outcome: Unbound}, nil
		}
		work.numericBuf += string(in.Rune)
		work.BindingNode = node
		return Result{Outcome: NeedMoreInput}, node
	}

	// Step 2: numeric finalization — continue from the NUMERIC child's
	// subtree using the current (non-digit) input.
	if work.numericBuf != "" {
		n, err := strconv.ParseUint(work.numericBuf, 10, 64)
		if err != nil {
			work.ClearChord()
			return Result{Outcome: Unbound}, nil
		}
		work.NumericParams = append(append([]uint64(nil), work.NumericParams...), n)
		work.numericBuf = ""
		return step(numChild, work, in, peek)
	}

	// Step 3: exact match.
	if child, ok := node.Child(in); ok {
		return land(child, work)
	}

	// Step 4: wildcard fallback.
	if child, ok := node.Child(keystroke.Wildcard); ok {
		work.WildcardParams = append(append([]rune(nil), work.WildcardParams...), in.Rune)
		return land(child, work)
	}

	return Result{Outcome: Unbound}, nil
}

// land classifies the node reached after a successful step: a leaf resolves
// the command, a non-leaf with children needs more input.
func land(child *keymap.Node, work *State) (Result, *keymap.Node) {
	if leaf := child.Leaf(); leaf != nil {
		work.BindingNode = nil
		return Result{Outcome: Resolved, Command: leaf.Command, Param: leaf.Param}, child
	}
	work.BindingNode = child
	return Result{Outcome: NeedMoreInput}, child
}

// commit writes work back into state unless peek is set, then returns res.
func commit(state, work *State, peek bool, res Result) Result {
	if !peek {
		*state = *work
	}
	return res
}
