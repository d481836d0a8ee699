// Package keystroke implements the abstract (modifier, codepoint, special-key)
// input triple from spec.md §3, its NUMERIC/WILDCARD sentinels, the key-token
// tokenizer, and the bridge from a decoded terminal event to a Keystroke.
package keystroke

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Mod is a bitset of modifier keys held alongside a keystroke.
type Mod uint8

// Modifier bits recognized by the resolver. Their values differ from
// tcell.ModMask; FromTcellEvent maps each tcell modifier bit onto the
// matching bit here.
const (
	ModNone  Mod = 0
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// SpecialKey names a non-printable key that the resolver's fixed token table
// understands (enter, backspace, the arrow/page keys, function keys, …).
// SpecialNone means the keystroke is a plain modified codepoint.
type SpecialKey int

// Sentinel special-key codes. Real named keys (enter, backspace, f1, …) are
// allocated positive values by the token table in token.go.
const (
	SpecialNone SpecialKey = iota
	specialFirstNamed
)

// Keystroke is the triple (modifier-bitset, unicode-codepoint, special-key-code)
// from spec.md §3. Equality is bitwise over all three fields.
type Keystroke struct {
	Mod     Mod
	Rune    rune
	Special SpecialKey
}

// Two sentinel keystrokes used as trie edges: NUMERIC matches any decimal
// digit while a numeric accumulation is in flight, WILDCARD matches any
// keystroke and captures its codepoint.
var (
	Numeric  = Keystroke{Special: -1}
	Wildcard = Keystroke{Special: -2}
)

// IsSentinel reports whether ks is the NUMERIC or WILDCARD sentinel, which
// never arrives as real input and only ever appears as a trie edge key.
func (ks Keystroke) IsSentinel() bool {
	return ks.Special == Numeric.Special || ks.Special == Wildcard.Special
}

// Equals compares two keystrokes bitwise across all three fields, per the
// data-model invariant in spec.md §3.
func (ks Keystroke) Equals(other Keystroke) bool {
	return ks.Mod == other.Mod && ks.Rune == other.Rune && ks.Special == other.Special
}

// IsDigit reports whether the keystroke is an ASCII decimal digit with no
// modifier other than Shift, the only inputs the NUMERIC edge ever
// accumulates (§4.2 step 1).
func (ks Keystroke) IsDigit() bool {
	return ks.Special == SpecialNone && ks.Mod&^ModShift == ModNone && ks.Rune >= '0' && ks.Rune <= '9'
}

// String renders a human-readable form, e.g. "C-a", "M-x", "enter", "##",
// "**". This is also the token form accepted back by ParseToken, so a
// binding's full key pattern round-trips as strings.Join(tokens, " ").
func (ks Keystroke) String() string {
	switch ks.Special {
	case Numeric.Special:
		return "##"
	case Wildcard.Special:
		return "**"
	}
	if name, ok := specialName(ks.Special); ok {
		return withMods(ks.Mod&^modForSpecial(ks.Special), name)
	}
	return withMods(ks.Mod, string(ks.Rune))
}

func withMods(mod Mod, base string) string {
	s := base
	if mod&ModMeta != 0 {
		s = "M-" + s
	}
	if mod&ModAlt != 0 {
		s = "A-" + s
	}
	if mod&ModCtrl != 0 {
		s = "C-" + s
	}
	if mod&ModShift != 0 {
		s = "S-" + s
	}
	return s
}

func modForSpecial(SpecialKey) Mod { return ModNone }

// FromTcellEvent converts a decoded terminal key event into a Keystroke.
// This is the bridge between the abstract §3 data model and the concrete
// terminal backend (github.com/gdamore/tcell/v2), which the input source
// (package termio) uses to read and decode raw TTY bytes.
func FromTcellEvent(ev *tcell.EventKey) Keystroke {
	var mod Mod
	tm := ev.Modifiers()
	if tm&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if tm&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if tm&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if tm&tcell.ModMeta != 0 {
		mod |= ModMeta
	}

	if ev.Key() == tcell.KeyRune {
		return Keystroke{Mod: mod, Rune: ev.Rune()}
	}
	if special, ok := specialFromTcellKey(ev.Key()); ok {
		return Keystroke{Mod: mod, Special: special}
	}
	// Ctrl+letter arrives as a control-code KeyXXX in tcell (e.g. KeyCtrlA);
	// fold it back to modifier+rune so "C-a" tokens and literal ^A bytes
	// resolve identically.
	if r, ok := ctrlRuneFromTcellKey(ev.Key()); ok {
		return Keystroke{Mod: mod | ModCtrl, Rune: r}
	}
	return Keystroke{Mod: mod, Special: SpecialKey(int(unknownSpecialBase) + int(ev.Key()))}
}

const unknownSpecialBase = SpecialKey(1 << 20)

func ctrlRuneFromTcellKey(k tcell.Key) (rune, bool) {
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return rune('a' + int(k-tcell.KeyCtrlA)), true
	}
	return 0, false
}

// Error returned when a key token in a binding pattern cannot be parsed.
type ErrInvalidToken struct {
	Token string
}

func (e *ErrInvalidToken) Error() string {
	return fmt.Sprintf("keymap: invalid key token %q", e.Token)
}
