package keystroke

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Named special keys recognized by the tokenizer, allocated stable codes
// above specialFirstNamed so they never collide with the sentinel or
// unknown-tcell-key ranges.
const (
	KeyEnter SpecialKey = specialFirstNamed + iota
	KeyBackspace
	KeyTab
	KeyEsc
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var namedKeys = map[string]SpecialKey{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"esc":       KeyEsc,
	"escape":    KeyEsc,
	"space":     KeySpace,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"page-up":   KeyPageUp,
	"pgup":      KeyPageUp,
	"page-down": KeyPageDown,
	"pgdn":      KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
	"f5":        KeyF5,
	"f6":        KeyF6,
	"f7":        KeyF7,
	"f8":        KeyF8,
	"f9":        KeyF9,
	"f10":       KeyF10,
	"f11":       KeyF11,
	"f12":       KeyF12,
}

var namedKeyStrings = func() map[SpecialKey]string {
	out := make(map[SpecialKey]string, len(namedKeys))
	for name, key := range namedKeys {
		if _, exists := out[key]; !exists {
			out[key] = name
		}
	}
	return out
}()

func specialName(k SpecialKey) (string, bool) {
	name, ok := namedKeyStrings[k]
	return name, ok
}

var tcellKeyForSpecial = map[SpecialKey]tcell.Key{
	KeyEnter:     tcell.KeyEnter,
	KeyBackspace: tcell.KeyBackspace2,
	KeyTab:       tcell.KeyTab,
	KeyEsc:       tcell.KeyEscape,
	KeyUp:        tcell.KeyUp,
	KeyDown:      tcell.KeyDown,
	KeyLeft:      tcell.KeyLeft,
	KeyRight:     tcell.KeyRight,
	KeyPageUp:    tcell.KeyPgUp,
	KeyPageDown:  tcell.KeyPgDn,
	KeyHome:      tcell.KeyHome,
	KeyEnd:       tcell.KeyEnd,
	KeyDelete:    tcell.KeyDelete,
	KeyInsert:    tcell.KeyInsert,
	KeyF1:        tcell.KeyF1,
	KeyF2:        tcell.KeyF2,
	KeyF3:        tcell.KeyF3,
	KeyF4:        tcell.KeyF4,
	KeyF5:        tcell.KeyF5,
	KeyF6:        tcell.KeyF6,
	KeyF7:        tcell.KeyF7,
	KeyF8:        tcell.KeyF8,
	KeyF9:        tcell.KeyF9,
	KeyF10:       tcell.KeyF10,
	KeyF11:       tcell.KeyF11,
	KeyF12:       tcell.KeyF12,
}

var specialForTcellKey = func() map[tcell.Key]SpecialKey {
	out := make(map[tcell.Key]SpecialKey, len(tcellKeyForSpecial))
	for special, tk := range tcellKeyForSpecial {
		out[tk] = special
	}
	return out
}()

func specialFromTcellKey(k tcell.Key) (SpecialKey, bool) {
	special, ok := specialForTcellKey[k]
	return special, ok
}

// ParseToken parses one space-delimited token from a key pattern string
// (spec.md §4.1). Recognized forms:
//
//	"##"            -> the NUMERIC sentinel
//	"**"            -> the WILDCARD sentinel
//	"enter", "page-up", … -> a named special key, from the fixed table above
//	"C-a", "M-x", "C-M-a" -> a modified literal character
//	"a", "#", "$"   -> a bare literal character
func ParseToken(tok string) (Keystroke, error) {
	if tok == "##" {
		return Numeric, nil
	}
	if tok == "**" {
		return Wildcard, nil
	}

	var mod Mod
	rest := tok
	for {
		lower := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(lower, "c-"):
			mod |= ModCtrl
			rest = rest[2:]
		case strings.HasPrefix(lower, "m-"):
			mod |= ModMeta
			rest = rest[2:]
		case strings.HasPrefix(lower, "a-"):
			mod |= ModAlt
			rest = rest[2:]
		case strings.HasPrefix(lower, "s-"):
			mod |= ModShift
			rest = rest[2:]
		default:
			goto done
		}
	}
done:
	if rest == "" {
		return Keystroke{}, &ErrInvalidToken{Token: tok}
	}
	if special, ok := namedKeys[strings.ToLower(rest)]; ok {
		return Keystroke{Mod: mod, Special: special}, nil
	}
	runes := []rune(rest)
	if len(runes) != 1 {
		return Keystroke{}, &ErrInvalidToken{Token: tok}
	}
	return Keystroke{Mod: mod, Rune: runes[0]}, nil
}

// ParsePattern tokenizes a space-separated key-pattern string into the
// sequence of Keystrokes a binding's trie path is built from.
func ParsePattern(pattern string) ([]Keystroke, error) {
	fields := strings.Fields(pattern)
	if len(fields) == 0 {
		return nil, &ErrInvalidToken{Token: pattern}
	}
	out := make([]Keystroke, 0, len(fields))
	for _, f := range fields {
		ks, err := ParseToken(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ks)
	}
	return out, nil
}
