package macro

import (
	"strings"

	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/pkg/errors"
)

// ParseLine parses the `name,key1,key2,…` macro line syntax (spec.md §4.4,
// §6 `-M` flag): each keyN is tokenized with the same tokenizer keymap
// patterns use, so "C-x", "M-r", "##" etc. are all valid key tokens here
// too (though NUMERIC/WILDCARD sentinels in a recorded macro make little
// sense, ParseToken does not special-case macros against them).
func ParseLine(line string) (*Macro, error) {
	fields := strings.Split(line, ",")
	if len(fields) == 0 || fields[0] == "" {
		return nil, errors.New("macro: empty name in line syntax")
	}
	m := &Macro{Name: fields[0]}
	for _, tok := range fields[1:] {
		ks, err := keystroke.ParseToken(tok)
		if err != nil {
			return nil, errors.Wrapf(err, "macro %q: key token %q", m.Name, tok)
		}
		m.Keys = append(m.Keys, ks)
	}
	return m, nil
}

// EncodeLine renders m back to the `name,key1,key2,…` line syntax, the
// inverse of ParseLine.
func EncodeLine(m *Macro) string {
	var b strings.Builder
	b.WriteString(m.Name)
	for _, ks := range m.Keys {
		b.WriteByte(',')
		b.WriteString(ks.String())
	}
	return b.String()
}
