// Package cli implements the left-to-right command-line argument scanner
// (spec.md §6): unlike most Go CLIs in the retrieved examples this cannot
// use a declarative flag library, because -K/-k and -S/-s are stateful —
// each -k/-s extends whichever -K/-S came before it — so parsing is a
// hand-rolled scan over argv, grounded on the teacher's own manual
// argument routing (cmd/cmd.go dispatches by the first positional token
// the same way).
package cli

// KeymapDef is one `-K name,default_cmd,allow_fallthru` definition.
type KeymapDef struct {
	Name          string
	DefaultCmd    string
	AllowFallthru bool
}

// KeyBind is one `-k cmd,key[,param]` binding, associated with whichever
// KeymapDef most recently preceded it on the command line.
type KeyBind struct {
	Keymap  string
	Command string
	Key     string
	Param   string
}

// SyntaxDef is one `-S name,path_pattern` definition. The syntax engine
// itself is an external collaborator (spec.md §1 Non-goals); the core only
// carries these strings through to whatever registers with it.
type SyntaxDef struct {
	Name        string
	PathPattern string
}

// SyntaxRule is one `-s synrule` rule, associated with the most recent
// SyntaxDef. The two accepted forms (`start,end,fg,bg` or
// `regex,fg,bg`) are left unparsed here — Raw is handed to the syntax
// collaborator verbatim.
type SyntaxRule struct {
	Syntax string
	Raw    string
}

// PathArg is one positional argument: a file (optionally with a `:line`
// suffix) or a directory to open in a browser command.
type PathArg struct {
	Path  string
	Line  int // 0 if unspecified
	IsDir bool
}

// LineNumType mirrors the `-l` values (spec.md §6).
type LineNumType int

// The three linenum display modes.
const (
	LineNumAbsolute LineNumType = iota
	LineNumRelative
	LineNumBoth
)

// Options is the fully parsed command line (spec.md §6), ready for the
// editor to apply.
type Options struct {
	Help    bool
	Version bool

	TabToSpace        bool
	HighlightBrackets bool
	ColorColumn       int // 0 means unset
	LineNumType       LineNumType
	TabWidth          int // 0 means "use the collaborator's default"
	Script            string
	SyntaxOverride    string
	TrimPaste         bool

	InitialKeymap   string // -n, default "mle_normal"
	MacroToggleKey  string // -m
	KeymapDefs      []KeymapDef
	KeyBinds        []KeyBind
	MacroDefs       []string // raw `-M` lines, parsed with macro.ParseLine
	SyntaxDefs      []SyntaxDef
	SyntaxRules     []SyntaxRule

	Paths []PathArg
}

// Default returns an Options pre-populated with the spec's defaults.
func Default() Options {
	return Options{
		InitialKeymap: "mle_normal",
		TabWidth:      8,
	}
}
