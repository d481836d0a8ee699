package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrHelp and ErrVersion are returned by Parse when -h/-v appear; both mean
// "print the fixed message and exit 0, do not open an editor" (spec.md §6).
var (
	ErrHelp    = errors.New("cli: help requested")
	ErrVersion = errors.New("cli: version requested")
)

// Parse scans argv left to right (argv[0] is the program name and is
// skipped) producing an Options. Flags that carry a value consume the next
// element of argv; grouping flags (-K/-k, -S/-s) attach to whichever
// definition most recently preceded them, matching the positional grouping
// described by spec.md §6.
func Parse(argv []string) (*Options, error) {
	opt := Default()

	var curKeymap string
	haveKeymap := false
	var curSyntax string
	haveSyntax := false

	args := argv
	if len(args) > 0 {
		args = args[1:]
	}

	for i := 0; i < len(args); i++ {
		a := args[i]

		next := func(flag string) (string, error) {
			i++
			if i >= len(args) {
				return "", errors.Errorf("cli: %s requires an argument", flag)
			}
			return args[i], nil
		}

		switch {
		case a == "-h":
			opt.Help = true
			return &opt, ErrHelp
		case a == "-v":
			opt.Version = true
			return &opt, ErrVersion
		case a == "-b":
			opt.HighlightBrackets = true
		case a == "-a":
			v, err := next("-a")
			if err != nil {
				return nil, err
			}
			b, err := parseBool(v, "-a")
			if err != nil {
				return nil, err
			}
			opt.TabToSpace = b
		case a == "-c":
			v, err := next("-c")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrap(err, "cli: -c")
			}
			opt.ColorColumn = n
		case a == "-l":
			v, err := next("-l")
			if err != nil {
				return nil, err
			}
			switch v {
			case "0":
				opt.LineNumType = LineNumAbsolute
			case "1":
				opt.LineNumType = LineNumRelative
			case "2":
				opt.LineNumType = LineNumBoth
			default:
				return nil, errors.Errorf("cli: -l: invalid value %q", v)
			}
		case a == "-t":
			v, err := next("-t")
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrap(err, "cli: -t")
			}
			opt.TabWidth = n
		case a == "-x":
			v, err := next("-x")
			if err != nil {
				return nil, err
			}
			opt.Script = v
		case a == "-y":
			v, err := next("-y")
			if err != nil {
				return nil, err
			}
			opt.SyntaxOverride = v
		case a == "-z":
			v, err := next("-z")
			if err != nil {
				return nil, err
			}
			b, err := parseBool(v, "-z")
			if err != nil {
				return nil, err
			}
			opt.TrimPaste = b
		case a == "-n":
			v, err := next("-n")
			if err != nil {
				return nil, err
			}
			opt.InitialKeymap = v
		case a == "-m":
			v, err := next("-m")
			if err != nil {
				return nil, err
			}
			opt.MacroToggleKey = v
		case a == "-M":
			v, err := next("-M")
			if err != nil {
				return nil, err
			}
			opt.MacroDefs = append(opt.MacroDefs, v)
		case a == "-K":
			v, err := next("-K")
			if err != nil {
				return nil, err
			}
			def, err := parseKeymapDef(v)
			if err != nil {
				return nil, err
			}
			opt.KeymapDefs = append(opt.KeymapDefs, def)
			curKeymap = def.Name
			haveKeymap = true
		case a == "-k":
			v, err := next("-k")
			if err != nil {
				return nil, err
			}
			if !haveKeymap {
				return nil, errors.New("cli: -k with no preceding -K")
			}
			kb, err := parseKeyBind(v)
			if err != nil {
				return nil, err
			}
			kb.Keymap = curKeymap
			opt.KeyBinds = append(opt.KeyBinds, kb)
		case a == "-S":
			v, err := next("-S")
			if err != nil {
				return nil, err
			}
			def, err := parseSyntaxDef(v)
			if err != nil {
				return nil, err
			}
			opt.SyntaxDefs = append(opt.SyntaxDefs, def)
			curSyntax = def.Name
			haveSyntax = true
		case a == "-s":
			v, err := next("-s")
			if err != nil {
				return nil, err
			}
			if !haveSyntax {
				return nil, errors.New("cli: -s with no preceding -S")
			}
			opt.SyntaxRules = append(opt.SyntaxRules, SyntaxRule{Syntax: curSyntax, Raw: v})
		case strings.HasPrefix(a, "-"):
			return nil, errors.Errorf("cli: unrecognized flag %q", a)
		default:
			opt.Paths = append(opt.Paths, parsePathArg(a))
		}
	}

	return &opt, nil
}

func parseBool(v, flag string) (bool, error) {
	switch v {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, errors.Errorf("cli: %s: expected 0 or 1, got %q", flag, v)
	}
}

// parseKeymapDef parses "name,default_cmd,allow_fallthru".
func parseKeymapDef(s string) (KeymapDef, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) < 1 || parts[0] == "" {
		return KeymapDef{}, errors.Errorf("cli: -K: invalid keymap definition %q", s)
	}
	def := KeymapDef{Name: parts[0]}
	if len(parts) > 1 {
		def.DefaultCmd = parts[1]
	}
	if len(parts) > 2 {
		b, err := parseBool(parts[2], "-K")
		if err != nil {
			return KeymapDef{}, err
		}
		def.AllowFallthru = b
	}
	return def, nil
}

// parseKeyBind parses "cmd,key[,param]".
func parseKeyBind(s string) (KeyBind, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) < 2 {
		return KeyBind{}, errors.Errorf("cli: -k: invalid binding %q", s)
	}
	kb := KeyBind{Command: parts[0], Key: parts[1]}
	if len(parts) > 2 {
		kb.Param = parts[2]
	}
	return kb, nil
}

// parseSyntaxDef parses "name,path_pattern".
func parseSyntaxDef(s string) (SyntaxDef, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) < 1 || parts[0] == "" {
		return SyntaxDef{}, errors.Errorf("cli: -S: invalid syntax definition %q", s)
	}
	def := SyntaxDef{Name: parts[0]}
	if len(parts) > 1 {
		def.PathPattern = parts[1]
	}
	return def, nil
}

// parsePathArg splits a trailing ":line" suffix off a positional path
// argument; directories are detected later once the filesystem is
// consulted (the scanner itself never stats paths).
func parsePathArg(s string) PathArg {
	if idx := strings.LastIndexByte(s, ':'); idx > 0 {
		if n, err := strconv.Atoi(s[idx+1:]); err == nil {
			return PathArg{Path: s[:idx], Line: n}
		}
	}
	return PathArg{Path: s}
}
