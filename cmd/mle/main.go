// Command mle is the entry point: it parses RC files and the command
// line, wires the editor's shared resources, opens a tcell-backed
// terminal source, and runs the top-level event loop (spec.md §6).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mle-editor/mle/internal/async"
	"github.com/mle-editor/mle/internal/cli"
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/editor"
	"github.com/mle-editor/mle/internal/keymap"
	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/mle-editor/mle/internal/loop"
	"github.com/mle-editor/mle/internal/macro"
	"github.com/mle-editor/mle/internal/mlelog"
	"github.com/mle-editor/mle/internal/promptctl"
	"github.com/mle-editor/mle/internal/termio"
	"github.com/mle-editor/mle/internal/view"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run())
}

func run() int {
	home, _ := os.UserHomeDir()
	rcArgs, err := cli.LoadRC(home)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	argv := cli.BuildArgv(rcArgs, os.Args[1:])

	opt, err := cli.Parse(argv)
	switch {
	case err == cli.ErrHelp:
		printUsage()
		return 0
	case err == cli.ErrVersion:
		fmt.Println("mle (reworked core)")
		return 0
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log, closeLog, err := mlelog.Open(filepath.Join(workDir, "mle.log"), zerolog.InfoLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closeLog()

	ed := editor.New(log, workDir)
	registerBuiltinCommands(ed)
	if err := applyOptions(ed, opt); err != nil {
		log.Error().Err(err).Msg("main: applying command-line options")
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	source, err := termio.NewSource(termio.DefaultTerminal{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer source.Close()

	mux := async.New(source.TTYFD())

	var namer *promptctl.Controller
	namer = promptctl.New(ed, source, source, nil, mux)
	namer.Namer = namer

	w, h := source.Size()
	ed.Views.SetScreenSize(w, h)
	top := openInitialViews(ed, opt)
	ed.Views.Resize()

	ed.WatchSignals(func() { source.Close() })

	ctx := loop.NewContext(nil, ed, top, mux, source, source, namer)
	if err := loop.Run(ctx); err != nil {
		log.Error().Err(err).Msg("main: event loop exited with error")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return ed.ExitCode
}

func printUsage() {
	fmt.Println(`usage: mle [options] [path[:line] ...]
  -h            show this help and exit
  -v            show version and exit
  -a 0|1        convert tabs to spaces
  -b            highlight matching brackets
  -c N          highlight column N
  -K kdef       define a keymap: name,default_cmd,allow_fallthru
  -k kbind      bind a key in the current -K keymap: cmd,key[,param]
  -l 0|1|2      line number style: absolute, relative, both
  -M macro      define a macro: name,key1,key2,...
  -m key        macro record/replay toggle key
  -n kmap       initial keymap (default mle_normal)
  -S syndef     define a syntax: name,path_pattern
  -s synrule    add a rule to the current -S syntax
  -t N          tab width
  -x script     run a user script
  -y syntax     override syntax detection
  -z 0|1        trim trailing whitespace on paste`)
}

// applyOptions threads a parsed command line into the editor's shared
// resources: keymap/binding definitions, macro definitions, and the macro
// toggle key (spec.md §6).
func applyOptions(ed *editor.Editor, opt *cli.Options) error {
	for _, def := range opt.KeymapDefs {
		km := ed.Keymaps.GetOrCreate(def.Name)
		km.AllowFallthru = def.AllowFallthru
		if def.DefaultCmd != "" {
			km.SetDefault(def.DefaultCmd, "", ed.Commands)
		}
	}
	for _, kb := range opt.KeyBinds {
		km := ed.Keymaps.GetOrCreate(kb.Keymap)
		if err := km.Bind(kb.Key, kb.Command, kb.Param, ed.Commands); err != nil {
			return err
		}
	}
	for _, raw := range opt.MacroDefs {
		m, err := macro.ParseLine(raw)
		if err != nil {
			return err
		}
		ed.Macros.Register(m)
	}
	if opt.MacroToggleKey != "" {
		ks, err := keystroke.ParseToken(opt.MacroToggleKey)
		if err != nil {
			return err
		}
		ed.MacroToggleKey = ks
	}
	return nil
}

// openInitialViews opens one EDIT view per positional path argument (a
// directory opens a browser-style menu view instead, per spec.md §6), or a
// single blank EDIT view if none were given, and returns the view that
// should be active.
func openInitialViews(ed *editor.Editor, opt *cli.Options) *view.View {
	if len(opt.Paths) == 0 {
		v := view.New(command.ViewEdit)
		v.KeymapStack.Push(initialKeymap(ed, opt))
		ed.Views.Open(v, nil, true)
		return v
	}

	var active *view.View
	for _, p := range opt.Paths {
		typ := command.ViewEdit
		if isDir(p.Path) {
			typ = command.ViewMenu
		}
		v := view.New(typ)
		v.SetPromptString(p.Path)
		v.InitialLine = p.Line
		v.KeymapStack.Push(initialKeymap(ed, opt))
		ed.Views.Open(v, nil, active == nil)
		if active == nil {
			active = v
		}
	}
	return active
}

func initialKeymap(ed *editor.Editor, opt *cli.Options) *keymap.Keymap {
	return ed.Keymaps.GetOrCreate(opt.InitialKeymap)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// registerBuiltinCommands wires the two command names the core itself
// reasons about directly: insert-data (paste ingestion's trigger, spec.md
// §4.5) is a no-op here since buffer mutation is an opaque collaborator
// concern (spec.md §1 Non-goals), and editor:quit requests a clean exit.
func registerBuiltinCommands(ed *editor.Editor) {
	ed.Commands.Register(command.InsertDataCommandName, func(ctx *command.Context) error {
		return nil
	}, nil)
	ed.Commands.Register("editor:quit", func(ctx *command.Context) error {
		ed.RequestExit(0)
		if lc, ok := ctx.Loop.(*loop.Context); ok {
			lc.RequestExit()
		}
		return nil
	}, nil)
}
