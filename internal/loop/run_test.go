package loop

import (
	"errors"
	"testing"

	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/editor"
	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/mle-editor/mle/internal/view"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource delivers a fixed script of keystrokes, then a sentinel error
// once exhausted so a test loop can't spin forever on a bug.
type fakeSource struct {
	script []keystroke.Keystroke
	i      int
}

var errSourceExhausted = errors.New("fakeSource: exhausted")

func (s *fakeSource) ReadKeystroke() (keystroke.Keystroke, error) {
	if s.i >= len(s.script) {
		return keystroke.Keystroke{}, errSourceExhausted
	}
	ks := s.script[s.i]
	s.i++
	return ks, nil
}

func (s *fakeSource) Pending() (int, error) {
	if s.i >= len(s.script) {
		return 0, nil
	}
	return 1, nil
}

type noopDrawer struct{ calls int }

func (d *noopDrawer) Draw(*view.View) error { d.calls++; return nil }

func newTestLoop(t *testing.T, script []keystroke.Keystroke) (*Context, *editor.Editor, *fakeSource) {
	t.Helper()
	ed := editor.New(zerolog.Nop(), t.TempDir())
	v := view.New(command.ViewEdit)
	km, err := ed.Keymaps.Create("test")
	require.NoError(t, err)
	v.KeymapStack.Push(km)
	src := &fakeSource{script: script}
	ctx := NewContext(nil, ed, v, nil, src, &noopDrawer{}, nil)
	return ctx, ed, src
}

func TestRunDispatchesBoundCommandAndStops(t *testing.T) {
	var executed []string
	ctx, ed, _ := newTestLoop(t, []keystroke.Keystroke{{Rune: 'q'}})
	km, _ := ed.Keymaps.Get("test")
	ed.Commands.Register("quit", func(cctx *command.Context) error {
		executed = append(executed, "quit")
		cctx.Loop.(*Context).RequestExit()
		return nil
	}, nil)
	require.NoError(t, km.Bind("q", "quit", "", ed.Commands))

	err := Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"quit"}, executed)
	assert.True(t, ctx.ShouldExit())
}

func TestRunClearsChordStateAfterDispatch(t *testing.T) {
	ctx, ed, _ := newTestLoop(t, []keystroke.Keystroke{
		{Mod: keystroke.ModCtrl, Rune: 'x'}, {Mod: keystroke.ModCtrl, Rune: 's'},
	})
	km, _ := ed.Keymaps.Get("test")
	ed.Commands.Register("save", func(cctx *command.Context) error {
		cctx.Loop.(*Context).RequestExit()
		return nil
	}, nil)
	require.NoError(t, km.Bind("C-x C-s", "save", "", ed.Commands))

	require.NoError(t, Run(ctx))
	assert.True(t, ctx.ShouldExit())
}

func TestRunRecordsAndReplaysMacro(t *testing.T) {
	toggle := keystroke.Keystroke{Mod: keystroke.ModMeta, Rune: 'r'}
	var dispatched []rune

	ctx, ed, _ := newTestLoop(t, []keystroke.Keystroke{
		toggle, {Rune: 'h'}, {Rune: 'i'}, toggle,
	})
	ed.MacroToggleKey = toggle
	km, _ := ed.Keymaps.Get("test")
	ed.Commands.Register("type-letter", func(cctx *command.Context) error {
		dispatched = append(dispatched, cctx.Input.Rune)
		return nil
	}, nil)
	require.NoError(t, km.Bind("h", "type-letter", "", ed.Commands))
	require.NoError(t, km.Bind("i", "type-letter", "", ed.Commands))

	namer := namerFunc(func(*Context) (string, bool) { return "m1", true })
	ctx.Namer = namer

	err := Run(ctx)
	assert.ErrorIs(t, err, errSourceExhausted)
	assert.Equal(t, []rune{'h', 'i'}, dispatched)

	m, ok := ed.Macros.Get("m1")
	require.True(t, ok)
	assert.Len(t, m.Keys, 2)

	// replay the recorded macro against a fresh source that refuses any
	// further terminal reads, proving replay doesn't touch the terminal.
	dispatched = nil
	ed.Player.StartReplay("m1")
	v2 := view.New(command.ViewEdit)
	v2.KeymapStack.Push(km)
	src2 := &fakeSource{}
	ctx2 := NewContext(nil, ed, v2, nil, src2, &noopDrawer{}, nil)
	err = Run(ctx2)
	assert.ErrorIs(t, err, errSourceExhausted)
	assert.Equal(t, []rune{'h', 'i'}, dispatched)
}

type namerFunc func(*Context) (string, bool)

func (f namerFunc) PromptMacroName(ctx *Context) (string, bool) { return f(ctx) }
