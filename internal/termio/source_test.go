package termio

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func newSimSource(t *testing.T) *Source {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	return &Source{screen: sim}
}

// fakeTerminal records MakeRaw/Restore calls without touching any real fd,
// so Source's raw-mode wiring can be tested without a controlling TTY.
type fakeTerminal struct {
	madeRawFD    int
	restoredFD   int
	restoreCalls int
}

func (f *fakeTerminal) MakeRaw(fd int) (*term.State, error) {
	f.madeRawFD = fd
	return &term.State{}, nil
}

func (f *fakeTerminal) Restore(fd int, state *term.State) error {
	f.restoredFD = fd
	f.restoreCalls++
	return nil
}

func TestCloseRestoresTerminalAfterScreenTeardown(t *testing.T) {
	s := newSimSource(t)
	ft := &fakeTerminal{}
	s.term = ft
	s.rawState = &term.State{}
	s.fd = 7

	s.Close()

	assert.Equal(t, 1, ft.restoreCalls)
	assert.Equal(t, 7, ft.restoredFD)
}

func TestReadKeystrokeDecodesRune(t *testing.T) {
	s := newSimSource(t)
	sim := s.screen.(tcell.SimulationScreen)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ks, err := s.ReadKeystroke()
	require.NoError(t, err)
	assert.Equal(t, 'q', ks.Rune)
}

func TestDrawRendersPromptLine(t *testing.T) {
	s := newSimSource(t)
	sim := s.screen.(tcell.SimulationScreen)
	sim.SetSize(10, 3)

	v := view.New(command.ViewPrompt)
	v.Rect = view.Rect{X: 0, Y: 0, W: 10, H: 3}
	v.SetPromptString("hi")

	require.NoError(t, s.Draw(v))

	ch, _, _, _ := sim.GetContent(0, 2)
	assert.Equal(t, 'h', ch)
}
