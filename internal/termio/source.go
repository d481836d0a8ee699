package termio

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/mle-editor/mle/internal/keystroke"
	"github.com/mle-editor/mle/internal/view"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"golang.org/x/text/width"
)

// Source bridges a tcell.Screen into the loop.TerminalSource/PeekSource and
// loop.Drawer interfaces (those interfaces live in package loop; Source
// never imports it, it just matches their method sets structurally, the
// same boundary pattern as command.ViewHandle).
type Source struct {
	screen tcell.Screen
	fd     uintptr

	term     Terminal
	rawState *term.State
}

// NewSource puts the controlling terminal into raw mode via term (so tcell
// never has to guess whether something upstream already changed termios
// settings) and then initializes a tcell screen over it. The raw-mode
// state captured here is restored in Close, after the screen itself has
// torn down.
func NewSource(term Terminal) (*Source, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "termio: make raw")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "termio: new screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "termio: init screen")
	}
	screen.EnablePaste()
	return &Source{screen: screen, fd: os.Stdin.Fd(), term: term, rawState: state}, nil
}

// TTYFD returns the descriptor the async multiplexer should poll alongside
// bound subprocess pipes (spec.md §4.6).
func (s *Source) TTYFD() uintptr { return s.fd }

// Size returns the current terminal dimensions in cells.
func (s *Source) Size() (int, int) { return s.screen.Size() }

// Close tears the screen down, then restores the terminal's original
// (pre-raw-mode) state via s.term: the reverse of the order NewSource set
// them up in (termios state first, screen second).
func (s *Source) Close() {
	s.screen.Fini()
	if s.term != nil && s.rawState != nil {
		_ = s.term.Restore(int(s.fd), s.rawState)
	}
}

// ReadKeystroke blocks for the next decoded key event, skipping non-key
// events (resize, mouse, paste markers) that tcell may deliver in between.
func (s *Source) ReadKeystroke() (keystroke.Keystroke, error) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return keystroke.Keystroke{}, errors.New("termio: screen closed")
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			return keystroke.FromTcellEvent(e), nil
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// Pending reports whether input is immediately readable on the
// controlling TTY without blocking (1 if so, 0 otherwise; spec.md §4.5
// "peek-based paste ingestion"), via the platform pending-input probe in
// this package.
func (s *Source) Pending() (int, error) {
	return PendingInput(s.fd)
}

// Draw renders the active view's frame. Buffer contents are an opaque
// collaborator concern (spec.md §1 Non-goals); the core only owns the
// prompt/status line text and the view's rectangle, so that is all this
// draws here.
func (s *Source) Draw(active *view.View) error {
	s.screen.Clear()
	if active != nil {
		r := active.Rect
		// Fold fullwidth/halfwidth variants to their canonical form before
		// measuring cell width, so a prompt line copy-pasted from a CJK
		// source lays out using the same column math as the narrow forms.
		line := width.Fold.String(active.PromptString())
		col := 0
		for _, ch := range line {
			w := runewidth.RuneWidth(ch)
			if r.W > 0 && col+w > r.W {
				break
			}
			s.screen.SetContent(r.X+col, r.Y+r.H-1, ch, nil, tcell.StyleDefault)
			col += w
		}
	}
	s.screen.Show()
	return nil
}
