package editor

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

// Saver is the structural interface a view's buffer satisfies if it can be
// backed up on a fatal signal (spec.md §5). A buffer that does not
// implement Saver (such as a prompt/menu view's), or whose Dirty reports
// false, is skipped — matching the boundary behavior "the prompt's own buffer...
// has no file and is skipped" (spec.md §8).
type Saver interface {
	Dirty() bool
	WriteBackup(path string) error
}

// WatchSignals installs handlers for SIGTERM/SIGINT/SIGQUIT/SIGHUP
// (spec.md §5): on receipt, every unsaved buffer is backed up to
// mle.bak.<pid>.<n> in e.WorkDir, teardown runs, and the process exits
// with code 1. Handlers read editor state directly from the goroutine
// rather than round-tripping through the main loop — spec.md §5 calls
// this "a deliberate simplification acceptable because the process is
// about to exit." teardown, if non-nil, is called before os.Exit (e.g. to
// restore the terminal).
func (e *Editor) WatchSignals(teardown func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-ch
		e.Log.Warn().Str("signal", sig.String()).Msg("editor: fatal signal received, backing up and exiting")
		e.backupUnsavedBuffers()
		if teardown != nil {
			teardown()
		}
		os.Exit(1)
	}()
}

// backupUnsavedBuffers writes every dirty Saver buffer across all open
// views to mle.bak.<pid>.<n>, numbering sequentially within this process.
func (e *Editor) backupUnsavedBuffers() {
	n := 0
	for _, v := range e.Views.AllViews() {
		s, ok := v.Buffer.(Saver)
		if !ok || !s.Dirty() {
			continue
		}
		path := filepath.Join(e.WorkDir, fmt.Sprintf("mle.bak.%d.%d", os.Getpid(), n))
		if err := s.WriteBackup(path); err != nil {
			e.Log.Error().Err(err).Str("path", path).Msg("editor: crash backup failed")
			continue
		}
		n++
	}
}
