// Package mlelog sets up the editor-wide structured logger. Because the
// terminal itself is the UI, logs never go to stdout/stderr while the
// editor is running; they are written to a file instead, and the editor's
// own status line (an external collaborator) is how the user sees
// user-visible failures (spec.md §7 "Commands that fail ... the loop logs
// and continues").
package mlelog

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Open creates (or truncates) path and returns a zerolog.Logger writing
// JSON lines to it, plus a closer the caller should defer.
func Open(path string, level zerolog.Level) (zerolog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, errors.Wrapf(err, "mlelog: open %q", path)
	}
	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, f.Close, nil
}

// Discard returns a logger that drops everything, for -x script runs or
// tests that don't care about log output.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
