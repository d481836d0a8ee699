package promptctl

import (
	"strings"

	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/loop"
	"github.com/pkg/errors"
)

// maxCompletionStem bounds the prompt-line snapshot tab-completion will
// shell out with; a longer line bails rather than risk an overlong
// argument vector (spec.md §4.5 "bounded length; bail if too long").
const maxCompletionStem = 4096

// complete implements spec.md §4.5 "Tab completion". The first tab of a
// streak (detected via lc.LastCommand() != this command) snapshots the
// stem and fetches candidates; later taps in the same streak just advance
// the cycling index.
func (s *promptState) complete(ctx *command.Context) error {
	lc, ok := ctx.Loop.(*loop.Context)
	if !ok {
		return nil
	}

	first := lc.LastCommand() == nil || lc.LastCommand().Name != "prompt:complete"
	if first {
		stem := ctx.View.PromptString()
		if len(stem) > maxCompletionStem {
			return nil
		}
		candidates, err := s.controller.completionCandidates(stem, s.params)
		if err != nil {
			return err
		}
		lc.CompletionTerm = stem
		lc.CompletionIndex = 0
		s.candidates = candidates
	} else {
		lc.CompletionIndex++
	}

	if len(s.candidates) == 0 {
		return nil // empty result is a no-op
	}
	idx := lc.CompletionIndex % len(s.candidates)
	ctx.View.SetPromptString(s.candidates[idx])
	return nil
}

// completionCandidates shells out to p.CompletionCmd (via p.CompletionShell,
// default "sh") with stem as its argument and splits the output on
// newlines (spec.md §4.5, §6 "Tab completion shells out via an external
// shell interpreter"). A trailing newline terminator is assumed.
func (c *Controller) completionCandidates(stem string, p Params) ([]string, error) {
	if p.CompletionCmd == "" {
		return nil, nil
	}
	shell := p.CompletionShell
	if shell == "" {
		shell = "sh"
	}

	cmd := c.execCommand(shell, "-c", p.CompletionCmd+" "+shellQuote(stem))
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, "promptctl: completion command")
	}

	text := strings.TrimSuffix(string(out), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// shellQuote wraps s in single quotes for a POSIX shell -c argument,
// escaping any embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
