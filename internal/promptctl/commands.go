package promptctl

import (
	"github.com/mle-editor/mle/internal/command"
	"github.com/mle-editor/mle/internal/loop"
	"github.com/mle-editor/mle/internal/view"
)

// promptState closes over one Prompt call's Params and Controller so the
// fixed command bodies bound by buildKeymap can read/write the answer and
// exit the nested loop.
type promptState struct {
	params     Params
	controller *Controller

	// candidates is the completion list snapshotted on the first tab of a
	// streak (spec.md §4.5 "Tab completion").
	candidates []string
}

func (s *promptState) exit(ctx *command.Context, answer Answer) {
	lc, ok := ctx.Loop.(*loop.Context)
	if !ok {
		return
	}
	if a, ok := lc.Answer.(*Answer); ok {
		*a = answer
	}
	lc.RequestExit()
}

func (s *promptState) acceptInput(ctx *command.Context) error {
	s.exit(ctx, Answer{Text: ctx.View.PromptString()})
	return nil
}

func (s *promptState) cancel(ctx *command.Context) error {
	s.exit(ctx, Answer{Cancelled: true})
	return nil
}

func (s *promptState) yes(ctx *command.Context) error {
	s.exit(ctx, Answer{Sentinel: SentinelYes})
	return nil
}

func (s *promptState) no(ctx *command.Context) error {
	s.exit(ctx, Answer{Sentinel: SentinelNo})
	return nil
}

func (s *promptState) all(ctx *command.Context) error {
	s.exit(ctx, Answer{Sentinel: SentinelAll})
	return nil
}

func (s *promptState) menuConfirm(ctx *command.Context) error {
	lc, ok := ctx.Loop.(*loop.Context)
	if !ok {
		return nil
	}
	if s.params.MenuCallback != nil {
		if mv, ok := ctx.View.(*view.View); ok {
			if err := s.params.MenuCallback(mv); err != nil {
				return err
			}
		}
	}
	// A menu callback may or may not want the prompt to stay open (spec.md
	// §4.5 "invokes the menu's callback (which may or may not exit)"); by
	// default confirming a menu selection exits with the current line.
	lc.Answer.(*Answer).Text = ctx.View.PromptString()
	lc.RequestExit()
	return nil
}

func (s *promptState) menuCancel(ctx *command.Context) error {
	s.exit(ctx, Answer{Cancelled: true})
	return nil
}

func (s *promptState) promptMenuMove(ctx *command.Context) error {
	// Moving the underlying menu view's cursor is an opaque collaborator
	// concern (spec.md §1 Non-goals: cursor/mark internals); this command
	// only exists so the keymap contract has somewhere to bind to.
	return nil
}

func (s *promptState) promptMenuConfirm(ctx *command.Context) error {
	s.exit(ctx, Answer{Text: ctx.View.PromptString()})
	return nil
}

func (s *promptState) isearchStep(ctx *command.Context) error {
	// Stepping to the next/previous regex match is the collaborator's
	// compiled-regex concern (spec.md §4.5 "isearch prompt"); out of the
	// core's scope beyond dispatching to it.
	return nil
}

func (s *promptState) isearchDropCursors(ctx *command.Context) error {
	s.exit(ctx, Answer{Text: ctx.View.PromptString()})
	return nil
}
