package promptctl

import "github.com/mle-editor/mle/internal/loop"

// PromptMacroName satisfies loop.NamePrompter: it runs a nested input
// prompt asking for the name to record a macro under (spec.md §4.4 "start:
// prompt for name"). parent is the loop context recording started from.
func (c *Controller) PromptMacroName(parent *loop.Context) (string, bool) {
	ans, err := c.Prompt(parent, "Macro name?", Params{Kind: KindInput})
	if err != nil {
		return "", false
	}
	if ans.Cancelled {
		return "", false
	}
	return ans.Text, true
}
