package main

import (
	"fmt"

	"github.com/fwojciec/docpeek"
)

// Run executes the resolve command. A missing preview is reported, not
// returned as an error.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	key, err := docpeek.NewPreviewKey(c.Page, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docpeek.ErrorMessage(err))
		return err
	}

	text, err := deps.Previewer.Preview(deps.Ctx, key)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "no preview (%s): %s\n", docpeek.ErrorCode(err), docpeek.ErrorMessage(err))
		return nil
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}
