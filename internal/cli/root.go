package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Execute runs the artwork CLI with the process arguments. Logs and the
// final error line go to stderr; an error caused by ctx being cancelled is
// returned without being printed.
func Execute(ctx context.Context, stderr io.Writer) error {
	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(stderr, styleIconError.Render(iconError)+" "+describeError(err))
	}
	return err
}

// describeError renders err for the terminal, prefixing coded errors with
// their code.
func describeError(err error) string {
	if code := errors.GetCode(err); code != "" {
		return string(code) + ": " + errors.UserMessage(err)
	}
	return err.Error()
}
