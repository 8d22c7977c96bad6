package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/formatter"
)

// resaveCommand creates the resave command, which loads a project and writes
// it back out. Ids are renumbered and the layout normalized on the way.
func (c *CLI) resaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resave <in> <out>",
		Short: "Load a project and write it again with the legacy writer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResave(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *CLI) runResave(ctx context.Context, in, out string) error {
	p, err := c.loadProject(ctx, in)
	if err != nil {
		return err
	}

	f, err := formatter.For(out)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeUnsupported, err, "%s", out)
	}
	prog := newProgress(loggerFromContext(ctx))
	if err := f.Save(ctx, p, out); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Saved with %s formatter", f.Name()))

	printSuccess("Resaved %s", in)
	printFile(out)
	return nil
}
