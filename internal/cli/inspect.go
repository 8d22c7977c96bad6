package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xptv/pkg/project"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	json bool // print the summary as JSON
}

// inspectCommand creates the inspect command, which loads a project and
// prints what it contains.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Load a project and summarize its sources and tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the summary as JSON")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, path string, opts inspectOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p, err := c.loadProject(ctx, path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", path))

	s := project.Summarize(p)
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	printTitle(s.Name)
	printKeyValue("Location", s.URI)
	printKeyValue("Duration", formatNanos(s.Duration))
	printKeyValue("Clips", fmt.Sprint(s.TimelineObjects))

	printSection("Sources", len(s.Sources))
	for _, src := range s.Sources {
		loc := src.Location
		if loc == "" {
			loc = src.Type
		}
		printDetail("%s  %s  [%s]", src.Name, loc, strings.Join(src.Outputs, ", "))
	}

	printSection("Tracks", len(s.Tracks))
	for i, t := range s.Tracks {
		printDetail("#%d %s  %d objects  %s  %s", i, t.Kind, t.Objects, formatNanos(t.Duration), t.Caps)
	}
	return nil
}

// formatNanos renders a timeline position in nanoseconds as a duration.
func formatNanos(ns int64) string {
	return time.Duration(ns).String()
}
