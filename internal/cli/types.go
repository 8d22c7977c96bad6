package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xptv/pkg/project"
)

// typesCommand creates the types command, which lists the type names a
// project file may use.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the factory, stream and track object types that can be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTypes(cmd.OutOrStdout(), project.DefaultRegistry())
		},
	}
}

func printTypes(w io.Writer, r *project.Registry) error {
	sections := []struct {
		title string
		names []string
	}{
		{"factories", r.FactoryTypes()},
		{"streams", r.StreamTypes()},
		{"track objects", r.TrackObjectTypes()},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s:\n", s.title); err != nil {
			return err
		}
		for _, name := range s.names {
			if _, err := fmt.Fprintf(w, "  %s\n", name); err != nil {
				return err
			}
		}
	}
	return nil
}
