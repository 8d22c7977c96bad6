package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/xptv/internal/server"
)

// serveCommand creates the serve command, which runs the inspection API
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve project inspection over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(server.Options{
				Logger:       c.Logger,
				Strict:       c.Config.Strict,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				ReadTimeout:  c.Config.Server.ReadTimeout,
			})
			printInfo("Serving on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
