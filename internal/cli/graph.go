package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xptv/pkg/cache"
	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/formatter/etree"
	"github.com/matzehuels/xptv/pkg/render/nodelink"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output     string // output file; defaults to the input with a new extension
	format     string // svg or dot; inferred from output when empty
	detailed   bool   // include ids and attributes in node labels
	edgeLabels bool   // name each reference on its edge
	noCache    bool   // skip the artifact cache
}

// graphCommand creates the graph command, which renders the reference graph
// of a project document.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{edgeLabels: true}

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Render the reference graph of a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := graphFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			if opts.output == "" {
				opts.output = outputPath(args[0], "."+format)
			}
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids and attributes in node labels")
	cmd.Flags().BoolVar(&opts.edgeLabels, "edge-labels", opts.edgeLabels, "label edges with the reference name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// graphFormat resolves the output format from the flag or the output
// extension.
func graphFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = formatSVG
		}
	}
	switch format {
	case formatSVG, formatDOT:
		return format, nil
	}
	return "", xerrors.New(xerrors.ErrCodeInvalidInput, "unsupported graph format %q (use svg or dot)", format)
}

func (c *CLI) runGraph(ctx context.Context, path string, opts graphOpts) error {
	logger := loggerFromContext(ctx)

	doc, data, err := parseDocument(path)
	if err != nil {
		return err
	}
	g, err := etree.ReferenceGraph(doc)
	if err != nil {
		return err
	}
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed, EdgeLabels: opts.edgeLabels})

	out := []byte(dot)
	cached := false
	if opts.format == formatSVG {
		out, cached, err = c.renderSVG(ctx, dot, data, opts)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "write %s", opts.output)
	}
	logger.Debug("graph written", "file", opts.output, "bytes", len(out), "cached", cached)

	printSuccess("Rendered reference graph")
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	printFile(opts.output)
	return nil
}

// renderSVG renders dot, consulting the artifact cache keyed by the content
// of the source document and the rendering options.
func (c *CLI) renderSVG(ctx context.Context, dot string, doc []byte, opts graphOpts) ([]byte, bool, error) {
	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	key := c.keyer().GraphKey(cache.Hash(doc), cache.GraphKeyOpts{
		Format:     opts.format,
		Detailed:   opts.detailed,
		EdgeLabels: opts.edgeLabels,
	})
	if svg, hit, err := store.Get(ctx, key); err != nil {
		loggerFromContext(ctx).Warn("cache read failed", "err", err)
	} else if hit {
		return svg, true, nil
	}

	spin := startSpinner(ctx, os.Stderr, "Rendering graph")
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		spin.fail("Rendering failed")
		return nil, false, xerrors.Wrap(xerrors.ErrCodeInternal, err, "render %s", formatSVG)
	}
	spin.stop()

	if err := store.Set(ctx, key, svg, c.Config.Cache.TTL); err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "err", err)
	}
	return svg, false, nil
}
