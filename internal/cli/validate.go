package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
	"github.com/matzehuels/xptv/pkg/formatter/etree"
	"github.com/matzehuels/xptv/pkg/project"
)

// maxParallelValidations bounds how many files validate reads at once.
const maxParallelValidations = 4

// validateResult is the outcome of checking one file.
type validateResult struct {
	path  string
	nodes int
	edges int
	err   error
}

// validateCommand creates the validate command. Every file is parsed, its
// reference graph built and the project decoded; the first problem of each
// file is reported.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that project files are well formed and fully resolvable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.Config.Strict {
				printWarning("Header checks are off (strict = false)")
			}
			results := c.validateFiles(cmd.Context(), args)

			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					printError("%s", r.path)
					printDetail("%s: %s", codeOf(r.err), xerrors.UserMessage(r.err))
					continue
				}
				printSuccess("%s", r.path)
				printStats(r.nodes, r.edges, false)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(results))
			}
			return nil
		},
	}
}

// validateFiles checks paths concurrently and returns results in argument
// order.
func (c *CLI) validateFiles(ctx context.Context, paths []string) []validateResult {
	results := make([]validateResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelValidations)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = c.validateFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *CLI) validateFile(ctx context.Context, path string) validateResult {
	res := validateResult{path: path}
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}

	doc, _, err := parseDocument(path)
	if err != nil {
		res.err = err
		return res
	}
	g, err := etree.ReferenceGraph(doc)
	if err != nil {
		res.err = err
		return res
	}
	res.nodes, res.edges = g.NodeCount(), g.EdgeCount()

	res.err = c.etree().Decode(doc, project.New(""))
	loggerFromContext(ctx).Debug("validated", "file", path, "err", res.err)
	return res
}

// codeOf returns the error code of err, or INTERNAL_ERROR for plain errors.
func codeOf(err error) xerrors.Code {
	if code := xerrors.GetCode(err); code != "" {
		return code
	}
	return xerrors.ErrCodeInternal
}
