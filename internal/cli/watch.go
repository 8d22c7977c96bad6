package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	xerrors "github.com/matzehuels/xptv/pkg/errors"
)

// watchDebounce coalesces the burst of events an editor produces on save.
const watchDebounce = 200 * time.Millisecond

// watchCommand creates the watch command, which validates a project file
// every time it changes until interrupted.
func (c *CLI) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Validate a project file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], c.reportValidation)
		},
	}
}

// runWatch calls report with a fresh validation of path at start and after
// each change, until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are seen.
func (c *CLI) runWatch(ctx context.Context, path string, report func(validateResult)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInvalidPath, err, "%s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "start watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return xerrors.Wrap(xerrors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
	}
	logger := loggerFromContext(ctx)
	logger.Info("watching", "file", abs)

	report(c.validateFile(ctx, path))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-pending:
			pending = nil
			report(c.validateFile(ctx, path))
		}
	}
}

func (c *CLI) reportValidation(r validateResult) {
	stamp := time.Now().Format("15:04:05")
	if r.err != nil {
		printError("%s %s", stamp, r.path)
		printDetail("%s: %s", codeOf(r.err), xerrors.UserMessage(r.err))
		return
	}
	printSuccess("%s %s", stamp, r.path)
	printDetail("%d elements, %d references", r.nodes, r.edges)
}
