package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/logger"
)

// DefaultWatchDebounce coalesces the burst of events an editor save produces.
const DefaultWatchDebounce = 200 * time.Millisecond

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [notebook]",
	Short: "Re-print a notebook summary whenever it changes",
	Long: `Prints the notebook summary, then prints it again each time the file is
written, for example after Jupyter saves or an MCP client edits a cell.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", DefaultWatchDebounce, "quiet period before re-printing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if outputService == nil {
		return errors.New("output service not configured")
	}

	path := args[0]
	target, err := watchTarget(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	render := func() {
		summary, err := outputService.Summarize(cmd.Context(), path)
		if err != nil {
			logger.Error("summarising %s: %v", path, err)
			return
		}
		fmt.Fprintf(out, "=== %s (%s) ===\n", path, time.Now().Format(time.TimeOnly))
		fmt.Fprint(out, summary)
	}

	render()
	return watchFile(cmd.Context(), target, watchDebounce, render)
}

// watchTarget returns the file the output service reads for path, so that a
// relative path under a notebook root is watched where it is summarised.
func watchTarget(path string) (string, error) {
	if pathResolver == nil {
		return path, nil
	}
	target, err := pathResolver.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("resolving notebook path: %w", err)
	}
	return target, nil
}

// watchFile calls onChange after path is written, created or renamed into
// place, once no further events arrive for the debounce period.
// The parent directory is watched so atomic replacements are seen.
// It blocks until ctx is cancelled.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logger.Debug("watching %s", target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("event %s", event)

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}
