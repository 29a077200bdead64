package cmd

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mgrude/ccstatus/internal/input"
	"github.com/mgrude/ccstatus/internal/statusline"
	"github.com/mgrude/ccstatus/internal/theme"
	"github.com/mgrude/ccstatus/internal/usage"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the status line whenever the usage snapshot changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			theme.Plain()
		} else {
			theme.ForceANSI()
		}

		payload, err := input.Decode(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("decoding payload: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), statusline.Render(collect(payload)))

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// Watch the cache directory rather than the file itself: the
		// fetcher replaces usage.json atomically, which would drop a
		// file-level watch.
		if err := watcher.Add(cfg.CacheDir); err != nil {
			return fmt.Errorf("watching %s: %w", cfg.CacheDir, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != usage.CacheFileName {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), statusline.Render(collect(payload)))
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
