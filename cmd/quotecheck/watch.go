package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/fsnotify.v1"

	"github.com/coolbeans/quotecheck/pkg/locale"
	"github.com/coolbeans/quotecheck/pkg/quote"
)

// debounceDelay coalesces the bursts of events editors emit on save.
const debounceDelay = 300 * time.Millisecond

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <quote-file>",
		Short: "Re-analyze a quote every time it is saved",
		Long: `Watch a quote file and print a fresh report whenever it changes.

Examples:
  quotecheck watch devis.yaml
  quotecheck watch devis.json --locale nl-BE --sensitivity strict`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			if args[0] == "-" {
				return fmt.Errorf("watch needs a file path, not stdin")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			localeFlag, _ := cmd.Flags().GetString("locale")

			analyzer, sensitivity, err := analysisSetup(cmd)
			if err != nil {
				return err
			}

			path := args[0]
			out := cmd.OutOrStdout()
			run := func() {
				record, err := quote.ReadFile(path)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					return
				}
				fmt.Fprintf(out, "=== %s (%s)\n", path, time.Now().Format(time.TimeOnly))
				printReport(out, analyzer.Analyze(record, locale.Resolve(localeFlag, record), sensitivity))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run()
			return watchFile(ctx, path, out, run)
		},
	}

	cmd.Flags().StringP("locale", "l", "", "Locale pack code")
	cmd.Flags().Bool("no-autofix", false, "Do not propose pattern auto-fixes")
	cmd.Flags().StringP("sensitivity", "s", "", "Sensitivity: strict, normal or permissive")

	return cmd
}

// watchFile calls onChange after path is written or recreated, until ctx
// is done. The parent directory is watched so that editors replacing the
// file on save are followed.
func watchFile(ctx context.Context, path string, errOut io.Writer, onChange func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching directory %s: %w", filepath.Dir(target), err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isChangeOf(event, target) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch error: %v\n", err)
		}
	}
}

func isChangeOf(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
