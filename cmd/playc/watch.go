package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"playscript/internal/driver"
	"playscript/internal/project"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file.play|directory>",
	Short: "Re-run diagnostics whenever sources change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 250*time.Millisecond, "quiet period before re-running diagnostics")
	addDiagOutputFlags(watchCmd)
	addAnalysisFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	output, err := readDiagOutput(cmd)
	if err != nil {
		return err
	}
	target := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rerun := func(changed []string) {
		if len(changed) > 0 {
			infof(cmd, "\n-- %d change(s), re-running diagnostics --\n", len(changed))
		}
		// манифест перечитывается на каждом прогоне
		settings, err := loadSettings(cmd, target)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			return
		}
		if _, err := diagnoseOnce(ctx, cmd, settings, output, cmd.OutOrStdout()); err != nil && ctx.Err() == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}

	rerun(nil)
	infof(cmd, "watching %s (Ctrl-C to stop)\n", target)
	return watchWithFSNotify(ctx, target, debounce, rerun)
}

// watchWithFSNotify watches target recursively and calls onChange with the
// sorted set of relevant paths once no event arrived for debounce.
func watchWithFSNotify(ctx context.Context, target string, debounce time.Duration, onChange func(changedPaths []string)) error {
	root, err := watchRoot(target)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, root); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			eventPath := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(eventPath); statErr == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, eventPath)
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !relevantChange(eventPath) {
				continue
			}
			pending[eventPath] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(changed)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

// relevantChange reports whether a change to path can alter diagnostics:
// PlayScript sources and the manifest. Editor swap files are ignored.
func relevantChange(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return filepath.Ext(base) == driver.SourceExt || base == project.ManifestName
}

func watchRoot(target string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return absTarget, nil
	}
	return filepath.Dir(absTarget), nil
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
