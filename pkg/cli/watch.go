package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/synchk/pkg/console"
	"github.com/githubnext/synchk/pkg/constants"
)

const debounceDelay = constants.WatchDebounceMilliseconds * time.Millisecond

// WatchTarget checks target once and then re-checks changed files until
// interrupted with Ctrl+C.
func WatchTarget(out io.Writer, target string, opts CheckOptions, report ReportOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch(ctx, out, target, opts, report)
}

func watch(ctx context.Context, out io.Writer, target string, opts CheckOptions, report ReportOptions) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", target, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// A single file is watched through its directory so that editors which
	// replace the file on save are still seen.
	watchedFile := ""
	if info.IsDir() {
		if err := addWatchDirs(watcher, target, opts); err != nil {
			return err
		}
	} else {
		watchedFile = filepath.Clean(target)
		if err := watcher.Add(filepath.Dir(watchedFile)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", target, err)
		}
	}

	findings, err := CheckTarget(target, opts)
	if err != nil {
		return err
	}
	if err := WriteReport(out, findings, report); err != nil {
		return err
	}

	fmt.Fprintln(out, console.FormatInfoMessage(fmt.Sprintf("Watching for file changes in %s...", target)))
	if opts.Verbose {
		fmt.Fprintln(out, console.FormatVerboseMessage("Press Ctrl+C to stop watching."))
	}

	debounce := time.NewTimer(debounceDelay)
	debounce.Stop()
	defer debounce.Stop()
	modified := make(map[string]struct{})

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			path := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) && watchedFile == "" {
				if fi, err := os.Stat(path); err == nil && fi.IsDir() {
					if !opts.skipDir(fi.Name()) {
						if err := addWatchDirs(watcher, path, opts); err != nil && opts.Verbose {
							fmt.Fprintln(out, console.FormatWarningMessage(err.Error()))
						}
					}
					continue
				}
			}

			if watchedFile != "" && path != watchedFile {
				continue
			}
			if watchedFile == "" && !opts.eligible(filepath.Base(path)) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if opts.Verbose {
				fmt.Fprintln(out, console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", path, event.Op.String())))
			}
			modified[path] = struct{}{}
			debounce.Reset(debounceDelay)

		case <-debounce.C:
			files := make([]string, 0, len(modified))
			for file := range modified {
				files = append(files, file)
			}
			clear(modified)
			slices.Sort(files)

			fmt.Fprintln(out, console.FormatProgressMessage(fmt.Sprintf("Re-checking %d changed file(s)", len(files))))
			if err := WriteReport(out, CheckFiles(files, opts.Workers), report); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Fprintln(out, console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-ctx.Done():
			if opts.Verbose {
				fmt.Fprintln(out, console.FormatInfoMessage("Stopping watch mode..."))
			}
			return nil
		}
	}
}

// addWatchDirs adds root and every directory below it that a walk would visit.
func addWatchDirs(watcher *fsnotify.Watcher, root string, opts CheckOptions) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && opts.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}
