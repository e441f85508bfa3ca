package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gopydoclint/internal/logging"
)

// DefaultDebounce is how long Watch waits for further changes before
// re-linting.
const DefaultDebounce = 200 * time.Millisecond

// WatchFunc receives the result of each run performed by Watch.
type WatchFunc func(result *Result, err error)

// Watch runs once over opts, then re-runs on the files that change until
// ctx is cancelled. Changes arriving within debounce of each other are
// batched into one run. Watch returns nil when ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, opts Options, debounce time.Duration, fn WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := logging.FromContext(ctx)

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
	}

	explicit := make(map[string]bool)
	for _, inputPath := range opts.effectivePaths() {
		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if info.IsDir() {
			if err := d.watchTree(fsw, absPath); err != nil {
				return err
			}
			continue
		}
		explicit[absPath] = true
		if err := fsw.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
		}
	}

	fn(r.Run(ctx, opts))

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := d.watchTree(fsw, path); err != nil {
						logger.Warn("cannot watch directory", logging.FieldPath, path, logging.FieldError, err)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if len(explicit) > 0 && !explicit[path] && !d.underWatchedTree(path) {
				continue
			}
			if !d.matchesFile(path, explicit[path]) {
				continue
			}

			logger.Debug("file changed", logging.FieldPath, path, logging.FieldEvent, event.Op.String())
			pending[path] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			changed := existing(pending)
			clear(pending)
			if len(changed) == 0 {
				continue
			}

			logger.Debug("re-linting", logging.FieldChanged, len(changed))
			run := opts
			run.Paths = changed
			fn(r.Run(ctx, run))
		}
	}
}

// watchTree adds root and every directory below it that discovery would
// descend into.
func (d *discoverer) watchTree(fsw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root {
			rel := d.relPath(path)
			if strings.HasPrefix(entry.Name(), ".") || entry.Name() == "__pycache__" ||
				(!d.opts.IncludeVendored && enry.IsVendor(rel+"/")) ||
				matchesAny(rel, d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		d.watched = append(d.watched, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", root, err)
	}
	return nil
}

// underWatchedTree reports whether path lies in a directory added by watchTree.
func (d *discoverer) underWatchedTree(path string) bool {
	return slices.Contains(d.watched, filepath.Dir(path))
}

// existing returns the sorted paths of pending that are still regular files.
func existing(pending map[string]struct{}) []string {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}
