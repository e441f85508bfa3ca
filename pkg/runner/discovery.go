package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gopydoclint/pkg/langdetect"
)

// shebangSniffLen is how much of an extensionless file is read to look for
// a Python shebang.
const shebangSniffLen = 256

// Discover finds Python files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Files named explicitly in Paths are linted when they carry a linted
// extension or a Python shebang, even if vendored.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if d.matchesFile(absPath, true) {
			d.add(absPath)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
	watched    []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// relPath returns path relative to the working directory, slash separated.
func (d *discoverer) relPath(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk recursively walks a directory and adds matching Python files.
func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := d.relPath(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || entry.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			if !d.opts.IncludeVendored && enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}
			if matchesAny(rel, d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// WalkDir uses Lstat on its root, so walking the target
				// does not recurse through the link again.
				return d.walk(ctx, realPath)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if d.matchesFile(path, false) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// matchesFile checks if a file path matches the inclusion criteria.
func (d *discoverer) matchesFile(path string, explicit bool) bool {
	rel := d.relPath(path)

	if matchesAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	if !explicit && !d.opts.IncludeVendored && enry.IsVendor(rel) {
		return false
	}
	if len(d.opts.IncludeGlobs) > 0 && !matchesAny(rel, d.opts.IncludeGlobs) {
		return false
	}

	if hasMatchingExtension(path, d.extensions) {
		return true
	}
	return d.opts.IncludeScripts && filepath.Ext(path) == "" && isPythonScript(path)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// isPythonScript reads the start of path and checks for a Python shebang.
func isPythonScript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, shebangSniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	return langdetect.IsPythonScript(head[:n])
}

// matchesAny reports whether rel matches one of the doublestar patterns.
// A pattern without a slash also matches the file's base name, and a
// pattern naming a directory matches everything below it.
func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, pathBase(rel)); ok {
				return true
			}
		}
		if ok, _ := doublestar.Match(strings.TrimSuffix(pattern, "/")+"/**", rel); ok {
			return true
		}
	}
	return false
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
