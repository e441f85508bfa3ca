package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

// writeTree creates files under dir. Paths use forward slashes.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// discover runs Discover and returns the paths relative to dir.
func discover(t *testing.T, dir string, opts runner.Options) []string {
	t.Helper()

	opts.WorkingDir = dir
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	rel := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		rel[i] = filepath.ToSlash(r)
	}
	return rel
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d files %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"mod.py": "x = 1\n"})

	assertFiles(t, discover(t, dir, runner.Options{Paths: []string{"mod.py"}}), []string{"mod.py"})
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":            "",
		"pkg/__init__.py":   "",
		"pkg/types.pyi":     "",
		"pkg/data.json":     "{}",
		"README.md":         "# Readme",
		"pkg/__pycache__/x": "",
	})

	assertFiles(t, discover(t, dir, runner.Options{Paths: []string{"."}}), []string{
		"app.py",
		"pkg/__init__.py",
		"pkg/types.pyi",
	})
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"mod.py": ""})

	assertFiles(t, discover(t, dir, runner.Options{}), []string{"mod.py"})
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "", "b.pyi": "", "c.pyx": ""})

	assertFiles(t, discover(t, dir, runner.Options{Extensions: []string{".pyx", ".PY"}}), []string{"a.py", "c.pyx"})
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":                 "",
		"app/migrations/0001.py": "",
		"build/lib/app.py":       "",
		"tests/test_app.py":      "",
		"tests/conftest.py":      "",
		"docs/conf.py":           "",
	})

	got := discover(t, dir, runner.Options{
		ExcludeGlobs: []string{"**/migrations/**", "build", "conftest.py", "docs/*.py"},
	})
	assertFiles(t, got, []string{"app.py", "tests/test_app.py"})
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/pkg/a.py": "",
		"src/pkg/b.py": "",
		"scripts/c.py": "",
	})

	assertFiles(t, discover(t, dir, runner.Options{IncludeGlobs: []string{"src/**/*.py"}}), []string{
		"src/pkg/a.py",
		"src/pkg/b.py",
	})
}

func TestDiscover_HiddenAndVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":                    "",
		".hidden.py":                "",
		".venv/lib/site.py":         "",
		"node_modules/tool/hook.py": "",
	})

	assertFiles(t, discover(t, dir, runner.Options{}), []string{"app.py"})

	assertFiles(t, discover(t, dir, runner.Options{IncludeVendored: true}), []string{
		"app.py",
		"node_modules/tool/hook.py",
	})
}

func TestDiscover_PythonScripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"scripts/tool":   "#!/usr/bin/env python3\n\"\"\"Tool.\"\"\"\n",
		"scripts/deploy": "#!/bin/sh\necho hi\n",
		"scripts/notes":  "plain text\n",
	})

	assertFiles(t, discover(t, dir, runner.Options{IncludeScripts: true}), []string{"scripts/tool"})
	assertFiles(t, discover(t, dir, runner.Options{}), []string{})
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"pkg/a.py": ""})

	got := discover(t, dir, runner.Options{Paths: []string{"pkg", "pkg/a.py", "."}})
	assertFiles(t, got, []string{"pkg/a.py"})
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	writeTree(t, dir, map[string]string{"app.py": ""})
	writeTree(t, target, map[string]string{"linked.py": ""})

	if err := os.Symlink(target, filepath.Join(dir, "ext")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	assertFiles(t, discover(t, dir, runner.Options{}), []string{"app.py"})

	followed := discover(t, dir, runner.Options{FollowSymlinks: true})
	if len(followed) != 2 {
		t.Fatalf("expected linked file to be found, got %v", followed)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	include := false
	cfg := config.NewConfig()
	cfg.Extensions = []string{".pyw"}
	cfg.IncludeScripts = &include
	cfg.Ignore = []string{"build/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"src"})
	if opts.IncludeScripts {
		t.Error("IncludeScripts should follow config")
	}
	if len(opts.Extensions) != 1 || opts.Extensions[0] != ".pyw" {
		t.Errorf("Extensions = %v", opts.Extensions)
	}
	if len(opts.ExcludeGlobs) != 1 || opts.Jobs != 3 || opts.Config != cfg {
		t.Errorf("unexpected options %+v", opts)
	}
	if len(opts.Paths) != 1 || opts.Paths[0] != "src" {
		t.Errorf("Paths = %v", opts.Paths)
	}
}
