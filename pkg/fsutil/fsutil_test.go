package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/gopydoclint/pkg/fsutil"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mod.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and snapshot", func(t *testing.T) {
		t.Parallel()

		content := "def f():\n    \"\"\"Doc.\"\"\"\n"
		path := writeFixture(t, content)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != content {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Mode.Perm() != 0o644 {
			t.Errorf("Mode = %o, want %o", info.Mode.Perm(), 0o644)
		}
		var zero [32]byte
		if info.Hash == zero {
			t.Error("Hash should not be zero")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.py"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "anypath")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	snapshot := func(t *testing.T, path string) *fsutil.FileInfo {
		t.Helper()
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		return info
	}

	t.Run("unmodified", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "x = 1\n")
		info := snapshot(t, path)

		for _, strict := range []bool{false, true} {
			modified, err := fsutil.CheckModified(context.Background(), info, strict)
			if err != nil {
				t.Fatalf("CheckModified(strict=%v) error = %v", strict, err)
			}
			if modified {
				t.Errorf("CheckModified(strict=%v) = true, want false", strict)
			}
		}
	})

	t.Run("size changed", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "x = 1\n")
		info := snapshot(t, path)

		if err := os.WriteFile(path, []byte("x = 12\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info, false)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("expected modification to be detected")
		}
	})

	t.Run("same size and time only caught by strict", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "x = 1\n")
		info := snapshot(t, path)

		if err := os.WriteFile(path, []byte("y = 2\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := os.Chtimes(path, time.Now(), info.ModTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		quick, err := fsutil.CheckModified(context.Background(), info, false)
		if err != nil {
			t.Fatalf("CheckModified(quick) error = %v", err)
		}
		if quick {
			t.Error("quick check should only compare size and mtime")
		}

		strict, err := fsutil.CheckModified(context.Background(), info, true)
		if err != nil {
			t.Fatalf("CheckModified(strict) error = %v", err)
		}
		if !strict {
			t.Error("strict check should detect content change")
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFixture(t, "x = 1\n")
		info := snapshot(t, path)

		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info, true)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("deleted file should count as modified")
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil, false)
		if !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Fatalf("error = %v, want ErrNilFileInfo", err)
		}
	})
}
