package fix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/gopydoclint/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		errMsg     string
	}{
		{name: "empty edits", contentLen: 10},
		{
			name:       "adjacent replacements",
			edits:      []fix.TextEdit{fix.Replacement(0, 5, "hello"), fix.Replacement(5, 10, "world")},
			contentLen: 10,
		},
		{name: "insertion at end", edits: []fix.TextEdit{fix.Insertion(10, ".")}, contentLen: 10},
		{
			name:       "negative start offset",
			edits:      []fix.TextEdit{fix.Replacement(-1, 5, "x")},
			contentLen: 10,
			errMsg:     "start offset is negative",
		},
		{
			name:       "end before start",
			edits:      []fix.TextEdit{fix.Replacement(5, 3, "x")},
			contentLen: 10,
			errMsg:     "end offset is before start offset",
		},
		{
			name:       "end exceeds content length",
			edits:      []fix.TextEdit{fix.Deletion(5, 15)},
			contentLen: 10,
			errMsg:     "exceeds content length",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(testCase.edits, testCase.contentLen)
			if testCase.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var validationErr *fix.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), testCase.errMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), testCase.errMsg)
			}
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		fix.Replacement(8, 9, "c"),
		fix.Replacement(2, 6, "b"),
		fix.Insertion(2, "a"),
	}
	fix.SortEdits(edits)

	want := []fix.TextEdit{
		fix.Insertion(2, "a"),
		fix.Replacement(2, 6, "b"),
		fix.Replacement(8, 9, "c"),
	}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Errorf("SortEdits mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edits    []fix.TextEdit
		accepted []fix.TextEdit
		skipped  []fix.TextEdit
		merged   int
	}{
		{
			name:     "no overlap",
			edits:    []fix.TextEdit{fix.Insertion(9, "."), fix.Deletion(0, 1)},
			accepted: []fix.TextEdit{fix.Deletion(0, 1), fix.Insertion(9, ".")},
		},
		{
			name:     "overlapping deletions merge",
			edits:    []fix.TextEdit{fix.Deletion(2, 5), fix.Deletion(4, 8)},
			accepted: []fix.TextEdit{fix.Deletion(2, 8)},
			merged:   1,
		},
		{
			name:     "duplicate insertion collapses",
			edits:    []fix.TextEdit{fix.Insertion(9, "."), fix.Insertion(9, ".")},
			accepted: []fix.TextEdit{fix.Insertion(9, ".")},
			merged:   1,
		},
		{
			name:     "later replacement skipped",
			edits:    []fix.TextEdit{fix.Replacement(3, 6, "y"), fix.Replacement(0, 4, "x")},
			accepted: []fix.TextEdit{fix.Replacement(0, 4, "x")},
			skipped:  []fix.TextEdit{fix.Replacement(3, 6, "y")},
		},
		{
			name:     "different insertions at one offset",
			edits:    []fix.TextEdit{fix.Insertion(4, "a"), fix.Insertion(4, "b")},
			accepted: []fix.TextEdit{fix.Insertion(4, "a")},
			skipped:  []fix.TextEdit{fix.Insertion(4, "b")},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			accepted, skipped, merged, err := fix.PrepareEditsFiltered(testCase.edits, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(testCase.accepted, accepted); diff != "" {
				t.Errorf("accepted mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(testCase.skipped, skipped); diff != "" {
				t.Errorf("skipped mismatch (-want +got):\n%s", diff)
			}
			if merged != testCase.merged {
				t.Errorf("merged = %d, want %d", merged, testCase.merged)
			}
		})
	}
}

func TestPrepareEditsFiltered_InvalidRange(t *testing.T) {
	t.Parallel()

	_, _, _, err := fix.PrepareEditsFiltered([]fix.TextEdit{fix.Deletion(0, 20)}, 10)
	if err == nil {
		t.Error("expected an error for an out-of-range edit")
	}
}
