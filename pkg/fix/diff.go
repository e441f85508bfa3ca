package fix

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff is a unified diff between the original and fixed content of a file.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Original is the content before fixes.
	Original []byte

	// Modified is the content after fixes.
	Modified []byte

	// Unified is the rendered diff, starting with the ---/+++ headers.
	Unified string

	// Hunks is the number of @@ sections in Unified.
	Hunks int

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified.
// It returns nil when the contents are identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	before := difflib.SplitLines(string(original))
	after := difflib.SplitLines(string(modified))

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
	}

	matcher := difflib.NewMatcher(before, after)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			diff.Deletions += op.I2 - op.I1
			diff.Additions += op.J2 - op.J1
		case 'd':
			diff.Deletions += op.I2 - op.I1
		case 'i':
			diff.Additions += op.J2 - op.J1
		}
	}
	diff.Hunks = len(matcher.GetGroupedOpCodes(contextLines))

	name := strings.TrimPrefix(path, "/")
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		// Rendering only fails on writer errors, which a strings.Builder never returns.
		unified = ""
	}
	diff.Unified = unified

	return diff
}

// String returns the unified diff without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Unified
}

// HasChanges reports whether the diff contains any change.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Unified != ""
}
