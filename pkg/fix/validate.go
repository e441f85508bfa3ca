package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks every edit range against a content of contentLen bytes.
// It returns the first problem found, or nil.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset.
// Edits with equal ranges keep their relative order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// overlaps reports whether next, which sorts after prev, overlaps it.
// Two insertions at the same offset overlap, since their order is ambiguous.
func overlaps(prev, next TextEdit) bool {
	if next.StartOffset < prev.EndOffset {
		return true
	}
	return prev.IsInsertion() && next.IsInsertion() && prev.StartOffset == next.StartOffset
}

// PrepareEditsFiltered validates and sorts edits, then resolves overlaps
// instead of failing on them: overlapping deletions are merged into one, and
// any other edit overlapping an accepted one is skipped. Earlier edits win.
//
// It returns the accepted edits, the skipped edits, and how many deletions
// were merged. The error is non-nil only for invalid ranges.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	var (
		accepted = make([]TextEdit, 0, len(sorted))
		skipped  []TextEdit
		merged   int
	)

	current := sorted[0]
	for _, edit := range sorted[1:] {
		switch {
		case !overlaps(current, edit):
			accepted = append(accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			merged++
		case edit == current:
			// Two rules proposing the same fix.
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, merged, nil
}
