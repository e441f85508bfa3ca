// Package fix provides byte-offset text edits, their validation and
// application, and unified diffs of the result.
package fix

import "fmt"

// TextEdit replaces the bytes [StartOffset, EndOffset) of a file with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replacement returns an edit replacing [start, end) with text.
func Replacement(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Insertion returns an edit inserting text at offset.
func Insertion(offset int, text string) TextEdit {
	return TextEdit{StartOffset: offset, EndOffset: offset, NewText: text}
}

// Deletion returns an edit removing [start, end).
func Deletion(start, end int) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end}
}

// IsInsertion reports whether the edit replaces nothing.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// IsDeletion reports whether the edit removes text without replacing it.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// Delta returns the change in file length the edit causes.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}

// String renders the edit for debugging, e.g. `[4:7]->"abc"`.
func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]->%q", e.StartOffset, e.EndOffset, e.NewText)
}
