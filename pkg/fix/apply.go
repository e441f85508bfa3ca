package fix

import "bytes"

// ApplyEdits applies edits to content and returns the result.
//
// Edits must be sorted and non-overlapping, as returned by
// PrepareEditsFiltered. content is never modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	growth := 0
	for _, edit := range edits {
		growth += edit.Delta()
	}

	var out bytes.Buffer
	out.Grow(max(len(content)+growth, 0))

	cursor := 0
	for _, edit := range edits {
		out.Write(content[cursor:edit.StartOffset])
		out.WriteString(edit.NewText)
		cursor = edit.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
