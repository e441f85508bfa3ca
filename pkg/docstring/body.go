package docstring

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// Body is the text strictly between a docstring's quotes, excluding the prefix.
//
// Body is a small value that behaves like a read-only string: every method
// delegates to String, which slices the source again on each call.
type Body struct {
	docstring *Docstring
}

// Range returns the content range of the literal.
func (b Body) Range() pysrc.TextRange {
	return b.docstring.literal.ContentRange()
}

// String returns the body text.
func (b Body) String() string {
	r := b.Range()
	return b.docstring.slice(r.Start, r.End)
}

// GoString renders the body with its range, for debugging.
func (b Body) GoString() string {
	return fmt.Sprintf("DocstringBody{text: %q, range: %s}", b.String(), b.Range())
}

// Format writes the debug form for %#v and %+v and the body text otherwise.
func (b Body) Format(f fmt.State, verb rune) {
	if verb == 'v' && (f.Flag('#') || f.Flag('+')) {
		_, _ = fmt.Fprint(f, b.GoString())
		return
	}
	_, _ = fmt.Fprintf(f, fmt.FormatString(f, verb), b.String())
}

// Docstring returns the view the body belongs to.
func (b Body) Docstring() *Docstring {
	return b.docstring
}

// Len returns the length of the body in bytes.
func (b Body) Len() int {
	return b.Range().Len()
}

// Slice returns body[i:j], with i and j relative to the start of the body.
func (b Body) Slice(i, j int) string {
	return b.String()[i:j]
}

// ByteAt returns the byte at body-relative index i.
func (b Body) ByteAt(i int) byte {
	return b.String()[i]
}

// Runes iterates over the body's runes, yielding body-relative byte offsets.
func (b Body) Runes() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		text := b.String()
		for idx, r := range text {
			if !yield(idx, r) {
				return
			}
		}
	}
}

// RuneCount returns the number of runes in the body.
func (b Body) RuneCount() int {
	return utf8.RuneCountInString(b.String())
}

// Lines iterates over the body's lines without their line endings.
// Each line is yielded with the absolute offset of its first byte in the file.
// A body ending in a newline yields a final empty line.
func (b Body) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		text := b.String()
		offset := b.Range().Start
		for {
			line, rest, found := strings.Cut(text, "\n")
			if !yield(offset, strings.TrimSuffix(line, "\r")) {
				return
			}
			if !found {
				return
			}
			offset += len(line) + 1
			text = rest
		}
	}
}

// LineCount returns the number of lines Lines yields.
func (b Body) LineCount() int {
	return strings.Count(b.String(), "\n") + 1
}

// Equal reports whether the body text equals s.
func (b Body) Equal(s string) bool {
	return b.String() == s
}

// Compare compares the body text with s lexicographically.
func (b Body) Compare(s string) int {
	return strings.Compare(b.String(), s)
}

// HasPrefix reports whether the body begins with prefix.
func (b Body) HasPrefix(prefix string) bool {
	return strings.HasPrefix(b.String(), prefix)
}

// HasSuffix reports whether the body ends with suffix.
func (b Body) HasSuffix(suffix string) bool {
	return strings.HasSuffix(b.String(), suffix)
}

// Contains reports whether substr is within the body.
func (b Body) Contains(substr string) bool {
	return strings.Contains(b.String(), substr)
}

// TrimSpace returns the body with leading and trailing whitespace removed.
func (b Body) TrimSpace() string {
	return strings.TrimSpace(b.String())
}

// IsBlank reports whether the body is empty or only whitespace.
func (b Body) IsBlank() bool {
	return b.TrimSpace() == ""
}
