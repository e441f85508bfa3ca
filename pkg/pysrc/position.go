package pysrc

import "fmt"

// TextRange represents a byte range in the source text.
type TextRange struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// NewTextRange creates a range from start to end.
// It panics if end is before start.
func NewTextRange(start, end int) TextRange {
	if start > end {
		panic(fmt.Sprintf("pysrc: invalid range %d..%d", start, end))
	}
	return TextRange{Start: start, End: end}
}

// Len returns the length of the range in bytes.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// Contains returns true if the given offset is within this range.
func (r TextRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if other lies entirely within r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// String renders the range as "start..end".
func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Ranged is implemented by anything that covers a byte range of a File.
type Ranged interface {
	Range() TextRange
}

// Range lets a TextRange be used wherever a Ranged is expected.
func (r TextRange) Range() TextRange {
	return r
}
