// Package pysrc provides the immutable source model shared by the parser,
// the docstring views and the lint rules:
// - File: the source text of one Python file with a lazily built line index
// - TextRange: half-open byte ranges into that text
// - StringLiteral and StringFlags: a located string literal and how it was written
// - Definition: the module, class or function a docstring belongs to
package pysrc

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// File is an immutable view of a Python source file at a specific time.
//
// Text must not be modified once the File is created; every range handed out
// by the parser, and every docstring view built on top of it, borrows from it.
type File struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Text is the full file content, assumed to be UTF-8.
	Text string

	// Definitions lists the module, classes and functions in source order.
	// The module definition, when present, is always first.
	Definitions []*Definition

	// HasSyntaxErrors is set by the parser when it had to recover from errors.
	HasSyntaxErrors bool

	once sync.Once
	// lineStarts holds the offset of the first byte of every line. It always
	// starts with 0 and has one entry after each '\n'.
	lineStarts []int
}

// NewFile creates a File for the given path and content.
// The line index is built on first use.
func NewFile(path, text string) *File {
	return &File{Path: path, Text: text}
}

// Len returns the length of the text in bytes.
func (f *File) Len() int {
	return len(f.Text)
}

// lines returns the line-start index, computing it on first use.
func (f *File) lines() []int {
	f.once.Do(func() {
		starts := make([]int, 1, strings.Count(f.Text, "\n")+1)
		for idx := 0; idx < len(f.Text); idx++ {
			if f.Text[idx] == '\n' {
				starts = append(starts, idx+1)
			}
		}
		f.lineStarts = starts
	})
	return f.lineStarts
}

// LineCount returns the number of lines in the file.
// A trailing newline starts a final, empty line.
func (f *File) LineCount() int {
	return len(f.lines())
}

// lineIndex returns the 0-based index of the line containing offset.
func (f *File) lineIndex(offset int) int {
	idx, exact := slices.BinarySearch(f.lines(), offset)
	if !exact {
		idx--
	}
	return idx
}

// LineStart returns the byte offset of the start of the line containing offset.
//
// Offset may equal Len(), which addresses the position just past the last byte.
// Any other out-of-range offset is a caller bug and panics.
//
// This operation is O(log n).
func (f *File) LineStart(offset int) int {
	if offset < 0 || offset > len(f.Text) {
		panic(fmt.Sprintf("pysrc: offset %d out of range [0, %d] in %q", offset, len(f.Text), f.Path))
	}
	return f.lines()[f.lineIndex(offset)]
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(f.Text) {
		return 0, 0
	}

	idx := f.lineIndex(offset)
	return idx + 1, offset - f.lines()[idx] + 1
}

// LineRange returns the byte range of a 1-based line, excluding its line ending.
// Returns false if the line number is out of range.
func (f *File) LineRange(line int) (TextRange, bool) {
	starts := f.lines()
	if line < 1 || line > len(starts) {
		return TextRange{}, false
	}

	start := starts[line-1]
	end := len(f.Text)
	if line < len(starts) {
		end = starts[line] - 1
	}
	if end > start && f.Text[end-1] == '\r' {
		end--
	}
	return TextRange{Start: start, End: end}, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns "" if the line number is out of range.
func (f *File) LineContent(line int) string {
	r, ok := f.LineRange(line)
	if !ok {
		return ""
	}
	return f.Text[r.Start:r.End]
}

// Slice returns the text covered by r.
// It panics if r does not lie within the file.
func (f *File) Slice(r TextRange) string {
	if r.Start < 0 || r.Start > r.End || r.End > len(f.Text) {
		panic(fmt.Sprintf("pysrc: range %s out of bounds for %d bytes in %q", r, len(f.Text), f.Path))
	}
	return f.Text[r.Start:r.End]
}
