// Package docstring provides read-only views over docstring literals.
//
// A Docstring borrows the source File, the located StringLiteral and the
// Definition it documents, and exposes named sub-strings of the literal
// (opener, closer, body, indentation) without copying. Every accessor
// recomputes its range from the literal's offsets and flags.
//
// The views assume the parser handed over a consistent literal. Ranges that
// fall outside the text or split a UTF-8 sequence are programming errors and
// panic instead of being truncated.
package docstring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// Docstring is a view over a docstring literal in a source file.
type Docstring struct {
	definition *pysrc.Definition
	literal    *pysrc.StringLiteral
	file       *pysrc.File
}

// New creates a view over literal, which must lie within file.
// It panics if the literal violates its range or flag invariants.
func New(definition *pysrc.Definition, literal *pysrc.StringLiteral, file *pysrc.File) *Docstring {
	if literal == nil || file == nil {
		panic("docstring: nil literal or file")
	}
	if err := literal.Validate(file.Len()); err != nil {
		panic(fmt.Sprintf("docstring: %s: %v", file.Path, err))
	}

	d := &Docstring{definition: definition, literal: literal, file: file}
	r := literal.Range
	d.checkBoundary(r.Start)
	d.checkBoundary(r.End)
	d.checkDelimiters()
	return d
}

// FromDefinition creates a view over the definition's docstring.
// Returns nil if the definition has no docstring.
func FromDefinition(definition *pysrc.Definition, file *pysrc.File) *Docstring {
	if definition == nil || !definition.HasDocstring() {
		return nil
	}
	return New(definition, definition.Docstring, file)
}

// Definition returns the definition the docstring belongs to.
func (d *Docstring) Definition() *pysrc.Definition {
	return d.definition
}

// Literal returns the underlying string literal.
func (d *Docstring) Literal() *pysrc.StringLiteral {
	return d.literal
}

// File returns the source file the docstring was defined in.
func (d *Docstring) File() *pysrc.File {
	return d.file
}

func (d *Docstring) flags() pysrc.StringFlags {
	return d.literal.Flags
}

// Range returns the byte range of the whole literal.
func (d *Docstring) Range() pysrc.TextRange {
	return d.literal.Range
}

// Start returns the offset of the literal's first byte.
func (d *Docstring) Start() int {
	return d.literal.Range.Start
}

// End returns the offset just past the literal's last byte.
func (d *Docstring) End() int {
	return d.literal.Range.End
}

// Contents returns the docstring including its prefix and quotes.
func (d *Docstring) Contents() string {
	return d.slice(d.Start(), d.End())
}

// Body returns the docstring excluding its prefix and quotes.
func (d *Docstring) Body() Body {
	return Body{docstring: d}
}

// LineStart returns the offset of the start of the docstring's opening line.
func (d *Docstring) LineStart() int {
	return d.file.LineStart(d.Start())
}

// ComputeIndentation returns the source between the start of the opening line
// and the opening quotes.
//
// This is whatever precedes the literal on its line. It is usually whitespace,
// but a docstring following `def f(): ` or a semicolon returns that text too.
func (d *Docstring) ComputeIndentation() string {
	return d.slice(d.LineStart(), d.Start())
}

// QuoteStyle returns the quote character the literal uses.
func (d *Docstring) QuoteStyle() pysrc.Quote {
	return d.flags().Quote
}

// IsRawString reports whether the literal has an r or R prefix.
func (d *Docstring) IsRawString() bool {
	return d.flags().Prefix.IsRaw()
}

// IsUString reports whether the literal has a u or U prefix.
func (d *Docstring) IsUString() bool {
	return d.flags().Prefix.IsUnicode()
}

// IsTripleQuoted reports whether the literal uses a three-quote run.
func (d *Docstring) IsTripleQuoted() bool {
	return d.flags().TripleQuoted
}

// PrefixStr returns the prefix as written in the source.
// Unlike the canonical prefix text, the casing is preserved (e.g. "U").
func (d *Docstring) PrefixStr() string {
	return d.slice(d.Start(), d.Start()+d.flags().PrefixLen())
}

// Opener returns the prefix, if any, and the opening quotes.
func (d *Docstring) Opener() string {
	return d.slice(d.Start(), d.Start()+d.flags().OpenerLen())
}

// Closer returns the closing quotes.
func (d *Docstring) Closer() string {
	return d.slice(d.End()-d.flags().CloserLen(), d.End())
}

// String returns the full literal text.
func (d *Docstring) String() string {
	return d.Contents()
}

// slice returns file text in [start, end), panicking on out-of-contract ranges.
func (d *Docstring) slice(start, end int) string {
	text := d.file.Text
	if start < 0 || start > end || end > len(text) {
		panic(fmt.Sprintf("docstring: range %d..%d out of bounds for %d bytes in %q",
			start, end, len(text), d.file.Path))
	}
	return text[start:end]
}

// checkBoundary panics if offset splits a UTF-8 sequence.
func (d *Docstring) checkBoundary(offset int) {
	text := d.file.Text
	if offset < len(text) && !utf8.RuneStart(text[offset]) {
		panic(fmt.Sprintf("docstring: offset %d is not on a UTF-8 boundary in %q", offset, d.file.Path))
	}
}

// checkDelimiters panics if the text at either end of the literal is not the
// prefix and quotes its flags describe.
func (d *Docstring) checkDelimiters() {
	flags := d.flags()
	quotes := flags.QuoteStr()
	opener, closer := d.Opener(), d.Closer()
	if !strings.EqualFold(opener, flags.Prefix.String()+quotes) || closer != quotes {
		panic(fmt.Sprintf("docstring: delimiters %q...%q disagree with flags (prefix %q, quotes %q) in %q",
			opener, closer, flags.Prefix, quotes, d.file.Path))
	}
}
