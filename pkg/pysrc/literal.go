package pysrc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by ParseStringFlags.
var (
	// ErrUnsupportedLiteral indicates a bytes, format or template string,
	// none of which can act as a docstring.
	ErrUnsupportedLiteral = errors.New("unsupported string literal")

	// ErrMalformedLiteral indicates text that is not a complete string literal.
	ErrMalformedLiteral = errors.New("malformed string literal")
)

// StringPrefix is the prefix kind of a plain string literal.
type StringPrefix int

const (
	// PrefixNone is a literal without prefix.
	PrefixNone StringPrefix = iota
	// PrefixRaw is an r or R prefix.
	PrefixRaw
	// PrefixUnicode is a u or U prefix.
	PrefixUnicode
)

// TextLen returns the length of the prefix in source text.
func (p StringPrefix) TextLen() int {
	if p == PrefixNone {
		return 0
	}
	return 1
}

// IsRaw reports whether the prefix makes the literal a raw string.
func (p StringPrefix) IsRaw() bool {
	return p == PrefixRaw
}

// IsUnicode reports whether the prefix is the legacy unicode marker.
func (p StringPrefix) IsUnicode() bool {
	return p == PrefixUnicode
}

// String returns the canonical (lowercase) prefix text.
func (p StringPrefix) String() string {
	switch p {
	case PrefixRaw:
		return "r"
	case PrefixUnicode:
		return "u"
	default:
		return ""
	}
}

// Quote is the quote character a literal is delimited with.
type Quote int

const (
	// QuoteDouble is the " character.
	QuoteDouble Quote = iota
	// QuoteSingle is the ' character.
	QuoteSingle
)

// Char returns the quote character.
func (q Quote) Char() byte {
	if q == QuoteSingle {
		return '\''
	}
	return '"'
}

// Opposite returns the other quote style.
func (q Quote) Opposite() Quote {
	if q == QuoteSingle {
		return QuoteDouble
	}
	return QuoteSingle
}

// String returns the quote character as a string.
func (q Quote) String() string {
	return string(q.Char())
}

// StringFlags records how a string literal was written.
type StringFlags struct {
	Prefix       StringPrefix
	Quote        Quote
	TripleQuoted bool
}

// PrefixLen returns the length of the prefix.
func (f StringFlags) PrefixLen() int {
	return f.Prefix.TextLen()
}

// QuoteLen returns the length of one quote run: 3 for triple-quoted literals, else 1.
func (f StringFlags) QuoteLen() int {
	if f.TripleQuoted {
		return 3
	}
	return 1
}

// OpenerLen returns the length of the prefix plus the opening quote run.
func (f StringFlags) OpenerLen() int {
	return f.PrefixLen() + f.QuoteLen()
}

// CloserLen returns the length of the closing quote run.
func (f StringFlags) CloserLen() int {
	return f.QuoteLen()
}

// QuoteStr returns the quote run, e.g. `"""` or `'`.
func (f StringFlags) QuoteStr() string {
	return strings.Repeat(f.Quote.String(), f.QuoteLen())
}

// ParseStringFlags derives the flags of a string literal from its source text.
//
// Only prefixes that can appear on a docstring are accepted: none, r/R and u/U.
func ParseStringFlags(text string) (StringFlags, error) {
	var flags StringFlags

	prefixEnd := strings.IndexAny(text, `'"`)
	if prefixEnd < 0 {
		return flags, fmt.Errorf("%w: no opening quote in %q", ErrMalformedLiteral, abbreviate(text))
	}

	switch prefix := strings.ToLower(text[:prefixEnd]); prefix {
	case "":
		flags.Prefix = PrefixNone
	case "r":
		flags.Prefix = PrefixRaw
	case "u":
		flags.Prefix = PrefixUnicode
	case "b", "f", "t", "rb", "br", "fr", "rf", "tr", "rt":
		return flags, fmt.Errorf("%w: prefix %q", ErrUnsupportedLiteral, text[:prefixEnd])
	default:
		return flags, fmt.Errorf("%w: unknown prefix %q", ErrMalformedLiteral, text[:prefixEnd])
	}

	rest := text[prefixEnd:]
	if rest[0] == '\'' {
		flags.Quote = QuoteSingle
	}

	triple := strings.Repeat(rest[:1], 3)
	flags.TripleQuoted = len(rest) >= 6 && strings.HasPrefix(rest, triple)

	closer := flags.QuoteStr()
	if len(rest) < 2*len(closer) || !strings.HasSuffix(rest, closer) {
		return flags, fmt.Errorf("%w: unterminated literal %q", ErrMalformedLiteral, abbreviate(text))
	}

	return flags, nil
}

// abbreviate shortens text for error messages.
func abbreviate(text string) string {
	const maxLen = 40
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}

// StringLiteral is a located string literal: its byte range and flags.
type StringLiteral struct {
	// Range covers the whole literal, including prefix and quotes.
	Range TextRange

	// Flags describe how the literal was written.
	Flags StringFlags
}

// NewStringLiteral locates a literal at r within text and derives its flags.
func NewStringLiteral(text string, r TextRange) (*StringLiteral, error) {
	if r.Start < 0 || r.Start > r.End || r.End > len(text) {
		return nil, fmt.Errorf("%w: range %s outside %d bytes", ErrMalformedLiteral, r, len(text))
	}

	flags, err := ParseStringFlags(text[r.Start:r.End])
	if err != nil {
		return nil, err
	}

	return &StringLiteral{Range: r, Flags: flags}, nil
}

// ContentRange returns the range strictly between the quotes, excluding the prefix.
func (l *StringLiteral) ContentRange() TextRange {
	return NewTextRange(l.Range.Start+l.Flags.OpenerLen(), l.Range.End-l.Flags.CloserLen())
}

// Validate checks the literal's invariants against a text of textLen bytes.
func (l *StringLiteral) Validate(textLen int) error {
	r := l.Range
	switch {
	case r.Start < 0 || r.Start > r.End:
		return fmt.Errorf("%w: invalid range %s", ErrMalformedLiteral, r)
	case !NewTextRange(0, textLen).ContainsRange(r):
		return fmt.Errorf("%w: range %s exceeds %d bytes", ErrMalformedLiteral, r, textLen)
	case l.Flags.OpenerLen()+l.Flags.CloserLen() > r.Len():
		return fmt.Errorf("%w: opener %d + closer %d exceed literal length %d",
			ErrMalformedLiteral, l.Flags.OpenerLen(), l.Flags.CloserLen(), r.Len())
	}
	return nil
}
