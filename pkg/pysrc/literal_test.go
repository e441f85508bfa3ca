package pysrc_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

func TestParseStringFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		expected  pysrc.StringFlags
		opener    int
		closer    int
		wantError error
	}{
		{
			name:     "double quoted",
			text:     `"x"`,
			expected: pysrc.StringFlags{Quote: pysrc.QuoteDouble},
			opener:   1,
			closer:   1,
		},
		{
			name:     "triple single",
			text:     `'''Hi'''`,
			expected: pysrc.StringFlags{Quote: pysrc.QuoteSingle, TripleQuoted: true},
			opener:   3,
			closer:   3,
		},
		{
			name:     "raw",
			text:     `r'raw'`,
			expected: pysrc.StringFlags{Prefix: pysrc.PrefixRaw, Quote: pysrc.QuoteSingle},
			opener:   2,
			closer:   1,
		},
		{
			name:     "uppercase unicode triple double",
			text:     `U"""x"""`,
			expected: pysrc.StringFlags{Prefix: pysrc.PrefixUnicode, TripleQuoted: true},
			opener:   4,
			closer:   3,
		},
		{
			name:     "empty single",
			text:     `''`,
			expected: pysrc.StringFlags{Quote: pysrc.QuoteSingle},
			opener:   1,
			closer:   1,
		},
		{
			name:     "empty triple",
			text:     `""""""`,
			expected: pysrc.StringFlags{TripleQuoted: true},
			opener:   3,
			closer:   3,
		},
		{name: "bytes", text: `b"x"`, wantError: pysrc.ErrUnsupportedLiteral},
		{name: "f-string", text: `f"{x}"`, wantError: pysrc.ErrUnsupportedLiteral},
		{name: "raw bytes", text: `Rb"x"`, wantError: pysrc.ErrUnsupportedLiteral},
		{name: "unknown prefix", text: `q"x"`, wantError: pysrc.ErrMalformedLiteral},
		{name: "no quote", text: `abc`, wantError: pysrc.ErrMalformedLiteral},
		{name: "unterminated", text: `"""abc"`, wantError: pysrc.ErrMalformedLiteral},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			flags, err := pysrc.ParseStringFlags(testCase.text)
			if testCase.wantError != nil {
				if !errors.Is(err, testCase.wantError) {
					t.Fatalf("expected error %v, got %v", testCase.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if flags != testCase.expected {
				t.Errorf("flags = %+v, want %+v", flags, testCase.expected)
			}
			if flags.OpenerLen() != testCase.opener {
				t.Errorf("OpenerLen() = %d, want %d", flags.OpenerLen(), testCase.opener)
			}
			if flags.CloserLen() != testCase.closer {
				t.Errorf("CloserLen() = %d, want %d", flags.CloserLen(), testCase.closer)
			}
			if flags.PrefixLen() > flags.OpenerLen() {
				t.Errorf("PrefixLen() %d exceeds OpenerLen() %d", flags.PrefixLen(), flags.OpenerLen())
			}
		})
	}
}

func TestNewStringLiteral_ContentRange(t *testing.T) {
	t.Parallel()

	text := "x = 1\nr'''body'''\n"
	lit, err := pysrc.NewStringLiteral(text, pysrc.NewTextRange(6, 17))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := lit.ContentRange()
	if got := text[content.Start:content.End]; got != "body" {
		t.Errorf("content = %q, want %q", got, "body")
	}
	if err := lit.Validate(len(text)); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := lit.Validate(10); !errors.Is(err, pysrc.ErrMalformedLiteral) {
		t.Errorf("Validate(10) = %v, want ErrMalformedLiteral", err)
	}
}

func TestNewStringLiteral_OutOfBounds(t *testing.T) {
	t.Parallel()

	_, err := pysrc.NewStringLiteral(`"x"`, pysrc.TextRange{Start: 0, End: 5})
	if !errors.Is(err, pysrc.ErrMalformedLiteral) {
		t.Errorf("expected ErrMalformedLiteral, got %v", err)
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	if pysrc.QuoteSingle.Opposite() != pysrc.QuoteDouble {
		t.Error("Opposite of single should be double")
	}
	if pysrc.QuoteDouble.String() != `"` {
		t.Errorf("QuoteDouble.String() = %q", pysrc.QuoteDouble.String())
	}
	flags := pysrc.StringFlags{Quote: pysrc.QuoteSingle, TripleQuoted: true}
	if flags.QuoteStr() != "'''" {
		t.Errorf("QuoteStr() = %q", flags.QuoteStr())
	}
}
