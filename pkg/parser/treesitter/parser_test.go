package treesitter

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// docstringText returns the source text of def's docstring, or "" without one.
func docstringText(file *pysrc.File, def *pysrc.Definition) string {
	if def.Docstring == nil {
		return ""
	}
	return file.Slice(def.Docstring.Range)
}

func mustParse(t *testing.T, content string) *pysrc.File {
	t.Helper()

	file, err := New().Parse(context.Background(), "test.py", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return file
}

func TestParser_Parse_Definitions(t *testing.T) {
	t.Parallel()

	content := `"""Module docstring."""

import os


class Outer:
    '''Outer class.'''

    def method(self):
        r"""Method docstring."""
        def inner():
            "Inner."
        return inner

    @property
    def prop(self):
        return 1


@decorator
def top():
    u"""Top."""


if os.name == "nt":
    def windows_only():
        """Windows."""
`

	file := mustParse(t, content)

	type summary struct {
		Kind      pysrc.DefinitionKind
		Name      string
		Docstring string
	}

	got := make([]summary, 0, len(file.Definitions))
	for _, def := range file.Definitions {
		got = append(got, summary{
			Kind:      def.Kind,
			Name:      def.QualifiedName(),
			Docstring: docstringText(file, def),
		})
	}

	want := []summary{
		{pysrc.KindModule, "<module>", `"""Module docstring."""`},
		{pysrc.KindClass, "Outer", `'''Outer class.'''`},
		{pysrc.KindMethod, "Outer.method", `r"""Method docstring."""`},
		{pysrc.KindFunction, "Outer.method.inner", `"Inner."`},
		{pysrc.KindMethod, "Outer.prop", ""},
		{pysrc.KindFunction, "top", `u"""Top."""`},
		{pysrc.KindFunction, "windows_only", `"""Windows."""`},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}
	if file.HasSyntaxErrors {
		t.Error("HasSyntaxErrors = true for valid source")
	}
	if file.Definitions[0].Kind != pysrc.KindModule {
		t.Errorf("first definition = %s, want module", file.Definitions[0].Kind)
	}
}

func TestParser_Parse_Flags(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "def f():\n    r'''Raw.'''\n")

	def := file.Definitions[1]
	if def.Docstring == nil {
		t.Fatal("expected a docstring")
	}

	want := pysrc.StringFlags{Prefix: pysrc.PrefixRaw, Quote: pysrc.QuoteSingle, TripleQuoted: true}
	if def.Docstring.Flags != want {
		t.Errorf("Flags = %+v, want %+v", def.Docstring.Flags, want)
	}
	if def.Docstring.Range != pysrc.NewTextRange(13, 24) {
		t.Errorf("Range = %s, want 13..24", def.Docstring.Range)
	}
}

func TestParser_Parse_NotDocstrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"no body string", "def f():\n    pass\n"},
		{"string after statement", "def f():\n    x = 1\n    \"\"\"Late.\"\"\"\n"},
		{"implicit concatenation", "def f():\n    \"a\" \"b\"\n"},
		{"bytes literal", "def f():\n    b\"\"\"Bytes.\"\"\"\n"},
		{"f-string", "def f():\n    f\"\"\"{x}\"\"\"\n"},
		{"string in expression", "def f():\n    \"\"\"a\"\"\" + x\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			file := mustParse(t, testCase.content)
			if len(file.Definitions) != 2 {
				t.Fatalf("got %d definitions, want 2", len(file.Definitions))
			}
			if doc := file.Definitions[1].Docstring; doc != nil {
				t.Errorf("unexpected docstring %q", file.Slice(doc.Range))
			}
		})
	}
}

func TestParser_Parse_CommentBeforeDocstring(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "# header\n\"\"\"Module.\"\"\"\n\ndef f():\n    # note\n    \"\"\"Doc.\"\"\"\n")

	if got := docstringText(file, file.Definitions[0]); got != `"""Module."""` {
		t.Errorf("module docstring = %q", got)
	}
	if got := docstringText(file, file.Definitions[1]); got != `"""Doc."""` {
		t.Errorf("function docstring = %q", got)
	}
}

func TestParser_Parse_SameLineDocstring(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "class C: '''Doc.'''\n")

	if len(file.Definitions) != 2 {
		t.Fatalf("got %d definitions, want 2", len(file.Definitions))
	}
	if got := docstringText(file, file.Definitions[1]); got != "'''Doc.'''" {
		t.Errorf("docstring = %q", got)
	}
}

func TestParser_Parse_SyntaxError(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "def f(:\n    \"\"\"Doc.\"\"\"\n")

	if !file.HasSyntaxErrors {
		t.Error("HasSyntaxErrors = false for invalid source")
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "")

	if len(file.Definitions) != 1 || file.Definitions[0].Kind != pysrc.KindModule {
		t.Fatalf("expected only the module definition, got %d", len(file.Definitions))
	}
	if file.Definitions[0].Docstring != nil {
		t.Error("empty module has a docstring")
	}
}

func TestParser_Parse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, "test.py", []byte("x = 1\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParser_Parse_Concurrent(t *testing.T) {
	t.Parallel()

	parser := New()
	content := []byte("def f():\n    \"\"\"Doc.\"\"\"\n")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			file, err := parser.Parse(context.Background(), "test.py", content)
			if err != nil {
				errs <- err
				return
			}
			if len(file.Definitions) != 2 || file.Definitions[1].Docstring == nil {
				errs <- errors.New("missing function docstring")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
