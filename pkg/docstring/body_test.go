package docstring_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBody_StringOperations(t *testing.T) {
	t.Parallel()

	doc := newDocstring(t, "def f():\n    \"\"\"  Return x.  \"\"\"\n", `"""  Return x.  """`)
	body := doc.Body()

	if body.Len() != len("  Return x.  ") {
		t.Errorf("Len() = %d", body.Len())
	}
	if !body.Equal("  Return x.  ") {
		t.Errorf("Equal() = false for %q", body.String())
	}
	if body.Compare("  Return x.  ") != 0 || body.Compare("~") >= 0 {
		t.Error("Compare() does not order like the body text")
	}
	if !body.HasPrefix("  Ret") || !body.HasSuffix(".  ") {
		t.Error("HasPrefix/HasSuffix = false")
	}
	if !body.Contains("Return") || body.Contains("Yield") {
		t.Error("Contains() mismatch")
	}
	if got := body.TrimSpace(); got != "Return x." {
		t.Errorf("TrimSpace() = %q", got)
	}
	if body.IsBlank() {
		t.Error("IsBlank() = true for non-blank body")
	}
	if got := body.Slice(2, 8); got != "Return" {
		t.Errorf("Slice(2, 8) = %q", got)
	}
	if got := body.ByteAt(2); got != 'R' {
		t.Errorf("ByteAt(2) = %q", got)
	}
	if body.Docstring() != doc {
		t.Error("Docstring() does not return the owning view")
	}
}

func TestBody_Range(t *testing.T) {
	t.Parallel()

	source := "def f():\n    u'''Hi'''\n"
	doc := newDocstring(t, source, "u'''Hi'''")
	body := doc.Body()

	r := body.Range()
	if r.Start != doc.Start()+len(doc.Opener()) || r.End != doc.End()-len(doc.Closer()) {
		t.Errorf("Range() = %s, literal %s", r, doc.Range())
	}
	if got := source[r.Start:r.End]; got != body.String() {
		t.Errorf("source[Range()] = %q, body = %q", got, body.String())
	}
}

func TestBody_Blank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		literal string
	}{
		{"empty triple", "def f():\n    \"\"\"\"\"\"\n", `""""""`},
		{"empty single", "def f():\n    ''\n", `''`},
		{"whitespace only", "def f():\n    \"\"\"\n    \"\"\"\n", "\"\"\"\n    \"\"\""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			body := newDocstring(t, testCase.source, testCase.literal).Body()
			if !body.IsBlank() {
				t.Errorf("IsBlank() = false for %q", body.String())
			}
		})
	}
}

func TestBody_Lines(t *testing.T) {
	t.Parallel()

	source := "def f():\n    \"\"\"Summary.\n\n    More.\n    \"\"\"\n"
	doc := newDocstring(t, source, "\"\"\"Summary.\n\n    More.\n    \"\"\"")

	type line struct {
		Offset int
		Text   string
	}

	var got []line
	for offset, text := range doc.Body().Lines() {
		got = append(got, line{Offset: offset, Text: text})
	}

	want := []line{
		{16, "Summary."},
		{25, ""},
		{26, "    More."},
		{37, "    "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if doc.Body().LineCount() != len(want) {
		t.Errorf("LineCount() = %d, want %d", doc.Body().LineCount(), len(want))
	}

	for _, l := range got {
		if source[l.Offset:l.Offset+len(l.Text)] != l.Text {
			t.Errorf("line at %d does not match the source", l.Offset)
		}
	}
}

func TestBody_LinesCRLF(t *testing.T) {
	t.Parallel()

	doc := newDocstring(t, "'''a\r\nb'''", "'''a\r\nb'''")

	var got []string
	for _, text := range doc.Body().Lines() {
		got = append(got, text)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestBody_LinesStopsEarly(t *testing.T) {
	t.Parallel()

	doc := newDocstring(t, "'''a\nb\nc'''", "'''a\nb\nc'''")

	count := 0
	for range doc.Body().Lines() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iterated %d lines, want 2", count)
	}
}

func TestBody_Runes(t *testing.T) {
	t.Parallel()

	doc := newDocstring(t, `"é✓a"`, `"é✓a"`)
	body := doc.Body()

	var offsets []int
	var runes []rune
	for offset, r := range body.Runes() {
		offsets = append(offsets, offset)
		runes = append(runes, r)
	}

	if diff := cmp.Diff([]int{0, 2, 5}, offsets); diff != "" {
		t.Errorf("rune offsets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]rune{'é', '✓', 'a'}, runes); diff != "" {
		t.Errorf("runes mismatch (-want +got):\n%s", diff)
	}
	if body.RuneCount() != 3 {
		t.Errorf("RuneCount() = %d, want 3", body.RuneCount())
	}
}

func TestBody_Format(t *testing.T) {
	t.Parallel()

	doc := newDocstring(t, "def f():\n    '''Hi'''\n", "'''Hi'''")
	body := doc.Body()

	if got := fmt.Sprint(body); got != "Hi" {
		t.Errorf("Sprint(body) = %q, want %q", got, "Hi")
	}
	if got := fmt.Sprintf("%#v", body); got != `DocstringBody{text: "Hi", range: 16..18}` {
		t.Errorf("GoString = %q", got)
	}
	if got := fmt.Sprintf("%+v", body); got != `DocstringBody{text: "Hi", range: 16..18}` {
		t.Errorf("%%+v = %q", got)
	}
	if got := fmt.Sprintf("%q", body); got != `"Hi"` {
		t.Errorf("%%q = %q", got)
	}
	if got := fmt.Sprint(doc); got != "'''Hi'''" {
		t.Errorf("Sprint(doc) = %q", got)
	}
}
