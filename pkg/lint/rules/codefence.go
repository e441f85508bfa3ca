package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/langdetect"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/parser/goldmark"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// CodeFenceLanguageRule flags fenced code blocks in docstrings that do not
// name a language.
type CodeFenceLanguageRule struct {
	lint.BaseRule
}

// NewCodeFenceLanguageRule creates a new docstring-code-fence-language rule.
func NewCodeFenceLanguageRule() *CodeFenceLanguageRule {
	return &CodeFenceLanguageRule{
		BaseRule: lint.NewOptInRule(
			"DOC100",
			"docstring-code-fence-language",
			"Fenced code blocks in docstrings should specify a language",
			[]string{"markdown", "code"},
			true,
		),
	}
}

// Apply parses each docstring body as Markdown and checks its code fences.
//
// Options:
//   - flavor: "commonmark" (default) or "gfm"
//   - fix_detected: insert the detected language when fixing (default true)
func (r *CodeFenceLanguageRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	md := goldmark.New(ctx.OptionString("flavor", goldmark.FlavorCommonMark))
	fixDetected := ctx.OptionBool("fix_detected", true)

	var diags []lint.Diagnostic

	for _, ds := range ctx.Docstrings() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if !strings.Contains(ds.Body().String(), "```") && !strings.Contains(ds.Body().String(), "~~~") {
			continue
		}

		doc := dedent(bodyLines(ds))
		fences, err := md.Fences(ctx.Ctx, doc.text)
		if err != nil {
			return diags, fmt.Errorf("docstring at %s: %w", ds.Range(), err)
		}

		for _, fence := range fences {
			if fence.HasLanguage() {
				continue
			}

			lang := langdetect.Detect(fence.Code)
			suggestion := "Add a language after the opening fence"
			if lang != langdetect.LangText {
				suggestion = fmt.Sprintf("Add a language, e.g. %s%s", markerOr(fence.Marker), lang)
			}

			target := ds.Range()
			if fence.Opener >= 0 {
				target = pysrc.NewTextRange(doc.absolute(fence.Opener), doc.absolute(fence.OpenerEnd))
			}

			builder := ctx.Diagnostic(r.ID(), ds, target,
				"Fenced code block has no language").
				WithSuggestion(suggestion)

			if fixDetected && fence.Opener >= 0 && fence.Marker != "" && lang != langdetect.LangText {
				line := doc.text[fence.Opener:fence.OpenerEnd]
				markerEnd := fence.Opener + len(line) - len(strings.TrimLeft(string(line), " ")) + len(fence.Marker)
				builder.WithEdit(fix.Insertion(doc.absolute(markerEnd), lang))
			}

			diags = append(diags, builder.Build())
		}
	}

	return diags, nil
}

func markerOr(marker string) string {
	if marker == "" {
		return "```"
	}
	return marker
}

// dedentedBody is a docstring body with its common indentation removed.
// Each line remembers the file offset its first kept byte came from.
type dedentedBody struct {
	text   []byte
	starts []int
	origin []int
}

// dedent strips leading whitespace from the first line and the smallest
// indentation of the remaining non-blank lines from the rest.
func dedent(lines []bodyLine) dedentedBody {
	indent := -1
	for _, line := range lines[min(1, len(lines)):] {
		if line.isBlank() {
			continue
		}
		if n := len(leadingSpace(line.text)); indent < 0 || n < indent {
			indent = n
		}
	}
	indent = max(indent, 0)

	var doc dedentedBody
	for i, line := range lines {
		var cut int
		switch {
		case i == 0:
			cut = len(leadingSpace(line.text))
		case line.isBlank():
			cut = len(line.text)
		default:
			cut = indent
		}

		doc.starts = append(doc.starts, len(doc.text))
		doc.origin = append(doc.origin, line.offset+cut)
		doc.text = append(doc.text, line.text[cut:]...)
		doc.text = append(doc.text, '\n')
	}

	return doc
}

// absolute maps an offset in the dedented text back to the file.
func (d dedentedBody) absolute(offset int) int {
	i := sort.Search(len(d.starts), func(i int) bool { return d.starts[i] > offset }) - 1
	i = max(i, 0)
	return d.origin[i] + offset - d.starts[i]
}
