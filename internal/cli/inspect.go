package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopydoclint/internal/ui/pretty"
	"github.com/yaklabco/gopydoclint/pkg/docstring"
	"github.com/yaklabco/gopydoclint/pkg/fsutil"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/parser/treesitter"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// inspectedDocstring is the JSON form of one docstring view.
type inspectedDocstring struct {
	Definition  string       `json:"definition"`
	Kind        string       `json:"kind"`
	Line        int          `json:"line"`
	Column      int          `json:"column"`
	Start       int          `json:"start"`
	End         int          `json:"end"`
	Prefix      string       `json:"prefix"`
	Opener      string       `json:"opener"`
	Closer      string       `json:"closer"`
	Quote       string       `json:"quote"`
	Triple      bool         `json:"triple_quoted"`
	Raw         bool         `json:"raw"`
	Unicode     bool         `json:"unicode"`
	Indentation string       `json:"indentation"`
	Body        inspectedBody `json:"body"`
}

type inspectedBody struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Lines int    `json:"lines"`
}

// inspectedFile is the JSON form of an inspected file.
type inspectedFile struct {
	Path            string               `json:"path"`
	HasSyntaxErrors bool                 `json:"has_syntax_errors"`
	Definitions     int                  `json:"definitions"`
	Docstrings      []inspectedDocstring `json:"docstrings"`
}

func newInspectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the docstrings found in a Python file",
		Long: `Parse a Python file and print every docstring the linter sees: the
definition it belongs to, its opener and closer, quote style, prefix flags,
indentation and body. Useful when a rule reports something unexpected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, format)
			}

			file, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			inspected := inspectFile(file)

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), inspected)
			}

			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = pretty.ColorAuto
			}
			out := cmd.OutOrStdout()
			writeInspection(out, pretty.NewStyles(pretty.IsColorEnabled(colorMode, out)), inspected)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json")

	return cmd
}

func parseFile(cmd *cobra.Command, path string) (*pysrc.File, error) {
	content, _, err := fsutil.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file, err := treesitter.New().Parse(cmd.Context(), path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lint.ErrParseFailure, err)
	}
	return file, nil
}

func inspectFile(file *pysrc.File) inspectedFile {
	docstrings := lint.CollectDocstrings(file)
	result := inspectedFile{
		Path:            file.Path,
		HasSyntaxErrors: file.HasSyntaxErrors,
		Definitions:     len(file.Definitions),
		Docstrings:      make([]inspectedDocstring, 0, len(docstrings)),
	}
	for _, ds := range docstrings {
		result.Docstrings = append(result.Docstrings, inspectDocstring(ds))
	}
	return result
}

func inspectDocstring(ds *docstring.Docstring) inspectedDocstring {
	line, col := ds.File().LineAt(ds.Start())
	body := ds.Body()
	bodyRange := body.Range()

	name := pysrc.ModuleName
	kind := string(pysrc.KindModule)
	if def := ds.Definition(); def != nil {
		name = def.QualifiedName()
		kind = string(def.Kind)
	}

	return inspectedDocstring{
		Definition:  name,
		Kind:        kind,
		Line:        line,
		Column:      col,
		Start:       ds.Start(),
		End:         ds.End(),
		Prefix:      ds.PrefixStr(),
		Opener:      ds.Opener(),
		Closer:      ds.Closer(),
		Quote:       ds.QuoteStyle().String(),
		Triple:      ds.IsTripleQuoted(),
		Raw:         ds.IsRawString(),
		Unicode:     ds.IsUString(),
		Indentation: ds.ComputeIndentation(),
		Body: inspectedBody{
			Text:  body.String(),
			Start: bodyRange.Start,
			End:   bodyRange.End,
			Lines: body.LineCount(),
		},
	}
}

func writeInspection(out io.Writer, styles *pretty.Styles, file inspectedFile) {
	fmt.Fprintf(out, "%s  %s\n", styles.FilePath.Render(file.Path),
		styles.Dim.Render(fmt.Sprintf("(%d definitions, %d docstrings)", file.Definitions, len(file.Docstrings))))
	if file.HasSyntaxErrors {
		fmt.Fprintln(out, styles.Warning.Render("  file has syntax errors; results may be incomplete"))
	}

	for _, ds := range file.Docstrings {
		fmt.Fprintf(out, "\n  %s %s %s\n",
			styles.Location.Render(fmt.Sprintf("%d:%d", ds.Line, ds.Column)),
			styles.Dim.Render(ds.Kind),
			styles.Definition.Render(ds.Definition))
		field := func(label, value string) {
			fmt.Fprintf(out, "    %-12s %s\n", label, value)
		}
		field("range", fmt.Sprintf("%d..%d", ds.Start, ds.End))
		field("opener", fmt.Sprintf("%q", ds.Opener))
		field("closer", fmt.Sprintf("%q", ds.Closer))
		field("quote", quoteDescription(ds))
		field("indentation", fmt.Sprintf("%q", ds.Indentation))
		field("body", fmt.Sprintf("%q", ds.Body.Text))
		field("body range", fmt.Sprintf("%d..%d (%d lines)", ds.Body.Start, ds.Body.End, ds.Body.Lines))
	}
}

func quoteDescription(ds inspectedDocstring) string {
	desc := "single"
	if ds.Quote == `"` {
		desc = "double"
	}
	if ds.Triple {
		desc += ", triple"
	}
	if ds.Raw {
		desc += ", raw"
	}
	if ds.Unicode {
		desc += ", unicode"
	}
	return desc
}
