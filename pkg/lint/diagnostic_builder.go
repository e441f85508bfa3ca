package lint

import (
	"github.com/yaklabco/gopydoclint/pkg/fix"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic covering the given range of file.
func NewDiagnostic(ruleID string, file *pysrc.File, ranged pysrc.Ranged, message string) *DiagnosticBuilder {
	var filePath string
	var pos Position

	if file != nil {
		filePath = file.Path
		if ranged != nil {
			pos = PositionOf(file, ranged.Range())
		}
	}

	return NewDiagnosticAt(ruleID, filePath, pos, message)
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(ruleID string, filePath string, pos Position, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// PositionOf converts a byte range of file to line and column numbers.
func PositionOf(file *pysrc.File, r pysrc.TextRange) Position {
	startLine, startCol := file.LineAt(r.Start)
	endLine, endCol := file.LineAt(r.End)
	return Position{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// WithRegistry looks up the rule name in reg.
func (b *DiagnosticBuilder) WithRegistry(reg *Registry) *DiagnosticBuilder {
	if reg != nil {
		if rule, ok := reg.GetByID(b.diag.RuleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithDefinition records the documented definition.
func (b *DiagnosticBuilder) WithDefinition(def *pysrc.Definition) *DiagnosticBuilder {
	if def != nil {
		b.diag.Definition = def.QualifiedName()
	}
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
