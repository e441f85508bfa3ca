package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
	"github.com/yaklabco/gopydoclint/pkg/pysrc"
	"github.com/yaklabco/gopydoclint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	toolName       = "gopydoclint"
	toolURI        = "https://github.com/yaklabco/gopydoclint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`

	OriginalURIBaseIDs map[string]SARIFArtifactLocation `json:"originalUriBaseIds,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (linter check).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []SARIFLogicalLocation `json:"logicalLocations,omitempty"`
}

// SARIFLogicalLocation names the Python definition a result belongs to.
type SARIFLogicalLocation struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Kind               string `json:"kind,omitempty"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI, relative to URIBaseID when set.
type SARIFArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFRegion describes the affected text region by line and column, or by
// byte offsets for fix replacements.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix represents a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        version,
			InformationURI: toolURI,
			Rules:          []SARIFRule{},
		}},
		Results: []SARIFResult{},
	}
	if r.opts.WorkingDir != "" {
		run.OriginalURIBaseIDs = map[string]SARIFArtifactLocation{
			srcRootID: {URI: "file://" + filepath.ToSlash(r.opts.WorkingDir) + "/"},
		}
	}

	if result != nil {
		infos := registeredRules()
		seen := make(map[string]bool)

		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			artifact := r.artifact(file.Path)

			for i := range file.Result.Diagnostics {
				diag := &file.Result.Diagnostics[i]
				if !seen[diag.RuleID] {
					seen[diag.RuleID] = true
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule(diag, infos))
				}
				run.Results = append(run.Results, sarifResult(diag, artifact, file.Result.File))
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// srcRootID is the uriBaseId results are relative to when a working
// directory is known.
const srcRootID = "SRCROOT"

func (r *SARIFReporter) artifact(path string) SARIFArtifactLocation {
	rel := displayPath(path, r.opts.WorkingDir)
	if rel == path {
		return SARIFArtifactLocation{URI: filepath.ToSlash(path)}
	}
	return SARIFArtifactLocation{URI: filepath.ToSlash(rel), URIBaseID: srcRootID}
}

// registeredRules maps rule IDs to the metadata of the registered rules.
func registeredRules() map[string]config.RuleInfo {
	infos := make(map[string]config.RuleInfo)
	if config.DefaultRuleInfoProvider == nil {
		return infos
	}
	for _, info := range config.DefaultRuleInfoProvider() {
		infos[info.ID] = info
	}
	return infos
}

func sarifRule(diag *lint.Diagnostic, infos map[string]config.RuleInfo) SARIFRule {
	rule := SARIFRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: SARIFMultiformatText{Text: diag.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(diag.Severity)},
	}
	if info, ok := infos[diag.RuleID]; ok {
		rule.ShortDescription.Text = info.Description
		if len(info.Tags) > 0 {
			rule.Properties = map[string]any{"tags": info.Tags}
		}
	}
	return rule
}

func sarifResult(diag *lint.Diagnostic, artifact SARIFArtifactLocation, file *pysrc.File) SARIFResult {
	location := SARIFLocation{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: artifact,
			Region: SARIFRegion{
				StartLine:   diag.StartLine,
				StartColumn: diag.StartColumn,
				EndLine:     diag.EndLine,
				EndColumn:   diag.EndColumn,
			},
		},
	}
	if diag.Definition != "" {
		location.LogicalLocations = []SARIFLogicalLocation{logicalLocation(diag.Definition)}
	}

	out := SARIFResult{
		RuleID:    diag.RuleID,
		Level:     severityToSARIFLevel(diag.Severity),
		Message:   SARIFMessage{Text: diag.Message},
		Locations: []SARIFLocation{location},
	}

	if diag.HasFix() {
		description := diag.Suggestion
		if description == "" {
			description = diag.Message
		}
		change := SARIFArtifactChange{ArtifactLocation: artifact}
		for _, edit := range diag.FixEdits {
			change.Replacements = append(change.Replacements, sarifReplacement(edit.StartOffset, edit.EndOffset, edit.NewText, file))
		}
		out.Fixes = []SARIFFix{{
			Description:     SARIFMessage{Text: description},
			ArtifactChanges: []SARIFArtifactChange{change},
		}}
	}

	return out
}

// sarifReplacement expresses an edit in byte offsets, adding line and
// column when the source is at hand.
func sarifReplacement(start, end int, text string, file *pysrc.File) SARIFReplacement {
	length := end - start
	region := SARIFRegion{ByteOffset: &start, ByteLength: &length}
	if file != nil {
		region.StartLine, region.StartColumn = file.LineAt(start)
		region.EndLine, region.EndColumn = file.LineAt(end)
	}

	replacement := SARIFReplacement{DeletedRegion: region}
	if text != "" {
		replacement.InsertedContent = &SARIFInsertedContent{Text: text}
	}
	return replacement
}

func logicalLocation(definition string) SARIFLogicalLocation {
	if definition == pysrc.ModuleName {
		return SARIFLogicalLocation{FullyQualifiedName: definition, Kind: "module"}
	}
	return SARIFLogicalLocation{FullyQualifiedName: definition, Kind: "member"}
}

// severityToSARIFLevel maps a severity to a SARIF result level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
