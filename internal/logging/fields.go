package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldConvention = "convention"
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"
	FieldFormat     = "format"

	// Parse and lint fields.
	FieldDefinitions = "definitions"
	FieldDocstrings  = "docstrings"
	FieldRule        = "rule"
	FieldPasses      = "passes"
	FieldDuration    = "duration"

	// Rule listing fields.
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
	FieldAliases     = "aliases"

	// Config file fields.
	FieldInput  = "input"
	FieldOutput = "output"
	FieldPack   = "pack"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"

	// Watch fields.
	FieldEvent   = "event"
	FieldChanged = "changed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
