package reporter

import (
	"fmt"

	"github.com/yaklabco/gopydoclint/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = Format(config.FormatText)
	FormatJSON    Format = Format(config.FormatJSON)
	FormatSARIF   Format = Format(config.FormatSARIF)
	FormatDiff    Format = Format(config.FormatDiff)
	FormatSummary Format = Format(config.FormatSummary)
)

// ParseFormat parses a format string. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if format := Format(name); format.IsValid() {
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif, diff, summary", name)
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}
