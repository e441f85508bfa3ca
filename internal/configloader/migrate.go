package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/config"
	"github.com/yaklabco/gopydoclint/pkg/lint"
)

// MigrationResult contains the result of converting a pydocstyle config.
type MigrationResult struct {
	// Config is the converted gopydoclint configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original pydocstyle config.
	SourcePath string
}

// ConvertPydocstyleConfig converts the pydocstyle settings in path (a
// pyproject.toml, setup.cfg, tox.ini or .pydocstyle file) to gopydoclint
// configuration.
//
// pydocstyle treats select, ignore and convention as alternatives; the
// first one present wins, in that order. add-select and add-ignore then
// adjust the result. Codes match rules by prefix, so "D2" covers D200
// through D299.
func ConvertPydocstyleConfig(path string) (*MigrationResult, error) {
	settings, ok, err := readPydocstyleSettings(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no pydocstyle settings found in %s", path)
	}

	result := &MigrationResult{SourcePath: path}
	cfg := config.NewConfig()
	ids := lint.DefaultRegistry.IDs()

	for _, key := range settings.Unsupported {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("option %q has no gopydoclint equivalent; skipped", key))
	}

	switch {
	case settings.Select != "":
		selected := matchCodes(ids, settings.Select, result)
		for _, id := range ids {
			setEnabled(cfg, id, slices.Contains(selected, id))
		}
		if settings.Convention != "" || settings.Ignore != "" {
			result.Warnings = append(result.Warnings,
				"select overrides ignore and convention; they were not migrated")
		}
	case settings.Ignore != "":
		for _, id := range matchCodes(ids, settings.Ignore, result) {
			setEnabled(cfg, id, false)
		}
		if settings.Convention != "" {
			result.Warnings = append(result.Warnings,
				"ignore overrides convention; it was not migrated")
		}
	case settings.Convention != "":
		convention := config.Convention(strings.ToLower(settings.Convention))
		if convention.IsValid() {
			cfg.Convention = convention
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown convention %q; skipped", settings.Convention))
		}
	}

	for _, id := range matchCodes(ids, settings.AddSelect, result) {
		setEnabled(cfg, id, true)
	}
	for _, id := range matchCodes(ids, settings.AddIgnore, result) {
		setEnabled(cfg, id, false)
	}

	result.Config = cfg
	return result, nil
}

// matchCodes expands a comma-separated code list into rule IDs. A code
// that matches nothing is reported as a warning once.
func matchCodes(ids []string, codes string, result *MigrationResult) []string {
	var matched []string
	for _, code := range strings.Split(codes, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}

		found := false
		for _, id := range ids {
			if codeMatches(code, id) {
				found = true
				if !slices.Contains(matched, id) {
					matched = append(matched, id)
				}
			}
		}
		if !found {
			warning := fmt.Sprintf("code %s has no gopydoclint rule; skipped", code)
			if !slices.Contains(result.Warnings, warning) {
				result.Warnings = append(result.Warnings, warning)
			}
		}
	}
	slices.Sort(matched)
	return matched
}

// codeMatches reports whether code selects id: either exactly, or as a
// prefix followed only by digits.
func codeMatches(code, id string) bool {
	rest, ok := strings.CutPrefix(id, code)
	if !ok {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func setEnabled(cfg *config.Config, id string, enabled bool) {
	ruleCfg := cfg.Rules[id]
	ruleCfg.Enabled = &enabled
	cfg.Rules[id] = ruleCfg
}
