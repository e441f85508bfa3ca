package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gopydoclint/pkg/config"
)

// envVarPrefix is the prefix for all gopydoclint environment variables.
const envVarPrefix = "GOPYDOCLINT_"

// envSetting is one supported environment variable.
type envSetting struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetting{
	"SEVERITY_DEFAULT": {"Default severity: error, warning, or info", func(cfg *config.Config, v string) error {
		cfg.SeverityDefault = v
		return nil
	}},
	"CONVENTION": {"Docstring convention: pep257, google, or numpy", func(cfg *config.Config, v string) error {
		cfg.Convention = config.Convention(v)
		return nil
	}},
	"FIX":     {"Enable auto-fix: true or false", boolSetting(func(cfg *config.Config, b bool) { cfg.Fix = b })},
	"DRY_RUN": {"Dry-run mode: true or false", boolSetting(func(cfg *config.Config, b bool) { cfg.DryRun = b })},
	"JOBS": {"Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = jobs
		return nil
	}},
	"FORMAT": {"Output format: text, json, sarif, diff, or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	"RULE_FORMAT": {"Rule identifiers in output: name, id, or combined", func(cfg *config.Config, v string) error {
		if !IsValidRuleFormat(config.RuleFormat(v)) {
			return fmt.Errorf("invalid rule format %q (expected name, id or combined)", v)
		}
		cfg.RuleFormat = config.RuleFormat(v)
		return nil
	}},
	"IGNORE": {"Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = splitList(v)
		return nil
	}},
	"EXTENSIONS": {"Comma-separated list of file extensions to lint", func(cfg *config.Config, v string) error {
		cfg.Extensions = splitList(v)
		return nil
	}},
	"INCLUDE_SCRIPTS": {"Lint extensionless Python scripts: true or false",
		boolSetting(func(cfg *config.Config, b bool) { cfg.IncludeScripts = &b })},
}

func boolSetting(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies GOPYDOCLINT_* environment variables to cfg.
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, setting := range envMappings {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := setting.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with a short
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, setting := range envMappings {
		vars[envVarPrefix+suffix] = setting.description
	}
	return vars
}
