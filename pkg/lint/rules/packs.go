package rules

import "github.com/yaklabco/gopydoclint/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .gopydoclint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "core", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// CorePack returns the core pack with the rules most projects agree on.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Essential docstring hygiene: whitespace, quotes, empty docstrings",
		Rules: map[string]config.RuleConfig{
			"D206": enabled("warning"), // docstring-tab-indentation
			"D207": enabled("warning"), // docstring-under-indented
			"D210": enabled("warning"), // surrounding-whitespace
			"D300": enabled("warning"), // triple-single-quotes
			"D419": enabled("warning"), // empty-docstring
			"D200": enabled("info"),    // unnecessary-multiline-docstring
			"D400": enabled("info"),    // missing-trailing-period
		},
	}
}

// StrictPack returns every rule as an error, including the opt-in ones.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule enabled as an error, including Markdown fences",
		Rules: map[string]config.RuleConfig{
			"D200":   enabled("error"), // unnecessary-multiline-docstring
			"D206":   enabled("error"), // docstring-tab-indentation
			"D207":   enabled("error"), // docstring-under-indented
			"D210":   enabled("error"), // surrounding-whitespace
			"D300":   enabled("error"), // triple-single-quotes
			"D301":   enabled("error"), // escape-sequence-in-docstring
			"D400":   enabled("error"), // missing-trailing-period
			"D419":   enabled("error"), // empty-docstring
			"UP025":  enabled("error"), // unicode-kind-prefix
			"DOC100": enabled("error"), // docstring-code-fence-language
		},
	}
}

// RelaxedPack returns a pack with minimal noise for legacy codebases.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: only mechanical whitespace and quote rules, minimal noise",
		Rules: map[string]config.RuleConfig{
			"D206": enabled("info"), // docstring-tab-indentation
			"D210": enabled("info"), // surrounding-whitespace
			"D300": enabled("info"), // triple-single-quotes
			"D200": disabled(),      // unnecessary-multiline-docstring
			"D400": disabled(),      // missing-trailing-period
			"D301": disabled(),      // escape-sequence-in-docstring
		},
	}
}

// DocsPack returns rules tuned for projects that render docstrings as
// Markdown, such as mkdocstrings sites.
func DocsPack() Pack {
	return Pack{
		Name:        "docs",
		Description: "Docs pack: Markdown-rendered docstrings with fenced examples",
		Rules: map[string]config.RuleConfig{
			"D210":   enabled("warning"), // surrounding-whitespace
			"D400":   enabled("warning"), // missing-trailing-period
			"D419":   enabled("warning"), // empty-docstring
			"DOC100": enabled("warning"), // docstring-code-fence-language
			"D301":   enabled("info"),    // escape-sequence-in-docstring
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		CorePack(),
		StrictPack(),
		RelaxedPack(),
		DocsPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}

// disabled creates a RuleConfig that turns the rule off.
func disabled() config.RuleConfig {
	enabled := false
	return config.RuleConfig{Enabled: &enabled}
}
