package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gopydoclint/pkg/config"
)

const (
	pyprojectFile = "pyproject.toml"

	// pydocstyleSection is the ini section pydocstyle reads.
	pydocstyleSection = "pydocstyle"
)

// pyprojectDoc holds the parts of pyproject.toml the loader reads.
type pyprojectDoc struct {
	Tool struct {
		Gopydoclint map[string]any `toml:"gopydoclint"`
		Pydocstyle  map[string]any `toml:"pydocstyle"`
		Ruff        *ruffSection   `toml:"ruff"`
	} `toml:"tool"`
}

type ruffSection struct {
	Pydocstyle map[string]any `toml:"pydocstyle"`
	Lint       *struct {
		Pydocstyle map[string]any `toml:"pydocstyle"`
		Select     []string       `toml:"select"`
		Ignore     []string       `toml:"ignore"`
	} `toml:"lint"`
}

func readPyproject(path string) (*pyprojectDoc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var doc pyprojectDoc
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	return &doc, nil
}

// hasToolTable reports whether a pyproject.toml has a [tool.gopydoclint] table.
func hasToolTable(path string) bool {
	doc, err := readPyproject(path)
	return err == nil && doc.Tool.Gopydoclint != nil
}

// loadPyprojectConfig decodes the [tool.gopydoclint] table. The table is
// re-encoded as YAML so it decodes with the same field names as a
// .gopydoclint.yml file.
func loadPyprojectConfig(path string) (*config.Config, error) {
	doc, err := readPyproject(path)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{Rules: make(map[string]config.RuleConfig)}
	if doc.Tool.Gopydoclint == nil {
		return cfg, nil
	}

	content, err := yaml.Marshal(doc.Tool.Gopydoclint)
	if err != nil {
		return nil, fmt.Errorf("re-encode [tool.gopydoclint]: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("decode [tool.gopydoclint]: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	return cfg, nil
}

// pydocstyleSettings are the pydocstyle options the migration understands.
// Code lists are comma separated, as pydocstyle writes them.
type pydocstyleSettings struct {
	Convention string
	Select     string
	Ignore     string
	AddSelect  string
	AddIgnore  string

	// Unsupported collects option names with no gopydoclint equivalent.
	Unsupported []string
}

// supportedPydocstyleKeys maps option spellings to their canonical form.
//
//nolint:gochecknoglobals // Read-only lookup table.
var supportedPydocstyleKeys = map[string]string{
	"convention": "convention",
	"select":     "select",
	"ignore":     "ignore",
	"add-select": "add-select",
	"add_select": "add-select",
	"add-ignore": "add-ignore",
	"add_ignore": "add-ignore",
	// ruff spells the extension list this way.
	"extend-select": "add-select",
	"extend-ignore": "add-ignore",
}

func (s *pydocstyleSettings) set(key, value string) {
	switch supportedPydocstyleKeys[strings.ToLower(key)] {
	case "convention":
		s.Convention = value
	case "select":
		s.Select = value
	case "ignore":
		s.Ignore = value
	case "add-select":
		s.AddSelect = joinCodes(s.AddSelect, value)
	case "add-ignore":
		s.AddIgnore = joinCodes(s.AddIgnore, value)
	default:
		s.Unsupported = append(s.Unsupported, key)
	}
}

func joinCodes(existing, value string) string {
	if existing == "" {
		return value
	}
	if value == "" {
		return existing
	}
	return existing + "," + value
}

// readPydocstyleSettings reads pydocstyle options from path. ok is false
// when the file holds no pydocstyle settings.
func readPydocstyleSettings(path string) (*pydocstyleSettings, bool, error) {
	if filepath.Base(path) == pyprojectFile {
		return readPyprojectPydocstyle(path)
	}
	return readIniPydocstyle(path)
}

func readPyprojectPydocstyle(path string) (*pydocstyleSettings, bool, error) {
	doc, err := readPyproject(path)
	if err != nil {
		return nil, false, err
	}

	settings := &pydocstyleSettings{}
	found := false
	apply := func(table map[string]any) {
		if table == nil {
			return
		}
		found = true
		for key, value := range table {
			settings.set(key, tomlString(value))
		}
	}

	apply(doc.Tool.Pydocstyle)
	if ruff := doc.Tool.Ruff; ruff != nil {
		apply(ruff.Pydocstyle)
		if ruff.Lint != nil {
			apply(ruff.Lint.Pydocstyle)
			if codes := docstringCodes(ruff.Lint.Select); len(codes) > 0 {
				found = true
				settings.AddSelect = joinCodes(settings.AddSelect, strings.Join(codes, ","))
			}
			if codes := docstringCodes(ruff.Lint.Ignore); len(codes) > 0 {
				found = true
				settings.AddIgnore = joinCodes(settings.AddIgnore, strings.Join(codes, ","))
			}
		}
	}

	return settings, found, nil
}

// docstringCodes keeps the codes of a ruff select/ignore list that refer
// to docstring rules.
func docstringCodes(codes []string) []string {
	var out []string
	for _, code := range codes {
		if strings.HasPrefix(code, "D") && !strings.HasPrefix(code, "DTZ") && !strings.HasPrefix(code, "DJ") {
			out = append(out, code)
		}
	}
	return out
}

// tomlString renders a TOML value as a pydocstyle option string.
func tomlString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(typed)
	}
}

func readIniPydocstyle(path string) (*pydocstyleSettings, bool, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:                true,
		AllowPythonMultilineValues: true,
	}, path)
	if err != nil {
		return nil, false, fmt.Errorf("parse INI: %w", err)
	}

	section, err := file.GetSection(pydocstyleSection)
	if err != nil {
		return nil, false, nil
	}

	settings := &pydocstyleSettings{}
	for _, key := range section.Keys() {
		settings.set(key.Name(), strings.Join(strings.Fields(key.Value()), ""))
	}
	return settings, true, nil
}

// hasPydocstyleSettings reports whether path carries pydocstyle options.
func hasPydocstyleSettings(path string) bool {
	_, ok, err := readPydocstyleSettings(path)
	return err == nil && ok
}
