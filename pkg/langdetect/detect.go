// Package langdetect identifies the language of code found in docstrings and
// of extensionless scripts. It uses go-enry for shebang and classifier based
// detection, with a few cheap patterns for what docstrings usually contain.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags returned by Detect.
const (
	LangPython  = "python"
	LangPycon   = "pycon"
	LangConsole = "console"
	LangBash    = "bash"
	LangJSON    = "json"
	LangYAML    = "yaml"
	LangTOML    = "toml"
	LangSQL     = "sql"
	LangText    = "text"
)

// enryPython is go-enry's name for the Python language.
const enryPython = "Python"

// classifierCandidates are the languages considered by the enry classifier.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Python", "Shell", "JSON", "YAML", "TOML", "SQL", "INI",
	"reStructuredText", "Markdown", "C", "JavaScript",
}

// Detect returns a fence tag for a code snippet.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsPythonScript reports whether content starts with a shebang naming a
// Python interpreter.
func IsPythonScript(content []byte) bool {
	lang, safe := enry.GetLanguageByShebang(content)
	return safe && lang == enryPython
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(trimmed []byte) string {
	lines := strings.Split(string(trimmed), "\n")
	first := strings.TrimSpace(lines[0])

	switch {
	case strings.HasPrefix(first, ">>> "):
		return LangPycon
	case strings.HasPrefix(first, "$ "):
		return LangConsole
	}

	if lang := detectJSON(trimmed); lang != "" {
		return lang
	}
	if lang := detectPython(string(trimmed)); lang != "" {
		return lang
	}
	if lang := detectSQL(first); lang != "" {
		return lang
	}
	if lang := detectTOML(lines); lang != "" {
		return lang
	}
	return detectYAML(lines)
}

// detectPython checks for Python statements.
func detectPython(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "def ") && strings.HasSuffix(line, ":"),
			strings.HasPrefix(line, "class ") && strings.HasSuffix(line, ":"),
			strings.HasPrefix(line, "from ") && strings.Contains(line, " import "),
			strings.HasPrefix(line, "import ") && !strings.ContainsAny(line, "(\"'{"):
			return LangPython
		}
	}
	if strings.Contains(text, "__name__") {
		return LangPython
	}
	return ""
}

// detectJSON checks for a JSON object or array.
func detectJSON(trimmed []byte) string {
	open, last := trimmed[0], trimmed[len(trimmed)-1]
	if (open == '{' && last == '}') || (open == '[' && last == ']') {
		if bytes.Contains(trimmed, []byte(`":`)) || bytes.Contains(trimmed, []byte(`",`)) {
			return LangJSON
		}
	}
	return ""
}

// detectSQL checks for a leading SQL keyword.
func detectSQL(first string) string {
	upper := strings.ToUpper(first)
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return LangSQL
		}
	}
	return ""
}

// detectTOML checks for a table header followed by key = value pairs.
func detectTOML(lines []string) string {
	var header, pairs bool
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			header = true
		case header && strings.Contains(line, " = "):
			pairs = true
		}
	}
	if header && pairs {
		return LangTOML
	}
	return ""
}

// detectYAML checks for at least two "key: value" or list item lines.
func detectYAML(lines []string) string {
	count := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "(){}") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	if count >= 2 {
		return LangYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return LangBash
	case "reStructuredText":
		return "rst"
	default:
		return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
	}
}
