package langdetect_test

import (
	"testing"

	"github.com/yaklabco/gopydoclint/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang sh", "#!/bin/sh\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"doctest session", ">>> add(1, 2)\n3\n", "pycon"},
		{"indented doctest", "    >>> import os\n", "pycon"},
		{"shell session", "$ pip install gopydoclint\n", "console"},
		{"python function", "def foo():\n    pass\n", "python"},
		{"python import", "from pathlib import Path\nPath('.')\n", "python"},
		{"python main guard", "if __name__ == '__main__':\n    run()\n", "python"},
		{"json object", `{"key": "value", "number": 123}`, "json"},
		{"json array", `["a", "b"]`, "json"},
		{"sql query", "SELECT * FROM users WHERE id = 1;", "sql"},
		{"toml table", "[tool.gopydoclint]\nconvention = \"google\"\n", "toml"},
		{"yaml mapping", "key: value\nother: 123\nlist:\n  - item1\n  - item2", "yaml"},
		{"plain text fallback", "just some text without any code patterns", "text"},
		{"empty content", "", "text"},
		{"whitespace only", "  \n\t\n", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Detect([]byte(tt.content)); got != tt.expected {
				t.Errorf("Detect() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	if got := langdetect.Detect(content); got != "bash" {
		t.Errorf("Detect() = %q, want bash", got)
	}
}

func TestIsPythonScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"env python3", "#!/usr/bin/env python3\nprint(1)\n", true},
		{"absolute python", "#!/usr/bin/python\n", true},
		{"bash", "#!/bin/bash\necho hi\n", false},
		{"no shebang", "print(1)\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.IsPythonScript([]byte(tt.content)); got != tt.want {
				t.Errorf("IsPythonScript() = %v, want %v", got, tt.want)
			}
		})
	}
}
