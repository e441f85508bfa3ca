package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the system and user config directories.
const appName = "gopydoclint"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/gopydoclint/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/gopydoclint/config.yaml).
	User string

	// Project is the project-level config: a .gopydoclint.yml file, or a
	// pyproject.toml with a [tool.gopydoclint] table.
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// Pydocstyle is a file holding pydocstyle or ruff pydocstyle settings
	// that can be imported.
	Pydocstyle string
}

// projectConfigFiles are the YAML config names searched for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".gopydoclint.yml",
	".gopydoclint.yaml",
	"gopydoclint.yml",
	"gopydoclint.yaml",
}

// pydocstyleConfigFiles are the files pydocstyle reads its settings from.
//
//nolint:gochecknoglobals // Read-only lookup table.
var pydocstyleConfigFiles = []string{
	pyprojectFile,
	"setup.cfg",
	"tox.ini",
	".pydocstyle",
	".pydocstyle.ini",
	".pydocstylerc",
	".pydocstylerc.ini",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in the standard locations.
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		System: findSystemConfig(),
		User:   findUserConfig(),
	}

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig
	paths.Pydocstyle = FindPydocstyleConfig(workDir)

	return paths, nil
}

func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, appName))
	}
	return findConfigInDir(filepath.Join("/etc", appName))
}

// findUserConfig honours XDG_CONFIG_HOME, falling back to ~/.config.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return findConfigInDir(filepath.Join(configHome, appName))
}

func findConfigInDir(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config.
// In each directory the YAML files win over a pyproject.toml, which only
// counts when it has a [tool.gopydoclint] table. The search stops at a VCS
// root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigFiles {
			path := filepath.Join(currentDir, name)
			if fileExists(path) {
				return path, nil
			}
		}
		if pyproject := filepath.Join(currentDir, pyprojectFile); fileExists(pyproject) && hasToolTable(pyproject) {
			return pyproject, nil
		}

		if isVCSRoot(currentDir) || (homeDir != "" && currentDir == homeDir) {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FindPydocstyleConfig returns the first file in dir that carries
// pydocstyle settings, or "".
func FindPydocstyleConfig(dir string) string {
	for _, name := range pydocstyleConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) && hasPydocstyleSettings(path) {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
