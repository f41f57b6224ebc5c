package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for each layer.
// A layer without a file has an empty path.
type ConfigPaths struct {
	// System is the machine-wide file, e.g. /etc/mdpreview/config.yaml.
	System string

	// User is the per-user file, e.g. ~/.config/mdpreview/config.yaml.
	User string

	// Project is the nearest project file, e.g. ./.mdpreview.yml.
	Project string

	// Explicit is the file named by --config.
	Explicit string
}

// projectConfigNames lists the project file names in order of preference.
func projectConfigNames() []string {
	return []string{
		".mdpreview.yml",
		".mdpreview.yaml",
		".mdpreview.json",
		"mdpreview.yml",
		"mdpreview.yaml",
	}
}

// layerConfigNames are the file names looked up in system and user directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigNames = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files.
// The project search starts at workDir and walks upward until it finds a
// file, a VCS root, the home directory, or the filesystem root.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), layerConfigNames),
		User:    firstExisting(userConfigDir(), layerConfigNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "mdpreview")
	}
	return "/etc/mdpreview"
}

// userConfigDir honours XDG_CONFIG_HOME, then ~/.config.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "mdpreview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdpreview")
}

// firstExisting returns the first regular file named in names inside dir.
func firstExisting(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file
// and returns its path, or "" when none is found before a boundary.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// An unknown home directory only disables that boundary.
	home, _ := os.UserHomeDir()
	names := projectConfigNames()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstExisting(dir, names); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
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

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
