// Package paths resolves where the chronicle keeps its configuration and
// its campaign data. Both directories follow the same precedence: an
// explicit flag wins, then an environment override, then the platform
// convention.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".chronicle"
	DefaultDataDirName   = ".chronicle-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CHRONICLE_CONFIG_DIR"
	EnvDataDir   = "CHRONICLE_DATA_DIR"
)

// appDirName is the per-application subdirectory created under whatever
// base directory the platform convention selects.
const appDirName = "chronicle"

// DefaultConfigDir returns the platform default configuration directory:
// the XDG config home on linux, os.UserConfigDir elsewhere (Application
// Support on macOS, %APPDATA% on Windows).
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userConfigSubdir()
}

// DefaultDataDir returns the platform default data directory: the XDG
// data home on linux, the same directory as config elsewhere.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return userConfigSubdir()
}

// xdgDir resolves an XDG base directory: the env var when set, otherwise
// the conventional fallback under the home directory.
func xdgDir(envVar, homeFallback string) (string, error) {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback, appDirName), nil
}

func userConfigSubdir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CHRONICLE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml value > CHRONICLE_DATA_DIR env > $(CWD)/.chronicle-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	// CWD-relative default keeps per-campaign databases next to where the
	// user runs the tool.
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
