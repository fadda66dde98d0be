// Package paths resolves the settings directory and the dataset
// configuration file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative names.
const (
	DefaultConfigDirName  = ".smartframe"
	DefaultDataConfigName = "smartframe.yaml"
)

// Environment variable names for overrides.
const (
	EnvConfigDir  = "SMARTFRAME_CONFIG_DIR"
	EnvDataConfig = "SMARTFRAME_DATA_CONFIG"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default settings directory.
//
// Linux:   $XDG_CONFIG_HOME/smartframe (fallback ~/.config/smartframe)
// macOS:   ~/Library/Application Support/smartframe
// Windows: %APPDATA%/smartframe
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "smartframe"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "smartframe"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "smartframe"), nil
	}
}

// ResolveConfigDir returns the settings directory following the precedence
// chain: flag > SMARTFRAME_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataConfig returns the dataset configuration file following the
// precedence chain: flag > SMARTFRAME_DATA_CONFIG env > settingsValue >
// $(CWD)/smartframe.yaml.
func ResolveDataConfig(flag, settingsValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataConfig); env != "" {
		return filepath.Abs(env)
	}
	if settingsValue != "" {
		return filepath.Abs(settingsValue)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataConfigName), nil
}
