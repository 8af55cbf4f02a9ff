// ABOUTME: Standard filesystem paths for promptboost configuration and data
// ABOUTME: Resolves ~/.promptboost/ for settings, instructions, and logs

package config

import (
	"os"
	"path/filepath"
)

const globalDirName = ".promptboost"

// GlobalDir returns the user-global config directory (~/.promptboost/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// SettingsFile returns the path to the settings file.
func SettingsFile() string {
	return filepath.Join(GlobalDir(), "settings.json")
}

// LogFile returns the path to the diagnostic log file.
func LogFile() string {
	return filepath.Join(GlobalDir(), "promptboost.log")
}

// ModelsCacheFile returns the path to the discovered-models snapshot.
func ModelsCacheFile() string {
	return filepath.Join(GlobalDir(), "models.json")
}

// EnsureDir creates a directory and all parents if they don't exist.
// Uses 0o700 because settings may name credential environment variables.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
