// Package config provides configuration and credential storage for ghl.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for directories.
	AppName = "ghl"

	// ConfigFileName holds the default location and output preferences.
	ConfigFileName = "config.json"
	// CredentialsFileName holds the legacy standalone API token.
	CredentialsFileName = "credentials.json"
	// ProfilesFileName holds named token+location profiles.
	ProfilesFileName = "profiles.json"
	// SearchesFileName holds saved contact search filters.
	SearchesFileName = "saved_searches.json"
)

// Paths holds all the application paths.
type Paths struct {
	ConfigDir       string
	ConfigFile      string
	CredentialsFile string
	ProfilesFile    string
	SearchesFile    string
}

// GetPaths returns the application paths following the XDG Base Directory
// specification, with a GHL_CONFIG_DIR override for tests and packaging.
func GetPaths() Paths {
	dir := getConfigDir()
	return Paths{
		ConfigDir:       dir,
		ConfigFile:      filepath.Join(dir, ConfigFileName),
		CredentialsFile: filepath.Join(dir, CredentialsFileName),
		ProfilesFile:    filepath.Join(dir, ProfilesFileName),
		SearchesFile:    filepath.Join(dir, SearchesFileName),
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	// Check for explicit override
	if dir := os.Getenv("GHL_CONFIG_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			return filepath.Join(userProfile, "AppData", "Roaming", AppName)
		}
	case "darwin":
		// macOS: prefer XDG, fallback to ~/Library/Application Support
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			xdgPath := filepath.Join(home, ".config", AppName)
			if _, err := os.Stat(xdgPath); err == nil {
				return xdgPath
			}
			return filepath.Join(home, "Library", "Application Support", AppName)
		}
	default:
		// Linux and other Unix-like systems: follow XDG
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", AppName)
		}
	}

	// Last resort fallback
	return filepath.Join(".", "."+AppName)
}

// EnsureDir creates the config directory with owner-only permissions.
func (p Paths) EnsureDir() error {
	if err := os.MkdirAll(p.ConfigDir, 0700); err != nil {
		return err
	}
	return os.Chmod(p.ConfigDir, 0700)
}
