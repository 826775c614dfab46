package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"ghl/internal/keyring"
)

var (
	// ErrProfileNotFound is returned when a named profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Environment variables that override stored credentials.
const (
	// TokenEnvVar overrides the stored API token.
	TokenEnvVar = "GHL_API_TOKEN"
	// LocationEnvVar overrides the stored location ID.
	LocationEnvVar = "GHL_LOCATION_ID"
)

// Store is the credential and profile store. It owns the config, legacy
// credentials, and profiles files, caches them in memory after first read,
// and resolves the effective token and location for a request.
//
// A Store instance never observes concurrent external edits; a process that
// needs fresh state must construct a new Store. Concurrent writers race and
// the last writer wins.
type Store struct {
	paths   Paths
	keyring keyring.Store

	config   *Config
	profiles *profilesData
}

// NewStore creates a Store using the default paths and keyring backend.
func NewStore() *Store {
	return NewStoreAt(GetPaths(), keyring.DefaultStore())
}

// NewStoreAt creates a Store rooted at specific paths with a specific
// keyring backend. Used by tests.
func NewStoreAt(paths Paths, kr keyring.Store) *Store {
	return &Store{paths: paths, keyring: kr}
}

// Paths returns the file paths this store reads and writes.
func (s *Store) Paths() Paths {
	return s.paths
}

// Config returns the current configuration, loading it from disk on first
// use. Malformed or missing files yield defaults, never an error.
func (s *Store) Config() Config {
	if s.config == nil {
		cfg := s.loadConfig()
		s.config = &cfg
	}
	return *s.config
}

func (s *Store) loadConfig() Config {
	cfg := DefaultConfig()
	data, err := os.ReadFile(s.paths.ConfigFile)
	if err != nil {
		return cfg
	}
	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		// Corrupt config is treated as empty; the file on disk is left
		// untouched until the next successful write.
		return cfg
	}
	if loaded.APIVersion == "" {
		loaded.APIVersion = DefaultAPIVersion
	}
	if loaded.OutputFormat == "" {
		loaded.OutputFormat = "table"
	}
	return loaded
}

// SaveConfig persists the configuration to disk.
func (s *Store) SaveConfig(cfg Config) error {
	if err := s.writeJSON(s.paths.ConfigFile, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	s.config = &cfg
	return nil
}

// UpdateLocation sets the default location ID. If a profile is active, the
// new location is mirrored into that profile so its token and location stay
// paired.
func (s *Store) UpdateLocation(locationID string) error {
	if active := s.GetActiveProfileName(); active != "" {
		if prof, ok := s.GetProfile(active); ok {
			if err := s.AddOrUpdateProfile(active, prof.APIToken, locationID); err != nil {
				return err
			}
		}
	}
	cfg := s.Config()
	cfg.LocationID = locationID
	return s.SaveConfig(cfg)
}

// UpdateOutputFormat sets the default output format.
func (s *Store) UpdateOutputFormat(format string) error {
	cfg := s.Config()
	cfg.OutputFormat = format
	return s.SaveConfig(cfg)
}

// loadProfiles loads the profiles file, caching the result. A missing or
// malformed file is an empty store.
func (s *Store) loadProfiles() *profilesData {
	if s.profiles != nil {
		return s.profiles
	}
	s.profiles = &profilesData{Profiles: map[string]Profile{}}
	data, err := os.ReadFile(s.paths.ProfilesFile)
	if err != nil {
		return s.profiles
	}
	var loaded profilesData
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s.profiles
	}
	if loaded.Profiles == nil {
		loaded.Profiles = map[string]Profile{}
	}
	s.profiles = &loaded
	return s.profiles
}

func (s *Store) saveProfiles() error {
	if err := s.writeJSON(s.paths.ProfilesFile, s.loadProfiles()); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}

// GetActiveProfileName returns the name of the active profile, or "" when
// none is set. A dangling active pointer (external edit) reads as unset.
func (s *Store) GetActiveProfileName() string {
	data := s.loadProfiles()
	if data.Active == "" {
		return ""
	}
	if _, ok := data.Profiles[data.Active]; !ok {
		return ""
	}
	return data.Active
}

// GetProfile returns a profile by name.
func (s *Store) GetProfile(name string) (Profile, bool) {
	prof, ok := s.loadProfiles().Profiles[name]
	return prof, ok
}

// ListProfiles returns all profiles sorted by name ascending.
func (s *Store) ListProfiles() []ProfileInfo {
	data := s.loadProfiles()
	active := s.GetActiveProfileName()

	names := make([]string, 0, len(data.Profiles))
	for name := range data.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]ProfileInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, ProfileInfo{Name: name, Active: name == active})
	}
	return infos
}

// AddOrUpdateProfile upserts a profile and persists immediately. If no
// valid active profile exists, the upserted profile becomes active.
func (s *Store) AddOrUpdateProfile(name, token, locationID string) error {
	if name == "" {
		return errors.New("profile name is required")
	}
	data := s.loadProfiles()
	data.Profiles[name] = Profile{APIToken: token, LocationID: locationID}
	if _, ok := data.Profiles[data.Active]; data.Active == "" || !ok {
		data.Active = name
	}
	return s.saveProfiles()
}

// SetActiveProfile sets the active profile by name.
func (s *Store) SetActiveProfile(name string) error {
	data := s.loadProfiles()
	if _, ok := data.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	data.Active = name
	return s.saveProfiles()
}

// RemoveProfile deletes a profile. If the removed profile was active, the
// lexicographically first remaining profile becomes active, or the pointer
// is cleared when none remain.
func (s *Store) RemoveProfile(name string) error {
	data := s.loadProfiles()
	if _, ok := data.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	delete(data.Profiles, name)
	if data.Active == name {
		data.Active = ""
		names := make([]string, 0, len(data.Profiles))
		for n := range data.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)
		if len(names) > 0 {
			data.Active = names[0]
		}
	}
	return s.saveProfiles()
}

// ClearProfiles removes the profiles file and resets the cache. Idempotent.
func (s *Store) ClearProfiles() error {
	s.profiles = &profilesData{Profiles: map[string]Profile{}}
	err := os.Remove(s.paths.ProfilesFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profiles file: %w", err)
	}
	return nil
}

// GetToken resolves the effective API token: environment variable, then
// active profile, then the legacy credentials file, then the OS keyring.
// Returns "" when nothing matches.
func (s *Store) GetToken() string {
	if env := os.Getenv(TokenEnvVar); env != "" {
		return env
	}

	if active := s.GetActiveProfileName(); active != "" {
		if prof, ok := s.GetProfile(active); ok {
			return prof.APIToken
		}
	}

	if data, err := os.ReadFile(s.paths.CredentialsFile); err == nil {
		var creds credentialsData
		if err := json.Unmarshal(data, &creds); err == nil && creds.APIToken != "" {
			return creds.APIToken
		}
	}

	if token, err := s.keyring.Get(keyring.TokenKey); err == nil && token != "" {
		return token
	}

	return ""
}

// GetLocationID resolves the effective location: environment variable, then
// active profile, then the standalone config. Returns "" when unset.
func (s *Store) GetLocationID() string {
	if env := os.Getenv(LocationEnvVar); env != "" {
		return env
	}

	if active := s.GetActiveProfileName(); active != "" {
		if prof, ok := s.GetProfile(active); ok {
			return prof.LocationID
		}
	}

	return s.Config().LocationID
}

// SetToken stores the API token. With an active profile the profile's token
// is rewritten in place (location unchanged). Otherwise the token goes to
// the OS keyring when requested, falling back to the legacy credentials
// file when the keyring is unavailable.
func (s *Store) SetToken(token string, useKeyring bool) error {
	if active := s.GetActiveProfileName(); active != "" {
		if prof, ok := s.GetProfile(active); ok {
			return s.AddOrUpdateProfile(active, token, prof.LocationID)
		}
	}

	if useKeyring {
		if err := s.keyring.Set(keyring.TokenKey, token); err == nil {
			return nil
		}
		// Keyring unavailable or denied; fall back to file storage.
	}

	if err := s.writeJSON(s.paths.CredentialsFile, credentialsData{APIToken: token}); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// ClearToken removes the standalone token from both the keyring and the
// legacy credentials file. Idempotent.
func (s *Store) ClearToken() error {
	_ = s.keyring.Delete(keyring.TokenKey)

	err := os.Remove(s.paths.CredentialsFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

// writeJSON rewrites a file whole with owner-only permissions and fsyncs it
// before returning.
func (s *Store) writeJSON(path string, v any) error {
	if err := s.paths.EnsureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// #nosec G304 - path comes from Paths, rooted in the user config directory
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Chmod(path, 0600)
}
