// Package keyring provides secure API token storage using the OS keyring.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	gokeyring "github.com/zalando/go-keyring"

	"ghl/internal/utils"
)

const (
	// ServicePrefix is the prefix used for keyring service names.
	ServicePrefix = "GHL"

	// TestKeyringEnvVar is the environment variable that, when set to a
	// directory path, causes ghl to use a file-based keyring instead of the
	// OS keyring. Intended for tests only.
	TestKeyringEnvVar = "GHL_TEST_KEYRING_DIR"

	// TokenKey is the keyring key under which the standalone API token is
	// stored when no profile is active.
	TokenKey = "api_token"
)

// serviceName returns the keyring service name for a key.
func serviceName(key string) string {
	return ServicePrefix + " - " + key
}

var (
	// ErrKeyringUnavailable is returned when no secure keyring is available.
	ErrKeyringUnavailable = errors.New("secure keyring is not available on this system")
	// ErrTokenNotFound is returned when a token is not found in the keyring.
	ErrTokenNotFound = errors.New("token not found in keyring")
	// ErrKeyringAccessDenied is returned when access to the keyring is denied.
	ErrKeyringAccessDenied = errors.New("access to keyring denied")
)

// Store represents a secure token storage backend.
type Store interface {
	// Set stores a token for the given key.
	Set(key, token string) error
	// Get retrieves a token for the given key.
	Get(key string) (string, error)
	// Delete removes a token for the given key.
	Delete(key string) error
	// IsAvailable checks if the keyring is available.
	IsAvailable() error
}

// DefaultStore returns the default keyring store for the current platform.
// If GHL_TEST_KEYRING_DIR is set, a file-based store is used instead so
// tests never touch the OS keyring.
func DefaultStore() Store {
	if testDir := os.Getenv(TestKeyringEnvVar); testDir != "" {
		fileStore, err := NewFileStore(testDir)
		if err != nil {
			// If we can't create the file store, fall back to the OS keyring
			return &osKeyring{}
		}
		return fileStore
	}
	return &osKeyring{}
}

// osKeyring implements Store using the OS keyring.
type osKeyring struct{}

// IsAvailable checks if a secure keyring is available on this system.
func (k *osKeyring) IsAvailable() error {
	// Probe with a get; ErrNotFound means the keyring works but the key
	// doesn't exist, which is the expected healthy answer.
	_, err := gokeyring.Get(serviceName("__availability_check__"), "test")
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return nil
		}

		errStr := err.Error()

		if runtime.GOOS == "linux" {
			if utils.ContainsAny(errStr, "secret service", "dbus", "org.freedesktop.secrets") {
				return fmt.Errorf("%w: D-Bus secret service not available", ErrKeyringUnavailable)
			}
		}

		if runtime.GOOS == "darwin" {
			if utils.ContainsAny(errStr, "keychain", "security") {
				return fmt.Errorf("%w: macOS Keychain not accessible", ErrKeyringUnavailable)
			}
		}

		if runtime.GOOS == "windows" {
			if utils.ContainsAny(errStr, "credential", "wincred") {
				return fmt.Errorf("%w: Windows Credential Manager not accessible", ErrKeyringUnavailable)
			}
		}

		// Other errors during the availability probe are treated as
		// available; the actual operations give better error messages.
		return nil
	}

	return nil
}

// Set stores a token in the keyring.
func (k *osKeyring) Set(key, token string) error {
	if err := k.IsAvailable(); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key cannot be empty")
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := gokeyring.Set(serviceName(key), key, token); err != nil {
		return wrapKeyringError(err, "failed to store token")
	}

	return nil
}

// Get retrieves a token from the keyring.
func (k *osKeyring) Get(key string) (string, error) {
	if err := k.IsAvailable(); err != nil {
		return "", err
	}

	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	token, err := gokeyring.Get(serviceName(key), key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", wrapKeyringError(err, "failed to retrieve token")
	}

	return token, nil
}

// Delete removes a token from the keyring.
func (k *osKeyring) Delete(key string) error {
	if err := k.IsAvailable(); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key cannot be empty")
	}

	err := gokeyring.Delete(serviceName(key), key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			// Already deleted, not an error
			return nil
		}
		return wrapKeyringError(err, "failed to delete token")
	}

	return nil
}

// wrapKeyringError wraps a keyring error with context.
func wrapKeyringError(err error, context string) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if utils.ContainsAny(errStr, "denied", "permission", "not allowed", "unauthorized") {
		return fmt.Errorf("%w: %s: %v", ErrKeyringAccessDenied, context, err)
	}

	if utils.ContainsAny(errStr, "not found", "no keyring", "unavailable", "secret service") {
		return fmt.Errorf("%w: %s: %v", ErrKeyringUnavailable, context, err)
	}

	return fmt.Errorf("%s: %w", context, err)
}
