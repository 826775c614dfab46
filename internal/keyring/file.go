package keyring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore is a file-based keyring implementation for testing.
// It stores tokens in files within a directory.
// This should ONLY be used for testing, never in production.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a new file-based keyring store.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory path is required")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create keyring directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// IsAvailable implements Store.
func (f *FileStore) IsAvailable() error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("%w: directory not accessible: %v", ErrKeyringUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: path is not a directory", ErrKeyringUnavailable)
	}
	return nil
}

// keyPath returns the file path for a key, verifying that the resulting
// path stays within the store directory.
func (f *FileStore) keyPath(key string) (string, error) {
	fullPath := filepath.Join(f.dir, sanitizeKey(key))

	absDir, err := filepath.Abs(f.dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) && absPath != absDir {
		return "", fmt.Errorf("invalid key: path traversal detected")
	}

	return fullPath, nil
}

// sanitizeKey makes a key safe for use as a filename. Keys containing path
// traversal patterns are hashed instead.
func sanitizeKey(key string) string {
	if strings.Contains(key, "..") || strings.Contains(key, "/") ||
		strings.Contains(key, "\\") || strings.Contains(key, string(filepath.Separator)) {
		h := sha256.Sum256([]byte(key))
		return hex.EncodeToString(h[:])
	}

	result := make([]byte, len(key))
	for i, c := range []byte(key) {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '_' || c == '-' {
			result[i] = c
		} else {
			result[i] = '_'
		}
	}
	return string(result)
}

// Set implements Store.
func (f *FileStore) Set(key, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if key == "" {
		return ErrTokenNotFound
	}

	path, err := f.keyPath(key)
	if err != nil {
		return fmt.Errorf("failed to resolve key path: %w", err)
	}

	// Remove any existing file first to prevent symlink attacks.
	_ = os.Remove(path)

	// #nosec G304 - path is constrained to the store directory by keyPath
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte(token)); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}

	return nil
}

// Get implements Store.
func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if key == "" {
		return "", ErrTokenNotFound
	}

	path, err := f.keyPath(key)
	if err != nil {
		return "", fmt.Errorf("failed to resolve key path: %w", err)
	}

	// #nosec G304 - path is constrained to the store directory by keyPath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return string(data), nil
}

// Delete implements Store.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if key == "" {
		return nil
	}

	path, err := f.keyPath(key)
	if err != nil {
		return fmt.Errorf("failed to resolve key path: %w", err)
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
