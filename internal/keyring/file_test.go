package keyring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.IsAvailable(); err != nil {
		t.Fatalf("IsAvailable() error = %v", err)
	}

	if err := store.Set(TokenKey, "secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := store.Get(TokenKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "secret" {
		t.Errorf("Get() = %q, want %q", got, "secret")
	}

	if err := store.Delete(TokenKey); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(TokenKey); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrTokenNotFound", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Set("key", "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set("key", "second"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := store.Get("key"); got != "second" {
		t.Errorf("Get() = %q, want %q", got, "second")
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrTokenNotFound", err)
	}
	// Deleting a missing key is a no-op.
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestFileStoreEmptyKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Set("", "x"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Set(\"\") error = %v, want ErrTokenNotFound", err)
	}
	if _, err := store.Get(""); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Get(\"\") error = %v, want ErrTokenNotFound", err)
	}
}

func TestFileStoreRequiresDir(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore(\"\") should fail")
	}
}

func TestFileStoreTraversalKeysAreContained(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "ring"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Set("../escape", "secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Nothing may be written outside the store directory.
	if _, err := os.Stat(filepath.Join(dir, "escape")); !os.IsNotExist(err) {
		t.Error("traversal key escaped the store directory")
	}
	if got, err := store.Get("../escape"); err != nil || got != "secret" {
		t.Errorf("Get() = %q, %v; want hashed key round trip", got, err)
	}
}

func TestFileStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := store.Set(TokenKey, "secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, sanitizeKey(TokenKey)))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"api_token", "api_token"},
		{"GHL - api_token", "GHL_-_api_token"},
		{"a.b", "a_b"},
	}
	for _, tt := range tests {
		if got := sanitizeKey(tt.in); got != tt.want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Traversal patterns hash to a hex digest.
	hashed := sanitizeKey("../../etc/passwd")
	if len(hashed) != 64 {
		t.Errorf("sanitizeKey(traversal) = %q, want 64-char digest", hashed)
	}
}
