package keyring

import (
	"errors"
	"fmt"
	"testing"
)

func TestServiceName(t *testing.T) {
	if got := serviceName(TokenKey); got != "GHL - api_token" {
		t.Errorf("serviceName(%q) = %q", TokenKey, got)
	}
}

func TestDefaultStoreUsesTestDirOverride(t *testing.T) {
	t.Setenv(TestKeyringEnvVar, t.TempDir())

	store := DefaultStore()
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("DefaultStore() = %T, want *FileStore with override set", store)
	}

	if err := store.Set(TokenKey, "secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := store.Get(TokenKey); err != nil || got != "secret" {
		t.Errorf("Get() = %q, %v", got, err)
	}
}

func TestDefaultStoreWithoutOverride(t *testing.T) {
	t.Setenv(TestKeyringEnvVar, "")

	store := DefaultStore()
	if _, ok := store.(*osKeyring); !ok {
		t.Errorf("DefaultStore() = %T, want *osKeyring", store)
	}
}

func TestMockStore(t *testing.T) {
	mock := NewMockStore()

	if err := mock.IsAvailable(); err != nil {
		t.Fatalf("IsAvailable() error = %v", err)
	}

	if err := mock.Set("k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := mock.Get("k"); err != nil || got != "v" {
		t.Errorf("Get() = %q, %v", got, err)
	}
	if !mock.Stored("k") {
		t.Error("Stored(k) = false after Set")
	}

	if err := mock.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := mock.Get("k"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrTokenNotFound", err)
	}
}

func TestMockStoreUnavailable(t *testing.T) {
	mock := NewMockStore()
	mock.SetUnavailable(true)

	if err := mock.IsAvailable(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("IsAvailable() error = %v, want ErrKeyringUnavailable", err)
	}
	if err := mock.Set("k", "v"); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Set() error = %v, want ErrKeyringUnavailable", err)
	}
	if _, err := mock.Get("k"); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() error = %v, want ErrKeyringUnavailable", err)
	}

	mock.SetUnavailable(false)
	if err := mock.Set("k", "v"); err != nil {
		t.Errorf("Set() after recovery error = %v", err)
	}
}

func TestWrapKeyringError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"access denied", errors.New("operation not allowed by user"), ErrKeyringAccessDenied},
		{"permission", errors.New("Permission denied"), ErrKeyringAccessDenied},
		{"unavailable", errors.New("secret service unavailable"), ErrKeyringUnavailable},
		{"no keyring", errors.New("No keyring daemon running"), ErrKeyringUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapKeyringError(tt.err, "ctx")
			if tt.want == nil {
				if got != nil {
					t.Errorf("wrapKeyringError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("wrapKeyringError(%v) = %v, want wrapped %v", tt.err, got, tt.want)
			}
		})
	}

	// Unrecognized errors keep their identity under the context message.
	base := errors.New("weird backend failure")
	wrapped := wrapKeyringError(base, "ctx")
	if !errors.Is(wrapped, base) {
		t.Errorf("wrapKeyringError() lost the original error: %v", wrapped)
	}
	if want := fmt.Sprintf("ctx: %v", base); wrapped.Error() != want {
		t.Errorf("wrapKeyringError() message = %q, want %q", wrapped.Error(), want)
	}
}
