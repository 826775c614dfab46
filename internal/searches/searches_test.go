package searches

import (
	"os"
	"testing"

	"ghl/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("GHL_CONFIG_DIR", t.TempDir())
	return NewStoreAt(config.GetPaths())
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)

	if got := store.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestSaveAssignsID(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(SavedSearch{Name: "  hot leads  ", Tags: []string{"lead"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Save() did not assign an ID")
	}
	if saved.Name != "hot leads" {
		t.Errorf("Name = %q, want trimmed", saved.Name)
	}

	got, ok := store.Get(saved.ID)
	if !ok {
		t.Fatal("Get() did not find the saved search")
	}
	if got.Name != "hot leads" || len(got.Tags) != 1 || got.Tags[0] != "lead" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestSaveReplacesByID(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(SavedSearch{Name: "before", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	updated := first
	updated.Name = "after"
	updated.Tags = []string{"b"}
	if _, err := store.Save(updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all := store.List()
	if len(all) != 1 {
		t.Fatalf("List() returned %d searches, want 1", len(all))
	}
	if all[0].Name != "after" || all[0].Tags[0] != "b" {
		t.Errorf("List()[0] = %+v, want replaced record", all[0])
	}
}

func TestSaveNormalizesNilTags(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(SavedSearch{Name: "no tags", Query: "jane"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Tags == nil {
		t.Error("Tags = nil, want empty slice")
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(SavedSearch{Name: "x", Tags: []string{"t"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	removed, err := store.Delete(saved.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("Delete() = false, want true")
	}
	if _, ok := store.Get(saved.ID); ok {
		t.Error("Get() found a deleted search")
	}

	removed, err = store.Delete("missing")
	if err != nil {
		t.Fatalf("Delete(missing) error = %v", err)
	}
	if removed {
		t.Error("Delete(missing) = true, want false")
	}
}

func TestMalformedFileReadsAsEmpty(t *testing.T) {
	store := newTestStore(t)

	if err := store.paths.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := os.WriteFile(store.paths.SearchesFile, []byte("{broken"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if got := store.List(); got != nil {
		t.Errorf("List() = %v, want nil for malformed file", got)
	}
	// A save over a malformed file starts fresh.
	if _, err := store.Save(SavedSearch{Name: "fresh"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := store.List(); len(got) != 1 {
		t.Errorf("List() returned %d searches, want 1", len(got))
	}
}

func TestFilePermissions(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(SavedSearch{Name: "x"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(store.paths.SearchesFile)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("searches file mode = %o, want 0600", perm)
	}
}
