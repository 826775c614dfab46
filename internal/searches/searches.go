// Package searches provides local storage for saved contact search filters.
package searches

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"ghl/internal/config"
)

// SavedSearch is a named contact filter that can be replayed.
type SavedSearch struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
	AssignedTo string   `json:"assignedTo,omitempty"`
	Query      string   `json:"query,omitempty"`
}

// Store reads and writes the saved searches file.
type Store struct {
	paths config.Paths
}

// NewStore creates a Store using the default paths.
func NewStore() *Store {
	return NewStoreAt(config.GetPaths())
}

// NewStoreAt creates a Store rooted at specific paths. Used by tests.
func NewStoreAt(paths config.Paths) *Store {
	return &Store{paths: paths}
}

// List loads all saved searches. A missing or malformed file is an empty
// list, never an error.
func (s *Store) List() []SavedSearch {
	data, err := os.ReadFile(s.paths.SearchesFile)
	if err != nil {
		return nil
	}
	var searches []SavedSearch
	if err := json.Unmarshal(data, &searches); err != nil {
		return nil
	}
	return searches
}

// Get returns a single saved search by ID.
func (s *Store) Get(id string) (SavedSearch, bool) {
	for _, search := range s.List() {
		if search.ID == id {
			return search, true
		}
	}
	return SavedSearch{}, false
}

// Save appends a saved search and returns it. When search.ID is set, the
// existing record with that ID is replaced.
func (s *Store) Save(search SavedSearch) (SavedSearch, error) {
	searches := s.List()
	if search.ID != "" {
		kept := searches[:0]
		for _, existing := range searches {
			if existing.ID != search.ID {
				kept = append(kept, existing)
			}
		}
		searches = kept
	} else {
		search.ID = uuid.NewString()
	}

	search.Name = strings.TrimSpace(search.Name)
	search.Query = strings.TrimSpace(search.Query)
	if search.Tags == nil {
		search.Tags = []string{}
	}

	searches = append(searches, search)
	if err := s.write(searches); err != nil {
		return SavedSearch{}, err
	}
	return search, nil
}

// Delete removes a saved search by ID. Returns false when not found.
func (s *Store) Delete(id string) (bool, error) {
	searches := s.List()
	kept := make([]SavedSearch, 0, len(searches))
	for _, search := range searches {
		if search.ID != id {
			kept = append(kept, search)
		}
	}
	if len(kept) == len(searches) {
		return false, nil
	}
	return true, s.write(kept)
}

func (s *Store) write(searches []SavedSearch) error {
	if err := s.paths.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(searches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal saved searches: %w", err)
	}
	if err := os.WriteFile(s.paths.SearchesFile, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write saved searches: %w", err)
	}
	return nil
}
