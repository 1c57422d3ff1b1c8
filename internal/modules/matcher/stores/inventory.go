// Package stores holds the in-process supply and demand collections. They are
// explicit objects constructed per process and injected where needed, never
// ambient globals, so tests can run isolated instances.
package stores

import (
	"sort"
	"sync"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// InventoryStore is the keyed supply collection. Mutations do not trigger
// re-matching by themselves; the processor invokes that explicitly.
type InventoryStore struct {
	mu    sync.RWMutex
	props map[string]models.Property
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{props: make(map[string]models.Property)}
}

// Upsert validates and stores a property, fully replacing any existing entry
// with the same id. The inventory is unchanged when validation fails.
func (s *InventoryStore) Upsert(property models.Property) error {
	if err := property.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.props[property.ID] = property
	s.mu.Unlock()
	return nil
}

// Remove deletes a property. Removing an absent id is a no-op, not an error.
// It reports whether an entry was actually removed.
func (s *InventoryStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.props[id]; !ok {
		return false
	}
	delete(s.props, id)
	return true
}

// Get returns one property by id.
func (s *InventoryStore) Get(id string) (models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	property, ok := s.props[id]
	return property, ok
}

// All returns a snapshot of the inventory ordered by id.
func (s *InventoryStore) All() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Property, 0, len(s.props))
	for _, property := range s.props {
		out = append(out, property)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Replace swaps the whole snapshot for externally sourced entries. Reload is
// replace-all: entries absent from the source are dropped. Invalid records
// are skipped; the count of accepted properties is returned.
func (s *InventoryStore) Replace(properties []models.Property) int {
	next := make(map[string]models.Property, len(properties))
	for _, property := range properties {
		if property.Validate() != nil {
			continue
		}
		next[property.ID] = property
	}

	s.mu.Lock()
	s.props = next
	s.mu.Unlock()
	return len(next)
}

// Count returns the total number of properties.
func (s *InventoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.props)
}

// AvailableCount returns the number of properties still offered.
func (s *InventoryStore) AvailableCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, property := range s.props {
		if property.IsAvailable() {
			n++
		}
	}
	return n
}
