package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// RequirementStore keeps the latest requirement per customer. Updates for the
// same customer are serialized through a per-key mutex so two concurrent
// messages cannot interleave partial merges.
type RequirementStore struct {
	mu    sync.RWMutex
	reqs  map[string]*models.Requirement
	locks map[string]*sync.Mutex
}

func NewRequirementStore() *RequirementStore {
	return &RequirementStore{
		reqs:  make(map[string]*models.Requirement),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *RequirementStore) customerLock(customerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[customerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[customerID] = lock
	}
	return lock
}

// Merge folds a partial extraction into the customer's requirement, creating
// the record on first contact. Returns a copy of the merged requirement.
func (s *RequirementStore) Merge(customerID string, partial models.PartialRequirement, at time.Time) models.Requirement {
	lock := s.customerLock(customerID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	stored, ok := s.reqs[customerID]
	var req models.Requirement
	if ok {
		req = *stored
	}
	s.mu.RUnlock()

	if !ok {
		req = models.Requirement{
			CustomerID: customerID,
			Sentiment:  models.SentimentNeutral,
			Urgency:    models.UrgencyLow,
		}
	}

	// Merge on a copy and republish so readers never observe a half-merged
	// record.
	req.Merge(partial, at)

	s.mu.Lock()
	s.reqs[customerID] = &req
	s.mu.Unlock()
	return req
}

// Get returns a copy of one customer's requirement. An unknown customer
// yields the zero value and false, never an error.
func (s *RequirementStore) Get(customerID string) (models.Requirement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.reqs[customerID]
	if !ok {
		return models.Requirement{}, false
	}
	return *req, true
}

// All returns a snapshot of every requirement, most recently updated first.
func (s *RequirementStore) All() []models.Requirement {
	s.mu.RLock()
	out := make([]models.Requirement, 0, len(s.reqs))
	for _, req := range s.reqs {
		out = append(out, *req)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out
}

// Count returns the number of customers with a requirement on file.
func (s *RequirementStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reqs)
}

// ActiveCount returns requirements updated within the given window.
func (s *RequirementStore) ActiveCount(window time.Duration, now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, req := range s.reqs {
		if now.Sub(req.LastUpdated) < window {
			n++
		}
	}
	return n
}
