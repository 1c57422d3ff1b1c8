package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/crystalpower/wa-property-matcher/internal/core/events"
	"github.com/crystalpower/wa-property-matcher/internal/core/extract"
	"github.com/crystalpower/wa-property-matcher/internal/core/lead"
	"github.com/crystalpower/wa-property-matcher/internal/core/match"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/repositories"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/stores"
)

// activeWindow bounds how old a requirement may be to count as active demand.
const activeWindow = 7 * 24 * time.Hour

// ProcessorService runs the supply-demand analysis flow: extraction, merge,
// matching, lead assessment. It produces structured analysis for human
// agents and never sends a reply anywhere.
type ProcessorService struct {
	extractor *extract.Extractor
	engine    *match.Engine
	inventory *stores.InventoryStore
	demands   *stores.RequirementStore
	bus       *events.Bus

	// Optional persistence; nil disables it and the service runs memory-only.
	propertyRepo    repositories.PropertyRepo
	requirementRepo repositories.RequirementRepo

	// Cached per-customer match results, refreshed on every (re-)match.
	resultsMu sync.RWMutex
	results   map[string][]models.MatchResult

	// Debounced bulk re-match state.
	rematchMu     sync.Mutex
	rematchCancel context.CancelFunc
	debounce      time.Duration
}

// NewProcessorService wires the processing flow. propertyRepo and
// requirementRepo may be nil.
func NewProcessorService(
	extractor *extract.Extractor,
	engine *match.Engine,
	inventory *stores.InventoryStore,
	demands *stores.RequirementStore,
	bus *events.Bus,
	propertyRepo repositories.PropertyRepo,
	requirementRepo repositories.RequirementRepo,
	debounce time.Duration,
) *ProcessorService {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &ProcessorService{
		extractor:       extractor,
		engine:          engine,
		inventory:       inventory,
		demands:         demands,
		bus:             bus,
		propertyRepo:    propertyRepo,
		requirementRepo: requirementRepo,
		results:         make(map[string][]models.MatchResult),
		debounce:        debounce,
	}
}

// ProcessMessage analyzes one inbound message. Extraction always succeeds
// (degrading to fewer fields), so the only error source is a cancelled
// context.
func (s *ProcessorService) ProcessMessage(ctx context.Context, content, senderID string) (*models.ProcessResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	partial := s.extractor.Extract(content)
	requirement := s.demands.Merge(senderID, partial, time.Now())

	matches := s.engine.Match(&requirement, s.inventory.All())
	s.cacheResults(senderID, matches)

	quality := lead.AssessQuality(&requirement)
	result := &models.ProcessResult{
		Requirement:    requirement,
		Matches:        matches,
		Recommendation: lead.RecommendAction(matches),
		LeadQuality:    quality,
		ShouldContact:  lead.ShouldContact(&requirement, matches, quality),
	}

	if s.requirementRepo != nil {
		if err := s.requirementRepo.Save(&requirement); err != nil {
			log.Printf("⚠️ Failed to persist requirement for %s: %v", senderID, err)
		}
	}

	s.bus.Publish(ctx, senderID, matches)

	log.Printf("🔎 Analyzed message from %s: %d matches, lead %s (%d)",
		senderID, len(matches), quality.Band, quality.Score)
	return result, nil
}

// UpsertProperty validates and stores one supply unit, persists it when a
// repository is configured, and schedules a debounced bulk re-match.
func (s *ProcessorService) UpsertProperty(ctx context.Context, property models.Property) error {
	if err := s.inventory.Upsert(property); err != nil {
		return err
	}

	if s.propertyRepo != nil {
		if err := s.propertyRepo.Upsert(&property); err != nil {
			log.Printf("⚠️ Failed to persist property %s: %v", property.ID, err)
		}
	}

	log.Printf("🏠 Property %s upserted, scheduling re-match", property.ID)
	s.ScheduleRematch()
	return nil
}

// RemoveProperty drops a property from the inventory and purges it from all
// cached match results. Removing an unknown id is a no-op.
func (s *ProcessorService) RemoveProperty(ctx context.Context, id string) {
	removed := s.inventory.Remove(id)

	if s.propertyRepo != nil {
		if err := s.propertyRepo.Delete(id); err != nil {
			log.Printf("⚠️ Failed to delete property %s: %v", id, err)
		}
	}

	s.purgeProperty(id)
	if removed {
		log.Printf("🗑️ Property %s removed, scheduling re-match", id)
		s.ScheduleRematch()
	}
}

// ReloadInventory replaces the in-memory snapshot from the external source.
// On failure the last-known-good snapshot stays in place and matching keeps
// working; the error is returned for logging only.
func (s *ProcessorService) ReloadInventory(ctx context.Context) (int, error) {
	if s.propertyRepo == nil {
		return s.inventory.Count(), nil
	}

	properties, err := s.propertyRepo.List()
	if err != nil {
		return 0, err
	}

	count := s.inventory.Replace(properties)
	log.Printf("📦 Inventory reloaded: %d properties", count)
	s.ScheduleRematch()
	return count, nil
}

// ScheduleRematch coalesces bursts of inventory mutations into one bulk
// re-match: a pending run is cancelled and the debounce timer restarts, so
// only the latest complete pass survives.
func (s *ProcessorService) ScheduleRematch() {
	s.rematchMu.Lock()
	if s.rematchCancel != nil {
		s.rematchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.rematchCancel = cancel
	s.rematchMu.Unlock()

	go func() {
		select {
		case <-time.After(s.debounce):
		case <-ctx.Done():
			return
		}
		s.RematchAll(ctx)
	}()
}

// RematchAll recomputes matches for every stored requirement against the
// current inventory snapshot. The pass aborts between customers when the
// context is cancelled; the next scheduled run starts over.
func (s *ProcessorService) RematchAll(ctx context.Context) {
	requirements := s.demands.All()
	snapshot := s.inventory.All()

	for i := range requirements {
		if ctx.Err() != nil {
			log.Printf("↩️ Bulk re-match cancelled, newer inventory change pending")
			return
		}
		req := requirements[i]
		matches := s.engine.Match(&req, snapshot)
		s.cacheResults(req.CustomerID, matches)
		s.bus.Publish(ctx, req.CustomerID, matches)
	}

	if len(requirements) > 0 {
		log.Printf("🔁 Re-matched %d customers against %d properties", len(requirements), len(snapshot))
	}
}

func (s *ProcessorService) cacheResults(customerID string, matches []models.MatchResult) {
	s.resultsMu.Lock()
	s.results[customerID] = matches
	s.resultsMu.Unlock()
}

// purgeProperty honors the invariant that removed ids never linger in cached
// match results. Filtering builds a fresh slice: the cached backing array is
// shared with ProcessResult and event payloads already handed out, so it must
// never be mutated.
func (s *ProcessorService) purgeProperty(id string) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	for customerID, matches := range s.results {
		kept := make([]models.MatchResult, 0, len(matches))
		for _, m := range matches {
			if m.PropertyID != id {
				kept = append(kept, m)
			}
		}
		s.results[customerID] = kept
	}
}

// MatchesFor returns the cached match list for one customer. An unknown
// customer yields an empty list, not an error.
func (s *ProcessorService) MatchesFor(customerID string) []models.MatchResult {
	s.resultsMu.RLock()
	defer s.resultsMu.RUnlock()
	matches := s.results[customerID]
	out := make([]models.MatchResult, len(matches))
	copy(out, matches)
	return out
}

// GetRequirement returns one customer's accumulated demand. Unknown
// customers get an empty default record.
func (s *ProcessorService) GetRequirement(customerID string) models.Requirement {
	req, ok := s.demands.Get(customerID)
	if !ok {
		return models.Requirement{
			CustomerID: customerID,
			Sentiment:  models.SentimentNeutral,
			Urgency:    models.UrgencyLow,
		}
	}
	return req
}

// ListRequirements is the demand overview for agent tooling, most recently
// updated first.
func (s *ProcessorService) ListRequirements() []models.DemandSummary {
	requirements := s.demands.All()
	out := make([]models.DemandSummary, 0, len(requirements))

	for i := range requirements {
		req := requirements[i]
		matches := s.MatchesFor(req.CustomerID)
		best := 0.0
		if len(matches) > 0 {
			best = matches[0].Score
		}
		out = append(out, models.DemandSummary{
			CustomerID:         req.CustomerID,
			Requirement:        req,
			MatchingProperties: len(matches),
			BestMatchScore:     best,
			LeadQuality:        lead.AssessQuality(&req),
			LastUpdated:        req.LastUpdated,
		})
	}
	return out
}

// ListInventory is the supply overview.
func (s *ProcessorService) ListInventory() []models.Property {
	return s.inventory.All()
}

// Statistics aggregates supply, demand and matching health for dashboards.
func (s *ProcessorService) Statistics() models.Statistics {
	var stats models.Statistics
	stats.Supply.TotalProperties = s.inventory.Count()
	stats.Supply.AvailableProperties = s.inventory.AvailableCount()
	stats.Demand.TotalCustomers = s.demands.Count()
	stats.Demand.ActiveRequirements = s.demands.ActiveCount(activeWindow, time.Now())

	s.resultsMu.RLock()
	for _, matches := range s.results {
		stats.Matching.TotalMatches += len(matches)
		for _, m := range matches {
			if m.Score >= 0.9 {
				stats.Matching.ExcellentMatches++
			}
		}
	}
	s.resultsMu.RUnlock()

	if stats.Demand.TotalCustomers > 0 {
		stats.Matching.MatchingEfficiency = float64(stats.Matching.TotalMatches) / float64(stats.Demand.TotalCustomers)
	}
	return stats
}

// Close cancels any pending re-match.
func (s *ProcessorService) Close() {
	s.rematchMu.Lock()
	defer s.rematchMu.Unlock()
	if s.rematchCancel != nil {
		s.rematchCancel()
		s.rematchCancel = nil
	}
}
