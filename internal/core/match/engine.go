// Package match scores customer requirements against the property inventory
// and ranks viable pairings.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/crystalpower/wa-property-matcher/internal/core/patterns"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// Weights for combining per-criterion sub-scores. Only the weights of
// criteria present on both sides contribute to the combined score.
type Weights struct {
	Location     float64
	Budget       float64
	PropertyType float64
	Size         float64
	Bedrooms     float64
	Amenities    float64
}

// DefaultWeights: location dominates, amenities are reserved for extensions.
func DefaultWeights() Weights {
	return Weights{
		Location:     0.35,
		Budget:       0.25,
		PropertyType: 0.20,
		Size:         0.15,
		Bedrooms:     0.10,
		Amenities:    0.05,
	}
}

// Engine computes match scores and ranked results.
type Engine struct {
	weights   Weights
	threshold float64
	topN      int
}

// NewEngine creates a matching engine. threshold is the minimum combined
// score for a viable match; topN caps the result list.
func NewEngine(weights Weights, threshold float64, topN int) *Engine {
	if topN <= 0 {
		topN = 10
	}
	return &Engine{weights: weights, threshold: threshold, topN: topN}
}

func (e *Engine) Threshold() float64 { return e.threshold }

// Score combines the per-criterion sub-scores into one value in [0,1].
// Criteria unspecified on either side contribute to neither numerator nor
// denominator, so sparse requirements are not penalized.
func (e *Engine) Score(req *models.Requirement, property *models.Property) float64 {
	var total, weight float64

	if req.Location != nil && property.Location != "" {
		total += scoreLocation(req.Location.Area, property.Location) * e.weights.Location
		weight += e.weights.Location
	}
	if req.Budget != nil && property.Price > 0 {
		total += scoreBudget(req.Budget.Amount, property.Price) * e.weights.Budget
		weight += e.weights.Budget
	}
	if req.PropertyType != nil && property.Type != "" {
		total += scoreType(req.PropertyType.Type, property.Type) * e.weights.PropertyType
		weight += e.weights.PropertyType
	}
	if req.Size != nil && property.SizeSqm > 0 {
		total += scoreSize(req.Size.AreaSqm, property.SizeSqm) * e.weights.Size
		weight += e.weights.Size
	}
	if req.Bedrooms != nil && property.Bedrooms > 0 {
		total += scoreBedrooms(*req.Bedrooms, property.Bedrooms) * e.weights.Bedrooms
		weight += e.weights.Bedrooms
	}

	if weight == 0 {
		return 0
	}
	return total / weight
}

// Match scores the requirement against every property, keeps the ones at or
// above the threshold, ranks descending by score (ties broken by property id
// ascending for reproducibility) and truncates to topN.
func (e *Engine) Match(req *models.Requirement, inventory []models.Property) []models.MatchResult {
	results := make([]models.MatchResult, 0)

	for i := range inventory {
		property := inventory[i]
		score := e.Score(req, &property)
		if score < e.threshold {
			continue
		}
		results = append(results, models.MatchResult{
			PropertyID:        property.ID,
			Property:          property,
			Score:             score,
			Reasons:           e.matchReasons(req, &property),
			RecommendedAction: recommendedAction(score),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PropertyID < results[j].PropertyID
	})

	if len(results) > e.topN {
		results = results[:e.topN]
	}
	return results
}

// scoreLocation: exact match 1.0, containment either way 0.8, otherwise 0.
// No geo distance here.
func scoreLocation(required, available string) float64 {
	req := strings.ToLower(strings.TrimSpace(required))
	avail := strings.ToLower(strings.TrimSpace(available))

	if req == avail {
		return 1.0
	}
	if strings.Contains(avail, req) || strings.Contains(req, avail) {
		return 0.8
	}
	return 0.0
}

// scoreBudget rewards closeness to budget, not just cheapness: a property
// using at least 70% of the budget scores full marks, cheaper ones score
// proportionally. Slightly over budget degrades in steps.
func scoreBudget(budget, price float64) float64 {
	if price <= budget {
		ratio := price / budget
		if ratio >= 0.7 {
			return 1.0
		}
		return ratio
	}

	over := (price - budget) / budget
	switch {
	case over <= 0.1:
		return 0.8
	case over <= 0.2:
		return 0.6
	default:
		return 0.0
	}
}

// scoreType: exact 1.0, synonym-class member 0.8, else 0.
func scoreType(required, available string) float64 {
	req := strings.ToLower(strings.TrimSpace(required))
	avail := strings.ToLower(strings.TrimSpace(available))

	if req == avail {
		return 1.0
	}
	for base, similars := range patterns.SynonymClasses {
		for _, similar := range similars {
			if (req == base && avail == similar) || (avail == base && req == similar) {
				return 0.8
			}
		}
	}
	return 0.0
}

// scoreSize bands the relative difference between available and required.
func scoreSize(required, available float64) float64 {
	if required <= 0 {
		return 0
	}
	diff := math.Abs(available-required) / required
	switch {
	case diff <= 0.1:
		return 1.0
	case diff <= 0.2:
		return 0.8
	case diff <= 0.3:
		return 0.6
	default:
		return 0.0
	}
}

// scoreBedrooms: exact 1.0, off by one 0.7, off by two 0.4, else 0.
func scoreBedrooms(required, available int) float64 {
	diff := required - available
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	default:
		return 0.0
	}
}

func recommendedAction(score float64) models.MatchAction {
	switch {
	case score >= 0.9:
		return models.ActionImmediateContact
	case score >= 0.8:
		return models.ActionScheduleViewing
	case score >= 0.7:
		return models.ActionPresentOption
	default:
		return models.ActionCollectMoreInfo
	}
}
