package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

func TestScoreLocation(t *testing.T) {
	tests := []struct {
		name      string
		required  string
		available string
		want      float64
	}{
		{"exact", "Maadi", "Maadi", 1.0},
		{"case insensitive", "maadi", "MAADI", 1.0},
		{"containment", "Maadi", "Maadi, Cairo", 0.8},
		{"reverse containment", "New Cairo City", "new cairo", 0.8},
		{"no overlap", "Maadi", "Zamalek", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreLocation(tt.required, tt.available))
		})
	}
}

func TestScoreBudget(t *testing.T) {
	const budget = 1_000_000

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"at budget", 1_000_000, 1.0},
		{"uses 70 percent", 700_000, 1.0},
		{"well under budget", 600_000, 0.6},
		{"10 percent over", 1_100_000, 0.8},
		{"15 percent over", 1_150_000, 0.6},
		{"20 percent over", 1_200_000, 0.6},
		{"30 percent over", 1_300_000, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreBudget(budget, tt.price), 1e-9)
		})
	}
}

func TestScoreType(t *testing.T) {
	assert.Equal(t, 1.0, scoreType("apartment", "Apartment"))
	assert.Equal(t, 0.8, scoreType("apartment", "flat"))
	assert.Equal(t, 0.8, scoreType("flat", "apartment"))
	assert.Equal(t, 0.8, scoreType("villa", "townhouse"))
	assert.Equal(t, 0.0, scoreType("apartment", "villa"))
}

func TestScoreSize(t *testing.T) {
	tests := []struct {
		name      string
		required  float64
		available float64
		want      float64
	}{
		{"exact", 150, 150, 1.0},
		{"within 10 percent", 150, 160, 1.0},
		{"within 20 percent", 150, 175, 0.8},
		{"within 30 percent", 150, 190, 0.6},
		{"too far off", 150, 250, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreSize(tt.required, tt.available), 1e-9)
		})
	}
}

func TestScoreBedrooms(t *testing.T) {
	assert.Equal(t, 1.0, scoreBedrooms(3, 3))
	assert.Equal(t, 0.7, scoreBedrooms(3, 4))
	assert.Equal(t, 0.7, scoreBedrooms(3, 2))
	assert.Equal(t, 0.4, scoreBedrooms(3, 5))
	assert.Equal(t, 0.0, scoreBedrooms(3, 6))
}

func TestScoreSkipsAbsentCriteria(t *testing.T) {
	engine := NewEngine(DefaultWeights(), 0.75, 10)

	// Only the budget is specified on both sides, so the combined score is
	// exactly the budget sub-score.
	req := &models.Requirement{
		Budget: &models.Budget{Amount: 1_000_000, Currency: "EGP"},
	}
	property := &models.Property{
		ID:       "p1",
		Price:    950_000,
		Location: "Maadi",
		Type:     "apartment",
	}
	assert.InDelta(t, 1.0, engine.Score(req, property), 1e-9)

	// Nothing overlaps: zero, not NaN.
	empty := &models.Requirement{}
	assert.Zero(t, engine.Score(empty, property))
}

func TestMatchRankingAndThreshold(t *testing.T) {
	engine := NewEngine(DefaultWeights(), 0.75, 10)

	req := &models.Requirement{
		CustomerID:   "c1",
		Location:     &models.Location{Area: "Maadi", Confidence: 0.8},
		Budget:       &models.Budget{Amount: 1_000_000, Currency: "EGP"},
		PropertyType: &models.PropertyTypePref{Type: "apartment", Confidence: 0.9},
	}
	inventory := []models.Property{
		{ID: "p2", Title: "Flat near Maadi", Type: "flat", Location: "Maadi, Cairo", Price: 750_000, Status: models.StatusAvailable},
		{ID: "p1", Title: "Maadi apartment", Type: "apartment", Location: "Maadi", Price: 800_000, Status: models.StatusAvailable},
		{ID: "p3", Title: "Zamalek villa", Type: "villa", Location: "Zamalek", Price: 2_000_000, Status: models.StatusAvailable},
	}

	results := engine.Match(req, inventory)
	require.Len(t, results, 2)

	assert.Equal(t, "p1", results[0].PropertyID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, models.ActionImmediateContact, results[0].RecommendedAction)

	// p2: location 0.8, budget 1.0, type 0.8 weighted over 0.8 total weight.
	assert.Equal(t, "p2", results[1].PropertyID)
	assert.InDelta(t, 0.8625, results[1].Score, 1e-9)
	assert.Equal(t, models.ActionScheduleViewing, results[1].RecommendedAction)
}

func TestMatchTieBreaksOnPropertyID(t *testing.T) {
	engine := NewEngine(DefaultWeights(), 0.75, 10)

	req := &models.Requirement{
		Location: &models.Location{Area: "Maadi", Confidence: 0.8},
	}
	inventory := []models.Property{
		{ID: "b", Title: "B", Type: "apartment", Location: "Maadi", Price: 900_000},
		{ID: "a", Title: "A", Type: "apartment", Location: "Maadi", Price: 900_000},
	}

	results := engine.Match(req, inventory)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].PropertyID)
	assert.Equal(t, "b", results[1].PropertyID)
}

func TestMatchTruncatesToTopN(t *testing.T) {
	engine := NewEngine(DefaultWeights(), 0.5, 2)

	req := &models.Requirement{
		Location: &models.Location{Area: "Maadi", Confidence: 0.8},
	}
	inventory := []models.Property{
		{ID: "p1", Type: "apartment", Location: "Maadi", Price: 1},
		{ID: "p2", Type: "apartment", Location: "Maadi", Price: 1},
		{ID: "p3", Type: "apartment", Location: "Maadi", Price: 1},
	}

	results := engine.Match(req, inventory)
	assert.Len(t, results, 2)
}

func TestMatchReasons(t *testing.T) {
	engine := NewEngine(DefaultWeights(), 0.5, 10)

	req := &models.Requirement{
		Location:     &models.Location{Area: "Maadi", Confidence: 0.8},
		Budget:       &models.Budget{Amount: 1_000_000, Currency: "EGP"},
		PropertyType: &models.PropertyTypePref{Type: "apartment", Confidence: 0.9},
	}
	inventory := []models.Property{
		{ID: "p1", Type: "apartment", Location: "Maadi", Price: 850_000},
	}

	results := engine.Match(req, inventory)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Reasons, "Excellent location match: Maadi")
	assert.Contains(t, results[0].Reasons, "Within budget: 850,000 EGP")
	assert.Contains(t, results[0].Reasons, "Matching property type: apartment")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "850,000", formatAmount(850_000))
	assert.Equal(t, "3,500,000", formatAmount(3_500_000))
	assert.Equal(t, "999", formatAmount(999))
}
