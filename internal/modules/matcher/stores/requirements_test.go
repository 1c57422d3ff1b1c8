package stores

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

func TestRequirementMergeCreatesOnFirstContact(t *testing.T) {
	store := NewRequirementStore()
	now := time.Now()

	partial := models.PartialRequirement{
		Budget:     &models.Budget{Amount: 2_000_000, Currency: "EGP"},
		Sentiment:  models.SentimentNeutral,
		Urgency:    models.UrgencyLow,
		Confidence: 0.2,
	}
	merged := store.Merge("c1", partial, now)

	assert.Equal(t, "c1", merged.CustomerID)
	require.NotNil(t, merged.Budget)
	assert.Equal(t, 2_000_000.0, merged.Budget.Amount)
	assert.Equal(t, now, merged.LastUpdated)

	got, ok := store.Get("c1")
	require.True(t, ok)
	assert.Equal(t, merged, got)
}

func TestRequirementMergeAccumulatesAcrossMessages(t *testing.T) {
	store := NewRequirementStore()
	t0 := time.Now()

	store.Merge("c1", models.PartialRequirement{
		Budget:     &models.Budget{Amount: 2_000_000, Currency: "EGP"},
		Sentiment:  models.SentimentNeutral,
		Urgency:    models.UrgencyLow,
		Confidence: 0.2,
	}, t0)

	t1 := t0.Add(time.Minute)
	merged := store.Merge("c1", models.PartialRequirement{
		Location:   &models.Location{Area: "Maadi", Confidence: 0.8},
		Sentiment:  models.SentimentPositive,
		Urgency:    models.UrgencyHigh,
		Confidence: 0.25,
	}, t1)

	// The budget from the first message survives the second merge.
	require.NotNil(t, merged.Budget)
	assert.Equal(t, 2_000_000.0, merged.Budget.Amount)
	require.NotNil(t, merged.Location)
	assert.Equal(t, "Maadi", merged.Location.Area)

	// Sentiment, urgency and confidence always track the latest message.
	assert.Equal(t, models.SentimentPositive, merged.Sentiment)
	assert.Equal(t, models.UrgencyHigh, merged.Urgency)
	assert.Equal(t, 0.25, merged.Confidence)
	assert.Equal(t, t1, merged.LastUpdated)
}

func TestRequirementMergeEmptyPartialKeepsFields(t *testing.T) {
	store := NewRequirementStore()
	t0 := time.Now()

	store.Merge("c1", models.PartialRequirement{
		Budget:    &models.Budget{Amount: 1_000_000, Currency: "EGP"},
		Location:  &models.Location{Area: "Zamalek", Confidence: 0.8},
		Sentiment: models.SentimentNeutral,
		Urgency:   models.UrgencyLow,
	}, t0)

	// A message that extracted nothing must not erase accumulated state.
	merged := store.Merge("c1", models.PartialRequirement{
		Sentiment: models.SentimentNeutral,
		Urgency:   models.UrgencyLow,
	}, t0.Add(time.Second))

	require.NotNil(t, merged.Budget)
	require.NotNil(t, merged.Location)
	assert.Equal(t, "Zamalek", merged.Location.Area)
}

func TestRequirementGetUnknownCustomer(t *testing.T) {
	store := NewRequirementStore()
	_, ok := store.Get("ghost")
	assert.False(t, ok)
}

func TestRequirementAllOrdersByRecency(t *testing.T) {
	store := NewRequirementStore()
	t0 := time.Now()

	store.Merge("older", models.PartialRequirement{Sentiment: models.SentimentNeutral, Urgency: models.UrgencyLow}, t0)
	store.Merge("newer", models.PartialRequirement{Sentiment: models.SentimentNeutral, Urgency: models.UrgencyLow}, t0.Add(time.Minute))

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].CustomerID)
	assert.Equal(t, "older", all[1].CustomerID)
}

func TestRequirementActiveCount(t *testing.T) {
	store := NewRequirementStore()
	now := time.Now()

	store.Merge("recent", models.PartialRequirement{Sentiment: models.SentimentNeutral, Urgency: models.UrgencyLow}, now.Add(-time.Hour))
	store.Merge("stale", models.PartialRequirement{Sentiment: models.SentimentNeutral, Urgency: models.UrgencyLow}, now.Add(-30*24*time.Hour))

	assert.Equal(t, 2, store.Count())
	assert.Equal(t, 1, store.ActiveCount(7*24*time.Hour, now))
}

func TestRequirementConcurrentMerges(t *testing.T) {
	store := NewRequirementStore()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			partial := models.PartialRequirement{
				Sentiment: models.SentimentNeutral,
				Urgency:   models.UrgencyLow,
			}
			if i%2 == 0 {
				partial.Budget = &models.Budget{Amount: 1_000_000, Currency: "EGP"}
			} else {
				partial.Location = &models.Location{Area: "Maadi", Confidence: 0.8}
			}
			store.Merge("c1", partial, now)
		}(i)
	}
	wg.Wait()

	got, ok := store.Get("c1")
	require.True(t, ok)
	assert.NotNil(t, got.Budget)
	assert.NotNil(t, got.Location)
	assert.Equal(t, 1, store.Count())
}
