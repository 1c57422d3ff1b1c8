package stores

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

func validProperty(id string) models.Property {
	return models.Property{
		ID:       id,
		Title:    "Test property " + id,
		Type:     "apartment",
		Location: "Maadi",
		Price:    1_000_000,
		SizeSqm:  120,
		Bedrooms: 2,
		Status:   models.StatusAvailable,
	}
}

func TestInventoryUpsertAndGet(t *testing.T) {
	store := NewInventoryStore()

	require.NoError(t, store.Upsert(validProperty("p1")))
	got, ok := store.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, 1, store.Count())

	// Upsert with the same id fully replaces the entry.
	updated := validProperty("p1")
	updated.Price = 1_200_000
	require.NoError(t, store.Upsert(updated))
	got, _ = store.Get("p1")
	assert.Equal(t, 1_200_000.0, got.Price)
	assert.Equal(t, 1, store.Count())
}

func TestInventoryUpsertRejectsInvalid(t *testing.T) {
	store := NewInventoryStore()

	bad := validProperty("p1")
	bad.Price = 0
	err := store.Upsert(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidProperty))
	assert.Zero(t, store.Count())

	noID := validProperty("")
	err = store.Upsert(noID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidProperty))
}

func TestInventoryRemove(t *testing.T) {
	store := NewInventoryStore()
	require.NoError(t, store.Upsert(validProperty("p1")))

	assert.True(t, store.Remove("p1"))
	assert.Zero(t, store.Count())

	// Removing an absent id is a no-op.
	assert.False(t, store.Remove("p1"))
	assert.False(t, store.Remove("nope"))
}

func TestInventoryAllIsSortedSnapshot(t *testing.T) {
	store := NewInventoryStore()
	require.NoError(t, store.Upsert(validProperty("b")))
	require.NoError(t, store.Upsert(validProperty("a")))
	require.NoError(t, store.Upsert(validProperty("c")))

	all := store.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)

	// Mutating the snapshot does not touch the store.
	all[0].Price = 1
	got, _ := store.Get("a")
	assert.Equal(t, 1_000_000.0, got.Price)
}

func TestInventoryReplace(t *testing.T) {
	store := NewInventoryStore()
	require.NoError(t, store.Upsert(validProperty("old")))

	invalid := validProperty("bad")
	invalid.Price = -5

	count := store.Replace([]models.Property{
		validProperty("n1"),
		validProperty("n2"),
		invalid,
	})
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.Count())

	// Replace is replace-all: entries absent from the source are dropped.
	_, ok := store.Get("old")
	assert.False(t, ok)
}

func TestInventoryAvailableCount(t *testing.T) {
	store := NewInventoryStore()
	require.NoError(t, store.Upsert(validProperty("p1")))

	sold := validProperty("p2")
	sold.Status = models.StatusUnavailable
	require.NoError(t, store.Upsert(sold))

	assert.Equal(t, 2, store.Count())
	assert.Equal(t, 1, store.AvailableCount())
}
