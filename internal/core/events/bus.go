// Package events delivers "matching updated" notifications to the UI and
// notification layers. In-process subscribers always get the event; when a
// redis client is attached the event is additionally published on a pub/sub
// channel for external consumers.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// DefaultChannel is the redis pub/sub channel for matching updates.
const DefaultChannel = "matcher:updates"

// MatchingUpdate is emitted on every re-match, single or bulk.
type MatchingUpdate struct {
	EventID    string               `json:"eventId"`
	CustomerID string               `json:"customerId"`
	Matches    []models.MatchResult `json:"matches"`
	At         time.Time            `json:"at"`
}

// Bus fans MatchingUpdate events out to subscribers.
type Bus struct {
	mu      sync.RWMutex
	subs    []func(MatchingUpdate)
	redis   *redis.Client
	channel string
}

func NewBus() *Bus {
	return &Bus{channel: DefaultChannel}
}

// WithRedis attaches a redis client; events are then mirrored to pub/sub.
func (b *Bus) WithRedis(client *redis.Client, channel string) *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.redis = client
	if channel != "" {
		b.channel = channel
	}
	return b
}

// Subscribe registers an in-process callback. Callbacks run synchronously on
// the publishing goroutine and must be quick.
func (b *Bus) Subscribe(fn func(MatchingUpdate)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the event. Redis failures are logged, never propagated;
// delivery is best-effort.
func (b *Bus) Publish(ctx context.Context, customerID string, matches []models.MatchResult) {
	update := MatchingUpdate{
		EventID:    uuid.NewString(),
		CustomerID: customerID,
		Matches:    matches,
		At:         time.Now(),
	}

	b.mu.RLock()
	subs := make([]func(MatchingUpdate), len(b.subs))
	copy(subs, b.subs)
	client := b.redis
	channel := b.channel
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(update)
	}

	if client == nil {
		return
	}
	payload, err := json.Marshal(update)
	if err != nil {
		log.Error().Err(err).Msg("Failed to serialize matching update")
		return
	}
	if err := client.Publish(ctx, channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("Failed to publish matching update to redis")
	}
}
