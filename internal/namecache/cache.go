// Package namecache serves random names from per-sex lists fetched from a
// namesource.Source and reused for a short staleness window.
//
// Each sex has its own slot guarded by a mutex that is only ever acquired with
// TryLock. A request that finds its slot busy, including while another request
// is refreshing it, fails at once with sentinel.ErrConflict instead of
// waiting. The slot stays held for the whole upstream fetch, and nothing is
// refreshed in the background.
package namecache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/quartz"

	"genpi/internal/namesource"
	"genpi/internal/pi/models"
	"genpi/internal/platform/metrics"
	"genpi/pkg/platform/random"
	"genpi/pkg/platform/sentinel"
)

// DefaultTTL is the staleness window.
const DefaultTTL = 5 * time.Second

// entry is never mutated after construction; refreshes swap in a new one.
type entry struct {
	fetchedAt time.Time
	names     []models.Name
}

type slot struct {
	mu    sync.Mutex
	entry *entry
}

// Cache is built once at startup and shared by every request for the life of
// the process.
type Cache struct {
	source  namesource.Source
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   quartz.Clock
	ttl     time.Duration

	female slot
	male   slot
}

type Option func(*Cache)

// WithClock replaces the real clock, for tests.
func WithClock(c quartz.Clock) Option {
	return func(cache *Cache) {
		cache.clock = c
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(cache *Cache) {
		cache.ttl = ttl
	}
}

// WithMetrics records request outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cache *Cache) {
		cache.metrics = m
	}
}

// New creates an empty cache in front of source.
func New(source namesource.Source, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		logger: logger,
		clock:  quartz.NewReal(),
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate returns a uniformly chosen name of the given sex.
//
// A list younger than the TTL is reused. Otherwise a fresh list is fetched
// while the slot is held. When that fetch fails the error is returned; a slot
// that already had names keeps them, stamped with the time of the failed
// attempt, so the next request inside the window is served from them.
//
// Errors wrap sentinel.ErrConflict or namesource.ErrFetchFailed. Neither is
// retried here.
func (c *Cache) Generate(ctx context.Context, sex models.Sex) (models.Name, error) {
	s, err := c.slot(sex)
	if err != nil {
		return models.Name{}, err
	}

	if !s.mu.TryLock() {
		c.metrics.IncrementCacheRequest(sex.String(), metrics.OutcomeConflict)
		c.logger.DebugContext(ctx, "name cache slot busy", "sex", sex.String())
		return models.Name{}, fmt.Errorf("name cache %s slot: %w", sex, sentinel.ErrConflict)
	}
	defer s.mu.Unlock()

	now := c.clock.Now()
	if e := s.entry; e != nil && now.Sub(e.fetchedAt) <= c.ttl {
		c.metrics.IncrementCacheRequest(sex.String(), metrics.OutcomeHit)
		return random.Pick(e.names), nil
	}

	// The fetch outlives a caller that gives up; only the HTTP client's own
	// timeout ends it early.
	names, err := c.source.Fetch(context.WithoutCancel(ctx), sex)
	if err == nil && len(names) == 0 {
		err = fmt.Errorf("%w: empty name list", namesource.ErrFetchFailed)
	}
	if err != nil {
		c.metrics.IncrementCacheRequest(sex.String(), metrics.OutcomeFetchFailed)
		if s.entry != nil {
			s.entry = &entry{fetchedAt: now, names: s.entry.names}
		}
		c.logger.WarnContext(ctx, "name list refresh failed",
			"sex", sex.String(),
			"stale_retained", s.entry != nil,
			"error", err,
		)
		return models.Name{}, fmt.Errorf("refresh %s names: %w", sex, err)
	}

	s.entry = &entry{fetchedAt: now, names: names}
	c.metrics.IncrementCacheRequest(sex.String(), metrics.OutcomeFetched)
	c.logger.InfoContext(ctx, "name list refreshed", "sex", sex.String(), "count", len(names))
	return random.Pick(names), nil
}

func (c *Cache) slot(sex models.Sex) (*slot, error) {
	switch sex {
	case models.SexFemale:
		return &c.female, nil
	case models.SexMale:
		return &c.male, nil
	default:
		return nil, fmt.Errorf("name cache: unknown sex %d", int(sex))
	}
}
