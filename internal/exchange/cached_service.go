package exchange

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/logger"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

type cachedRateEntry struct {
	Rate      Rate
	ExpiresAt time.Time
}

const maxCleanupInterval = 5 * time.Minute

// CachedService wraps a RateProvider with in-memory TTL caching.
// Cache entries are keyed by normalized "FROM->TO" currency pair and
// concurrent lookups of the same pair share one upstream request.
type CachedService struct {
	inner RateProvider
	ttl   time.Duration
	group singleflight.Group

	mu          sync.RWMutex
	rates       map[string]cachedRateEntry
	lastCleanup time.Time
}

// NewCachedService returns a converter that caches exchange rates in memory.
func NewCachedService(inner RateProvider, ttl time.Duration) *CachedService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		rates: make(map[string]cachedRateEntry),
	}
}

func pairKey(from, to models.Currency) string {
	return string(normalize(from)) + "->" + string(normalize(to))
}

// Rate returns the cached rate for the pair, fetching it when missing or expired.
func (s *CachedService) Rate(ctx context.Context, from, to models.Currency) (Rate, error) {
	if s.inner == nil {
		return Rate{}, errors.New("inner exchange service is required")
	}
	if normalize(from) == normalize(to) {
		return identityRate(normalize(from)), nil
	}

	key := pairKey(from, to)
	now := time.Now()

	s.mu.RLock()
	entry, ok := s.rates[key]
	s.mu.RUnlock()
	if ok && now.Before(entry.ExpiresAt) {
		return entry.Rate, nil
	}

	// The fetch is detached from a single caller's cancellation so one
	// deadline-bound caller cannot fail every waiter on the same pair.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), key, from, to)
	})

	select {
	case <-ctx.Done():
		return Rate{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Rate{}, res.Err
		}
		return res.Val.(Rate), nil
	}
}

// Convert returns converted amount using cached rate when available.
func (s *CachedService) Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (ConversionResult, error) {
	r, err := s.Rate(ctx, from, to)
	if err != nil {
		return ConversionResult{}, err
	}
	return applyRate(amount, r), nil
}

func (s *CachedService) fetch(ctx context.Context, key string, from, to models.Currency) (Rate, error) {
	r, err := s.inner.Rate(ctx, from, to)
	if err == nil {
		err = validateConversionRate(r.Value)
	}
	if err != nil {
		logger.Log.Warn().Err(err).Str("pair", key).Msg("Exchange rate lookup failed")
		return Rate{}, err
	}

	fetchedAt := time.Now()
	s.mu.Lock()
	s.rates[key] = cachedRateEntry{Rate: r, ExpiresAt: fetchedAt.Add(s.ttl)}
	s.cleanupExpiredLocked(fetchedAt)
	s.mu.Unlock()

	logger.Log.Debug().Str("pair", key).Str("rate", r.Value.String()).Msg("Exchange rate cached")
	return r, nil
}

func (s *CachedService) cleanupExpiredLocked(now time.Time) {
	interval := min(s.ttl, maxCleanupInterval)
	if !s.lastCleanup.IsZero() && now.Sub(s.lastCleanup) < interval {
		return
	}
	for pair, entry := range s.rates {
		if !now.Before(entry.ExpiresAt) {
			delete(s.rates, pair)
		}
	}
	s.lastCleanup = now
}
