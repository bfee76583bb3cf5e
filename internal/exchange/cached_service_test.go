package exchange

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

type countingProvider struct {
	calls atomic.Int32
	rate  decimal.Decimal
	date  time.Time
	delay time.Duration
	err   error
}

func (p *countingProvider) Rate(_ context.Context, from, to models.Currency) (Rate, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return Rate{}, p.err
	}
	return Rate{From: from, To: to, Value: p.rate, Date: p.date}, nil
}

func TestCachedService_Convert(t *testing.T) {
	t.Parallel()

	rateDate := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	t.Run("uses cache for same pair", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("1.27"), date: rateDate}
		svc := NewCachedService(upstream, time.Hour)

		got1, err := svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyGBP, models.CurrencyUSD)
		require.NoError(t, err)
		require.Equal(t, decimal.RequireFromString("12.70"), got1.Amount)

		got2, err := svc.Convert(context.Background(), decimal.RequireFromString("-20"), "gbp", "usd")
		require.NoError(t, err)
		require.Equal(t, decimal.RequireFromString("-25.40"), got2.Amount)
		require.Equal(t, got1.Rate, got2.Rate)
		require.Equal(t, int32(1), upstream.calls.Load())
	})

	t.Run("cache key is per pair", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("1.2"), date: rateDate}
		svc := NewCachedService(upstream, time.Hour)

		_, err := svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyUSD, models.CurrencyGBP)
		require.NoError(t, err)
		_, err = svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyEUR, models.CurrencyGBP)
		require.NoError(t, err)
		require.Equal(t, int32(2), upstream.calls.Load())
	})

	t.Run("same currency never calls upstream", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("2"), date: rateDate}
		svc := NewCachedService(upstream, time.Hour)

		got, err := svc.Convert(context.Background(), decimal.RequireFromString("12.34"), models.CurrencyGBP, models.CurrencyGBP)
		require.NoError(t, err)
		require.Equal(t, decimal.RequireFromString("12.34"), got.Amount)
		require.Zero(t, upstream.calls.Load())
	})

	t.Run("expired entry triggers refresh", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("1.1"), date: rateDate}
		svc := NewCachedService(upstream, time.Nanosecond)

		_, err := svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyUSD, models.CurrencyGBP)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyUSD, models.CurrencyGBP)
		require.NoError(t, err)
		require.Equal(t, int32(2), upstream.calls.Load())
	})

	t.Run("ttl starts after upstream fetch completes", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("1.3"), date: rateDate, delay: 20 * time.Millisecond}
		svc := NewCachedService(upstream, 10*time.Millisecond)

		_, err := svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyUSD, models.CurrencyGBP)
		require.NoError(t, err)
		_, err = svc.Convert(context.Background(), decimal.RequireFromString("10"), models.CurrencyUSD, models.CurrencyGBP)
		require.NoError(t, err)

		// Should hit cache on second call despite slow upstream.
		require.Equal(t, int32(1), upstream.calls.Load())
	})

	t.Run("concurrent lookups share one fetch", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("0.85"), date: rateDate, delay: 30 * time.Millisecond}
		svc := NewCachedService(upstream, time.Hour)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Rate(context.Background(), models.CurrencyEUR, models.CurrencyGBP)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), upstream.calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{err: errors.New("boom")}
		svc := NewCachedService(upstream, time.Hour)

		_, err := svc.Rate(context.Background(), models.CurrencyEUR, models.CurrencyGBP)
		require.Error(t, err)
		_, err = svc.Rate(context.Background(), models.CurrencyEUR, models.CurrencyGBP)
		require.Error(t, err)
		require.Equal(t, int32(2), upstream.calls.Load())
	})

	t.Run("non-positive upstream rate rejected", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.Zero, date: rateDate}
		svc := NewCachedService(upstream, time.Hour)

		_, err := svc.Rate(context.Background(), models.CurrencyEUR, models.CurrencyGBP)
		require.ErrorIs(t, err, errInvalidNonPositiveRate)
	})

	t.Run("caller cancellation does not wait for upstream", func(t *testing.T) {
		t.Parallel()
		upstream := &countingProvider{rate: decimal.RequireFromString("1.5"), date: rateDate, delay: 100 * time.Millisecond}
		svc := NewCachedService(upstream, time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()
		_, err := svc.Rate(ctx, models.CurrencyUSD, models.CurrencyEUR)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
