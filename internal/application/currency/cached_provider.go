package currency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultRateTTL is how long a fetched rate stays valid.
const DefaultRateTTL = time.Hour

// RateCache stores one time-boxed exchange rate.
type RateCache interface {
	Get(ctx context.Context) (decimal.Decimal, bool, error)
	Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration) error
}

// CachedRateProvider decorates a RateProvider with a time-boxed cache so the
// external oracle is consulted at most once per TTL window.
type CachedRateProvider struct {
	provider RateProvider
	cache    RateCache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCachedRateProvider wraps the provider with the given cache
func NewCachedRateProvider(provider RateProvider, cache RateCache, ttl time.Duration, logger *zap.Logger) *CachedRateProvider {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRateProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// CurrentRate returns the cached rate when fresh, otherwise fetches from the
// underlying provider and refreshes the cache. Cache failures degrade to a
// direct fetch; they never fail the lookup on their own.
func (p *CachedRateProvider) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	rate, ok, err := p.cache.Get(ctx)
	if err != nil {
		p.logger.Warn("rate cache read failed", zap.Error(err))
	} else if ok {
		return rate, nil
	}

	rate, err = p.provider.CurrentRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if err := p.cache.Set(ctx, rate, p.ttl); err != nil {
		p.logger.Warn("rate cache write failed", zap.Error(err))
	}
	return rate, nil
}

var _ RateProvider = (*CachedRateProvider)(nil)
