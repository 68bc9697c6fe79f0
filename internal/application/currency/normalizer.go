package currency

import (
	"context"
	"fmt"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RateProvider supplies the current ARS-per-USD sell rate.
type RateProvider interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}

// Normalizer converts currency-tagged money amounts to their canonical USD
// value. A rate is resolved once per request and reused for every amount in
// that request.
type Normalizer struct {
	provider RateProvider
}

// NewNormalizer creates a Normalizer backed by the given rate provider
func NewNormalizer(provider RateProvider) *Normalizer {
	return &Normalizer{provider: provider}
}

// Resolution is a rate resolved for one request. Rate is nil when the
// request is USD-denominated and no conversion applies.
type Resolution struct {
	Currency valueobject.Currency
	Rate     *decimal.Decimal
}

// Resolve determines the rate for a request. An explicit caller-supplied
// rate wins; otherwise the oracle is consulted. Oracle failure without an
// explicit rate aborts the whole financial operation.
func (n *Normalizer) Resolve(ctx context.Context, currency valueobject.Currency, explicitRate *decimal.Decimal) (Resolution, error) {
	if currency == valueobject.USD {
		return Resolution{Currency: currency}, nil
	}

	if explicitRate != nil {
		if explicitRate.LessThanOrEqual(decimal.Zero) {
			return Resolution{}, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
		}
		return Resolution{Currency: currency, Rate: explicitRate}, nil
	}

	rate, err := n.provider.CurrentRate(ctx)
	if err != nil {
		return Resolution{}, shared.NewDomainError("EXCHANGE_RATE_UNAVAILABLE",
			fmt.Sprintf("Failed to get exchange rate, please provide it manually: %v", err))
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return Resolution{}, shared.NewDomainError("EXCHANGE_RATE_UNAVAILABLE",
			fmt.Sprintf("Oracle returned a non-positive rate: %s", rate))
	}
	return Resolution{Currency: currency, Rate: &rate}, nil
}

// ToUSD converts an amount under this resolution. USD amounts pass through;
// ARS amounts divide by the rate, rounded to 2 decimals half up.
func (r Resolution) ToUSD(amount decimal.Decimal) decimal.Decimal {
	if r.Rate == nil {
		return amount
	}
	converted, err := valueobject.NewMoneyARS(amount).ToUSD(*r.Rate)
	if err != nil {
		// Resolve only hands out positive rates.
		return amount
	}
	return converted.Amount()
}

// ToUSDPtr converts an optional amount, preserving nil
func (r Resolution) ToUSDPtr(amount *decimal.Decimal) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	usd := r.ToUSD(*amount)
	return &usd
}
