package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	ARS Currency = "ARS" // Argentine Peso
	USD Currency = "USD" // US Dollar (canonical)
)

// CanonicalCurrency is the currency every money value is normalized to
const CanonicalCurrency = USD

// ParseCurrency validates a currency code string. An empty string defaults
// to USD, matching how untagged amounts are treated throughout the system.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case "":
		return USD, nil
	case ARS, USD:
		return Currency(s), nil
	default:
		return "", fmt.Errorf("unsupported currency: %q", s)
	}
}

// Money is an immutable currency-tagged amount. All operations return new
// Money instances.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoneyUSD creates Money in USD
func NewMoneyUSD(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: USD}
}

// NewMoneyARS creates Money in ARS
func NewMoneyARS(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: ARS}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// MulInt returns the amount multiplied by an integer quantity
func (m Money) MulInt(qty int) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(int64(qty))),
		currency: m.currency,
	}
}

// ToUSD converts the amount to the canonical USD value using the given
// ARS-per-USD rate. USD amounts pass through unchanged. ARS amounts are
// divided by the rate and rounded to 2 decimal places, half up.
func (m Money) ToUSD(rate decimal.Decimal) (Money, error) {
	if m.currency == USD {
		return m, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return Money{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	return Money{
		amount:   m.amount.DivRound(rate, 2),
		currency: USD,
	}, nil
}

// String returns a human-readable representation
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}
