package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider supplies exchange rates for base-currency conversion. The
// engine consumes a rate, it never sources one; implementations may wrap a
// fixed table, a cache, or an external feed.
type RateProvider interface {
	// GetRate returns the multiplier that converts an amount in from-currency
	// into to-currency. Implementations must return a positive rate or an
	// error.
	GetRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}
