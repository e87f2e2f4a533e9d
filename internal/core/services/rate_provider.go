package services

import (
	"context"
	"fmt"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	portsrepo "github.com/arthaworks/ledgerengine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// staticRateProvider serves exchange rates from a fixed table. Rates are keyed
// "FROM/TO"; the inverse pair is derived when only one direction is known.
type staticRateProvider struct {
	rates map[string]decimal.Decimal
}

// NewStaticRateProvider builds a provider over a fixed rate table keyed
// "FROM/TO", for example {"USD/IDR": 15500}.
func NewStaticRateProvider(rates map[string]decimal.Decimal) portsrepo.RateProvider {
	copied := make(map[string]decimal.Decimal, len(rates))
	for pair, rate := range rates {
		copied[pair] = rate
	}
	return &staticRateProvider{rates: copied}
}

var _ portsrepo.RateProvider = (*staticRateProvider)(nil)

func (p *staticRateProvider) GetRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := p.rates[fromCurrency+"/"+toCurrency]; ok {
		return rate, nil
	}
	if inverse, ok := p.rates[toCurrency+"/"+fromCurrency]; ok && !inverse.IsZero() {
		return decimal.NewFromInt(1).DivRound(inverse, 10), nil
	}
	return decimal.Zero, apperrors.NewCurrencyConversionError(fmt.Sprintf("no exchange rate configured for %s/%s", fromCurrency, toCurrency))
}
