// Package exchange looks up exchange rates so balances held in different
// currencies can be totalled in one base currency.
package exchange

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

var errInvalidNonPositiveRate = errors.New("conversion rate must be positive")

// Rate is the price of one unit of From in To.
type Rate struct {
	From  models.Currency
	To    models.Currency
	Value decimal.Decimal
	Date  time.Time
}

// ConversionResult contains converted amount details.
type ConversionResult struct {
	Amount   decimal.Decimal
	Rate     decimal.Decimal
	RateDate time.Time
}

// RateProvider fetches the current rate for a currency pair.
type RateProvider interface {
	Rate(ctx context.Context, from, to models.Currency) (Rate, error)
}

// Service converts amounts between currencies.
type Service interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (ConversionResult, error)
}

func identityRate(c models.Currency) Rate {
	return Rate{From: c, To: c, Value: decimal.NewFromInt(1), Date: time.Now().UTC()}
}

func applyRate(amount decimal.Decimal, r Rate) ConversionResult {
	return ConversionResult{
		Amount:   amount.Mul(r.Value).Round(2),
		Rate:     r.Value,
		RateDate: r.Date,
	}
}

func validateConversionRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return errInvalidNonPositiveRate
	}
	return nil
}
