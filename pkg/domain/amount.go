package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rounding selects how the exact product of base rate and exchange rate is
// brought to a presentable ruble amount. Two policies coexist in this domain
// and must not be interchanged: act-only generation truncates, combined
// act+invoice generation rounds to the nearest 10 rubles.
type Rounding int

const (
	// RoundTruncate drops the fractional part of the exact amount.
	RoundTruncate Rounding = iota
	// RoundNearestTen rounds the exact amount to the nearest multiple of 10,
	// ties rounding up.
	RoundNearestTen
)

func (r Rounding) String() string {
	switch r {
	case RoundTruncate:
		return "truncate"
	case RoundNearestTen:
		return "nearest-10"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// Money is a non-negative ruble amount with its rounding already applied.
type Money struct {
	Amount   int64
	Currency string
}

// String renders the amount with a currency tag, e.g. "1333360 RUB".
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

// RUB is the local settlement currency for every generated document.
const RUB = "RUB"

var ten = decimal.NewFromInt(10)

// ComputeAmount multiplies the configured base rate (foreign-currency units)
// by the fetched exchange rate and applies the chosen rounding policy.
// The multiplication is exact decimal arithmetic with no intermediate
// rounding. Callers must short-circuit on a missing rate before reaching
// this point; ComputeAmount assumes the rate is present and valid.
func ComputeAmount(baseRate int64, rate ExchangeRate, policy Rounding) Money {
	exact := decimal.NewFromInt(baseRate).Mul(rate.Rate)

	var rounded decimal.Decimal
	switch policy {
	case RoundNearestTen:
		// round(exact / 10) * 10, half up
		rounded = exact.Div(ten).Round(0).Mul(ten)
	default:
		rounded = exact.Floor()
	}

	return Money{Amount: rounded.IntPart(), Currency: RUB}
}
