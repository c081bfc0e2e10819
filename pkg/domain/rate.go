// Package domain holds the core billing types and computations: exchange
// rates, payable amounts with their rounding policies, document numbering
// and default billing periods.
//
// Invariants:
//   - An ExchangeRate is positive, scoped to a single calculation call and
//     never cached across dates.
//   - Amounts are presented with rounding already applied; templates and
//     other consumers must not re-round.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a quote of the local settlement currency per one unit of
// a foreign currency on a specific date. The rate is already normalized:
// sources that quote a lot value divide it by the lot size before
// constructing this value.
type ExchangeRate struct {
	Currency string          // 3-letter code of the foreign currency, e.g. "USD"
	Rate     decimal.Decimal // units of RUB per one unit of Currency
	Date     time.Time       // the date the quote is valid for
	Source   string          // provider name, for logging
}

// Valid reports whether the rate can be used for amount computation.
func (r ExchangeRate) Valid() bool {
	return r.Rate.IsPositive() && len(r.Currency) == 3
}
