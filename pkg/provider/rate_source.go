// Package provider defines the contracts for external collaborators the
// document generator consumes: the exchange-rate source and the PDF
// converter chain.
package provider

import (
	"context"
	"time"

	"github.com/linnik/docgen/pkg/domain"
)

// RateSource fetches the official exchange rate for a currency on a date.
type RateSource interface {
	// GetRate returns the rate of the local currency per one unit of the
	// given foreign currency on the given date. Expected absence of a rate
	// and transport failures both surface as domain.ErrRateUnavailable;
	// no retry is performed internally.
	GetRate(ctx context.Context, currency string, on time.Time) (*domain.ExchangeRate, error)

	// Name returns the source's name for logging and identification.
	Name() string
}

// PDFConverter turns rendered HTML into a PDF file at the given path.
type PDFConverter interface {
	// Convert writes the PDF artifact for the HTML content to outPath.
	Convert(ctx context.Context, html []byte, outPath string) error

	// Available reports whether the converter's backing tool is present.
	Available() bool

	// Name returns the converter's name for logging and identification.
	Name() string
}
