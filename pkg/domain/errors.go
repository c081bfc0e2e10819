package domain

import "errors"

var (
	// ErrRateUnavailable is returned when the rate source has no rate for the
	// requested currency and date, or failed to reach the source at all.
	// A generation run must abort with zero artifacts when it sees this error.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrMissingRequiredField is returned when a required identity field
	// (customer name, contract date) is absent before any computation begins.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrRenderFailed is returned when template rendering fails.
	ErrRenderFailed = errors.New("document rendering failed")

	// ErrConversionUnavailable is returned when no PDF converter produced an
	// artifact and the HTML fallback is disabled by configuration.
	ErrConversionUnavailable = errors.New("pdf conversion unavailable")

	// ErrInvalidServiceEntry is returned for a service entry that matches
	// neither supported shape. Callers skip the entry and continue the batch.
	ErrInvalidServiceEntry = errors.New("invalid service entry")
)
