package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linnik/docgen/pkg/domain"
)

func TestActNumber(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"tenth of august", time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), "1008"},
		{"same day different year", time.Date(2030, 8, 10, 0, 0, 0, 0, time.UTC), "1008"},
		{"single digit day and month", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "0501"},
		{"end of december", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "3112"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ActNumber(tt.date))
		})
	}
}

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  string
	}{
		// 202508 in octal
		{"august 2025", 2025, time.August, "613414"},
		// 202401 in octal
		{"january 2024", 2024, time.January, "613241"},
		// zero-padded month keeps the two-digit slot
		{"january 2025", 2025, time.January, "613405"},
		{"december 2025", 2025, time.December, "613420"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.InvoiceNumber(tt.year, tt.month))
		})
	}
}

func TestInvoiceNumberIsPure(t *testing.T) {
	first := domain.InvoiceNumber(2025, time.August)
	second := domain.InvoiceNumber(2025, time.August)
	assert.Equal(t, first, second, "recomputing for the same month must yield the same number")
}
