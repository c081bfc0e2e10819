package domain

import (
	"strconv"
	"time"
)

// ActNumber derives the human-facing act number from the generation date:
// the two-digit day followed by the two-digit month. The year is deliberately
// absent; acts are additionally tagged with a year/month stamp in their file
// name, so cross-year collisions of the in-document number are accepted.
func ActNumber(on time.Time) string {
	return on.Format("0201")
}

// InvoiceNumber derives the invoice number for a calendar month: the decimal
// concatenation of the year and zero-padded month (YYYYMM) is read as one
// integer and rendered in octal, without a radix prefix. Pure function of
// (year, month); regenerating within the same month yields the same number.
func InvoiceNumber(year int, month time.Month) string {
	n := int64(year)*100 + int64(month)
	return strconv.FormatInt(n, 8)
}
