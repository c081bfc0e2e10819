package domain

import (
	"log/slog"
	"time"
)

// DateLayout is the presentation format for period boundaries in documents.
const DateLayout = "02.01.2006"

// ServicePeriod is one billing window: a start/end date pair with a free-text
// description of the work performed. Start is never after End.
type ServicePeriod struct {
	Description string
	Start       time.Time
	End         time.Time
}

// StartText returns the start date formatted for document presentation.
func (p ServicePeriod) StartText() string { return p.Start.Format(DateLayout) }

// EndText returns the end date formatted for document presentation.
func (p ServicePeriod) EndText() string { return p.End.Format(DateLayout) }

// DefaultPeriods derives the four default billing periods from the given
// reference date. The newest period runs from the 26th of the month before
// today's month to the 26th of today's month; the other three step back one
// calendar month each. Returned in ascending chronological order, so period
// i+1 starts exactly where period i ends. Only the year and month of today
// matter. Every Gregorian month has a 26th, so no overflow handling is
// needed.
func DefaultPeriods(today time.Time) []ServicePeriod {
	year, month, _ := today.Date()
	loc := today.Location()

	periods := make([]ServicePeriod, 0, 4)
	for i := 3; i >= 0; i-- {
		start := time.Date(year, month-time.Month(i)-1, 26, 0, 0, 0, 0, loc)
		end := time.Date(year, month-time.Month(i), 26, 0, 0, 0, 0, loc)
		periods = append(periods, ServicePeriod{Start: start, End: end})
	}
	return periods
}

// FallbackPeriod is the single window assigned to every service supplied as
// a plain description string: the 26th of the previous month to the 26th of
// the current month.
func FallbackPeriod(today time.Time) (start, end time.Time) {
	year, month, _ := today.Date()
	loc := today.Location()
	return time.Date(year, month-1, 26, 0, 0, 0, 0, loc),
		time.Date(year, month, 26, 0, 0, 0, 0, loc)
}

// ServiceInput is one caller-supplied service entry. Either Description alone
// is set (plain-string shape) or Description plus both dates (structured
// shape). An entry with only one date, or with no description, is malformed.
type ServiceInput struct {
	Description string
	Start       time.Time
	End         time.Time
}

// NormalizeServices turns caller-supplied entries into fully dated periods.
// Plain descriptions all receive the same fallback period for today; they
// are not distributed across the four default windows. Structured entries
// keep their own dates. A malformed entry is skipped with a warning and the
// batch proceeds; this is the only place partial failure is tolerated.
func NormalizeServices(inputs []ServiceInput, today time.Time, logger *slog.Logger) []ServicePeriod {
	if len(inputs) == 0 {
		return nil
	}
	fbStart, fbEnd := FallbackPeriod(today)

	out := make([]ServicePeriod, 0, len(inputs))
	for i, in := range inputs {
		switch {
		case in.Description == "":
			logger.Warn("skipping service entry without description",
				"index", i, "error", ErrInvalidServiceEntry)
		case in.Start.IsZero() && in.End.IsZero():
			out = append(out, ServicePeriod{Description: in.Description, Start: fbStart, End: fbEnd})
		case in.Start.IsZero() || in.End.IsZero() || in.Start.After(in.End):
			logger.Warn("skipping service entry with invalid period",
				"index", i, "description", in.Description, "error", ErrInvalidServiceEntry)
		default:
			out = append(out, ServicePeriod{Description: in.Description, Start: in.Start, End: in.End})
		}
	}
	return out
}
