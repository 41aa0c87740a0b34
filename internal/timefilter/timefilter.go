package timefilter

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"backend/internal/model"
)

// ErrInvalidArgument is returned for out-of-range quarters, inverted date
// ranges and non-positive day windows.
var ErrInvalidArgument = errors.New("invalid filter argument")

// rangeLayout is the ISO local datetime accepted by the range filter.
const rangeLayout = "2006-01-02T15:04:05"

// Engine buckets requests by calendar period in one configured time zone.
// Both the reference "now" and every record timestamp are converted into that
// zone before comparison. Filters never mutate their input; the result is a
// fresh slice sorted by creation time descending.
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// New builds an engine using the wall clock.
func New(loc *time.Location) *Engine {
	return NewWithClock(loc, time.Now)
}

// NewWithClock builds an engine with an injectable clock.
func NewWithClock(loc *time.Location, now func() time.Time) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc, now: now}
}

// Location returns the configured zone.
func (e *Engine) Location() *time.Location { return e.loc }

func (e *Engine) local(t time.Time) time.Time { return t.In(e.loc) }

func (e *Engine) localNow() time.Time { return e.now().In(e.loc) }

// dateOf truncates a zoned instant to its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// withinDates reports start <= day(t) <= end, all in the engine zone.
func withinDates(t, start, end time.Time) bool {
	d := dateOf(t)
	return !d.Before(start) && !d.After(end)
}

// filter applies keep over a copy and returns it newest-first.
func (e *Engine) filter(requests []model.Request, keep func(local time.Time) bool) []model.Request {
	out := make([]model.Request, 0, len(requests))
	for _, r := range requests {
		if keep(e.local(r.CreatedAt)) {
			out = append(out, r)
		}
	}
	sortByCreatedDesc(out)
	return out
}

func sortByCreatedDesc(requests []model.Request) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}

// SortedByDateDesc returns a newest-first copy without filtering.
func (e *Engine) SortedByDateDesc(requests []model.Request) []model.Request {
	out := make([]model.Request, len(requests))
	copy(out, requests)
	sortByCreatedDesc(out)
	return out
}

// ByToday keeps requests created on the current calendar day.
func (e *Engine) ByToday(requests []model.Request) []model.Request {
	today := dateOf(e.localNow())
	return e.filter(requests, func(t time.Time) bool {
		return dateOf(t).Equal(today)
	})
}

// ByCurrentWeek keeps requests created between Monday and Sunday of the week
// containing today, inclusive on both ends.
func (e *Engine) ByCurrentWeek(requests []model.Request) []model.Request {
	today := dateOf(e.localNow())
	wd := int(today.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week
	}
	monday := today.AddDate(0, 0, -(wd - 1))
	sunday := monday.AddDate(0, 0, 6)
	return e.filter(requests, func(t time.Time) bool {
		return withinDates(t, monday, sunday)
	})
}

// ByCurrentMonth keeps requests created in the current calendar month.
func (e *Engine) ByCurrentMonth(requests []model.Request) []model.Request {
	now := e.localNow()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, e.loc)
	last := first.AddDate(0, 1, -1)
	return e.filter(requests, func(t time.Time) bool {
		return withinDates(t, first, last)
	})
}

// ByCurrentYear keeps requests created in the current calendar year.
func (e *Engine) ByCurrentYear(requests []model.Request) []model.Request {
	year := e.localNow().Year()
	return e.filter(requests, func(t time.Time) bool {
		return t.Year() == year
	})
}

// ByQuarter keeps requests whose creation month falls in quarter n of any
// year. Quarter numbering is 1-based: Q1 is January through March.
func (e *Engine) ByQuarter(requests []model.Request, n int) ([]model.Request, error) {
	if n < 1 || n > 4 {
		return nil, fmt.Errorf("%w: quarter must be 1..4, got %d", ErrInvalidArgument, n)
	}
	return e.filter(requests, func(t time.Time) bool {
		return quarterOf(t) == n
	}), nil
}

// ByQuarterOfYear is the year-scoped sibling of ByQuarter.
func (e *Engine) ByQuarterOfYear(requests []model.Request, n, year int) ([]model.Request, error) {
	if n < 1 || n > 4 {
		return nil, fmt.Errorf("%w: quarter must be 1..4, got %d", ErrInvalidArgument, n)
	}
	return e.filter(requests, func(t time.Time) bool {
		return t.Year() == year && quarterOf(t) == n
	}), nil
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// ByDateTimeRange keeps requests created within [start, end], inclusive.
func (e *Engine) ByDateTimeRange(requests []model.Request, start, end time.Time) ([]model.Request, error) {
	start, end = e.local(start), e.local(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: range start is after range end", ErrInvalidArgument)
	}
	return e.filter(requests, func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}), nil
}

// ByDateTimeRangeStrings parses ISO local datetimes in the configured zone
// and delegates to ByDateTimeRange.
func (e *Engine) ByDateTimeRangeStrings(requests []model.Request, from, to string) ([]model.Request, error) {
	start, err := time.ParseInLocation(rangeLayout, from, e.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: range start: %v", ErrInvalidArgument, err)
	}
	end, err := time.ParseInLocation(rangeLayout, to, e.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: range end: %v", ErrInvalidArgument, err)
	}
	return e.ByDateTimeRange(requests, start, end)
}

// ByLastNDays keeps requests created in the window of n calendar days ending
// today; today counts as day one.
func (e *Engine) ByLastNDays(requests []model.Request, n int) ([]model.Request, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: day window must be positive, got %d", ErrInvalidArgument, n)
	}
	today := dateOf(e.localNow())
	first := today.AddDate(0, 0, -(n - 1))
	return e.filter(requests, func(t time.Time) bool {
		return withinDates(t, first, today)
	}), nil
}

// Hour-of-day partitions. Boundaries are minute-granular and inclusive as
// enumerated; shifting them is user-visible.

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ByMorning keeps requests created between 06:00 and 12:00 inclusive.
func (e *Engine) ByMorning(requests []model.Request) []model.Request {
	return e.filter(requests, func(t time.Time) bool {
		m := minuteOfDay(t)
		return m >= 6*60 && m <= 12*60
	})
}

// ByAfternoon keeps requests created between 12:00 and 18:00 inclusive.
func (e *Engine) ByAfternoon(requests []model.Request) []model.Request {
	return e.filter(requests, func(t time.Time) bool {
		m := minuteOfDay(t)
		return m >= 12*60 && m <= 18*60
	})
}

// ByEvening keeps requests created at 18:00 or later.
func (e *Engine) ByEvening(requests []model.Request) []model.Request {
	return e.filter(requests, func(t time.Time) bool {
		return minuteOfDay(t) >= 18*60
	})
}

// ByNight keeps requests created before 06:00.
func (e *Engine) ByNight(requests []model.Request) []model.Request {
	return e.filter(requests, func(t time.Time) bool {
		return minuteOfDay(t) < 6*60
	})
}

// ByBusinessHours keeps requests created between 09:00 and 18:00 inclusive.
func (e *Engine) ByBusinessHours(requests []model.Request) []model.Request {
	return e.filter(requests, func(t time.Time) bool {
		m := minuteOfDay(t)
		return m >= 9*60 && m <= 18*60
	})
}
