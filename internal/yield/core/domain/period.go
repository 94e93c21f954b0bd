package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the ISO calendar date layout used for ranges and day keys.
	DateLayout = "2006-01-02"
	// MonthLayout is the layout of month bucket keys.
	MonthLayout = "2006-01"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is an inclusive span of calendar days with Start <= End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses an ISO date (a trailing time part is ignored).
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// NewDateRange builds a range over the calendar days of start and end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, s.Format(DateLayout), e.Format(DateLayout))
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseDateRange parses inclusive ISO from/to dates.
func ParseDateRange(from, to string) (DateRange, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return DateRange{}, fmt.Errorf("%w: from and to are required", ErrInvalidDateRange)
	}
	s, err := ParseDay(from)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: from: %v", ErrInvalidDateRange, err)
	}
	e, err := ParseDay(to)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: to: %v", ErrInvalidDateRange, err)
	}
	return NewDateRange(s, e)
}

// Contains reports whether the calendar day of t lies in r. The zero time
// is never contained.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days is the inclusive number of days in r.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndDate() string   { return r.End.Format(DateLayout) }

// PeriodID is the YYYY-MM of the range start, the key goal targets use.
func (r DateRange) PeriodID() string { return r.Start.Format(MonthLayout) }

// PreviousRange returns the equally long range ending the day before start.
// ok is false when start is after end.
func PreviousRange(start, end time.Time) (prev DateRange, ok bool) {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return DateRange{}, false
	}
	diffDays := int(e.Sub(s).Hours() / 24)
	prevEnd := s.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -diffDays)
	return DateRange{Start: prevStart, End: prevEnd}, true
}

// Granularity is the bucket size of a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// BucketKey returns the day or month key t falls into.
func BucketKey(t time.Time, g Granularity) string {
	if g == GranularityDay {
		return Day(t).Format(DateLayout)
	}
	return Day(t).Format(MonthLayout)
}

// EnumeratePeriods lists every bucket key touched by r, in order.
func EnumeratePeriods(r DateRange, g Granularity) []string {
	if r.Start.After(r.End) {
		return nil
	}
	if g == GranularityDay {
		out := make([]string, 0, r.Days())
		for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
			out = append(out, d.Format(DateLayout))
		}
		return out
	}
	var out []string
	cursor := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(r.End.Year(), r.End.Month(), 1, 0, 0, 0, 0, time.UTC)
	for ; !cursor.After(last); cursor = cursor.AddDate(0, 1, 0) {
		out = append(out, cursor.Format(MonthLayout))
	}
	return out
}

// GroupByMonth folds a day-keyed series into month buckets by summing
// every day sharing a YYYY-MM prefix.
func GroupByMonth(daily map[string]MetricCounts) map[string]MetricCounts {
	monthly := make(map[string]MetricCounts)
	for day, counts := range daily {
		if len(day) < len(MonthLayout) {
			continue
		}
		key := day[:len(MonthLayout)]
		bucket, ok := monthly[key]
		if !ok {
			bucket = NewMetricCounts()
			monthly[key] = bucket
		}
		bucket.Merge(counts)
	}
	return monthly
}
