package domain

import "time"

// MetricRow is one pre-aggregated count from the row source. Day is the zero
// time for range-scoped rows and the bucket day for daily rows.
type MetricRow struct {
	Advisor AdvisorKey
	Metric  string
	Count   int64
	Day     time.Time
}

// contribution returns the metric and value a row adds, ok=false for rows
// that contribute nothing. Revenue may be negative (refunds); stage counts
// may not.
func (r MetricRow) contribution() (Metric, int64, bool) {
	m, ok := ParseMetric(r.Metric)
	if !ok {
		return "", 0, false
	}
	if r.Count < 0 && m != MetricRevenue {
		return "", 0, false
	}
	return m, r.Count, true
}

// AggregatePeriod sums rows into per-advisor counts.
func AggregatePeriod(rows []MetricRow) map[AdvisorKey]MetricCounts {
	out := make(map[AdvisorKey]MetricCounts)
	for _, row := range rows {
		m, n, ok := row.contribution()
		if !ok {
			continue
		}
		counts, exists := out[row.Advisor]
		if !exists {
			counts = NewMetricCounts()
			out[row.Advisor] = counts
		}
		counts.Add(m, n)
	}
	return out
}

// SumAdvisorCounts totals every advisor's counts.
func SumAdvisorCounts(m map[AdvisorKey]MetricCounts) MetricCounts {
	total := NewMetricCounts()
	for _, c := range m {
		total.Merge(c)
	}
	return total
}

// CountsFor returns the counts of k, or zero counts.
func CountsFor(m map[AdvisorKey]MetricCounts, k AdvisorKey) MetricCounts {
	if c, ok := m[k]; ok {
		return c
	}
	return NewMetricCounts()
}

// Series is a bucket-keyed count series.
type Series map[string]MetricCounts

// AggregateDaily sums day-bucketed rows into a per-advisor day series. Rows
// without a day are dropped.
func AggregateDaily(rows []MetricRow) map[AdvisorKey]Series {
	out := make(map[AdvisorKey]Series)
	for _, row := range rows {
		if row.Day.IsZero() {
			continue
		}
		m, n, ok := row.contribution()
		if !ok {
			continue
		}
		series, exists := out[row.Advisor]
		if !exists {
			series = make(Series)
			out[row.Advisor] = series
		}
		key := BucketKey(row.Day, GranularityDay)
		counts, exists := series[key]
		if !exists {
			counts = NewMetricCounts()
			series[key] = counts
		}
		counts.Add(m, n)
	}
	return out
}

// MergeSeries sums several series bucket by bucket.
func MergeSeries(list ...Series) Series {
	merged := make(Series)
	for _, s := range list {
		for key, counts := range s {
			bucket, ok := merged[key]
			if !ok {
				bucket = NewMetricCounts()
				merged[key] = bucket
			}
			bucket.Merge(counts)
		}
	}
	return merged
}

// Regroup returns s at granularity g. s must be day keyed.
func (s Series) Regroup(g Granularity) Series {
	if g == GranularityMonth {
		return Series(GroupByMonth(s))
	}
	return s
}
