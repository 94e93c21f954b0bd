package domain

// TrendPoint is one bucket of a trend series.
type TrendPoint struct {
	Period string
	Counts MetricCounts
	Rates  RateSet
}

// BuildTrendSeries emits one point per period, in order. Counts missing from
// counts are zero. When rates is nil the rates are derived from the counts
// under mode; otherwise rates is used and periods absent from it get zero
// rates.
func BuildTrendSeries(periods []string, counts Series, rates map[string]RateSet, mode RateMode) []TrendPoint {
	out := make([]TrendPoint, 0, len(periods))
	for _, p := range periods {
		c, ok := counts[p]
		if !ok {
			c = NewMetricCounts()
		} else {
			c = c.Clone()
		}
		var r RateSet
		if rates == nil {
			r = ComputeRates(c, nil, mode)
		} else if rs, ok := rates[p]; ok {
			r = rs
		} else {
			r = NewRateSet()
		}
		out = append(out, TrendPoint{Period: p, Counts: c, Rates: r})
	}
	return out
}

// CohortRateSeries extracts the rates of each bucket aggregate.
func CohortRateSeries(buckets map[string]CohortAggregate) map[string]RateSet {
	out := make(map[string]RateSet, len(buckets))
	for key, agg := range buckets {
		out[key] = agg.Rates
	}
	return out
}
