package domain

// MetricCounts holds one value per metric key. Values built through
// NewMetricCounts always carry every key.
type MetricCounts map[Metric]int64

// NewMetricCounts returns a zero-filled MetricCounts.
func NewMetricCounts() MetricCounts {
	c := make(MetricCounts, len(MetricKeys))
	for _, k := range MetricKeys {
		c[k] = 0
	}
	return c
}

// Get returns the value for m, 0 when absent.
func (c MetricCounts) Get(m Metric) int64 {
	return c[m]
}

// Add accumulates n into m. Unknown metrics are dropped.
func (c MetricCounts) Add(m Metric, n int64) {
	if _, ok := metricIndex[m]; !ok {
		return
	}
	c[m] += n
}

// Merge adds every known key of other into c.
func (c MetricCounts) Merge(other MetricCounts) {
	for _, k := range MetricKeys {
		c[k] += other[k]
	}
}

// Clone returns a full-key copy of c.
func (c MetricCounts) Clone() MetricCounts {
	out := NewMetricCounts()
	out.Merge(c)
	return out
}

// Numerators holds cohort conversion counts keyed by rate.
type Numerators map[RateKey]int64

// NewNumerators returns a zero-filled Numerators.
func NewNumerators() Numerators {
	n := make(Numerators, len(RateDefs))
	for _, d := range RateDefs {
		n[d.Key] = 0
	}
	return n
}

// NumeratorsFromCounts uses the numerator stage counts as step numerators,
// which is how period mode computes step rates.
func NumeratorsFromCounts(c MetricCounts) Numerators {
	n := NewNumerators()
	for _, d := range RateDefs {
		n[d.Key] = c.Get(d.Numerator)
	}
	return n
}

// RateSet holds percentages keyed by rate.
type RateSet map[RateKey]float64

// NewRateSet returns a zero-filled RateSet.
func NewRateSet() RateSet {
	r := make(RateSet, len(RateDefs))
	for _, d := range RateDefs {
		r[d.Key] = 0
	}
	return r
}
