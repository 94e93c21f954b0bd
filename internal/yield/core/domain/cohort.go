package domain

import "time"

// StageDates holds the first date a candidate reached each funnel stage.
// A zero time means the stage was never reached.
type StageDates struct {
	NewInterviews       time.Time
	Proposals           time.Time
	Recommendations     time.Time
	InterviewsScheduled time.Time
	InterviewsHeld      time.Time
	Offers              time.Time
	Accepts             time.Time
	Hires               time.Time
}

// Get returns the date of stage, zero for non-stage metrics.
func (d StageDates) Get(stage Metric) time.Time {
	switch stage {
	case MetricNewInterviews:
		return d.NewInterviews
	case MetricProposals:
		return d.Proposals
	case MetricRecommendations:
		return d.Recommendations
	case MetricInterviewsScheduled:
		return d.InterviewsScheduled
	case MetricInterviewsHeld:
		return d.InterviewsHeld
	case MetricOffers:
		return d.Offers
	case MetricAccepts:
		return d.Accepts
	case MetricHires:
		return d.Hires
	default:
		return time.Time{}
	}
}

// StageDateRecord is one candidate's funnel timeline.
type StageDateRecord struct {
	CandidateID int64
	Advisor     AdvisorKey
	Dates       StageDates
}

// CohortAggregate is the cohort view of one range, bucket or advisor.
type CohortAggregate struct {
	Counts     MetricCounts
	Numerators Numerators
	Rates      RateSet
}

// NewCohortAggregate returns a zero aggregate with rates for mode.
func NewCohortAggregate(mode RateMode) CohortAggregate {
	agg := CohortAggregate{Counts: NewMetricCounts(), Numerators: NewNumerators()}
	agg.finalize(mode)
	return agg
}

func (a *CohortAggregate) finalize(mode RateMode) {
	a.Rates = ComputeRates(a.Counts, a.Numerators, mode)
}

// hasReached reports whether next was reached on or after from.
func hasReached(from, next time.Time) bool {
	if from.IsZero() || next.IsZero() {
		return false
	}
	return !Day(next).Before(Day(from))
}

// cohortAccumulator applies the reached/numerator rules for every stage of a
// record. bucketFor returns the aggregate a stage date lands in, or nil when
// the date is outside the window.
type cohortAccumulator struct {
	bucketFor func(t time.Time) *CohortAggregate
}

func (acc cohortAccumulator) apply(rec StageDateRecord) {
	for _, stage := range FunnelStages {
		at := rec.Dates.Get(stage)
		if at.IsZero() {
			continue
		}
		agg := acc.bucketFor(at)
		if agg == nil {
			continue
		}
		agg.Counts[stage]++
		for _, def := range ratesFrom(stage) {
			if hasReached(at, rec.Dates.Get(def.Numerator)) {
				agg.Numerators[def.Key]++
			}
		}
	}
}

func zeroAggregate() *CohortAggregate {
	return &CohortAggregate{Counts: NewMetricCounts(), Numerators: NewNumerators()}
}

// CohortRange aggregates records whose stage dates fall in r.
func CohortRange(records []StageDateRecord, r DateRange, mode RateMode) CohortAggregate {
	agg := zeroAggregate()
	acc := cohortAccumulator{bucketFor: func(t time.Time) *CohortAggregate {
		if !r.Contains(t) {
			return nil
		}
		return agg
	}}
	for _, rec := range records {
		acc.apply(rec)
	}
	agg.finalize(mode)
	return *agg
}

// CohortByAdvisor partitions records by advisor key and aggregates each
// partition over r. Every advisor with at least one record gets an entry.
func CohortByAdvisor(records []StageDateRecord, r DateRange, mode RateMode) map[AdvisorKey]CohortAggregate {
	partitions := make(map[AdvisorKey][]StageDateRecord)
	for _, rec := range records {
		partitions[rec.Advisor] = append(partitions[rec.Advisor], rec)
	}
	out := make(map[AdvisorKey]CohortAggregate, len(partitions))
	for key, recs := range partitions {
		out[key] = CohortRange(recs, r, mode)
	}
	return out
}

// CohortBuckets aggregates records per bucket of r at granularity g. Every
// enumerated period is present, zero-filled when nothing landed in it.
func CohortBuckets(records []StageDateRecord, r DateRange, g Granularity, mode RateMode) map[string]CohortAggregate {
	buckets := make(map[string]*CohortAggregate)
	for _, p := range EnumeratePeriods(r, g) {
		buckets[p] = zeroAggregate()
	}
	acc := cohortAccumulator{bucketFor: func(t time.Time) *CohortAggregate {
		if !r.Contains(t) {
			return nil
		}
		return buckets[BucketKey(t, g)]
	}}
	for _, rec := range records {
		acc.apply(rec)
	}
	out := make(map[string]CohortAggregate, len(buckets))
	for key, agg := range buckets {
		agg.finalize(mode)
		out[key] = *agg
	}
	return out
}

// CohortAdvisorZero returns a zero aggregate factory for MergeAdvisorMaps.
func CohortAdvisorZero(mode RateMode) func() CohortAggregate {
	return func() CohortAggregate { return NewCohortAggregate(mode) }
}
