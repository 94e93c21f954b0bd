package domain

import "math"

// Snapshot is the counts and rates of one range.
type Snapshot struct {
	Counts MetricCounts
	Rates  RateSet
}

// GoalTargets holds per-metric targets for one period. Missing keys are 0.
type GoalTargets map[Metric]int64

// Achievement compares accepts against the accepts target.
type Achievement struct {
	Rate    int64
	Current int64
	Target  int64
}

// AchievementRate is current/target as a whole percentage, 0 without a target.
func AchievementRate(current, target int64) int64 {
	if target <= 0 {
		return 0
	}
	return int64(math.Round(float64(current) / float64(target) * 100))
}

// NewAchievement measures accepts in counts against targets.
func NewAchievement(counts MetricCounts, targets GoalTargets) Achievement {
	current := counts.Get(MetricAccepts)
	target := targets[MetricAccepts]
	return Achievement{Rate: AchievementRate(current, target), Current: current, Target: target}
}

// KPI is one summary card: current values, optional previous-period values,
// cohort numerators in cohort mode and goal achievement when known.
type KPI struct {
	Current          Snapshot
	Previous         *Snapshot
	CohortNumerators Numerators
	Achievement      *Achievement
}

// PeriodKPI builds a KPI from period counts. prev is nil when there is no
// previous range.
func PeriodKPI(cur MetricCounts, prev MetricCounts, mode RateMode) KPI {
	k := KPI{Current: Snapshot{Counts: cur, Rates: ComputeRates(cur, nil, mode)}}
	if prev != nil {
		k.Previous = &Snapshot{Counts: prev, Rates: ComputeRates(prev, nil, mode)}
	}
	return k
}

// CohortKPI builds a KPI from cohort aggregates. Revenue is not a funnel
// stage, so it is supplied separately from period rows.
func CohortKPI(cur CohortAggregate, curRevenue int64, prev *CohortAggregate, prevRevenue int64) KPI {
	counts := cur.Counts.Clone()
	counts[MetricRevenue] = curRevenue
	k := KPI{
		Current:          Snapshot{Counts: counts, Rates: cur.Rates},
		CohortNumerators: cur.Numerators,
	}
	if prev != nil {
		prevCounts := prev.Counts.Clone()
		prevCounts[MetricRevenue] = prevRevenue
		k.Previous = &Snapshot{Counts: prevCounts, Rates: prev.Rates}
	}
	return k
}

// WithAchievement attaches goal achievement computed from the current counts.
func (k KPI) WithAchievement(targets GoalTargets) KPI {
	a := NewAchievement(k.Current.Counts, targets)
	k.Achievement = &a
	return k
}
