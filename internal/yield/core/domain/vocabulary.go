package domain

// Metric is one countable KPI key. Funnel stages come first, in funnel order.
type Metric string

const (
	MetricNewInterviews       Metric = "newInterviews"
	MetricProposals           Metric = "proposals"
	MetricRecommendations     Metric = "recommendations"
	MetricInterviewsScheduled Metric = "interviewsScheduled"
	MetricInterviewsHeld      Metric = "interviewsHeld"
	MetricOffers              Metric = "offers"
	MetricAccepts             Metric = "accepts"
	MetricHires               Metric = "hires"
	MetricValidApplications   Metric = "validApplications"
	MetricAppointments        Metric = "appointments"
	MetricSitting             Metric = "sitting"
	MetricRevenue             Metric = "revenue"
)

// MetricKeys is the closed metric vocabulary in display order.
var MetricKeys = []Metric{
	MetricNewInterviews,
	MetricProposals,
	MetricRecommendations,
	MetricInterviewsScheduled,
	MetricInterviewsHeld,
	MetricOffers,
	MetricAccepts,
	MetricHires,
	MetricValidApplications,
	MetricAppointments,
	MetricSitting,
	MetricRevenue,
}

// FunnelStages are the metrics backed by a per-candidate stage date.
var FunnelStages = MetricKeys[:8]

var metricIndex = func() map[Metric]struct{} {
	m := make(map[Metric]struct{}, len(MetricKeys))
	for _, k := range MetricKeys {
		m[k] = struct{}{}
	}
	return m
}()

// ParseMetric reports whether raw names a known metric.
func ParseMetric(raw string) (Metric, bool) {
	m := Metric(raw)
	_, ok := metricIndex[m]
	return m, ok
}

// IsFunnelStage reports whether m is one of the eight dated funnel stages.
func (m Metric) IsFunnelStage() bool {
	for _, s := range FunnelStages {
		if s == m {
			return true
		}
	}
	return false
}

// RateKey names a conversion rate.
type RateKey string

const (
	RateProposal          RateKey = "proposalRate"
	RateRecommendation    RateKey = "recommendationRate"
	RateInterviewSchedule RateKey = "interviewScheduleRate"
	RateInterviewHeld     RateKey = "interviewHeldRate"
	RateOffer             RateKey = "offerRate"
	RateAccept            RateKey = "acceptRate"
	RateHire              RateKey = "hireRate"
)

// RateDef pairs a rate with the stage it converts to (Numerator) and the
// stage it converts from (Denominator).
type RateDef struct {
	Key         RateKey
	Numerator   Metric
	Denominator Metric
}

// RateDefs is the only place numerator/denominator pairs are declared.
// hireRate deliberately spans newInterviews -> hires.
var RateDefs = []RateDef{
	{Key: RateProposal, Numerator: MetricProposals, Denominator: MetricNewInterviews},
	{Key: RateRecommendation, Numerator: MetricRecommendations, Denominator: MetricProposals},
	{Key: RateInterviewSchedule, Numerator: MetricInterviewsScheduled, Denominator: MetricRecommendations},
	{Key: RateInterviewHeld, Numerator: MetricInterviewsHeld, Denominator: MetricInterviewsScheduled},
	{Key: RateOffer, Numerator: MetricOffers, Denominator: MetricInterviewsHeld},
	{Key: RateAccept, Numerator: MetricAccepts, Denominator: MetricOffers},
	{Key: RateHire, Numerator: MetricHires, Denominator: MetricNewInterviews},
}

// RateKeys lists rate keys in RateDefs order.
var RateKeys = func() []RateKey {
	keys := make([]RateKey, len(RateDefs))
	for i, d := range RateDefs {
		keys[i] = d.Key
	}
	return keys
}()

// ratesFrom returns the rate definitions whose denominator is stage.
func ratesFrom(stage Metric) []RateDef {
	var out []RateDef
	for _, d := range RateDefs {
		if d.Denominator == stage {
			out = append(out, d)
		}
	}
	return out
}
