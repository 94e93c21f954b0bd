package postgres

import (
	"fmt"
	"strings"

	"yield-analytics-service/internal/yield/core/domain"
)

// Normalized stage date columns. Legacy timestamp columns back-fill the
// date columns that newer rows carry.
const (
	proposalDateCol    = "COALESCE(ca.proposal_date, ca.recommended_at::date)"
	offerDateCol       = "COALESCE(ca.offer_date, ca.offer_at::date)"
	offerAcceptDateCol = "COALESCE(ca.offer_accept_date, ca.offer_accepted_at::date)"
	joinDateCol        = "COALESCE(ca.join_date, ca.joined_at::date)"
)

const (
	candidatesFrom   = "candidates c"
	applicationsFrom = "candidates c JOIN candidate_applications ca ON ca.candidate_id = c.id"
	placementsFrom   = "placements p JOIN candidate_applications ca ON ca.id = p.candidate_application_id JOIN candidates c ON c.id = ca.candidate_id"
	teleapoFrom      = "teleapo t"
)

// metricSource is one UNION ALL branch of the metric queries.
type metricSource struct {
	metric  domain.Metric
	advisor string
	from    string
	date    string
	value   string
	where   string
}

func revenueDateCols(timing domain.RevenueTiming) (fee, refund string) {
	if timing == domain.RevenueOnApplication {
		return "c.created_at::date", "c.created_at::date"
	}
	return "p.order_date::date", "p.withdraw_date::date"
}

func metricSources(timing domain.RevenueTiming) []metricSource {
	feeDate, refundDate := revenueDateCols(timing)
	count := "COUNT(*)::bigint"
	return []metricSource{
		{metric: domain.MetricNewInterviews, advisor: "c.advisor_user_id", from: candidatesFrom, date: "c.first_contact_at::date", value: count},
		{metric: domain.MetricProposals, advisor: "c.advisor_user_id", from: applicationsFrom, date: proposalDateCol, value: count},
		{metric: domain.MetricRecommendations, advisor: "c.advisor_user_id", from: applicationsFrom, date: "ca.recommended_at::date", value: count},
		{metric: domain.MetricInterviewsScheduled, advisor: "c.advisor_user_id", from: applicationsFrom, date: "ca.first_interview_set_at::date", value: count},
		{metric: domain.MetricInterviewsHeld, advisor: "c.advisor_user_id", from: applicationsFrom, date: "ca.first_interview_at::date", value: count},
		{metric: domain.MetricOffers, advisor: "c.advisor_user_id", from: applicationsFrom, date: offerDateCol, value: count},
		{metric: domain.MetricAccepts, advisor: "c.advisor_user_id", from: applicationsFrom, date: offerAcceptDateCol, value: count},
		{metric: domain.MetricHires, advisor: "c.advisor_user_id", from: applicationsFrom, date: joinDateCol, value: count},
		{metric: domain.MetricValidApplications, advisor: "c.advisor_user_id", from: candidatesFrom, date: "c.created_at::date", value: count, where: "c.is_effective_application = true"},
		{metric: domain.MetricAppointments, advisor: "t.caller_user_id", from: teleapoFrom, date: "t.called_at::date", value: count, where: "t.result = '設定'"},
		{metric: domain.MetricSitting, advisor: "t.caller_user_id", from: teleapoFrom, date: "t.called_at::date", value: count, where: "t.result = '着座'"},
		{metric: domain.MetricRevenue, advisor: "c.advisor_user_id", from: placementsFrom, date: feeDate, value: "COALESCE(SUM(p.fee_amount), 0)::bigint"},
		{metric: domain.MetricRevenue, advisor: "c.advisor_user_id", from: placementsFrom, date: refundDate, value: "(COALESCE(SUM(p.refund_amount), 0) * -1)::bigint"},
	}
}

// buildMetricSQL returns rows of (advisor_user_id, day, metric, count).
// $1 and $2 are the inclusive ISO dates, $3 the advisor when filtered.
// Range queries return a NULL day.
func buildMetricSQL(sources []metricSource, daily, byAdvisor bool) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		day, groupBy := "NULL::date", s.advisor
		if daily {
			day, groupBy = s.date, s.advisor+", "+s.date
		}
		where := s.date + " BETWEEN $1 AND $2"
		if s.where != "" {
			where += " AND " + s.where
		}
		if byAdvisor {
			where += " AND " + s.advisor + " = $3"
		}
		parts = append(parts, fmt.Sprintf(
			"SELECT %s AS advisor_user_id, %s AS day, '%s' AS metric, %s AS count\nFROM %s\nWHERE %s\nGROUP BY %s",
			s.advisor, day, s.metric, s.value, s.from, where, groupBy,
		))
	}
	return strings.Join(parts, "\nUNION ALL\n")
}

// plannedSources are the funnel stage branches. Each application event
// counts on its own, so a candidate may contribute several.
func plannedSources() []metricSource {
	var out []metricSource
	for _, s := range metricSources(domain.RevenueOnOccurrence) {
		if s.metric.IsFunnelStage() {
			out = append(out, s)
		}
	}
	return out
}

// buildPlannedSQL returns rows of (advisor_user_id, day, metric, count) for
// stage events dated strictly after $1. $2 is the advisor when filtered.
func buildPlannedSQL(byAdvisor bool) string {
	sources := plannedSources()
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		where := s.date + " > $1"
		if byAdvisor {
			where += " AND " + s.advisor + " = $2"
		}
		parts = append(parts, fmt.Sprintf(
			"SELECT %s AS advisor_user_id, NULL::date AS day, '%s' AS metric, %s AS count\nFROM %s\nWHERE %s\nGROUP BY %s",
			s.advisor, s.metric, s.value, s.from, where, s.advisor,
		))
	}
	return strings.Join(parts, "\nUNION ALL\n")
}

// Stage timelines are unfiltered by date; cohort windows are applied in
// memory.
const stageRecordsSQL = `
SELECT
    c.id AS candidate_id,
    c.advisor_user_id,
    c.first_contact_at::date AS new_interviews,
    MIN(` + proposalDateCol + `) AS proposals,
    MIN(ca.recommended_at)::date AS recommendations,
    MIN(ca.first_interview_set_at)::date AS interviews_scheduled,
    MIN(ca.first_interview_at)::date AS interviews_held,
    MIN(` + offerDateCol + `) AS offers,
    MIN(` + offerAcceptDateCol + `) AS accepts,
    MIN(` + joinDateCol + `) AS hires
FROM candidates c
LEFT JOIN candidate_applications ca ON ca.candidate_id = c.id
WHERE c.first_contact_at IS NOT NULL`

func buildStageRecordsSQL(byAdvisor bool) string {
	q := stageRecordsSQL
	if byAdvisor {
		q += "\n  AND c.advisor_user_id = $1"
	}
	return q + "\nGROUP BY c.id, c.advisor_user_id, c.first_contact_at\nORDER BY c.id"
}

// buildBreakdownSQL returns rows of (candidate_id, text, age, birth_date)
// for candidates first contacted in the range.
func buildBreakdownSQL(dim domain.Dimension, byAdvisor bool) (string, error) {
	var text, from string
	switch dim {
	case domain.DimensionJob:
		text, from = "ca.job_title", "candidates c LEFT JOIN candidate_applications ca ON ca.candidate_id = c.id"
	case domain.DimensionMedia:
		text, from = "ca.apply_route", "candidates c LEFT JOIN candidate_applications ca ON ca.candidate_id = c.id"
	case domain.DimensionGender:
		text, from = "c.gender", candidatesFrom
	case domain.DimensionAge:
		text, from = "NULL::text", candidatesFrom
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownDimension, dim)
	}
	where := "c.first_contact_at::date BETWEEN $1 AND $2"
	if byAdvisor {
		where += " AND c.advisor_user_id = $3"
	}
	return fmt.Sprintf(`
SELECT c.id, COALESCE(%s, ''), c.age, c.birth_date
FROM %s
WHERE %s
ORDER BY c.id`, text, from, where), nil
}

func buildCandidateRevenueSQL(timing domain.RevenueTiming, byAdvisor bool) string {
	feeDate, refundDate := revenueDateCols(timing)
	where := fmt.Sprintf("(%s BETWEEN $1 AND $2 OR %s BETWEEN $1 AND $2)", feeDate, refundDate)
	if byAdvisor {
		where += " AND c.advisor_user_id = $3"
	}
	return `
SELECT
    c.id,
    COALESCE(c.name, ''),
    c.advisor_user_id,
    COALESCE(SUM(p.fee_amount), 0)::bigint AS fee_amount,
    COALESCE(SUM(p.refund_amount), 0)::bigint AS refund_amount,
    MAX(p.order_date) AS order_date,
    MAX(p.withdraw_date) AS withdraw_date,
    COALESCE(BOOL_OR(p.order_reported), false),
    COALESCE(BOOL_OR(p.refund_reported), false)
FROM candidates c
JOIN candidate_applications ca ON ca.candidate_id = c.id
JOIN placements p ON p.candidate_application_id = ca.id
WHERE ` + where + `
GROUP BY c.id, c.name, c.advisor_user_id
ORDER BY fee_amount DESC, c.id`
}

const advisorNamesSQL = `SELECT id, COALESCE(name, '') FROM users WHERE id = ANY($1)`

func buildGoalTargetSQL(byAdvisor bool) string {
	q := `
SELECT targets
FROM goal_targets
WHERE period_id = $1
  AND scope = $2`
	if byAdvisor {
		q += "\n  AND advisor_user_id = $3"
	}
	return q + "\nLIMIT 1"
}
