package usecase

import (
	"errors"
	"fmt"
	"strings"

	"yield-analytics-service/internal/yield/core/domain"
)

var (
	ErrInvalidDateRange = errors.New("from and to (YYYY-MM-DD) are required and from must not be after to")
	ErrAdvisorRequired  = errors.New("personal scope requires advisorUserId")
	ErrInvalidDimension = errors.New("dimension must be one of job, gender, age, media")
	ErrInvalidParameter = errors.New("invalid query parameter")
)

// YieldInput is the raw request. Enum fields accept their documented
// aliases; empty values take the default.
type YieldInput struct {
	From string
	To   string

	Scope         string // "company" | "personal"
	AdvisorUserID int64  // <= 0 means none

	Granularity   string // "summary" | "day" | "month"
	GroupBy       string // "none" | "advisor"
	CalcMode      string // "period" | "cohort"
	RateCalcMode  string // "step" | "base"
	RevenueTiming string // "occurrence" | "application"
	Dimension     string // breakdown only
	Planned       bool
}

type query struct {
	rng           domain.DateRange
	scope         domain.Scope
	advisorID     int64
	granularity   string
	groupBy       domain.GroupBy
	calcMode      domain.CalcMode
	rateMode      domain.RateMode
	revenueTiming domain.RevenueTiming
	dimension     domain.Dimension
	planned       bool
}

func (q query) advisorKey() domain.AdvisorKey {
	return domain.AdvisorKeyFromID(q.advisorID)
}

func (q query) meta() domain.ReportMeta {
	return domain.ReportMeta{
		Range:         q.rng,
		Scope:         q.scope,
		AdvisorUserID: q.advisorID,
		Granularity:   q.granularity,
		GroupBy:       q.groupBy,
		CalcMode:      q.calcMode,
		RateMode:      q.rateMode,
		RevenueTiming: q.revenueTiming,
		Dimension:     q.dimension,
		Planned:       q.planned,
	}
}

func invalid(name, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, name, value)
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// parse validates the parts shared by every report.
func parse(in YieldInput) (query, error) {
	var q query

	rng, err := domain.ParseDateRange(in.From, in.To)
	if err != nil {
		return q, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	q.rng = rng

	switch lower(in.Scope) {
	case "", "company":
		q.scope = domain.ScopeCompany
	case "personal":
		q.scope = domain.ScopePersonal
	default:
		return q, invalid("scope", in.Scope)
	}
	if in.AdvisorUserID > 0 {
		q.advisorID = in.AdvisorUserID
	}
	if q.scope == domain.ScopePersonal && q.advisorID == 0 {
		return q, ErrAdvisorRequired
	}

	switch lower(in.GroupBy) {
	case "", "none":
		q.groupBy = domain.GroupByNone
	case "advisor":
		q.groupBy = domain.GroupByAdvisor
	default:
		return q, invalid("groupBy", in.GroupBy)
	}

	switch lower(in.CalcMode) {
	case "", "period":
		q.calcMode = domain.CalcModePeriod
	case "cohort":
		q.calcMode = domain.CalcModeCohort
	default:
		return q, invalid("calcMode", in.CalcMode)
	}

	if q.rateMode, err = domain.ParseRateMode(in.RateCalcMode); err != nil {
		return q, invalid("rateCalcMode", in.RateCalcMode)
	}

	switch lower(in.RevenueTiming) {
	case "", "occurrence":
		q.revenueTiming = domain.RevenueOnOccurrence
	case "application":
		q.revenueTiming = domain.RevenueOnApplication
	default:
		return q, invalid("revenueTiming", in.RevenueTiming)
	}

	q.planned = in.Planned
	return q, nil
}

// parseSummaryGranularity accepts summary, day and month (plus daily/monthly).
func parseSummaryGranularity(raw string) (string, error) {
	switch lower(raw) {
	case "", "summary":
		return "summary", nil
	case "day", "daily":
		return string(domain.GranularityDay), nil
	case "month", "monthly":
		return string(domain.GranularityMonth), nil
	default:
		return "", invalid("granularity", raw)
	}
}

// parseTrendGranularity defaults to month; year buckets are reported monthly.
func parseTrendGranularity(raw string) (domain.Granularity, error) {
	switch lower(raw) {
	case "day", "daily":
		return domain.GranularityDay, nil
	case "", "month", "monthly", "year", "yearly":
		return domain.GranularityMonth, nil
	default:
		return "", invalid("granularity", raw)
	}
}
