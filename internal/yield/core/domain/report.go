package domain

import "time"

// Scope selects company-wide or single-advisor reporting.
type Scope string

const (
	ScopeCompany  Scope = "company"
	ScopePersonal Scope = "personal"
)

// CalcMode selects the attribution model.
type CalcMode string

const (
	CalcModePeriod CalcMode = "period"
	CalcModeCohort CalcMode = "cohort"
)

// GroupBy selects whether items are split per advisor.
type GroupBy string

const (
	GroupByNone    GroupBy = "none"
	GroupByAdvisor GroupBy = "advisor"
)

// RevenueTiming selects which date attributes revenue to a range.
type RevenueTiming string

const (
	RevenueOnOccurrence  RevenueTiming = "occurrence"
	RevenueOnApplication RevenueTiming = "application"
)

// ReportMeta echoes the normalized request of a report.
type ReportMeta struct {
	Range         DateRange
	Scope         Scope
	AdvisorUserID int64
	Granularity   string
	GroupBy       GroupBy
	CalcMode      CalcMode
	RateMode      RateMode
	RevenueTiming RevenueTiming
	Dimension     Dimension
	Planned       bool
	PrevRange     *DateRange
}

// SummaryItem is one advisor (or the whole scope) with its KPI.
type SummaryItem struct {
	Advisor AdvisorDisplay
	KPI     KPI
}

// SummaryReport is the summary and planned response.
type SummaryReport struct {
	Meta  ReportMeta
	Items []SummaryItem
}

// SeriesItem is one advisor (or the whole scope) with a gap-free series.
type SeriesItem struct {
	Advisor AdvisorDisplay
	Series  []TrendPoint
}

// SeriesReport is the day/month granularity response.
type SeriesReport struct {
	Meta  ReportMeta
	Items []SeriesItem
}

// TrendReport is the trend response.
type TrendReport struct {
	Meta   ReportMeta
	Series []TrendPoint
}

// BreakdownReport is the breakdown response.
type BreakdownReport struct {
	Meta  ReportMeta
	Items []BreakdownItem
}

// CandidateRevenue is one candidate's placement revenue in a range.
type CandidateRevenue struct {
	CandidateID    int64
	CandidateName  string
	Advisor        AdvisorKey
	FeeAmount      int64
	RefundAmount   int64
	OrderDate      time.Time
	WithdrawDate   time.Time
	OrderReported  bool
	RefundReported bool
}

// NetRevenue is fee minus refund.
func (c CandidateRevenue) NetRevenue() int64 { return c.FeeAmount - c.RefundAmount }

// CandidateRevenueItem is a CandidateRevenue with its advisor resolved.
type CandidateRevenueItem struct {
	CandidateRevenue
	AdvisorDisplay AdvisorDisplay
}

// CandidateRevenueReport is the candidate revenue listing response.
type CandidateRevenueReport struct {
	Meta  ReportMeta
	Items []CandidateRevenueItem
}
