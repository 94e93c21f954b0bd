package ports

import (
	"context"
	"time"

	"yield-analytics-service/internal/yield/core/domain"
)

type SourceFilter struct {
	Range         domain.DateRange
	AdvisorUserID int64 // 0 = every advisor
	RevenueTiming domain.RevenueTiming
}

// YieldSourcePort reads raw funnel data. Every method returns already
// normalized domain rows; an empty slice is a valid answer.
type YieldSourcePort interface {
	// FetchMetricRows returns one row per (advisor, metric) summed over the range.
	FetchMetricRows(ctx context.Context, f SourceFilter) ([]domain.MetricRow, error)
	// FetchDailyRows returns one row per (advisor, metric, day) inside the range.
	FetchDailyRows(ctx context.Context, f SourceFilter) ([]domain.MetricRow, error)
	// FetchPlannedRows returns one row per (advisor, funnel stage) counting
	// application events dated strictly after the calendar day of after.
	FetchPlannedRows(ctx context.Context, after time.Time, advisorUserID int64) ([]domain.MetricRow, error)
	// FetchStageRecords returns every candidate timeline for the advisor
	// (0 = all), unfiltered by date.
	FetchStageRecords(ctx context.Context, advisorUserID int64) ([]domain.StageDateRecord, error)
	FetchBreakdownRows(ctx context.Context, dim domain.Dimension, f SourceFilter) ([]domain.BreakdownRow, error)
	FetchCandidateRevenue(ctx context.Context, f SourceFilter) ([]domain.CandidateRevenue, error)
}
