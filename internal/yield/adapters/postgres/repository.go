package postgres

import (
	"context"
	"database/sql"
	"time"

	"yield-analytics-service/internal/yield/core/domain"
	"yield-analytics-service/internal/yield/core/ports"
)

// YieldRepository reads funnel data from the ATS schema.
type YieldRepository struct {
	db DB
}

func NewYieldRepository(db DB) *YieldRepository {
	return &YieldRepository{db: db}
}

func rangeArgs(f ports.SourceFilter) ([]any, bool) {
	args := []any{f.Range.StartDate(), f.Range.EndDate()}
	if f.AdvisorUserID > 0 {
		return append(args, f.AdvisorUserID), true
	}
	return args, false
}

func advisorKey(v sql.NullInt64) domain.AdvisorKey {
	if !v.Valid {
		return domain.Unassigned
	}
	return domain.AdvisorKeyFromID(v.Int64)
}

func dateOf(v sql.NullTime) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return domain.Day(v.Time)
}

func (r *YieldRepository) FetchMetricRows(ctx context.Context, f ports.SourceFilter) ([]domain.MetricRow, error) {
	return r.queryMetricRows(withQueryName(ctx, "metric_rows"), f, false)
}

func (r *YieldRepository) FetchDailyRows(ctx context.Context, f ports.SourceFilter) ([]domain.MetricRow, error) {
	return r.queryMetricRows(withQueryName(ctx, "daily_rows"), f, true)
}

func (r *YieldRepository) FetchPlannedRows(ctx context.Context, after time.Time, advisorUserID int64) ([]domain.MetricRow, error) {
	ctx = withQueryName(ctx, "planned_rows")
	args := []any{domain.Day(after).Format(domain.DateLayout)}
	if advisorUserID > 0 {
		args = append(args, advisorUserID)
	}
	return r.scanMetricRows(ctx, buildPlannedSQL(advisorUserID > 0), args)
}

func (r *YieldRepository) queryMetricRows(ctx context.Context, f ports.SourceFilter, daily bool) ([]domain.MetricRow, error) {
	args, byAdvisor := rangeArgs(f)
	return r.scanMetricRows(ctx, buildMetricSQL(metricSources(f.RevenueTiming), daily, byAdvisor), args)
}

func (r *YieldRepository) scanMetricRows(ctx context.Context, query string, args []any) ([]domain.MetricRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MetricRow
	for rows.Next() {
		var (
			advisor sql.NullInt64
			day     sql.NullTime
			metric  string
			count   int64
		)
		if err := rows.Scan(&advisor, &day, &metric, &count); err != nil {
			return nil, err
		}
		out = append(out, domain.MetricRow{
			Advisor: advisorKey(advisor),
			Metric:  metric,
			Count:   count,
			Day:     dateOf(day),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *YieldRepository) FetchStageRecords(ctx context.Context, advisorUserID int64) ([]domain.StageDateRecord, error) {
	ctx = withQueryName(ctx, "stage_records")
	var args []any
	if advisorUserID > 0 {
		args = append(args, advisorUserID)
	}

	rows, err := r.db.QueryContext(ctx, buildStageRecordsSQL(advisorUserID > 0), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StageDateRecord
	for rows.Next() {
		var (
			id      int64
			advisor sql.NullInt64
			dates   [8]sql.NullTime
		)
		dest := []any{&id, &advisor}
		for i := range dates {
			dest = append(dest, &dates[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, domain.StageDateRecord{
			CandidateID: id,
			Advisor:     advisorKey(advisor),
			Dates: domain.StageDates{
				NewInterviews:       dateOf(dates[0]),
				Proposals:           dateOf(dates[1]),
				Recommendations:     dateOf(dates[2]),
				InterviewsScheduled: dateOf(dates[3]),
				InterviewsHeld:      dateOf(dates[4]),
				Offers:              dateOf(dates[5]),
				Accepts:             dateOf(dates[6]),
				Hires:               dateOf(dates[7]),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *YieldRepository) FetchBreakdownRows(ctx context.Context, dim domain.Dimension, f ports.SourceFilter) ([]domain.BreakdownRow, error) {
	ctx = withQueryName(ctx, "breakdown_"+string(dim))
	args, byAdvisor := rangeArgs(f)
	query, err := buildBreakdownSQL(dim, byAdvisor)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BreakdownRow
	for rows.Next() {
		var (
			id    int64
			text  string
			age   sql.NullInt64
			birth sql.NullTime
		)
		if err := rows.Scan(&id, &text, &age, &birth); err != nil {
			return nil, err
		}
		row := domain.BreakdownRow{CandidateID: id, Text: text, BirthDate: dateOf(birth)}
		if age.Valid {
			a := int(age.Int64)
			row.Age = &a
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *YieldRepository) FetchCandidateRevenue(ctx context.Context, f ports.SourceFilter) ([]domain.CandidateRevenue, error) {
	ctx = withQueryName(ctx, "candidate_revenue")
	args, byAdvisor := rangeArgs(f)

	rows, err := r.db.QueryContext(ctx, buildCandidateRevenueSQL(f.RevenueTiming, byAdvisor), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateRevenue
	for rows.Next() {
		var (
			c                       domain.CandidateRevenue
			advisor                 sql.NullInt64
			orderDate, withdrawDate sql.NullTime
		)
		if err := rows.Scan(
			&c.CandidateID, &c.CandidateName, &advisor,
			&c.FeeAmount, &c.RefundAmount,
			&orderDate, &withdrawDate,
			&c.OrderReported, &c.RefundReported,
		); err != nil {
			return nil, err
		}
		c.Advisor = advisorKey(advisor)
		c.OrderDate = dateOf(orderDate)
		c.WithdrawDate = dateOf(withdrawDate)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
