package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"yield-analytics-service/internal/yield/core/domain"
	"yield-analytics-service/internal/yield/core/ports"
)

// fakeRowScanner implements RowScanner for tests. A nil value scans as NULL.
type fakeRowScanner struct {
	rows   []fakeRow
	i      int
	err    error
	closed bool
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		v := row.values[i]
		switch d := dest[i].(type) {
		case sql.Scanner:
			if err := d.Scan(v); err != nil {
				return err
			}
		case *int64:
			n, ok := v.(int64)
			if !ok {
				return errors.New("type assertion to int64 failed")
			}
			*d = n
		case *string:
			s, ok := v.(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = s
		case *bool:
			b, ok := v.(bool)
			if !ok {
				return errors.New("type assertion to bool failed")
			}
			*d = b
		case *[]byte:
			b, ok := v.([]byte)
			if !ok {
				return errors.New("type assertion to []byte failed")
			}
			*d = b
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	f.closed = true
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
	lastName  string
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	f.lastName = QueryName(ctx)
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return &fakeRowScanner{}, nil
}

func testRange(t *testing.T, from, to string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(from, to)
	if err != nil {
		t.Fatalf("bad range: %v", err)
	}
	return r
}

// ------------------------------------------------------------
// METRIC ROWS
// ------------------------------------------------------------

func TestYieldRepository_FetchMetricRows(t *testing.T) {
	scanner := &fakeRowScanner{
		rows: []fakeRow{
			{values: []any{int64(3), nil, "newInterviews", int64(4)}},
			{values: []any{nil, nil, "proposals", int64(2)}},
			{values: []any{int64(3), nil, "revenue", int64(-1000)}},
		},
	}
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return scanner, nil
		},
	}
	repo := NewYieldRepository(db)

	rows, err := repo.FetchMetricRows(context.Background(), ports.SourceFilter{
		Range: testRange(t, "2026-01-01", "2026-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(db.lastArgs) != 2 || db.lastArgs[0] != "2026-01-01" || db.lastArgs[1] != "2026-01-31" {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}
	if strings.Contains(db.lastQuery, "$3") {
		t.Fatalf("expected no advisor filter, got: %s", db.lastQuery)
	}
	if !strings.Contains(db.lastQuery, "NULL::date AS day") {
		t.Fatalf("expected range query without day buckets, got: %s", db.lastQuery)
	}
	if !strings.Contains(db.lastQuery, "p.order_date::date BETWEEN $1 AND $2") {
		t.Fatalf("expected occurrence revenue timing, got: %s", db.lastQuery)
	}
	if db.lastName != "metric_rows" {
		t.Fatalf("expected query name metric_rows, got %s", db.lastName)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Advisor != domain.AdvisorKeyFromID(3) || rows[0].Count != 4 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if !rows[1].Advisor.IsUnassigned() {
		t.Fatalf("expected NULL advisor to be unassigned, got %v", rows[1].Advisor)
	}
	if !rows[0].Day.IsZero() {
		t.Fatalf("expected zero day for range rows")
	}
	if rows[2].Count != -1000 {
		t.Fatalf("expected refund row kept negative, got %d", rows[2].Count)
	}
	if !scanner.closed {
		t.Fatalf("expected rows to be closed")
	}
}

func TestYieldRepository_FetchDailyRows_AdvisorAndApplicationTiming(t *testing.T) {
	jan5 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{
				rows: []fakeRow{{values: []any{int64(9), jan5, "offers", int64(1)}}},
			}, nil
		},
	}
	repo := NewYieldRepository(db)

	rows, err := repo.FetchDailyRows(context.Background(), ports.SourceFilter{
		Range:         testRange(t, "2026-01-01", "2026-01-31"),
		AdvisorUserID: 9,
		RevenueTiming: domain.RevenueOnApplication,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.lastArgs) != 3 || db.lastArgs[2] != int64(9) {
		t.Fatalf("expected advisor arg, got %v", db.lastArgs)
	}
	if !strings.Contains(db.lastQuery, "c.advisor_user_id = $3") || !strings.Contains(db.lastQuery, "t.caller_user_id = $3") {
		t.Fatalf("expected advisor filters in every branch, got: %s", db.lastQuery)
	}
	if strings.Contains(db.lastQuery, "p.order_date") {
		t.Fatalf("expected application timing revenue dates, got: %s", db.lastQuery)
	}
	if strings.Count(db.lastQuery, "UNION ALL") != len(metricSources(domain.RevenueOnApplication))-1 {
		t.Fatalf("expected one branch per metric source")
	}
	if !rows[0].Day.Equal(jan5) {
		t.Fatalf("expected day 2026-01-05, got %v", rows[0].Day)
	}
}

// ------------------------------------------------------------
// PLANNED ROWS
// ------------------------------------------------------------

func TestYieldRepository_FetchPlannedRows(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(4), nil, "offers", int64(2)}},
					{values: []any{nil, nil, "interviewsHeld", int64(1)}},
				},
			}, nil
		},
	}
	repo := NewYieldRepository(db)

	after := time.Date(2026, 1, 31, 15, 0, 0, 0, time.UTC)
	rows, err := repo.FetchPlannedRows(context.Background(), after, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.lastArgs) != 1 || db.lastArgs[0] != "2026-01-31" {
		t.Fatalf("expected the base date only, got %v", db.lastArgs)
	}
	if db.lastName != "planned_rows" {
		t.Fatalf("expected query name planned_rows, got %s", db.lastName)
	}
	// Every application event counts; nothing collapses a candidate's
	// applications to one date.
	if strings.Contains(db.lastQuery, "MIN(") || strings.Contains(db.lastQuery, "IS NOT NULL") {
		t.Fatalf("expected per-event counts, got: %s", db.lastQuery)
	}
	for _, want := range []string{
		"c.first_contact_at::date > $1",
		offerDateCol + " > $1",
		joinDateCol + " > $1",
		"JOIN candidate_applications ca ON ca.candidate_id = c.id",
	} {
		if !strings.Contains(db.lastQuery, want) {
			t.Fatalf("expected %q in query, got: %s", want, db.lastQuery)
		}
	}
	if strings.Contains(db.lastQuery, "BETWEEN") || strings.Contains(db.lastQuery, "teleapo") || strings.Contains(db.lastQuery, "placements") {
		t.Fatalf("expected funnel stages only, got: %s", db.lastQuery)
	}
	if strings.Count(db.lastQuery, "UNION ALL") != len(domain.FunnelStages)-1 {
		t.Fatalf("expected one branch per funnel stage")
	}

	if len(rows) != 2 || rows[0].Advisor != domain.AdvisorKeyFromID(4) || rows[0].Count != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if !rows[1].Advisor.IsUnassigned() {
		t.Fatalf("expected NULL advisor to be unassigned")
	}

	if _, err := repo.FetchPlannedRows(context.Background(), after, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.lastArgs) != 2 || db.lastArgs[1] != int64(5) || !strings.Contains(db.lastQuery, "c.advisor_user_id = $2") {
		t.Fatalf("expected advisor filter, got %s %v", db.lastQuery, db.lastArgs)
	}
}

// ------------------------------------------------------------
// STAGE RECORDS
// ------------------------------------------------------------

func TestYieldRepository_FetchStageRecords(t *testing.T) {
	d := func(s string) time.Time {
		v, _ := time.Parse("2006-01-02", s)
		return v
	}
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "first_contact_at IS NOT NULL") {
				t.Fatalf("expected contacted candidates only, got: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(1), int64(2), d("2026-01-05"), d("2026-01-10"), nil, nil, nil, nil, nil, nil}},
					{values: []any{int64(2), nil, d("2026-01-07"), nil, nil, nil, nil, nil, nil, nil}},
				},
			}, nil
		},
	}
	repo := NewYieldRepository(db)

	recs, err := repo.FetchStageRecords(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.lastArgs) != 0 {
		t.Fatalf("expected no args, got %v", db.lastArgs)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Advisor != domain.AdvisorKeyFromID(2) || !recs[0].Dates.Proposals.Equal(d("2026-01-10")) {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if !recs[0].Dates.Recommendations.IsZero() {
		t.Fatalf("expected NULL stage to be zero")
	}
	if !recs[1].Advisor.IsUnassigned() {
		t.Fatalf("expected unassigned advisor")
	}

	if _, err := repo.FetchStageRecords(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastQuery, "c.advisor_user_id = $1") || db.lastArgs[0] != int64(5) {
		t.Fatalf("expected advisor filter, got %s %v", db.lastQuery, db.lastArgs)
	}
}

// ------------------------------------------------------------
// BREAKDOWN / CANDIDATES
// ------------------------------------------------------------

func TestYieldRepository_FetchBreakdownRows(t *testing.T) {
	birth := time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(1), "", int64(27), nil}},
					{values: []any{int64(2), "", nil, birth}},
				},
			}, nil
		},
	}
	repo := NewYieldRepository(db)

	rows, err := repo.FetchBreakdownRows(context.Background(), domain.DimensionAge, ports.SourceFilter{
		Range: testRange(t, "2026-01-01", "2026-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Age == nil || *rows[0].Age != 27 {
		t.Fatalf("expected age 27, got %+v", rows[0])
	}
	if rows[1].Age != nil || !rows[1].BirthDate.Equal(birth) {
		t.Fatalf("expected birth date fallback, got %+v", rows[1])
	}
	if db.lastName != "breakdown_age" {
		t.Fatalf("unexpected query name %s", db.lastName)
	}

	_, err = repo.FetchBreakdownRows(context.Background(), domain.Dimension("height"), ports.SourceFilter{})
	if !errors.Is(err, domain.ErrUnknownDimension) {
		t.Fatalf("expected ErrUnknownDimension, got %v", err)
	}
}

func TestYieldRepository_FetchCandidateRevenue(t *testing.T) {
	order := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(10), "Yamada", int64(4), int64(800000), int64(0), order, nil, true, false}},
				},
			}, nil
		},
	}
	repo := NewYieldRepository(db)

	out, err := repo.FetchCandidateRevenue(context.Background(), ports.SourceFilter{
		Range: testRange(t, "2026-01-01", "2026-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := out[0]
	if c.CandidateName != "Yamada" || c.FeeAmount != 800000 || !c.OrderReported || c.RefundReported {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if !c.OrderDate.Equal(order) || !c.WithdrawDate.IsZero() {
		t.Fatalf("unexpected dates: %+v", c)
	}
}

// ------------------------------------------------------------
// DIRECTORY / GOAL TARGETS
// ------------------------------------------------------------

func TestAdvisorDirectory_FetchAdvisorNames(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if _, ok := args[0].(*pq.Int64Array); !ok {
				t.Fatalf("expected pq int64 array arg, got %T", args[0])
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(1), "Suzuki"}},
					{values: []any{int64(2), ""}},
				},
			}, nil
		},
	}
	dir := NewAdvisorDirectory(db)

	names, err := dir.FetchAdvisorNames(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names[1] != "Suzuki" {
		t.Fatalf("expected Suzuki, got %q", names[1])
	}
	if _, ok := names[2]; ok {
		t.Fatalf("expected blank names to be left out")
	}

	db.called = false
	if _, err := dir.FetchAdvisorNames(context.Background(), nil); err != nil || db.called {
		t.Fatalf("expected no query for empty ids")
	}
}

func TestGoalTargetRepository_FetchGoalTargets(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{[]byte(`{"acceptsTarget": 6, "offers": "4", "hires": null}`)}},
				},
			}, nil
		},
	}
	repo := NewGoalTargetRepository(db)

	targets, err := repo.FetchGoalTargets(context.Background(), ports.GoalTargetKey{
		PeriodID: "2026-01", Scope: domain.ScopePersonal, AdvisorUserID: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if targets[domain.MetricAccepts] != 6 || targets[domain.MetricOffers] != 4 {
		t.Fatalf("unexpected targets: %v", targets)
	}
	if _, ok := targets[domain.MetricHires]; ok {
		t.Fatalf("expected null target to be absent")
	}
	if len(db.lastArgs) != 3 || db.lastArgs[1] != "personal" {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}

	db.QueryFn = nil
	targets, err = repo.FetchGoalTargets(context.Background(), ports.GoalTargetKey{PeriodID: "2026-01", Scope: domain.ScopeCompany})
	if err != nil || len(targets) != 0 {
		t.Fatalf("expected empty targets, got %v %v", targets, err)
	}
	if strings.Contains(db.lastQuery, "advisor_user_id") {
		t.Fatalf("company lookup must not filter by advisor")
	}
}

func TestYieldRepository_DBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}
	repo := NewYieldRepository(db)

	rows, err := repo.FetchMetricRows(context.Background(), ports.SourceFilter{})
	if err == nil || err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected nil rows on error")
	}
}

func TestSQLDB_ObservesQueries(t *testing.T) {
	var (
		gotName string
		gotErr  error
	)
	observe := QueryObserver(func(name string, d time.Duration, err error) {
		gotName, gotErr = name, err
	})
	observe(QueryName(withQueryName(context.Background(), "stage_records")), time.Millisecond, nil)
	if gotName != "stage_records" || gotErr != nil {
		t.Fatalf("unexpected observation %s %v", gotName, gotErr)
	}
	if QueryName(context.Background()) != "unnamed" {
		t.Fatalf("expected unnamed default")
	}
}
