package usecase

import (
	"context"
	"fmt"
	"time"

	"yield-analytics-service/internal/yield/core/domain"
	"yield-analytics-service/internal/yield/core/ports"
	"yield-analytics-service/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type GetYieldUseCase struct {
	source    ports.YieldSourcePort
	directory ports.AdvisorDirectoryPort
	targets   ports.GoalTargetReaderPort

	log      logger.Logger
	recorder ports.ReportRecorder
	timeout  time.Duration
	now      func() time.Time
}

type nopRecorder struct{}

func (nopRecorder) RecordReport(string, string) {}
func (nopRecorder) RecordGoalLookupFailure()    {}

type Option func(*GetYieldUseCase)

func WithLogger(l logger.Logger) Option {
	return func(uc *GetYieldUseCase) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithRecorder reports served reports and degraded goal lookups.
func WithRecorder(r ports.ReportRecorder) Option {
	return func(uc *GetYieldUseCase) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// WithQueryTimeout bounds every report, source reads included.
func WithQueryTimeout(d time.Duration) Option {
	return func(uc *GetYieldUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

// WithClock overrides the clock used for age breakdowns.
func WithClock(now func() time.Time) Option {
	return func(uc *GetYieldUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewGetYieldUseCase(
	source ports.YieldSourcePort,
	directory ports.AdvisorDirectoryPort,
	targets ports.GoalTargetReaderPort,
	opts ...Option,
) *GetYieldUseCase {
	uc := &GetYieldUseCase{
		source:    source,
		directory: directory,
		targets:   targets,
		log:       logger.Nop(),
		recorder:  nopRecorder{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *GetYieldUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}

// filter scopes a source read to the request's advisor.
func (q query) filter(rng domain.DateRange) ports.SourceFilter {
	return ports.SourceFilter{Range: rng, AdvisorUserID: q.advisorID, RevenueTiming: q.revenueTiming}
}

// names resolves display names for every assigned key.
func (uc *GetYieldUseCase) names(ctx context.Context, keys []domain.AdvisorKey) (map[int64]string, error) {
	ids := domain.AdvisorIDs(keys)
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	names, err := uc.directory.FetchAdvisorNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch advisor names: %w", err)
	}
	return names, nil
}

// scopeDisplay is the identity of an ungrouped item: the requested advisor,
// or nobody for company-wide totals.
func (q query) scopeDisplay(names map[int64]string) domain.AdvisorDisplay {
	if q.advisorID == 0 {
		return domain.AdvisorDisplay{}
	}
	return domain.ResolveDisplay(q.advisorKey(), names)
}

// extraKeys are keys that must appear even without data.
func (q query) extraKeys() []domain.AdvisorKey {
	if q.advisorID == 0 {
		return nil
	}
	return []domain.AdvisorKey{q.advisorKey()}
}

// goalTargets loads targets for one item. Lookup failures only degrade the
// achievement fields, so they are logged and treated as no target.
func (uc *GetYieldUseCase) goalTargets(ctx context.Context, q query, scope domain.Scope, advisor domain.AdvisorKey) domain.GoalTargets {
	if uc.targets == nil {
		return domain.GoalTargets{}
	}
	if scope == domain.ScopePersonal && advisor.IsUnassigned() {
		return domain.GoalTargets{}
	}
	key := ports.GoalTargetKey{PeriodID: q.rng.PeriodID(), Scope: scope, AdvisorUserID: advisor.ID()}
	targets, err := uc.targets.FetchGoalTargets(ctx, key)
	if err != nil {
		uc.log.Warn(ctx, "goal target lookup failed",
			logger.String("period_id", key.PeriodID),
			logger.String("scope", string(key.Scope)),
			logger.Int64("advisor_user_id", key.AdvisorUserID),
			logger.Error(err))
		uc.recorder.RecordGoalLookupFailure()
		return domain.GoalTargets{}
	}
	if targets == nil {
		return domain.GoalTargets{}
	}
	return targets
}

// goalLookupConcurrency bounds the per-advisor target reads of one request.
const goalLookupConcurrency = 8

// advisorGoalTargets loads personal targets for every key, index-aligned
// with keys.
func (uc *GetYieldUseCase) advisorGoalTargets(ctx context.Context, q query, keys []domain.AdvisorKey) []domain.GoalTargets {
	out := make([]domain.GoalTargets, len(keys))
	var g errgroup.Group
	g.SetLimit(goalLookupConcurrency)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			out[i] = uc.goalTargets(ctx, q, domain.ScopePersonal, key)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Summary returns KPI cards for the range, per advisor or for the whole
// scope, with previous-period values. With Planned set it returns forward
// counts instead.
func (uc *GetYieldUseCase) Summary(ctx context.Context, in YieldInput) (*domain.SummaryReport, error) {
	q, err := parse(in)
	if err != nil {
		return nil, err
	}
	q.granularity = "summary"

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if q.planned {
		return uc.planned(ctx, q)
	}

	meta := q.meta()
	prev, hasPrev := domain.PreviousRange(q.rng.Start, q.rng.End)
	if hasPrev {
		meta.PrevRange = &prev
	}

	var items []domain.SummaryItem
	if q.calcMode == domain.CalcModeCohort {
		items, err = uc.cohortSummary(ctx, q, meta.PrevRange)
	} else {
		items, err = uc.periodSummary(ctx, q, meta.PrevRange)
	}
	if err != nil {
		return nil, err
	}

	uc.log.Debug(ctx, "summary built",
		logger.String("calc_mode", string(q.calcMode)),
		logger.String("group_by", string(q.groupBy)),
		logger.Int("items", len(items)))
	uc.recorder.RecordReport("summary", string(q.calcMode))

	return &domain.SummaryReport{Meta: meta, Items: items}, nil
}

func (uc *GetYieldUseCase) periodSummary(ctx context.Context, q query, prev *domain.DateRange) ([]domain.SummaryItem, error) {
	var curRows, prevRows []domain.MetricRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.source.FetchMetricRows(gctx, q.filter(q.rng))
		if err != nil {
			return fmt.Errorf("fetch current metric rows: %w", err)
		}
		curRows = rows
		return nil
	})
	if prev != nil {
		g.Go(func() error {
			rows, err := uc.source.FetchMetricRows(gctx, q.filter(*prev))
			if err != nil {
				return fmt.Errorf("fetch previous metric rows: %w", err)
			}
			prevRows = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cur := domain.AggregatePeriod(curRows)
	previous := domain.AggregatePeriod(prevRows)

	prevCounts := func(c domain.MetricCounts) domain.MetricCounts {
		if prev == nil {
			return nil
		}
		return c
	}

	if q.groupBy == domain.GroupByAdvisor {
		pairs := domain.MergeAdvisorMaps(cur, previous, domain.NewMetricCounts, q.extraKeys()...)
		names, err := uc.names(ctx, pairKeys(pairs))
		if err != nil {
			return nil, err
		}
		targets := uc.advisorGoalTargets(ctx, q, pairKeys(pairs))
		items := make([]domain.SummaryItem, 0, len(pairs))
		for i, p := range pairs {
			kpi := domain.PeriodKPI(p.Current, prevCounts(p.Previous), q.rateMode).
				WithAchievement(targets[i])
			items = append(items, domain.SummaryItem{Advisor: domain.ResolveDisplay(p.Key, names), KPI: kpi})
		}
		return items, nil
	}

	var counts, previousCounts domain.MetricCounts
	if q.advisorID > 0 {
		counts = domain.CountsFor(cur, q.advisorKey())
		previousCounts = domain.CountsFor(previous, q.advisorKey())
	} else {
		counts = domain.SumAdvisorCounts(cur)
		previousCounts = domain.SumAdvisorCounts(previous)
	}
	names, err := uc.names(ctx, q.extraKeys())
	if err != nil {
		return nil, err
	}
	kpi := domain.PeriodKPI(counts, prevCounts(previousCounts), q.rateMode).
		WithAchievement(uc.goalTargets(ctx, q, q.scope, q.advisorKey()))
	return []domain.SummaryItem{{Advisor: q.scopeDisplay(names), KPI: kpi}}, nil
}

func (uc *GetYieldUseCase) cohortSummary(ctx context.Context, q query, prev *domain.DateRange) ([]domain.SummaryItem, error) {
	var (
		records          []domain.StageDateRecord
		revRows, prevRev []domain.MetricRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := uc.source.FetchStageRecords(gctx, q.advisorID)
		if err != nil {
			return fmt.Errorf("fetch stage records: %w", err)
		}
		records = recs
		return nil
	})
	g.Go(func() error {
		rows, err := uc.source.FetchMetricRows(gctx, q.filter(q.rng))
		if err != nil {
			return fmt.Errorf("fetch current revenue rows: %w", err)
		}
		revRows = rows
		return nil
	})
	if prev != nil {
		g.Go(func() error {
			rows, err := uc.source.FetchMetricRows(gctx, q.filter(*prev))
			if err != nil {
				return fmt.Errorf("fetch previous revenue rows: %w", err)
			}
			prevRev = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	revenue := domain.AggregatePeriod(revRows)
	prevRevenue := domain.AggregatePeriod(prevRev)

	if q.groupBy == domain.GroupByAdvisor {
		cur := domain.CohortByAdvisor(records, q.rng, q.rateMode)
		previous := map[domain.AdvisorKey]domain.CohortAggregate{}
		if prev != nil {
			previous = domain.CohortByAdvisor(records, *prev, q.rateMode)
		}
		pairs := domain.MergeAdvisorMaps(cur, previous, domain.CohortAdvisorZero(q.rateMode), q.extraKeys()...)
		names, err := uc.names(ctx, pairKeys(pairs))
		if err != nil {
			return nil, err
		}
		targets := uc.advisorGoalTargets(ctx, q, pairKeys(pairs))
		items := make([]domain.SummaryItem, 0, len(pairs))
		for i, p := range pairs {
			var prevAgg *domain.CohortAggregate
			if prev != nil {
				prevAgg = &p.Previous
			}
			kpi := domain.CohortKPI(
				p.Current, domain.CountsFor(revenue, p.Key).Get(domain.MetricRevenue),
				prevAgg, domain.CountsFor(prevRevenue, p.Key).Get(domain.MetricRevenue),
			).WithAchievement(targets[i])
			items = append(items, domain.SummaryItem{Advisor: domain.ResolveDisplay(p.Key, names), KPI: kpi})
		}
		return items, nil
	}

	scoped := records
	var curRevenue, previousRevenue int64
	if q.advisorID > 0 {
		scoped = filterAdvisor(records, q.advisorKey())
		curRevenue = domain.CountsFor(revenue, q.advisorKey()).Get(domain.MetricRevenue)
		previousRevenue = domain.CountsFor(prevRevenue, q.advisorKey()).Get(domain.MetricRevenue)
	} else {
		curRevenue = domain.SumAdvisorCounts(revenue).Get(domain.MetricRevenue)
		previousRevenue = domain.SumAdvisorCounts(prevRevenue).Get(domain.MetricRevenue)
	}

	curAgg := domain.CohortRange(scoped, q.rng, q.rateMode)
	var prevAgg *domain.CohortAggregate
	if prev != nil {
		p := domain.CohortRange(scoped, *prev, q.rateMode)
		prevAgg = &p
	}

	names, err := uc.names(ctx, q.extraKeys())
	if err != nil {
		return nil, err
	}
	kpi := domain.CohortKPI(curAgg, curRevenue, prevAgg, previousRevenue).
		WithAchievement(uc.goalTargets(ctx, q, q.scope, q.advisorKey()))
	return []domain.SummaryItem{{Advisor: q.scopeDisplay(names), KPI: kpi}}, nil
}

// planned counts stage events dated after the range end. Planned items
// carry counts only.
func (uc *GetYieldUseCase) planned(ctx context.Context, q query) (*domain.SummaryReport, error) {
	rows, err := uc.source.FetchPlannedRows(ctx, q.rng.End, q.advisorID)
	if err != nil {
		return nil, fmt.Errorf("fetch planned rows: %w", err)
	}
	counts := domain.AggregatePeriod(rows)

	var items []domain.SummaryItem
	if q.groupBy == domain.GroupByAdvisor {
		pairs := domain.MergeAdvisorMaps(counts, nil, domain.NewMetricCounts, q.extraKeys()...)
		names, err := uc.names(ctx, pairKeys(pairs))
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			items = append(items, domain.SummaryItem{
				Advisor: domain.ResolveDisplay(p.Key, names),
				KPI:     domain.KPI{Current: domain.Snapshot{Counts: p.Current}},
			})
		}
	} else {
		var total domain.MetricCounts
		if q.advisorID > 0 {
			total = domain.CountsFor(counts, q.advisorKey())
		} else {
			total = domain.SumAdvisorCounts(counts)
		}
		names, err := uc.names(ctx, q.extraKeys())
		if err != nil {
			return nil, err
		}
		items = []domain.SummaryItem{{
			Advisor: q.scopeDisplay(names),
			KPI:     domain.KPI{Current: domain.Snapshot{Counts: total}},
		}}
	}

	uc.recorder.RecordReport("planned", string(q.calcMode))
	return &domain.SummaryReport{Meta: q.meta(), Items: items}, nil
}

// Series returns gap-free day or month count series per advisor or for the
// whole scope.
func (uc *GetYieldUseCase) Series(ctx context.Context, in YieldInput) (*domain.SeriesReport, error) {
	q, err := parse(in)
	if err != nil {
		return nil, err
	}
	if q.granularity, err = parseSummaryGranularity(in.Granularity); err != nil {
		return nil, err
	}
	if q.granularity == "summary" {
		return nil, invalid("granularity", in.Granularity)
	}
	g := domain.Granularity(q.granularity)

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	rows, err := uc.source.FetchDailyRows(ctx, q.filter(q.rng))
	if err != nil {
		return nil, fmt.Errorf("fetch daily rows: %w", err)
	}
	daily := domain.AggregateDaily(rows)
	periods := domain.EnumeratePeriods(q.rng, g)

	var items []domain.SeriesItem
	if q.groupBy == domain.GroupByAdvisor {
		pairs := domain.MergeAdvisorMaps(daily, nil, func() domain.Series { return domain.Series{} }, q.extraKeys()...)
		names, err := uc.names(ctx, pairKeys(pairs))
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			items = append(items, domain.SeriesItem{
				Advisor: domain.ResolveDisplay(p.Key, names),
				Series:  domain.BuildTrendSeries(periods, p.Current.Regroup(g), nil, q.rateMode),
			})
		}
	} else {
		var series domain.Series
		if q.advisorID > 0 {
			series = daily[q.advisorKey()]
		} else {
			all := make([]domain.Series, 0, len(daily))
			for _, s := range daily {
				all = append(all, s)
			}
			series = domain.MergeSeries(all...)
		}
		names, err := uc.names(ctx, q.extraKeys())
		if err != nil {
			return nil, err
		}
		items = []domain.SeriesItem{{
			Advisor: q.scopeDisplay(names),
			Series:  domain.BuildTrendSeries(periods, series.Regroup(g), nil, q.rateMode),
		}}
	}

	uc.recorder.RecordReport("series", string(q.calcMode))
	return &domain.SeriesReport{Meta: q.meta(), Items: items}, nil
}

// Trend returns one series for the scope. In cohort mode the counts are
// still event counts and the rates are cohort-attributed.
func (uc *GetYieldUseCase) Trend(ctx context.Context, in YieldInput) (*domain.TrendReport, error) {
	q, err := parse(in)
	if err != nil {
		return nil, err
	}
	g, err := parseTrendGranularity(in.Granularity)
	if err != nil {
		return nil, err
	}
	q.granularity = string(g)

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	var (
		rows    []domain.MetricRow
		records []domain.StageDateRecord
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		r, err := uc.source.FetchDailyRows(gctx, q.filter(q.rng))
		if err != nil {
			return fmt.Errorf("fetch daily rows: %w", err)
		}
		rows = r
		return nil
	})
	if q.calcMode == domain.CalcModeCohort {
		eg.Go(func() error {
			r, err := uc.source.FetchStageRecords(gctx, q.advisorID)
			if err != nil {
				return fmt.Errorf("fetch stage records: %w", err)
			}
			records = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	daily := domain.AggregateDaily(rows)
	all := make([]domain.Series, 0, len(daily))
	for _, s := range daily {
		all = append(all, s)
	}
	counts := domain.MergeSeries(all...).Regroup(g)
	periods := domain.EnumeratePeriods(q.rng, g)

	var rates map[string]domain.RateSet
	if q.calcMode == domain.CalcModeCohort {
		rates = domain.CohortRateSeries(domain.CohortBuckets(records, q.rng, g, q.rateMode))
	}

	uc.recorder.RecordReport("trend", string(q.calcMode))
	return &domain.TrendReport{
		Meta:   q.meta(),
		Series: domain.BuildTrendSeries(periods, counts, rates, q.rateMode),
	}, nil
}

// Breakdown counts candidates whose first interview falls in the range by
// the requested dimension.
func (uc *GetYieldUseCase) Breakdown(ctx context.Context, in YieldInput) (*domain.BreakdownReport, error) {
	q, err := parse(in)
	if err != nil {
		return nil, err
	}
	if q.dimension, err = domain.ParseDimension(in.Dimension); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimension, err)
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	rows, err := uc.source.FetchBreakdownRows(ctx, q.dimension, q.filter(q.rng))
	if err != nil {
		return nil, fmt.Errorf("fetch breakdown rows: %w", err)
	}

	uc.recorder.RecordReport("breakdown", string(q.calcMode))
	return &domain.BreakdownReport{
		Meta:  q.meta(),
		Items: domain.Breakdown(q.dimension, rows, uc.now()),
	}, nil
}

// Candidates lists per-candidate placement revenue in the range.
func (uc *GetYieldUseCase) Candidates(ctx context.Context, in YieldInput) (*domain.CandidateRevenueReport, error) {
	q, err := parse(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	rows, err := uc.source.FetchCandidateRevenue(ctx, q.filter(q.rng))
	if err != nil {
		return nil, fmt.Errorf("fetch candidate revenue: %w", err)
	}

	keys := make([]domain.AdvisorKey, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Advisor)
	}
	names, err := uc.names(ctx, keys)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CandidateRevenueItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.CandidateRevenueItem{
			CandidateRevenue: r,
			AdvisorDisplay:   domain.ResolveDisplay(r.Advisor, names),
		})
	}
	uc.recorder.RecordReport("candidates", string(q.calcMode))
	return &domain.CandidateRevenueReport{Meta: q.meta(), Items: items}, nil
}

func pairKeys[V any](pairs []domain.AdvisorPair[V]) []domain.AdvisorKey {
	keys := make([]domain.AdvisorKey, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	return keys
}

func filterAdvisor(records []domain.StageDateRecord, key domain.AdvisorKey) []domain.StageDateRecord {
	out := make([]domain.StageDateRecord, 0, len(records))
	for _, r := range records {
		if r.Advisor == key {
			out = append(out, r)
		}
	}
	return out
}
