package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"yield-analytics-service/internal/yield/core/domain"
	"yield-analytics-service/internal/yield/core/usecase"
	"yield-analytics-service/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type YieldUseCase interface {
	Summary(ctx context.Context, in usecase.YieldInput) (*domain.SummaryReport, error)
	Series(ctx context.Context, in usecase.YieldInput) (*domain.SeriesReport, error)
	Trend(ctx context.Context, in usecase.YieldInput) (*domain.TrendReport, error)
	Breakdown(ctx context.Context, in usecase.YieldInput) (*domain.BreakdownReport, error)
	Candidates(ctx context.Context, in usecase.YieldInput) (*domain.CandidateRevenueReport, error)
}

type YieldHandler struct {
	uc  YieldUseCase
	log logger.Logger
}

func NewYieldHandler(uc YieldUseCase, log logger.Logger) *YieldHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &YieldHandler{uc: uc, log: log}
}

// Register mounts the yield routes on r.
func (h *YieldHandler) Register(r fiber.Router) {
	r.Get("/kpi/yield", h.GetYield)
	r.Get("/kpi/yield/company", h.GetCompanyYield)
	r.Get("/kpi/yield/personal", h.GetPersonalYield)
	r.Get("/kpi/yield/trend", h.GetTrend)
	r.Get("/kpi/yield/breakdown", h.GetBreakdown)
	r.Get("/kpi/yield/candidates", h.GetCandidates)
}

// parseInput reads the shared query parameters. A malformed advisorUserId
// is treated as absent.
func parseInput(c *fiber.Ctx) usecase.YieldInput {
	in := usecase.YieldInput{
		From:          c.Query("from"),
		To:            c.Query("to"),
		Scope:         c.Query("scope"),
		Granularity:   c.Query("granularity"),
		GroupBy:       c.Query("groupBy"),
		CalcMode:      c.Query("calcMode"),
		RateCalcMode:  c.Query("rateCalcMode"),
		RevenueTiming: c.Query("revenueTiming"),
		Dimension:     c.Query("dimension"),
		Planned:       isPlanned(c.Query("planned")),
	}
	if in.RevenueTiming == "" {
		in.RevenueTiming = c.Query("timeBasis", c.Query("countBasis"))
	}
	if raw := c.Query("advisorUserId"); raw != "" {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
			in.AdvisorUserID = id
		}
	}
	return in
}

func isPlanned(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "planned":
		return true
	}
	return false
}

func isSeriesGranularity(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "day", "daily", "month", "monthly":
		return true
	}
	return false
}

func (h *YieldHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrAdvisorRequired),
		errors.Is(err, usecase.ErrInvalidDimension),
		errors.Is(err, usecase.ErrInvalidParameter):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	default:
		h.log.Error(c.UserContext(), "yield request failed",
			logger.String("path", c.Path()),
			logger.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func (h *YieldHandler) yield(c *fiber.Ctx, in usecase.YieldInput) error {
	ctx := c.UserContext()

	if !in.Planned && isSeriesGranularity(in.Granularity) {
		res, err := h.uc.Series(ctx, in)
		if err != nil {
			return h.writeError(c, err)
		}
		return c.Status(http.StatusOK).JSON(toSeriesResponse(res))
	}

	res, err := h.uc.Summary(ctx, in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toSummaryResponse(res))
}

// GetYield godoc
// @Summary Yield KPIs
// @Description Returns funnel counts, conversion rates and previous-period values. granularity=day|month returns gap-free series; planned=1 returns counts of stages scheduled after the range.
// @Tags Yield
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param scope query string false "company | personal"
// @Param advisorUserId query int false "Advisor id, required for personal scope"
// @Param granularity query string false "summary | day | month"
// @Param groupBy query string false "none | advisor"
// @Param calcMode query string false "period | cohort"
// @Param rateCalcMode query string false "step | base"
// @Param revenueTiming query string false "occurrence | application"
// @Param planned query string false "1 | true | planned"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/yield [get]
func (h *YieldHandler) GetYield(c *fiber.Ctx) error {
	return h.yield(c, parseInput(c))
}

// GetCompanyYield godoc
// @Summary Company yield KPIs
// @Description Same as /kpi/yield with scope=company.
// @Tags Yield
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param granularity query string false "summary | day | month"
// @Param groupBy query string false "none | advisor"
// @Param calcMode query string false "period | cohort"
// @Param rateCalcMode query string false "step | base"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/yield/company [get]
func (h *YieldHandler) GetCompanyYield(c *fiber.Ctx) error {
	in := parseInput(c)
	in.Scope = string(domain.ScopeCompany)
	return h.yield(c, in)
}

// GetPersonalYield godoc
// @Summary Personal yield KPIs
// @Description Same as /kpi/yield with scope=personal.
// @Tags Yield
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param advisorUserId query int true "Advisor id"
// @Param granularity query string false "summary | day | month"
// @Param calcMode query string false "period | cohort"
// @Param rateCalcMode query string false "step | base"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/yield/personal [get]
func (h *YieldHandler) GetPersonalYield(c *fiber.Ctx) error {
	in := parseInput(c)
	in.Scope = string(domain.ScopePersonal)
	return h.yield(c, in)
}

// GetTrend godoc
// @Summary Yield trend
// @Description Returns one gap-free series of counts and rates for the scope.
// @Tags Yield
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param scope query string false "company | personal"
// @Param advisorUserId query int false "Advisor id"
// @Param granularity query string false "month | day"
// @Param calcMode query string false "period | cohort"
// @Param rateCalcMode query string false "step | base"
// @Success 200 {object} TrendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/yield/trend [get]
func (h *YieldHandler) GetTrend(c *fiber.Ctx) error {
	res, err := h.uc.Trend(c.UserContext(), parseInput(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(TrendResponse{
		Meta:   toMetaResponse(res.Meta),
		Series: toTrendPoints(res.Series),
	})
}

// GetBreakdown godoc
// @Summary Candidate breakdown
// @Description Counts candidates first interviewed in the range by job, gender, age or media.
// @Tags Yield
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param dimension query string true "job | gender | age | media"
// @Param scope query string false "company | personal"
// @Param advisorUserId query int false "Advisor id"
// @Success 200 {object} BreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/yield/breakdown [get]
func (h *YieldHandler) GetBreakdown(c *fiber.Ctx) error {
	res, err := h.uc.Breakdown(c.UserContext(), parseInput(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toBreakdownResponse(res))
}

// GetCandidates godoc
// @Summary Candidate revenue
// @Description Lists per-candidate fee, refund and net revenue in the range.
// @Tags Yield
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param scope query string false "company | personal"
// @Param advisorUserId query int false "Advisor id"
// @Param revenueTiming query string false "occurrence | application"
// @Success 200 {object} CandidateRevenueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /kpi/yield/candidates [get]
func (h *YieldHandler) GetCandidates(c *fiber.Ctx) error {
	res, err := h.uc.Candidates(c.UserContext(), parseInput(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toCandidateRevenueResponse(res))
}
