package fiber

import (
	"strings"
	"time"

	"yield-analytics-service/internal/yield/core/domain"
)

type MetaResponse struct {
	From            string `json:"from" example:"2026-02-01"`
	To              string `json:"to" example:"2026-02-28"`
	Scope           string `json:"scope" example:"company"`
	AdvisorUserID   *int64 `json:"advisorUserId"`
	Granularity     string `json:"granularity" example:"summary"`
	GroupBy         string `json:"groupBy" example:"none"`
	CalcMode        string `json:"calcMode" example:"period"`
	RateCalcMode    string `json:"rateCalcMode" example:"step"`
	RevenueTiming   string `json:"revenueTiming" example:"occurrence"`
	Dimension       string `json:"dimension,omitempty"`
	Planned         bool   `json:"planned"`
	PlannedBaseDate string `json:"plannedBaseDate,omitempty" example:"2026-02-28"`
	PrevFrom        string `json:"prevFrom,omitempty" example:"2026-01-04"`
	PrevTo          string `json:"prevTo,omitempty" example:"2026-01-31"`
}

// KPIResponse is the flat KPI card: metric counts, rates, prev<Key> values,
// cohort<Stage> numerators and goal achievement.
type KPIResponse map[string]any

type SummaryItemResponse struct {
	AdvisorUserID *int64      `json:"advisorUserId"`
	Name          *string     `json:"name"`
	KPI           KPIResponse `json:"kpi"`
}

type SummaryResponse struct {
	Meta  MetaResponse          `json:"meta"`
	Items []SummaryItemResponse `json:"items"`
}

// TrendPointResponse is one bucket: "period" plus the metric and rate keys.
type TrendPointResponse map[string]any

type SeriesItemResponse struct {
	AdvisorUserID *int64               `json:"advisorUserId"`
	Name          *string              `json:"name"`
	Series        []TrendPointResponse `json:"series"`
}

type SeriesResponse struct {
	Meta  MetaResponse         `json:"meta"`
	Items []SeriesItemResponse `json:"items"`
}

type TrendResponse struct {
	Meta   MetaResponse         `json:"meta"`
	Series []TrendPointResponse `json:"series"`
}

type BreakdownItemResponse struct {
	Label string `json:"label" example:"engineer"`
	Count int64  `json:"count" example:"12"`
}

type BreakdownResponse struct {
	Meta  MetaResponse            `json:"meta"`
	Items []BreakdownItemResponse `json:"items"`
}

type CandidateRevenueItemResponse struct {
	CandidateID      int64   `json:"candidateId"`
	CandidateName    string  `json:"candidateName"`
	AdvisorUserID    *int64  `json:"advisorUserId"`
	AdvisorName      string  `json:"advisorName"`
	FeeAmount        int64   `json:"feeAmount"`
	RefundAmount     int64   `json:"refundAmount"`
	NetRevenue       int64   `json:"netRevenue"`
	OrderDate        *string `json:"orderDate"`
	WithdrawDate     *string `json:"withdrawDate"`
	OrderReported    bool    `json:"orderReported"`
	RefundReported   bool    `json:"refundReported"`
	OrderConfirmed   bool    `json:"orderConfirmed"`
	RevenueConverted bool    `json:"revenueConverted"`
}

type CandidateRevenueResponse struct {
	Meta  MetaResponse                   `json:"meta"`
	Items []CandidateRevenueItemResponse `json:"items"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message" example:"from and to (YYYY-MM-DD) are required and from must not be after to"`
}

func toMetaResponse(m domain.ReportMeta) MetaResponse {
	out := MetaResponse{
		From:          m.Range.StartDate(),
		To:            m.Range.EndDate(),
		Scope:         string(m.Scope),
		Granularity:   m.Granularity,
		GroupBy:       string(m.GroupBy),
		CalcMode:      string(m.CalcMode),
		RateCalcMode:  string(m.RateMode),
		RevenueTiming: string(m.RevenueTiming),
		Dimension:     string(m.Dimension),
		Planned:       m.Planned,
	}
	if m.AdvisorUserID > 0 {
		id := m.AdvisorUserID
		out.AdvisorUserID = &id
	}
	if m.Planned {
		out.PlannedBaseDate = m.Range.EndDate()
	}
	if m.PrevRange != nil {
		out.PrevFrom = m.PrevRange.StartDate()
		out.PrevTo = m.PrevRange.EndDate()
	}
	return out
}

// displayName is nil for the whole-company card.
func displayName(d domain.AdvisorDisplay) *string {
	if d.Name == "" {
		return nil
	}
	name := d.Name
	return &name
}

func prefixed(prefix, key string) string {
	return prefix + strings.ToUpper(key[:1]) + key[1:]
}

func putSnapshot(out map[string]any, prefix string, s domain.Snapshot) {
	key := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefixed(prefix, k)
	}
	for _, m := range domain.MetricKeys {
		out[key(string(m))] = s.Counts.Get(m)
	}
	if s.Rates == nil {
		return
	}
	for _, r := range domain.RateKeys {
		out[key(string(r))] = s.Rates[r]
	}
}

func toKPIResponse(k domain.KPI) KPIResponse {
	out := KPIResponse{}
	putSnapshot(out, "", k.Current)
	if k.Previous != nil {
		putSnapshot(out, "prev", *k.Previous)
	}
	if k.CohortNumerators != nil {
		for _, d := range domain.RateDefs {
			out[prefixed("cohort", string(d.Numerator))] = k.CohortNumerators[d.Key]
		}
	}
	if k.Achievement != nil {
		out["achievementRate"] = k.Achievement.Rate
		out["currentAmount"] = k.Achievement.Current
		out["targetAmount"] = k.Achievement.Target
	}
	return out
}

func toTrendPoints(points []domain.TrendPoint) []TrendPointResponse {
	out := make([]TrendPointResponse, 0, len(points))
	for _, p := range points {
		row := TrendPointResponse{"period": p.Period}
		putSnapshot(row, "", domain.Snapshot{Counts: p.Counts, Rates: p.Rates})
		out = append(out, row)
	}
	return out
}

func toSummaryResponse(r *domain.SummaryReport) SummaryResponse {
	resp := SummaryResponse{
		Meta:  toMetaResponse(r.Meta),
		Items: make([]SummaryItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, SummaryItemResponse{
			AdvisorUserID: it.Advisor.AdvisorUserID,
			Name:          displayName(it.Advisor),
			KPI:           toKPIResponse(it.KPI),
		})
	}
	return resp
}

func toSeriesResponse(r *domain.SeriesReport) SeriesResponse {
	resp := SeriesResponse{
		Meta:  toMetaResponse(r.Meta),
		Items: make([]SeriesItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, SeriesItemResponse{
			AdvisorUserID: it.Advisor.AdvisorUserID,
			Name:          displayName(it.Advisor),
			Series:        toTrendPoints(it.Series),
		})
	}
	return resp
}

func toBreakdownResponse(r *domain.BreakdownReport) BreakdownResponse {
	resp := BreakdownResponse{
		Meta:  toMetaResponse(r.Meta),
		Items: make([]BreakdownItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, BreakdownItemResponse{Label: it.Label, Count: it.Count})
	}
	return resp
}

func isoDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

func toCandidateRevenueResponse(r *domain.CandidateRevenueReport) CandidateRevenueResponse {
	resp := CandidateRevenueResponse{
		Meta:  toMetaResponse(r.Meta),
		Items: make([]CandidateRevenueItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, CandidateRevenueItemResponse{
			CandidateID:      it.CandidateID,
			CandidateName:    it.CandidateName,
			AdvisorUserID:    it.AdvisorDisplay.AdvisorUserID,
			AdvisorName:      it.AdvisorDisplay.Name,
			FeeAmount:        it.FeeAmount,
			RefundAmount:     it.RefundAmount,
			NetRevenue:       it.NetRevenue(),
			OrderDate:        isoDate(it.OrderDate),
			WithdrawDate:     isoDate(it.WithdrawDate),
			OrderReported:    it.OrderReported,
			RefundReported:   it.RefundReported,
			OrderConfirmed:   it.OrderReported,
			RevenueConverted: !it.OrderDate.IsZero(),
		})
	}
	return resp
}
