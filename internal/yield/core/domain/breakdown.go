package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Dimension is a demographic or acquisition attribute to break candidates down by.
type Dimension string

const (
	DimensionJob    Dimension = "job"
	DimensionGender Dimension = "gender"
	DimensionAge    Dimension = "age"
	DimensionMedia  Dimension = "media"
)

var ErrUnknownDimension = errors.New("unknown dimension")

// ParseDimension accepts the canonical names and their aliases.
func ParseDimension(raw string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "job", "occupation", "role":
		return DimensionJob, nil
	case "gender", "sex":
		return DimensionGender, nil
	case "age", "age_group", "agegroup":
		return DimensionAge, nil
	case "media", "source", "channel":
		return DimensionMedia, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, raw)
	}
}

// Labels.
const (
	LabelUnknown = "unknown"
	LabelOther   = "other"

	LabelEngineer  = "engineer"
	LabelSales     = "sales"
	LabelCorporate = "corporate"
	LabelMarketing = "marketing"
	LabelCS        = "customer_success"

	LabelMale   = "male"
	LabelFemale = "female"

	LabelUnder20 = "under_20"
	Label20s     = "20s"
	Label30s     = "30s"
	Label40s     = "40s"
	Label50Plus  = "50_plus"

	LabelIndeed      = "indeed"
	LabelKyujinBox   = "kyujin_box"
	LabelRikunabi    = "rikunabi"
	LabelMynavi      = "mynavi"
	LabelDoda        = "doda"
	LabelCompanySite = "company_site"
	LabelReferral    = "referral"
)

// BreakdownRow is one candidate attribute value. Age is nil when unknown;
// BirthDate is used when Age is nil.
type BreakdownRow struct {
	CandidateID int64
	Text        string
	Age         *int
	BirthDate   time.Time
}

// BreakdownItem is one label and the number of distinct candidates under it.
type BreakdownItem struct {
	Label string
	Count int64
}

type labelRule struct {
	label    string
	contains []string
}

// first match wins
var jobRules = []labelRule{
	{LabelEngineer, []string{"エンジニア", "開発", "se", "ｐｇ", "pg", "システム", "インフラ", "データ", "ai", "機械学習"}},
	{LabelSales, []string{"営業", "セールス", "bdr", "sdr"}},
	{LabelCorporate, []string{"人事", "採用", "総務", "経理", "財務", "法務", "労務", "バックオフィス", "管理部"}},
	{LabelMarketing, []string{"マーケ", "広報", "pr", "広告", "プロモーション"}},
	{LabelCS, []string{"cs", "カスタマーサクセス", "サポート", "ヘルプデスク"}},
}

var mediaRules = []labelRule{
	{LabelIndeed, []string{"indeed"}},
	{LabelKyujinBox, []string{"求人ボックス", "求人box"}},
	{LabelRikunabi, []string{"リクナビ"}},
	{LabelMynavi, []string{"マイナビ"}},
	{LabelDoda, []string{"doda"}},
	{LabelCompanySite, []string{"自社", "hp", "ホームページ"}},
	{LabelReferral, []string{"紹介", "リファラル"}},
}

var (
	maleValues   = map[string]struct{}{"男性": {}, "男": {}, "male": {}, "m": {}}
	femaleValues = map[string]struct{}{"女性": {}, "女": {}, "female": {}, "f": {}}
)

// fixed display order for ordinal dimensions
var (
	genderOrder = []string{LabelMale, LabelFemale, LabelOther, LabelUnknown}
	ageOrder    = []string{LabelUnder20, Label20s, Label30s, Label40s, Label50Plus, LabelUnknown}
)

func matchRules(text string, rules []labelRule, fallback string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return LabelUnknown
	}
	for _, r := range rules {
		for _, needle := range r.contains {
			if strings.Contains(text, needle) {
				return r.label
			}
		}
	}
	return fallback
}

// ClassifyJob maps a job title to a job family.
func ClassifyJob(title string) string {
	label := matchRules(title, jobRules, LabelOther)
	if label == LabelUnknown {
		return LabelOther
	}
	return label
}

// ClassifyMedia maps an application route to an acquisition channel.
func ClassifyMedia(route string) string {
	return matchRules(route, mediaRules, LabelOther)
}

// ClassifyGender maps free-form gender text to male/female/other/unknown.
func ClassifyGender(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return LabelUnknown
	}
	if _, ok := maleValues[v]; ok {
		return LabelMale
	}
	if _, ok := femaleValues[v]; ok {
		return LabelFemale
	}
	return LabelOther
}

// AgeAt returns the age in whole years on asOf, ok=false for a zero birth date.
func AgeAt(birth, asOf time.Time) (int, bool) {
	if birth.IsZero() {
		return 0, false
	}
	b, now := Day(birth), Day(asOf)
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age, true
}

// ClassifyAge buckets an age by decade.
func ClassifyAge(age int, known bool) string {
	switch {
	case !known:
		return LabelUnknown
	case age < 20:
		return LabelUnder20
	case age < 30:
		return Label20s
	case age < 40:
		return Label30s
	case age < 50:
		return Label40s
	default:
		return Label50Plus
	}
}

func (dim Dimension) classify(row BreakdownRow, asOf time.Time) string {
	switch dim {
	case DimensionJob:
		return ClassifyJob(row.Text)
	case DimensionMedia:
		return ClassifyMedia(row.Text)
	case DimensionGender:
		return ClassifyGender(row.Text)
	case DimensionAge:
		if row.Age != nil {
			return ClassifyAge(*row.Age, true)
		}
		age, ok := AgeAt(row.BirthDate, asOf)
		return ClassifyAge(age, ok)
	default:
		return LabelUnknown
	}
}

// Breakdown labels each row, counts distinct candidates per label and
// orders the result for display.
func Breakdown(dim Dimension, rows []BreakdownRow, asOf time.Time) []BreakdownItem {
	type seenKey struct {
		label     string
		candidate int64
	}
	seen := make(map[seenKey]struct{}, len(rows))
	counts := make(map[string]int64)
	for _, row := range rows {
		label := dim.classify(row, asOf)
		k := seenKey{label: label, candidate: row.CandidateID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		counts[label]++
	}

	items := make([]BreakdownItem, 0, len(counts))
	for label, n := range counts {
		items = append(items, BreakdownItem{Label: label, Count: n})
	}
	SortBreakdown(dim, items)
	return items
}

// SortBreakdown applies the canonical order for gender and age and
// count-descending order (ties by label) for the open dimensions.
func SortBreakdown(dim Dimension, items []BreakdownItem) {
	var order []string
	switch dim {
	case DimensionGender:
		order = genderOrder
	case DimensionAge:
		order = ageOrder
	}
	if order != nil {
		rank := func(label string) int {
			for i, l := range order {
				if l == label {
					return i
				}
			}
			return len(order)
		}
		sort.SliceStable(items, func(i, j int) bool {
			ri, rj := rank(items[i].Label), rank(items[j].Label)
			if ri != rj {
				return ri < rj
			}
			return items[i].Label < items[j].Label
		})
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Label < items[j].Label
	})
}
