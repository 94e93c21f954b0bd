package domain

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeAdvisorKey(t *testing.T) {
	Convey("NormalizeAdvisorKey", t, func() {
		var nilID *int64
		seven := int64(7)

		Convey("folds every unassigned spelling into one key", func() {
			for _, raw := range []any{nil, 0, int64(0), "0", "", " ", nilID, -3, 1.5, []byte("x")} {
				So(NormalizeAdvisorKey(raw), ShouldEqual, Unassigned)
			}
		})

		Convey("keeps positive ids regardless of representation", func() {
			for _, raw := range []any{7, int32(7), int64(7), "7", &seven, 7.0, []byte("7")} {
				So(NormalizeAdvisorKey(raw), ShouldEqual, AdvisorKeyFromID(7))
			}
		})

		Convey("0 and nil land in one aggregate bucket", func() {
			rows := []MetricRow{
				{Advisor: NormalizeAdvisorKey(0), Metric: "offers", Count: 1},
				{Advisor: NormalizeAdvisorKey(nil), Metric: "offers", Count: 2},
			}
			agg := AggregatePeriod(rows)
			So(len(agg), ShouldEqual, 1)
			So(agg[Unassigned].Get(MetricOffers), ShouldEqual, int64(3))
		})
	})
}

func TestResolveDisplay(t *testing.T) {
	Convey("ResolveDisplay", t, func() {
		names := map[int64]string{1: "Tanaka"}

		d := ResolveDisplay(AdvisorKeyFromID(1), names)
		So(d.Name, ShouldEqual, "Tanaka")
		So(*d.AdvisorUserID, ShouldEqual, int64(1))

		So(ResolveDisplay(AdvisorKeyFromID(9), names).Name, ShouldEqual, "ID:9")

		u := ResolveDisplay(Unassigned, names)
		So(u.Name, ShouldEqual, UnassignedName)
		So(u.AdvisorUserID, ShouldBeNil)
	})
}

func TestMergeAdvisorMaps(t *testing.T) {
	Convey("Given current and previous counts with disjoint advisors", t, func() {
		cur := map[AdvisorKey]MetricCounts{
			AdvisorKeyFromID(2): {MetricOffers: 1},
			Unassigned:          {MetricOffers: 4},
		}
		prev := map[AdvisorKey]MetricCounts{
			AdvisorKeyFromID(1): {MetricOffers: 5},
		}

		pairs := MergeAdvisorMaps(cur, prev, NewMetricCounts, AdvisorKeyFromID(3))

		Convey("every key appears once with unassigned last", func() {
			keys := make([]AdvisorKey, len(pairs))
			for i, p := range pairs {
				keys[i] = p.Key
			}
			So(keys, ShouldResemble, []AdvisorKey{AdvisorKeyFromID(1), AdvisorKeyFromID(2), AdvisorKeyFromID(3), Unassigned})
		})

		Convey("missing sides are zero", func() {
			So(pairs[0].Current.Get(MetricOffers), ShouldEqual, int64(0))
			So(pairs[0].Previous.Get(MetricOffers), ShouldEqual, int64(5))
			So(pairs[2].Current.Get(MetricOffers), ShouldEqual, int64(0))
		})

		Convey("AdvisorIDs skips unassigned", func() {
			So(AdvisorIDs([]AdvisorKey{Unassigned, AdvisorKeyFromID(3), AdvisorKeyFromID(1), AdvisorKeyFromID(3)}), ShouldResemble, []int64{1, 3})
		})
	})
}

func TestBreakdown(t *testing.T) {
	asOf := mustDay("2026-06-01")
	age := func(n int) *int { return &n }

	Convey("Gender uses the fixed order", t, func() {
		rows := []BreakdownRow{
			{CandidateID: 1, Text: "女性"},
			{CandidateID: 2, Text: "女"},
			{CandidateID: 3, Text: "男性"},
			{CandidateID: 4, Text: "その他"},
			{CandidateID: 5},
		}
		items := Breakdown(DimensionGender, rows, asOf)
		So(items, ShouldResemble, []BreakdownItem{
			{Label: LabelMale, Count: 1},
			{Label: LabelFemale, Count: 2},
			{Label: LabelOther, Count: 1},
			{Label: LabelUnknown, Count: 1},
		})
	})

	Convey("Age prefers the stored age and falls back to the birth date", t, func() {
		rows := []BreakdownRow{
			{CandidateID: 1, Age: age(19)},
			{CandidateID: 2, Age: age(34)},
			{CandidateID: 3, BirthDate: time.Date(1996, 6, 2, 0, 0, 0, 0, time.UTC)},
			{CandidateID: 4},
		}
		items := Breakdown(DimensionAge, rows, asOf)
		So(items, ShouldResemble, []BreakdownItem{
			{Label: LabelUnder20, Count: 1},
			{Label: Label20s, Count: 1},
			{Label: Label30s, Count: 1},
			{Label: LabelUnknown, Count: 1},
		})
	})

	Convey("Open dimensions sort by count and count candidates once", t, func() {
		rows := []BreakdownRow{
			{CandidateID: 1, Text: "Indeed経由"},
			{CandidateID: 1, Text: "indeed"},
			{CandidateID: 2, Text: "リクナビNEXT"},
			{CandidateID: 3, Text: "リクナビ"},
			{CandidateID: 4, Text: "知人"},
		}
		items := Breakdown(DimensionMedia, rows, asOf)
		So(items, ShouldResemble, []BreakdownItem{
			{Label: LabelRikunabi, Count: 2},
			{Label: LabelIndeed, Count: 1},
			{Label: LabelOther, Count: 1},
		})
	})

	Convey("Job titles map to families", t, func() {
		So(ClassifyJob("バックエンドエンジニア"), ShouldEqual, LabelEngineer)
		So(ClassifyJob("法人営業"), ShouldEqual, LabelSales)
		So(ClassifyJob(""), ShouldEqual, LabelOther)
	})

	Convey("ParseDimension accepts aliases and rejects the rest", t, func() {
		d, err := ParseDimension("Source")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, DimensionMedia)

		_, err = ParseDimension("height")
		So(errors.Is(err, ErrUnknownDimension), ShouldBeTrue)
	})
}

func TestKPI(t *testing.T) {
	Convey("Achievement", t, func() {
		So(AchievementRate(3, 4), ShouldEqual, int64(75))
		So(AchievementRate(3, 0), ShouldEqual, int64(0))

		counts := NewMetricCounts()
		counts.Add(MetricAccepts, 2)
		k := PeriodKPI(counts, nil, RateModeStep).WithAchievement(GoalTargets{MetricAccepts: 3})
		So(k.Previous, ShouldBeNil)
		So(*k.Achievement, ShouldResemble, Achievement{Rate: 67, Current: 2, Target: 3})
	})

	Convey("CohortKPI takes revenue from period rows", t, func() {
		agg := NewCohortAggregate(RateModeStep)
		prev := NewCohortAggregate(RateModeStep)
		k := CohortKPI(agg, -200, &prev, 500)
		So(k.Current.Counts.Get(MetricRevenue), ShouldEqual, int64(-200))
		So(k.Previous.Counts.Get(MetricRevenue), ShouldEqual, int64(500))
		So(k.CohortNumerators, ShouldResemble, NewNumerators())
	})
}
