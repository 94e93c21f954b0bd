package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{0.01, 0.1, 1}),
			WithPrometheusRegistry(registry),
		)
		So(m.Registry(), ShouldEqual, registry)

		Convey("When recording requests and queries", func() {
			m.RecordHTTPRequest("/kpi/yield", "GET", 200, 15*time.Millisecond)
			m.RecordHTTPRequest("/kpi/yield", "GET", 200, 5*time.Millisecond)
			m.ObserveQuery("metric_rows", time.Millisecond, nil)
			m.ObserveQuery("metric_rows", time.Millisecond, errors.New("boom"))
			m.RecordReport("summary", "cohort")
			m.RecordGoalLookupFailure()

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/kpi/yield", "GET", "200")), ShouldEqual, 2.0)
				So(testutil.ToFloat64(m.queryErrors.WithLabelValues("metric_rows")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(m.reportsBuilt.WithLabelValues("summary", "cohort")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(m.goalLookupFailures), ShouldEqual, 1.0)
			})

			Convey("Then the handler exposes them", func() {
				rec := httptest.NewRecorder()
				m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
				So(rec.Code, ShouldEqual, 200)
				So(strings.Contains(rec.Body.String(), "test_unit_http_requests_total"), ShouldBeTrue)
				So(strings.Contains(rec.Body.String(), "test_db_query_duration_seconds"), ShouldBeTrue)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false))

		Convey("Recording is a no-op", func() {
			m.RecordReport("trend", "period")
			So(m.Enabled(), ShouldBeFalse)
			So(testutil.ToFloat64(m.reportsBuilt.WithLabelValues("trend", "period")), ShouldEqual, 0.0)
		})
	})

	Convey("A nil manager is disabled", t, func() {
		var m *Manager
		So(m.Enabled(), ShouldBeFalse)
		So(func() { m.ObserveQuery("x", time.Second, nil) }, ShouldNotPanic)
	})
}
