package fiber_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "yield-analytics-service/internal/yield/adapters/http/fiber"
	"yield-analytics-service/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type fakeRecorder struct {
	route  string
	method string
	status int
	called int
}

func (f *fakeRecorder) RecordHTTPRequest(route, method string, status int, d time.Duration) {
	f.called++
	f.route, f.method, f.status = route, method, status
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(httpadapter.RequestID())
	var seen string
	app.Get("/ping", func(c *fiber.Ctx) error {
		seen = logger.RequestID(c.UserContext())
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(httpadapter.HeaderRequestID, "req-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.Header.Get(httpadapter.HeaderRequestID) != "req-1" || seen != "req-1" {
		t.Fatalf("expected caller request id to be kept, got header=%q ctx=%q", resp.Header.Get(httpadapter.HeaderRequestID), seen)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if id := resp.Header.Get(httpadapter.HeaderRequestID); id == "" || id != seen {
		t.Fatalf("expected generated request id, got header=%q ctx=%q", id, seen)
	}
}

func TestAccessLog_RecordsRoute(t *testing.T) {
	rec := &fakeRecorder{}
	app := fiber.New()
	app.Use(httpadapter.AccessLog(logger.Nop(), rec))
	app.Get("/kpi/yield/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/kpi/yield/42", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", resp.StatusCode)
	}
	if rec.called != 1 || rec.route != "/kpi/yield/:id" || rec.method != http.MethodGet || rec.status != http.StatusTeapot {
		t.Fatalf("unexpected recording: %+v", rec)
	}
}
