package fiber

import (
	"errors"
	"net/http"
	"time"

	"yield-analytics-service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestRecorder receives one observation per finished request.
type RequestRecorder interface {
	RecordHTTPRequest(route, method string, status int, d time.Duration)
}

// RequestID reuses the caller's X-Request-ID or generates one, echoes it and
// stores it in the user context for the logger.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}

// AccessLog logs every request and reports it to rec, which may be nil.
func AccessLog(log logger.Logger, rec RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		// Unmatched paths share one label.
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		if rec != nil {
			rec.RecordHTTPRequest(route, c.Method(), status, elapsed)
		}

		fields := []logger.Field{
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", status),
			logger.Duration("elapsed", elapsed),
		}
		if status >= http.StatusInternalServerError {
			log.Warn(c.UserContext(), "http request", fields...)
		} else {
			log.Info(c.UserContext(), "http request", fields...)
		}
		return err
	}
}
