package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger logs each HTTP request as one JSON line with request_id, method, path,
// status and latency (milliseconds). trace_id is added when the request is traced.
func Logger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The global error handler has not run yet; report what it will send.
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		evt := logger.Info()
		if status >= fiber.StatusInternalServerError {
			evt = logger.Error()
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			evt = evt.Str("trace_id", sc.TraceID().String())
		}

		evt.Str("request_id", RequestIDFromCtx(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Milliseconds())).
			Msg("request")

		return err
	}
}
