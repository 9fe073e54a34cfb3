package middleware

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	problemContentType = "application/problem+json"
	stackBufSize       = 8 << 10
)

// Recovery returns Echo middleware that turns a handler panic into a 500
// problem response shaped like every other API error. The panic and its
// stack are logged and recorded on the request span, so Recovery must run
// inside Tracing.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				buf := make([]byte, stackBufSize)
				stack := string(buf[:runtime.Stack(buf, false)])
				req := c.Request()

				attrs := []any{
					"panic", fmt.Sprint(r),
					"method", req.Method,
					"path", req.URL.Path,
					"stack", stack,
				}
				if id, ok := c.Get("request_id").(string); ok {
					attrs = append(attrs, "request_id", id)
				}

				span := trace.SpanFromContext(req.Context())
				if sc := span.SpanContext(); sc.HasTraceID() {
					attrs = append(attrs, "trace_id", sc.TraceID().String())
				}
				span.RecordError(fmt.Errorf("panic: %v", r),
					trace.WithAttributes(attribute.String("exception.stacktrace", stack)))
				span.SetStatus(codes.Error, "panic recovered")

				log.ErrorContext(req.Context(), "panic recovered", attrs...)

				if c.Response().Committed {
					return
				}
				problem := huma.Error500InternalServerError("internal server error")
				c.Response().Header().Set(echo.HeaderContentType, problemContentType)
				err = c.JSON(problem.GetStatus(), problem)
			}()
			return next(c)
		}
	}
}
