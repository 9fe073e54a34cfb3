// Package middleware provides Echo middleware for the loss-valuation API.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
)

// unmatchedRoute labels requests that matched no route, so arbitrary
// appraisal ids and scanner paths cannot grow the label set.
const unmatchedRoute = "unmatched"

// metricsSkipPaths are health and scrape paths kept out of the request
// metrics and traces.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// healthGauges maps health paths to the gauge they drive. /readyz pings the
// database, so its outcome doubles as the store gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthcheckUp,
	"/readyz":  metrics.StoreUp,
}

// Metrics returns Echo middleware that records request count and latency by
// method, route template and status. Health paths only drive their up gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if _, skip := metricsSkipPaths[path]; skip {
				err := next(c)
				if gauge, ok := healthGauges[path]; ok {
					gauge.Set(boolGauge(responseStatus(c, err) < http.StatusMultipleChoices))
				}
				return err
			}

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			labels := []string{c.Request().Method, route, strconv.Itoa(responseStatus(c, err))}

			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(elapsed)
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// responseStatus is the status the client will see. An error returned
// before anything was written is rendered later by Echo's error handler,
// so its code is taken from the error.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	var se huma.StatusError
	if errors.As(err, &se) {
		return se.GetStatus()
	}
	return http.StatusInternalServerError
}

func boolGauge(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
