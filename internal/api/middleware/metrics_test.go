package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/loss-valuation/internal/api/middleware"
	"github.com/donaldgifford/loss-valuation/internal/metrics"
)

func requestCount(t *testing.T, method, route, status string) float64 {
	t.Helper()
	return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(method, route, status))
}

func durationSamples(t *testing.T, method, route, status string) uint64 {
	t.Helper()
	observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(method, route, status)
	require.NoError(t, err)
	m := &io_prometheus_client.Metric{}
	require.NoError(t, observer.(prometheus.Metric).Write(m))
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		route      string
		target     string
		handler    echo.HandlerFunc
		wantStatus string
	}{
		{
			name:   "route template, not the concrete id",
			method: http.MethodPost,
			route:  "/api/v1/appraisals/:id/valuate",
			target: "/api/v1/appraisals/0b6f/valuate",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantStatus: "200",
		},
		{
			name:   "conflict written by the handler",
			method: http.MethodPut,
			route:  "/api/v1/appraisals/:id/status",
			target: "/api/v1/appraisals/0b6f/status",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusConflict)
			},
			wantStatus: "409",
		},
		{
			name:   "echo error rendered after the middleware",
			method: http.MethodGet,
			route:  "/api/v1/cache/stats",
			target: "/api/v1/cache/stats",
			handler: func(echo.Context) error {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "cache disabled")
			},
			wantStatus: "503",
		},
		{
			name:   "huma status error",
			method: http.MethodGet,
			route:  "/api/v1/appraisals/:id/valuation",
			target: "/api/v1/appraisals/0b6f/valuation",
			handler: func(echo.Context) error {
				return huma.Error404NotFound("no valuation yet")
			},
			wantStatus: "404",
		},
		{
			name:   "plain error",
			method: http.MethodDelete,
			route:  "/api/v1/cache",
			target: "/api/v1/cache",
			handler: func(echo.Context) error {
				return errors.New("boom")
			},
			wantStatus: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := requestCount(t, tt.method, tt.route, tt.wantStatus)
			beforeSamples := durationSamples(t, tt.method, tt.route, tt.wantStatus)

			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.route, tt.handler)
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.target, http.NoBody))

			assert.InDelta(t, before+1, requestCount(t, tt.method, tt.route, tt.wantStatus), 0)
			assert.Equal(t, beforeSamples+1, durationSamples(t, tt.method, tt.route, tt.wantStatus))
		})
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	before := requestCount(t, http.MethodGet, "unmatched", "404")

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/wp-login.php", http.NoBody), httptest.NewRecorder())
	err := mw.Metrics()(func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})(c)
	require.NoError(t, err)

	assert.InDelta(t, before+1, requestCount(t, http.MethodGet, "unmatched", "404"), 0)
}

func TestMetricsMiddleware_HealthPathsSkipped(t *testing.T) {
	before := requestCount(t, http.MethodGet, "/healthz", "200")

	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.InDelta(t, before, requestCount(t, http.MethodGet, "/healthz", "200"), 0)
}

func TestMetricsMiddleware_HealthGauges(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		handler   echo.HandlerFunc
		gauge     prometheus.Gauge
		wantValue float64
	}{
		{
			name:      "healthz ok",
			path:      "/healthz",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			gauge:     metrics.HealthcheckUp,
			wantValue: 1,
		},
		{
			name:      "readyz unavailable",
			path:      "/readyz",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusServiceUnavailable) },
			gauge:     metrics.StoreUp,
			wantValue: 0,
		},
		{
			name:      "readyz ok",
			path:      "/readyz",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			gauge:     metrics.StoreUp,
			wantValue: 1,
		},
		{
			name: "readyz error before write",
			path: "/readyz",
			handler: func(echo.Context) error {
				return echo.NewHTTPError(http.StatusServiceUnavailable)
			},
			gauge:     metrics.StoreUp,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.GET(tt.path, tt.handler)
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			assert.InDelta(t, tt.wantValue, testutil.ToFloat64(tt.gauge), 0)
		})
	}
}
