package main

import "errors"

// KnownMetrics is the set of metric names exported by loss-valuation plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"lv_http_request_duration_seconds": true,
	"lv_http_requests_total":           true,
	"lv_http_rate_limited_total":       true,

	// Health metrics.
	"lv_healthcheck_up": true,
	"lv_store_up":       true,

	// Valuation metrics.
	"lv_valuations_total":           true,
	"lv_valuation_failures_total":   true,
	"lv_valuation_duration_seconds": true,
	"lv_market_value_dollars":       true,
	"lv_confidence_level":           true,
	"lv_quality_score_distribution": true,
	"lv_validation_findings_total":  true,

	// Cache metrics.
	"lv_cache_hits_total":   true,
	"lv_cache_misses_total": true,
	"lv_cache_entries":      true,

	// Review alert metrics.
	"lv_review_alerts_total":           true,
	"lv_notification_failures_total":   true,
	"lv_notification_duration_seconds": true,

	// Scheduler metrics.
	"lv_job_runs_total":                   true,
	"lv_job_duration_seconds":             true,
	"lv_stale_appraisals":                 true,
	"lv_appraisals_needing_review":        true,
	"lv_scheduler_next_revalue_timestamp": true,
	"lv_scheduler_next_sweep_timestamp":   true,

	// Recording rules.
	"lv:http_requests:rate5m":         true,
	"lv:http_errors:rate5m":           true,
	"lv:valuations:rate5m":            true,
	"lv:valuation_failures:rate5m":    true,
	"lv:cache_hits:rate5m":            true,
	"lv:cache_misses:rate5m":          true,
	"lv:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
