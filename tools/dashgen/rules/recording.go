package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "lv-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "lv-recording",
					Rules: []Rule{
						{
							Record: "lv:http_requests:rate5m",
							Expr:   `sum(rate(lv_http_requests_total[5m]))`,
						},
						{
							Record: "lv:http_errors:rate5m",
							Expr:   `sum(rate(lv_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "lv:valuations:rate5m",
							Expr:   `sum(rate(lv_valuations_total[5m]))`,
						},
						{
							Record: "lv:valuation_failures:rate5m",
							Expr:   `sum(rate(lv_valuation_failures_total[5m]))`,
						},
						{
							Record: "lv:cache_hits:rate5m",
							Expr:   `sum(rate(lv_cache_hits_total[5m])) by (kind)`,
						},
						{
							Record: "lv:cache_misses:rate5m",
							Expr:   `sum(rate(lv_cache_misses_total[5m])) by (kind)`,
						},
						{
							Record: "lv:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(lv_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
