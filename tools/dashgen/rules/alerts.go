package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// loss-valuation operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "lv-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "lv-alerts",
					Rules: []Rule{
						{
							Alert:  "LossValuationDown",
							Expr:   `absent(up{job="loss-valuation"})`,
							For:    "2m",
							Labels: map[string]string{"severity": "critical"},
							Annotations: map[string]string{
								"summary":     "Loss Valuation is down",
								"description": "The loss-valuation job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert:  "LossValuationStoreDown",
							Expr:   `lv_store_up == 0`,
							For:    "2m",
							Labels: map[string]string{"severity": "critical"},
							Annotations: map[string]string{
								"summary":     "Loss Valuation cannot reach its database",
								"description": "The database ping has been failing for more than 2 minutes.",
							},
						},
						{
							Alert:  "LossValuationHighErrorRate",
							Expr:   `lv:http_errors:rate5m / lv:http_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: map[string]string{"severity": "warning"},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Loss Valuation",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert:  "LossValuationFailuresElevated",
							Expr:   `lv:valuation_failures:rate5m / (lv:valuations:rate5m + lv:valuation_failures:rate5m) > 0.25`,
							For:    "15m",
							Labels: map[string]string{"severity": "warning"},
							Annotations: map[string]string{
								"summary":     "Many valuations are failing",
								"description": "More than a quarter of valuation attempts failed over the last 15 minutes. Check lv_valuation_failures_total by field.",
							},
						},
						{
							Alert:  "LossValuationReviewBacklog",
							Expr:   `lv_appraisals_needing_review > 50`,
							For:    "1h",
							Labels: map[string]string{"severity": "warning"},
							Annotations: map[string]string{
								"summary":     "Review queue is growing",
								"description": "More than 50 appraisals have needed review for over an hour.",
							},
						},
						{
							Alert:  "LossValuationStaleBacklog",
							Expr:   `lv_stale_appraisals > 100`,
							For:    "30m",
							Labels: map[string]string{"severity": "warning"},
							Annotations: map[string]string{
								"summary":     "Stale appraisals are not being revalued",
								"description": "More than 100 appraisals have been stale for 30 minutes. The revalue_stale job may be failing.",
							},
						},
						{
							Alert:  "LossValuationJobFailures",
							Expr:   `sum(increase(lv_job_runs_total{status="failed"}[1h])) > 0`,
							For:    "0m",
							Labels: map[string]string{"severity": "warning"},
							Annotations: map[string]string{
								"summary":     "A scheduled job failed",
								"description": "At least one scheduled job run failed in the last hour. See lvc jobs list.",
							},
						},
						{
							Alert:  "LossValuationNotificationFailures",
							Expr:   `increase(lv_notification_failures_total[5m]) > 0`,
							For:    "1m",
							Labels: map[string]string{"severity": "warning"},
							Annotations: map[string]string{
								"summary":     "Review alert delivery failures detected",
								"description": "One or more review alerts (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
