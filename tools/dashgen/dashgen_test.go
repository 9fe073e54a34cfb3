package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/loss-valuation/tools/dashgen/dashboards"
	"github.com/donaldgifford/loss-valuation/tools/dashgen/rules"
	"github.com/donaldgifford/loss-valuation/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	dash, err := dashboards.BuildOverview().Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "lv-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Loss Valuation Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 7)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 21, totalPanels)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "lv-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	assert.Equal(t, "lv-recording", cr.Spec.Groups[0].Name)

	assert.Equal(t, []string{
		"lv:http_requests:rate5m",
		"lv:http_errors:rate5m",
		"lv:valuations:rate5m",
		"lv:valuation_failures:rate5m",
		"lv:cache_hits:rate5m",
		"lv:cache_misses:rate5m",
		"lv:notification_duration:p95_5m",
	}, cr.Records())

	// Every recorded series is usable by dashboards and alerts.
	for _, name := range cr.Records() {
		assert.True(t, KnownMetrics[name], "%s missing from KnownMetrics", name)
	}

	res := validate.Rules(cr, KnownMetrics)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "lv-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "lv-alerts", group.Name)

	expectedAlerts := []string{
		"LossValuationDown",
		"LossValuationStoreDown",
		"LossValuationHighErrorRate",
		"LossValuationFailuresElevated",
		"LossValuationReviewBacklog",
		"LossValuationStaleBacklog",
		"LossValuationJobFailures",
		"LossValuationNotificationFailures",
	}
	require.Len(t, group.Rules, len(expectedAlerts))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	res := validate.Rules(cr, KnownMetrics)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, false))

	dash, err := os.ReadFile(filepath.Join(dir, "grafana", "data", "lv-overview.json"))
	require.NoError(t, err)
	assert.Contains(t, string(dash), `"uid": "lv-overview"`)

	for _, name := range []string{"lv-recording-rules.yaml", "lv-alerts.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, "prometheus", name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), generatedHeader)
		assert.Contains(t, string(data), "kind: PrometheusRule")
	}
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_RulesOnly(t *testing.T) {
	t.Parallel()

	artifacts, res, err := generate(Config{OutputDir: "x", RulesEnabled: true})
	require.NoError(t, err)
	assert.True(t, res.Ok())
	require.Len(t, artifacts, 2)
	assert.Equal(t, filepath.Join("prometheus", "lv-recording-rules.yaml"), artifacts[0].path)
}
