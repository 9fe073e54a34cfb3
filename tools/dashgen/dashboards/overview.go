// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/loss-valuation/tools/dashgen/panels"
)

// BuildOverview constructs the Loss Valuation overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Loss Valuation Overview").
		Uid("lv-overview").
		Tags([]string{"lv", "loss-valuation"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthStat()).
		WithPanel(panels.StoreStat()).
		WithPanel(panels.ReviewQueueStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Valuations").
		WithPanel(panels.ValuationRate()).
		WithPanel(panels.ValuationLatency()).
		WithPanel(panels.FailuresByField()))

	b.WithRow(dashboard.NewRowBuilder("Comparable Quality").
		WithPanel(panels.ConfidenceDistribution()).
		WithPanel(panels.QualityScoreDistribution()).
		WithPanel(panels.FindingsByCode()))

	b.WithRow(dashboard.NewRowBuilder("Cache").
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.CacheEntries()))

	b.WithRow(dashboard.NewRowBuilder("Scheduler").
		WithPanel(panels.JobRuns()).
		WithPanel(panels.StaleAppraisals()).
		WithPanel(panels.NextRevalue()))

	b.WithRow(dashboard.NewRowBuilder("Review Alerts").
		WithPanel(panels.ReviewAlertsRate()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
