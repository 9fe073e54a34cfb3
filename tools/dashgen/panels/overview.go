package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func upStat(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// HealthStat returns a stat panel showing the readiness check status.
func HealthStat() *stat.PanelBuilder {
	return upStat("Live", "Liveness check status (1 = up, 0 = down)", `lv_healthcheck_up`)
}

// StoreStat returns a stat panel showing whether the database answers pings.
func StoreStat() *stat.PanelBuilder {
	return upStat("Database", "Database ping status (1 = ok, 0 = failing)", `lv_store_up`)
}

// ReviewQueueStat returns a stat panel showing how many appraisals wait for
// an adjuster.
func ReviewQueueStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Review Queue").
		Description("Appraisals whose latest valuation needs review").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(fmt.Sprintf(`max(lv_appraisals_needing_review{job=%q})`, Job), "", "A")).
		Thresholds(ThresholdsGreenYellowRed(20, 50)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`time() - process_start_time_seconds{job=%q}`, Job),
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
