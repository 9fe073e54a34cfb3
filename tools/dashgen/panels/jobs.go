package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// JobRuns returns a timeseries panel showing scheduled job runs per hour by
// status.
func JobRuns() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Job Runs / hour").
		Description("Scheduled job runs per hour by status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(lv_job_runs_total{job=%q}[1h])) by (status)`, Job),
			"{{status}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// StaleAppraisals returns a timeseries panel showing the revaluation backlog.
func StaleAppraisals() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Stale Appraisals").
		Description("Appraisals whose inputs changed since their last valuation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(fmt.Sprintf(`max(lv_stale_appraisals{job=%q})`, Job), "stale", "A")).
		WithTarget(PromQuery(fmt.Sprintf(`max(lv_appraisals_needing_review{job=%q})`, Job), "needs review", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NextRevalue returns a stat panel showing time until the next stale
// revaluation run.
func NextRevalue() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Revaluation").
		Description("Time until the next scheduled stale revaluation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`lv_scheduler_next_revalue_timestamp{job=%q} - time()`, Job),
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
