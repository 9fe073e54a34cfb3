package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ValuationRate returns a timeseries panel showing completed and failed
// valuations per minute.
func ValuationRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Valuations / min").
		Description("Market value computations and failures per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`lv:valuations:rate5m * 60`, "valuations/min", "A")).
		WithTarget(PromQuery(`lv:valuation_failures:rate5m * 60`, "failures/min", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ValuationLatency returns a timeseries panel showing p50 and p95
// valuation durations.
func ValuationLatency() *timeseries.PanelBuilder {
	const metric = "lv_valuation_duration_seconds"
	return timeseries.NewPanelBuilder().
		Title("Valuation Duration").
		Description("Time to validate, score, adjust and aggregate one valuation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(HistogramQuantile(0.50, metric), "p50", "A")).
		WithTarget(PromQuery(HistogramQuantile(0.95, metric), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FailuresByField returns a timeseries panel breaking valuation failures
// down by the input field that caused them.
func FailuresByField() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Failures by Field").
		Description("Valuation failures per minute by failing input field").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(lv_valuation_failures_total{job=%q}[5m])) by (field) * 60`, Job),
			"{{field}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

func distribution(title, description, metric string) *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(%s_bucket{job=%q}[1h])) by (le)`, metric, Job),
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// ConfidenceDistribution returns a bar gauge panel of valuation confidence
// levels over the last hour.
func ConfidenceDistribution() *bargauge.PanelBuilder {
	return distribution("Confidence Distribution",
		"Distribution of valuation confidence levels (0-100)", "lv_confidence_level")
}

// QualityScoreDistribution returns a bar gauge panel of comparable quality
// scores over the last hour.
func QualityScoreDistribution() *bargauge.PanelBuilder {
	return distribution("Quality Score Distribution",
		"Distribution of comparable quality scores (0-100)", "lv_quality_score_distribution")
}

// FindingsByCode returns a timeseries panel showing validation findings per
// minute by code and severity.
func FindingsByCode() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Validation Findings").
		Description("Comparable validation findings per minute by code and severity").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(lv_validation_findings_total{job=%q}[5m])) by (code, severity) * 60`, Job),
			"{{severity}} {{code}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
