package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheHitRatio returns a timeseries panel showing the valuation cache hit
// ratio per result kind.
func CacheHitRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Hit Ratio").
		Description("Share of valuation cache lookups served from cache, by result kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth + StatWidth).
		WithTarget(PromQuery(
			`lv:cache_hits:rate5m / (lv:cache_hits:rate5m + lv:cache_misses:rate5m) * 100`,
			"{{kind}}", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CacheEntries returns a stat panel showing the number of cached results.
func CacheEntries() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Cache Entries").
		Description("Entries currently held in the valuation cache").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(fmt.Sprintf(`lv_cache_entries{job=%q}`, Job), "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}
