package engine

import (
	"context"
	"strings"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
	"github.com/donaldgifford/loss-valuation/internal/notify"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// BuildReviewAlert summarizes a valuation that needs review. baseURL may be
// empty, in which case the alert carries no link.
func BuildReviewAlert(a *domain.Appraisal, v *domain.Valuation, baseURL string) *notify.ReviewAlert {
	lv := &a.LossVehicle
	alert := &notify.ReviewAlert{
		AppraisalID:     a.ID,
		ClaimNumber:     a.ClaimNumber,
		Vehicle:         notify.VehicleLabel(lv.Year, lv.Make, lv.Model, lv.Trim),
		MarketValue:     v.MarketValue,
		ConfidenceLevel: v.Confidence.Level,
		ComparableCount: len(v.Calculation.Comparables),
		Reasons:         v.ReviewReasons,
	}

	if ic := v.InsuranceComparison; ic != nil {
		insurance, pct := ic.InsuranceValue, ic.DifferencePct
		alert.InsuranceValue = &insurance
		alert.DifferencePct = &pct
	}

	if baseURL != "" {
		alert.URL = strings.TrimRight(baseURL, "/") + "/api/v1/appraisals/" + a.ID
	}

	return alert
}

// sendReviewAlert delivers a review alert. Failures are counted and logged;
// the valuation has already been saved.
func (eng *Engine) sendReviewAlert(ctx context.Context, a *domain.Appraisal, v *domain.Valuation) {
	alert := BuildReviewAlert(a, v, eng.baseURL)
	if err := eng.notifier.SendReviewAlert(ctx, alert); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		eng.log.Error("sending review alert failed", "appraisal", a.ID, "error", err)
		return
	}
	metrics.ReviewAlertsTotal.Inc()
}
