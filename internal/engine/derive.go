// Package engine runs valuations end to end: validation, scoring, price
// adjustment and market value aggregation, plus persistence of the results
// and the scheduled jobs that keep stored appraisals current.
package engine

import (
	"errors"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
	"github.com/donaldgifford/loss-valuation/pkg/adjust"
	score "github.com/donaldgifford/loss-valuation/pkg/scorer"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// Derive scores comp against loss and computes its price adjustments,
// replacing any previously derived fields. On error comp is left with no
// derived fields.
func Derive(adj *adjust.Calculator, comp *domain.Comparable, loss *domain.LossVehicle) error {
	comp.ClearDerived()

	breakdown := score.Score(comp, loss)
	adjustments, err := adj.Calculate(comp, loss)
	if err != nil {
		return err
	}

	qs := breakdown.FinalScore
	comp.QualityScore = &qs
	comp.QualityScoreBreakdown = &breakdown
	comp.Adjustments = adjustments
	metrics.QualityScoreDistribution.Observe(breakdown.FinalScore)
	return nil
}

// DeriveAll derives every comparable in place, continuing past failures.
// The returned error joins every per-comparable failure.
func DeriveAll(adj *adjust.Calculator, comps []domain.Comparable, loss *domain.LossVehicle) error {
	var errs []error
	for i := range comps {
		if err := Derive(adj, &comps[i], loss); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
