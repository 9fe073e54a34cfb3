// Package score computes how representative a comparable listing is of the
// loss vehicle, as a 0-100 quality score with per-factor explanations.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/donaldgifford/loss-valuation/pkg/equipment"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// Scoring constants.
const (
	BaseScore = 100.0

	// Distance
	FreeRadiusMiles        = 100.0
	DistancePenaltyPerMile = 0.1
	MaxDistancePenalty     = 20.0

	// Age
	AgePenaltyPerYear = 2.0
	MaxAgePenalty     = 10.0

	// Mileage
	CloseMileageBonus = 10.0

	// Equipment
	PerfectEquipmentBonus = 15.0
	MissingFeaturePenalty = 10.0
	ExtraFeatureBonus     = 5.0
)

// mileageTiers are the penalties applied once the mileage difference
// exceeds 20% of the loss vehicle mileage, checked in order.
var mileageTiers = []struct {
	maxPct  float64
	penalty float64
}{
	{maxPct: 0.40, penalty: 5.0},
	{maxPct: 0.60, penalty: 10.0},
	{maxPct: math.Inf(1), penalty: 15.0},
}

// Score computes the 0-100 quality score of a comparable relative to the
// loss vehicle. It is deterministic and performs no I/O.
func Score(c *domain.Comparable, loss *domain.LossVehicle) domain.QualityScoreBreakdown {
	b := domain.QualityScoreBreakdown{BaseScore: BaseScore}

	b.DistancePenalty, b.Explanations.Distance = distanceFactor(c.DistanceFromLoss)
	b.AgePenalty, b.Explanations.Age = ageFactor(c.Year, loss.Year)
	b.MileagePenalty, b.MileageBonus, b.Explanations.Mileage = mileageFactor(c.Miles(), loss.Miles())
	b.EquipmentPenalty, b.EquipmentBonus, b.Explanations.Equipment = equipmentFactor(
		c.Equipment,
		loss.Equipment,
	)

	total := b.BaseScore -
		b.DistancePenalty -
		b.AgePenalty + b.AgeBonus -
		b.MileagePenalty + b.MileageBonus -
		b.EquipmentPenalty + b.EquipmentBonus

	b.FinalScore = clamp(total, 0, 100)

	return b
}

// distanceFactor penalizes listings more than 100 miles from the loss.
func distanceFactor(miles float64) (float64, string) {
	if miles <= FreeRadiusMiles {
		return 0, fmt.Sprintf("%.0f miles from loss location (within %.0f miles, no penalty)",
			miles, FreeRadiusMiles)
	}

	penalty := math.Min((miles-FreeRadiusMiles)*DistancePenaltyPerMile, MaxDistancePenalty)
	return penalty, fmt.Sprintf("%.0f miles from loss location: -%.1f points (%.1f per mile beyond %.0f, max %.0f)",
		miles, penalty, DistancePenaltyPerMile, FreeRadiusMiles, MaxDistancePenalty)
}

// ageFactor penalizes model year differences. Age never earns a bonus.
func ageFactor(compYear, lossYear int) (float64, string) {
	if compYear == lossYear {
		return 0, fmt.Sprintf("Same model year (%d), no penalty", compYear)
	}

	diff := compYear - lossYear
	if diff < 0 {
		diff = -diff
	}

	penalty := math.Min(float64(diff)*AgePenaltyPerYear, MaxAgePenalty)
	return penalty, fmt.Sprintf("%d year(s) difference (%d vs %d): -%.1f points",
		diff, compYear, lossYear, penalty)
}

// mileageFactor rewards close mileage and penalizes large differences
// relative to the loss vehicle mileage.
func mileageFactor(compMiles, lossMiles int) (penalty, bonus float64, explanation string) {
	if lossMiles == 0 {
		return 0, 0, "Loss vehicle mileage unknown, no mileage adjustment"
	}

	diff := compMiles - lossMiles
	if diff < 0 {
		diff = -diff
	}
	pct := float64(diff) / float64(lossMiles)

	if pct <= 0.20 {
		return 0, CloseMileageBonus, fmt.Sprintf(
			"Mileage within 20%% of loss vehicle (%.1f%% difference): +%.1f points",
			pct*100, CloseMileageBonus,
		)
	}

	for _, tier := range mileageTiers {
		if pct <= tier.maxPct {
			penalty = tier.penalty
			break
		}
	}

	return penalty, 0, fmt.Sprintf("Mileage differs by %.1f%% (%d miles): -%.1f points",
		pct*100, diff, penalty)
}

// equipmentFactor compares feature lists case-insensitively. A perfect match
// earns a flat bonus; otherwise missing features are penalized and extra
// features rewarded.
func equipmentFactor(compEquip, lossEquip []string) (penalty, bonus float64, explanation string) {
	missing, extra := equipment.Compare(lossEquip, compEquip)

	if len(missing) == 0 && len(extra) == 0 {
		return 0, PerfectEquipmentBonus, fmt.Sprintf(
			"Equipment matches loss vehicle exactly: +%.1f points", PerfectEquipmentBonus,
		)
	}

	penalty = float64(len(missing)) * MissingFeaturePenalty
	bonus = float64(len(extra)) * ExtraFeatureBonus

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %d feature(s) [%s]: -%.1f points",
			len(missing), strings.Join(missing, ", "), penalty))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("%d extra feature(s) [%s]: +%.1f points",
			len(extra), strings.Join(extra, ", "), bonus))
	}

	return penalty, bonus, "Equipment " + strings.Join(parts, "; ")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
