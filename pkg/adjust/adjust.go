// Package adjust normalizes a comparable's list price to the loss vehicle's
// specification through mileage, equipment and condition adjustments.
package adjust

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/donaldgifford/loss-valuation/pkg/equipment"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// ErrInvalidAdjustedPrice is returned when the adjusted price is NaN,
// infinite or negative.
var ErrInvalidAdjustedPrice = errors.New("adjusted price is not a finite non-negative amount")

// Adjustment constants.
const (
	// MileageThreshold is the smallest mileage difference that is adjusted.
	MileageThreshold = 1000

	// UnknownFeatureValue is the dollar value of features missing from the
	// equipment table.
	UnknownFeatureValue = 500.0
)

// depreciationTiers are the per-mile rates by comparable age, checked in order.
var depreciationTiers = []struct {
	maxAge int
	rate   float64
}{
	{maxAge: 3, rate: 0.25},
	{maxAge: 7, rate: 0.15},
	{maxAge: math.MaxInt, rate: 0.05},
}

var conditionMultipliers = map[domain.Condition]float64{
	domain.ConditionExcellent: 1.05,
	domain.ConditionGood:      1.00,
	domain.ConditionFair:      0.95,
	domain.ConditionPoor:      0.85,
}

var defaultEquipmentValues = map[string]float64{
	"Navigation System":       1200,
	"Sunroof":                 1000,
	"Leather Seats":           1500,
	"Backup Camera":           500,
	"Heated Seats":            600,
	"Premium Audio":           800,
	"All-Wheel Drive":         2000,
	"Third Row Seating":       1500,
	"Towing Package":          700,
	"Alloy Wheels":            600,
	"Remote Start":            400,
	"Adaptive Cruise Control": 900,
	"Blind Spot Monitoring":   700,
	"Apple CarPlay":           300,
	"Android Auto":            300,
}

// DefaultEquipmentValues returns a copy of the built-in feature value table.
func DefaultEquipmentValues() map[string]float64 {
	return maps.Clone(defaultEquipmentValues)
}

// ConditionMultiplier returns the price multiplier for a condition. Free-text
// conditions are normalized first; unknown conditions map to 1.00.
func ConditionMultiplier(c domain.Condition) float64 {
	if m, ok := conditionMultipliers[domain.ParseCondition(string(c))]; ok {
		return m
	}
	return 1.00
}

// Calculator computes price adjustments.
type Calculator struct {
	values map[string]float64
	now    func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithEquipmentValues merges a custom feature value table over the defaults.
// Feature names are matched case-insensitively.
func WithEquipmentValues(values map[string]float64) Option {
	return func(c *Calculator) {
		for name, v := range values {
			if k := equipment.Key(name); k != "" {
				c.values[k] = v
			}
		}
	}
}

// WithNow sets the clock used to compute comparable age.
func WithNow(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCalculator creates a Calculator using the default equipment table.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		values: make(map[string]float64, len(defaultEquipmentValues)),
		now:    time.Now,
	}
	for name, v := range defaultEquipmentValues {
		c.values[equipment.Key(name)] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FeatureValue returns the dollar value of a feature, or UnknownFeatureValue
// when the feature is not in the table.
func (c *Calculator) FeatureValue(name string) float64 {
	if v, ok := c.values[equipment.Key(name)]; ok {
		return v
	}
	return UnknownFeatureValue
}

// Calculate computes every adjustment for a comparable and the resulting
// adjusted price. It fails with ErrInvalidAdjustedPrice instead of clamping.
func (c *Calculator) Calculate(
	comp *domain.Comparable,
	loss *domain.LossVehicle,
) (*domain.PriceAdjustments, error) {
	adj := &domain.PriceAdjustments{
		MileageAdjustment:    c.Mileage(comp, loss),
		EquipmentAdjustments: c.Equipment(comp, loss),
		ConditionAdjustment:  Condition(comp, loss),
	}

	total := adj.MileageAdjustment.AdjustmentAmount + adj.ConditionAdjustment.AdjustmentAmount
	for i := range adj.EquipmentAdjustments {
		total += adj.EquipmentAdjustments[i].AdjustmentAmount
	}
	adj.TotalAdjustment = total
	adj.AdjustedPrice = comp.ListPrice + total

	if math.IsNaN(adj.AdjustedPrice) || math.IsInf(adj.AdjustedPrice, 0) || adj.AdjustedPrice < 0 {
		return nil, fmt.Errorf("comparable %q: adjusted price %v: %w",
			comp.ID, adj.AdjustedPrice, ErrInvalidAdjustedPrice)
	}

	return adj, nil
}

// Mileage adjusts for the difference between the comparable and loss vehicle
// mileage at a per-mile rate chosen by comparable age. The amount is
// -(comparable - loss) * rate.
func (c *Calculator) Mileage(comp *domain.Comparable, loss *domain.LossVehicle) domain.MileageAdjustment {
	diff := comp.Miles() - loss.Miles()
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	if abs < MileageThreshold {
		return domain.MileageAdjustment{
			MileageDifference: diff,
			Explanation: fmt.Sprintf("Mileage difference of %d miles is under %d, no adjustment",
				abs, MileageThreshold),
		}
	}

	age := c.now().Year() - comp.Year
	var rate float64
	for _, tier := range depreciationTiers {
		if age <= tier.maxAge {
			rate = tier.rate
			break
		}
	}

	amount := -float64(diff) * rate
	direction := "more"
	if diff < 0 {
		direction = "fewer"
	}

	return domain.MileageAdjustment{
		MileageDifference: diff,
		DepreciationRate:  rate,
		AdjustmentAmount:  amount,
		Explanation: fmt.Sprintf("Comparable has %d %s miles than loss vehicle at $%.2f/mile (%d year(s) old): %s",
			abs, direction, rate, age, signedDollars(amount)),
	}
}

// Equipment adjusts for features present on only one of the two vehicles.
// Features the loss vehicle has and the comparable lacks add their value;
// features only the comparable has subtract it.
func (c *Calculator) Equipment(comp *domain.Comparable, loss *domain.LossVehicle) []domain.EquipmentAdjustment {
	missing, extra := equipment.Compare(loss.Equipment, comp.Equipment)

	out := make([]domain.EquipmentAdjustment, 0, len(missing)+len(extra))
	for _, feature := range missing {
		v := c.FeatureValue(feature)
		out = append(out, domain.EquipmentAdjustment{
			Feature:          feature,
			Kind:             domain.EquipmentMissing,
			Value:            v,
			AdjustmentAmount: v,
			Explanation:      fmt.Sprintf("Comparable lacks %s: %s", feature, signedDollars(v)),
		})
	}
	for _, feature := range extra {
		v := c.FeatureValue(feature)
		out = append(out, domain.EquipmentAdjustment{
			Feature:          feature,
			Kind:             domain.EquipmentExtra,
			Value:            v,
			AdjustmentAmount: -v,
			Explanation:      fmt.Sprintf("Comparable has extra %s: %s", feature, signedDollars(-v)),
		})
	}
	return out
}

// Condition normalizes the list price from the comparable's condition to the
// loss vehicle's condition.
func Condition(comp *domain.Comparable, loss *domain.LossVehicle) domain.ConditionAdjustment {
	compMult := ConditionMultiplier(comp.Condition)
	lossCond := loss.EffectiveCondition()
	lossMult := ConditionMultiplier(lossCond)

	normalized := comp.ListPrice / compMult * lossMult
	amount := normalized - comp.ListPrice

	explanation := fmt.Sprintf("Comparable condition %s (x%.2f) matches loss vehicle %s (x%.2f), no adjustment",
		conditionLabel(comp.Condition), compMult, lossCond, lossMult)
	if amount != 0 {
		explanation = fmt.Sprintf("Comparable condition %s (x%.2f) vs loss vehicle %s (x%.2f): %s",
			conditionLabel(comp.Condition), compMult, lossCond, lossMult, signedDollars(amount))
	}

	return domain.ConditionAdjustment{
		ComparableCondition:   comp.Condition,
		LossVehicleCondition:  lossCond,
		ComparableMultiplier:  compMult,
		LossVehicleMultiplier: lossMult,
		AdjustmentAmount:      amount,
		Explanation:           explanation,
	}
}

func conditionLabel(c domain.Condition) string {
	if c == "" {
		return "unknown"
	}
	return string(c)
}

func signedDollars(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("+$%.2f", v)
}
