// Package valuation aggregates scored, adjusted comparables into a
// quality-weighted market value with an audit trail, rates the confidence of
// that estimate, and memoizes both.
package valuation

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// Confidence model constants.
const (
	ConfidencePerComparable = 20
	MaxBaseConfidence       = 60
	MaxConfidence           = 95

	ConsistencyHighBonus = 20
	ConsistencyLowBonus  = 10

	QualityStdDevHigh = 10.0
	QualityStdDevLow  = 20.0
	PriceCVHigh       = 0.15
	PriceCVLow        = 0.25
)

// Calculator computes market values and confidence levels. A nil cache
// disables memoization.
type Calculator struct {
	cache  *Cache
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithNow sets the clock used for model year range checks.
func WithNow(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator creates a Calculator backed by cache.
func NewCalculator(cache *Cache, opts ...Option) *Calculator {
	c := &Calculator{
		cache:  cache,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns the calculator's cache, which may be nil.
func (c *Calculator) Cache() *Cache {
	return c.cache
}

// Invalidate drops the cached market value and confidence results for the
// given inputs. It reports how many entries were removed.
func (c *Calculator) Invalidate(comps []domain.Comparable, loss *domain.LossVehicle) int {
	if c.cache == nil {
		return 0
	}

	removed := 0
	if key, err := Key(KindMarketValue, comps, loss); err == nil && c.cache.Invalidate(key) {
		removed++
	}
	if key, err := Key(KindConfidence, comps, nil); err == nil && c.cache.Invalidate(key) {
		removed++
	}
	return removed
}

// CalculateMarketValue computes the quality-weighted average of the
// comparables' adjusted prices. Every precondition is checked before any
// arithmetic; the first violation aborts with a *CalculationError.
func (c *Calculator) CalculateMarketValue(
	comps []domain.Comparable,
	loss *domain.LossVehicle,
) (*domain.MarketValueCalculation, error) {
	if err := checkInputs(comps, loss, c.now()); err != nil {
		return nil, err
	}

	if c.cache == nil {
		return computeMarketValue(comps)
	}

	key, err := Key(KindMarketValue, comps, loss)
	if err != nil {
		c.logger.Debug("market value not cached", "error", err)
		return computeMarketValue(comps)
	}

	v, err := c.cache.do(KindMarketValue, key,
		func() (any, error) { return computeMarketValue(comps) },
		func(v any) any { return cloneCalculation(v.(*domain.MarketValueCalculation)) },
	)
	if err != nil {
		return nil, err
	}
	return v.(*domain.MarketValueCalculation), nil
}

// CalculateConfidenceLevel rates how reliable a market value over comps is,
// from sample size, quality score spread and adjusted price spread.
func (c *Calculator) CalculateConfidenceLevel(comps []domain.Comparable) domain.ConfidenceResult {
	if c.cache == nil || len(comps) == 0 {
		return computeConfidence(comps)
	}

	key, err := Key(KindConfidence, comps, nil)
	if err != nil {
		c.logger.Debug("confidence not cached", "error", err)
		return computeConfidence(comps)
	}

	v, _ := c.cache.do(KindConfidence, key,
		func() (any, error) { return computeConfidence(comps), nil },
		func(v any) any { return v },
	)
	return v.(domain.ConfidenceResult)
}

// CheckLossVehicle reports the first loss vehicle precondition that a market
// value computation would reject, as a *CalculationError.
func CheckLossVehicle(loss *domain.LossVehicle, now time.Time) error {
	if loss == nil {
		return newCalculationError("", "loss_vehicle", ErrNoLossVehicle)
	}
	if !domain.ValidModelYear(loss.Year, now) {
		return newCalculationError("", "loss_vehicle.year", ErrInvalidLossYear)
	}
	if loss.Mileage == nil || !domain.ValidMileage(*loss.Mileage) {
		return newCalculationError("", "loss_vehicle.mileage", ErrInvalidLossMileage)
	}
	return nil
}

func checkInputs(comps []domain.Comparable, loss *domain.LossVehicle, now time.Time) error {
	if err := CheckLossVehicle(loss, now); err != nil {
		return err
	}
	if len(comps) == 0 {
		return newCalculationError("", "comparables", ErrNoComparables)
	}

	for i := range comps {
		comp := &comps[i]
		switch {
		case !(comp.ListPrice > 0) || math.IsInf(comp.ListPrice, 0):
			return newCalculationError(comp.ID, "list_price", ErrInvalidListPrice)
		case comp.Mileage == nil || *comp.Mileage < 0:
			return newCalculationError(comp.ID, "mileage", ErrInvalidMileage)
		case !domain.ValidModelYear(comp.Year, now):
			return newCalculationError(comp.ID, "year", ErrInvalidYear)
		case comp.Adjustments == nil || !finite(comp.Adjustments.AdjustedPrice) ||
			comp.Adjustments.AdjustedPrice < 0:
			return newCalculationError(comp.ID, "adjustments.adjusted_price", ErrMissingAdjustment)
		case comp.QualityScore == nil || !(*comp.QualityScore >= 0 && *comp.QualityScore <= 100):
			return newCalculationError(comp.ID, "quality_score", ErrInvalidQualityScore)
		}
	}
	return nil
}

func computeMarketValue(comps []domain.Comparable) (*domain.MarketValueCalculation, error) {
	calc := &domain.MarketValueCalculation{
		Comparables: make([]domain.ComparableCalculation, 0, len(comps)),
		Steps:       make([]domain.CalculationStep, 0, len(comps)+4),
	}

	weighted := make([]float64, 0, len(comps))
	weights := make([]float64, 0, len(comps))
	adjusted := make([]float64, 0, len(comps))

	for i := range comps {
		comp := &comps[i]
		price := comp.Adjustments.AdjustedPrice
		score := *comp.QualityScore
		wv := price * score

		calc.Comparables = append(calc.Comparables, domain.ComparableCalculation{
			ID:            comp.ID,
			ListPrice:     comp.ListPrice,
			AdjustedPrice: price,
			QualityScore:  score,
			WeightedValue: wv,
		})
		addStep(calc,
			fmt.Sprintf("Weighted value for comparable %s", comp.ID),
			fmt.Sprintf("$%.2f × %.1f", price, score),
			wv,
		)

		weighted = append(weighted, wv)
		weights = append(weights, score)
		adjusted = append(adjusted, price)
	}

	calc.TotalWeightedValue = sum(weighted)
	addStep(calc, "Sum of weighted values", joinTerms(weighted, "%.2f"), calc.TotalWeightedValue)

	calc.TotalWeights = sum(weights)
	addStep(calc, "Sum of quality score weights", joinTerms(weights, "%.1f"), calc.TotalWeights)

	if calc.TotalWeights == 0 {
		return nil, newCalculationError("", "quality_score", ErrZeroTotalWeight)
	}

	avg := calc.TotalWeightedValue / calc.TotalWeights
	if !finite(avg) {
		return nil, newCalculationError("", "final_market_value", ErrNonFiniteResult)
	}
	addStep(calc, "Quality-weighted average",
		fmt.Sprintf("$%.2f / %.1f", calc.TotalWeightedValue, calc.TotalWeights), avg)

	calc.FinalMarketValue = math.Round(avg)
	addStep(calc, "Round to nearest dollar", fmt.Sprintf("round($%.2f)", avg), calc.FinalMarketValue)

	calc.Statistics = statistics(adjusted)

	return calc, nil
}

func computeConfidence(comps []domain.Comparable) domain.ConfidenceResult {
	n := len(comps)
	if n == 0 {
		return domain.ConfidenceResult{}
	}

	scores := make([]float64, 0, n)
	prices := make([]float64, 0, n)
	for i := range comps {
		scores = append(scores, comps[i].Score())
		prices = append(prices, comps[i].AdjustedPrice())
	}

	f := domain.ConfidenceFactors{
		ComparableCount: n,
		BaseConfidence:  min(n*ConfidencePerComparable, MaxBaseConfidence),
	}

	_, f.QualityScoreStdDev = meanStdDev(scores)
	switch {
	case f.QualityScoreStdDev < QualityStdDevHigh:
		f.QualityConsistencyBonus = ConsistencyHighBonus
	case f.QualityScoreStdDev < QualityStdDevLow:
		f.QualityConsistencyBonus = ConsistencyLowBonus
	}

	// A zero mean price leaves the coefficient undefined; no bonus applies.
	mean, sd := meanStdDev(prices)
	if mean != 0 && finite(mean) {
		f.PriceCoefficientOfVariation = sd / mean
		switch {
		case f.PriceCoefficientOfVariation < PriceCVHigh:
			f.PriceConsistencyBonus = ConsistencyHighBonus
		case f.PriceCoefficientOfVariation < PriceCVLow:
			f.PriceConsistencyBonus = ConsistencyLowBonus
		}
	}

	level := f.BaseConfidence + f.QualityConsistencyBonus + f.PriceConsistencyBonus
	return domain.ConfidenceResult{
		Level:   min(level, MaxConfidence),
		Factors: f,
	}
}

// InsuranceComparison contrasts a market value with the insurer's figure.
// It returns nil when the loss vehicle has no insurance value.
func InsuranceComparison(marketValue float64, loss *domain.LossVehicle) *domain.InsuranceComparison {
	if loss == nil || loss.InsuranceValue == nil {
		return nil
	}

	iv := *loss.InsuranceValue
	cmp := &domain.InsuranceComparison{
		InsuranceValue: iv,
		MarketValue:    marketValue,
		Difference:     marketValue - iv,
	}
	if iv != 0 {
		cmp.DifferencePct = math.Round((marketValue-iv)/iv*10000) / 100
	}
	return cmp
}

func addStep(calc *domain.MarketValueCalculation, description, formula string, result float64) {
	calc.Steps = append(calc.Steps, domain.CalculationStep{
		Step:        len(calc.Steps) + 1,
		Description: description,
		Formula:     formula,
		Result:      result,
	})
}

func joinTerms(values []float64, format string) string {
	terms := make([]string, 0, len(values))
	for _, v := range values {
		terms = append(terms, fmt.Sprintf(format, v))
	}
	return strings.Join(terms, " + ")
}

// sum adds values in ascending order so the total does not depend on the
// order the comparables were supplied in.
func sum(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cloneCalculation(src *domain.MarketValueCalculation) *domain.MarketValueCalculation {
	dst := *src
	dst.Comparables = slices.Clone(src.Comparables)
	dst.Steps = slices.Clone(src.Steps)
	return &dst
}
