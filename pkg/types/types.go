// Package domain defines the core business types for the loss vehicle
// valuation service.
package domain

import (
	"time"
)

// Condition represents the normalized physical condition of a vehicle.
type Condition string

// Condition constants.
const (
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
	ConditionPoor      Condition = "Poor"
)

// AppraisalStatus tracks where an appraisal is in its lifecycle.
type AppraisalStatus string

// Appraisal status constants.
const (
	AppraisalDraft    AppraisalStatus = "draft"
	AppraisalValued   AppraisalStatus = "valued"
	AppraisalReview   AppraisalStatus = "needs_review"
	AppraisalApproved AppraisalStatus = "approved"
)

// LossVehicle is the vehicle being appraised.
type LossVehicle struct {
	VIN            string    `json:"vin"                       db:"vin"`
	Year           int       `json:"year"                      db:"year"`
	Make           string    `json:"make"                      db:"make"`
	Model          string    `json:"model"                     db:"model"`
	Trim           string    `json:"trim,omitempty"            db:"trim"`
	Mileage        *int      `json:"mileage,omitempty"         db:"mileage"`
	Location       string    `json:"location,omitempty"        db:"location"`
	Condition      Condition `json:"condition,omitempty"       db:"condition"`
	Equipment      []string  `json:"equipment,omitempty"       db:"equipment"`
	InsuranceValue *float64  `json:"insurance_value,omitempty" db:"insurance_value"`
}

// Miles returns the loss vehicle mileage, or 0 when it is unknown.
func (v *LossVehicle) Miles() int {
	if v.Mileage == nil {
		return 0
	}
	return *v.Mileage
}

// EffectiveCondition returns the condition used for valuation. Vehicles
// without a recorded condition are treated as Good.
func (v *LossVehicle) EffectiveCondition() Condition {
	if v.Condition == "" {
		return ConditionGood
	}
	return v.Condition
}

// Comparable is a market listing used as evidence of the loss vehicle's value.
type Comparable struct {
	ID          string `json:"id"                     db:"id"`
	AppraisalID string `json:"appraisal_id,omitempty" db:"appraisal_id"`
	Source      string `json:"source"                 db:"source"`
	ListingURL  string `json:"listing_url,omitempty"  db:"listing_url"`
	VIN         string `json:"vin,omitempty"          db:"vin"`

	// Vehicle
	Year      int       `json:"year"                db:"year"`
	Make      string    `json:"make"                db:"make"`
	Model     string    `json:"model"               db:"model"`
	Trim      string    `json:"trim,omitempty"      db:"trim"`
	Mileage   *int      `json:"mileage,omitempty"   db:"mileage"`
	Condition Condition `json:"condition,omitempty" db:"condition"`
	Equipment []string  `json:"equipment,omitempty" db:"equipment"`

	// Market
	Location         string  `json:"location"           db:"location"`
	DistanceFromLoss float64 `json:"distance_from_loss" db:"distance_from_loss"`
	ListPrice        float64 `json:"list_price"         db:"list_price"`

	// Derived
	QualityScore          *float64               `json:"quality_score,omitempty"           db:"quality_score"`
	QualityScoreBreakdown *QualityScoreBreakdown `json:"quality_score_breakdown,omitempty" db:"quality_score_breakdown"`
	Adjustments           *PriceAdjustments      `json:"adjustments,omitempty"             db:"adjustments"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Miles returns the comparable mileage, or 0 when it is unknown.
func (c *Comparable) Miles() int {
	if c.Mileage == nil {
		return 0
	}
	return *c.Mileage
}

// AdjustedPrice returns the adjusted price when adjustments have been
// computed, falling back to the list price otherwise.
func (c *Comparable) AdjustedPrice() float64 {
	if c.Adjustments == nil {
		return c.ListPrice
	}
	return c.Adjustments.AdjustedPrice
}

// Score returns the computed quality score, or 0 when it has not been computed.
func (c *Comparable) Score() float64 {
	if c.QualityScore == nil {
		return 0
	}
	return *c.QualityScore
}

// ClearDerived drops every derived field so it can be recomputed.
func (c *Comparable) ClearDerived() {
	c.QualityScore = nil
	c.QualityScoreBreakdown = nil
	c.Adjustments = nil
}

// QualityScoreBreakdown details how a comparable's quality score was built.
type QualityScoreBreakdown struct {
	BaseScore        float64           `json:"base_score"`
	DistancePenalty  float64           `json:"distance_penalty"`
	AgePenalty       float64           `json:"age_penalty"`
	AgeBonus         float64           `json:"age_bonus"`
	MileagePenalty   float64           `json:"mileage_penalty"`
	MileageBonus     float64           `json:"mileage_bonus"`
	EquipmentPenalty float64           `json:"equipment_penalty"`
	EquipmentBonus   float64           `json:"equipment_bonus"`
	FinalScore       float64           `json:"final_score"`
	Explanations     ScoreExplanations `json:"explanations"`
}

// ScoreExplanations carries the audit text for each scoring factor.
type ScoreExplanations struct {
	Distance  string `json:"distance"`
	Age       string `json:"age"`
	Mileage   string `json:"mileage"`
	Equipment string `json:"equipment"`
}

// EquipmentAdjustmentKind says which side of the comparison lacks a feature.
type EquipmentAdjustmentKind string

// Equipment adjustment kinds.
const (
	EquipmentMissing EquipmentAdjustmentKind = "missing"
	EquipmentExtra   EquipmentAdjustmentKind = "extra"
)

// MileageAdjustment normalizes a comparable's price for mileage differences.
type MileageAdjustment struct {
	MileageDifference int     `json:"mileage_difference"`
	DepreciationRate  float64 `json:"depreciation_rate"`
	AdjustmentAmount  float64 `json:"adjustment_amount"`
	Explanation       string  `json:"explanation"`
}

// EquipmentAdjustment normalizes a comparable's price for one feature.
type EquipmentAdjustment struct {
	Feature          string                  `json:"feature"`
	Kind             EquipmentAdjustmentKind `json:"kind"`
	Value            float64                 `json:"value"`
	AdjustmentAmount float64                 `json:"adjustment_amount"`
	Explanation      string                  `json:"explanation"`
}

// ConditionAdjustment normalizes a comparable's price for condition.
type ConditionAdjustment struct {
	ComparableCondition   Condition `json:"comparable_condition"`
	LossVehicleCondition  Condition `json:"loss_vehicle_condition"`
	ComparableMultiplier  float64   `json:"comparable_multiplier"`
	LossVehicleMultiplier float64   `json:"loss_vehicle_multiplier"`
	AdjustmentAmount      float64   `json:"adjustment_amount"`
	Explanation           string    `json:"explanation"`
}

// PriceAdjustments is the full set of price normalizations for a comparable.
type PriceAdjustments struct {
	MileageAdjustment    MileageAdjustment     `json:"mileage_adjustment"`
	EquipmentAdjustments []EquipmentAdjustment `json:"equipment_adjustments"`
	ConditionAdjustment  ConditionAdjustment   `json:"condition_adjustment"`
	TotalAdjustment      float64               `json:"total_adjustment"`
	AdjustedPrice        float64               `json:"adjusted_price"`
}

// ComparableCalculation is one row of the weighted-average table.
type ComparableCalculation struct {
	ID            string  `json:"id"`
	ListPrice     float64 `json:"list_price"`
	AdjustedPrice float64 `json:"adjusted_price"`
	QualityScore  float64 `json:"quality_score"`
	WeightedValue float64 `json:"weighted_value"`
}

// CalculationStep is one human-readable entry of the audit trail.
type CalculationStep struct {
	Step        int     `json:"step"`
	Description string  `json:"description"`
	Formula     string  `json:"formula"`
	Result      float64 `json:"result"`
}

// PriceStatistics summarizes the spread of adjusted prices.
type PriceStatistics struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// MarketValueCalculation is the quality-weighted market value and its trail.
type MarketValueCalculation struct {
	Comparables        []ComparableCalculation `json:"comparables"`
	TotalWeightedValue float64                 `json:"total_weighted_value"`
	TotalWeights       float64                 `json:"total_weights"`
	FinalMarketValue   float64                 `json:"final_market_value"`
	Statistics         PriceStatistics         `json:"statistics"`
	Steps              []CalculationStep       `json:"steps"`
}

// ConfidenceFactors explains how a confidence level was reached.
type ConfidenceFactors struct {
	ComparableCount             int     `json:"comparable_count"`
	BaseConfidence              int     `json:"base_confidence"`
	QualityScoreStdDev          float64 `json:"quality_score_std_dev"`
	QualityConsistencyBonus     int     `json:"quality_consistency_bonus"`
	PriceCoefficientOfVariation float64 `json:"price_coefficient_of_variation"`
	PriceConsistencyBonus       int     `json:"price_consistency_bonus"`
}

// ConfidenceResult is the confidence level of a market value estimate.
type ConfidenceResult struct {
	Level   int               `json:"level"`
	Factors ConfidenceFactors `json:"factors"`
}

// InsuranceComparison contrasts the market value with the insurer's figure.
type InsuranceComparison struct {
	InsuranceValue float64 `json:"insurance_value"`
	MarketValue    float64 `json:"market_value"`
	Difference     float64 `json:"difference"`
	DifferencePct  float64 `json:"difference_pct"`
}

// Appraisal groups a loss vehicle with the comparables used to value it.
type Appraisal struct {
	ID          string          `json:"id"                     db:"id"`
	ClaimNumber string          `json:"claim_number"           db:"claim_number"`
	Status      AppraisalStatus `json:"status"                 db:"status"`
	LossVehicle LossVehicle     `json:"loss_vehicle"           db:"loss_vehicle"`
	Stale       bool            `json:"stale"                  db:"stale"`
	Notes       string          `json:"notes,omitempty"        db:"notes"`
	ValuedAt    *time.Time      `json:"valued_at,omitempty"    db:"valued_at"`
	CreatedAt   time.Time       `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"             db:"updated_at"`
	Comparables []Comparable    `json:"comparables,omitempty"  db:"-"`
}

// Valuation is the persisted outcome of valuing an appraisal.
type Valuation struct {
	ID                  string                      `json:"id"                             db:"id"`
	AppraisalID         string                      `json:"appraisal_id,omitempty"         db:"appraisal_id"`
	MarketValue         float64                     `json:"market_value"                   db:"market_value"`
	Calculation         MarketValueCalculation      `json:"calculation"                    db:"calculation"`
	Confidence          ConfidenceResult            `json:"confidence"                     db:"confidence"`
	InsuranceComparison *InsuranceComparison        `json:"insurance_comparison,omitempty" db:"insurance_comparison"`
	Validation          map[string]ValidationResult `json:"validation"                     db:"validation"`
	ValidationSummary   ValidationSummary           `json:"validation_summary"             db:"validation_summary"`
	NeedsReview         bool                        `json:"needs_review"                   db:"needs_review"`
	ReviewReasons       []string                    `json:"review_reasons,omitempty"       db:"review_reasons"`
	Excluded            []string                    `json:"excluded_comparables,omitempty" db:"excluded_comparables"`
	Comparables         []Comparable                `json:"comparables,omitempty"          db:"-"`
	ComputedAt          time.Time                   `json:"computed_at"                    db:"computed_at"`
}

// JobRun records a single execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}

// SystemState holds a precomputed snapshot of aggregate system counts.
type SystemState struct {
	AppraisalsTotal     int `json:"appraisals_total"        db:"appraisals_total"`
	AppraisalsStale     int `json:"appraisals_stale"        db:"appraisals_stale"`
	AppraisalsReview    int `json:"appraisals_needs_review" db:"appraisals_needs_review"`
	ComparablesTotal    int `json:"comparables_total"       db:"comparables_total"`
	ComparablesUnscored int `json:"comparables_unscored"    db:"comparables_unscored"`
	ValuationsTotal     int `json:"valuations_total"        db:"valuations_total"`

	// In-memory valuation cache of the serving instance.
	CacheEntries  int     `json:"cache_entries"`
	CacheHitRatio float64 `json:"cache_hit_ratio"`
}
