package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Condition
	}{
		{"Excellent", ConditionExcellent},
		{"  like   NEW ", ConditionExcellent},
		{"clean", ConditionGood},
		{"Above Average", ConditionGood},
		{"average", ConditionFair},
		{"rough", ConditionPoor},
		{"", ""},
		{"   ", ""},
		{" salvage title ", "salvage title"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseCondition(tt.raw))
		})
	}
}

func TestCondition_Known(t *testing.T) {
	t.Parallel()

	assert.True(t, ConditionFair.Known())
	assert.False(t, Condition("salvage").Known())
	assert.False(t, Condition("").Known())
}

func TestLossVehicle_Defaults(t *testing.T) {
	t.Parallel()

	var lv LossVehicle
	assert.Equal(t, 0, lv.Miles())
	assert.Equal(t, ConditionGood, lv.EffectiveCondition())

	miles := 42000
	lv = LossVehicle{Mileage: &miles, Condition: ConditionPoor}
	assert.Equal(t, 42000, lv.Miles())
	assert.Equal(t, ConditionPoor, lv.EffectiveCondition())
}

func TestComparable_DerivedAccessors(t *testing.T) {
	t.Parallel()

	c := Comparable{ListPrice: 20000}
	assert.InDelta(t, 20000, c.AdjustedPrice(), 0)
	assert.InDelta(t, 0, c.Score(), 0)

	score := 87.5
	c.QualityScore = &score
	c.QualityScoreBreakdown = &QualityScoreBreakdown{FinalScore: score}
	c.Adjustments = &PriceAdjustments{AdjustedPrice: 19500}
	assert.InDelta(t, 19500, c.AdjustedPrice(), 0)
	assert.InDelta(t, 87.5, c.Score(), 0)

	c.ClearDerived()
	assert.Nil(t, c.QualityScore)
	assert.Nil(t, c.QualityScoreBreakdown)
	assert.Nil(t, c.Adjustments)
	assert.InDelta(t, 20000, c.AdjustedPrice(), 0)
}

func TestValidationResult_Has(t *testing.T) {
	t.Parallel()

	r := ValidationResult{
		Errors:   []ValidationFinding{{Code: "INVALID_PRICE", Severity: SeverityError}},
		Warnings: []ValidationFinding{{Code: "HIGH_MILEAGE", Severity: SeverityWarning}},
	}
	assert.True(t, r.HasError("INVALID_PRICE"))
	assert.False(t, r.HasError("HIGH_MILEAGE"))
	assert.True(t, r.HasWarning("HIGH_MILEAGE"))
	assert.False(t, r.HasWarning("INVALID_PRICE"))
}
