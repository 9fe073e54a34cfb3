package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

func intPtr(v int) *int { return &v }

func TestValuation(t *testing.T) {
	t.Parallel()

	v := &domain.Valuation{
		AppraisalID: "a1",
		MarketValue: 21456.78,
		Calculation: domain.MarketValueCalculation{
			Comparables: []domain.ComparableCalculation{
				{ID: "c1", ListPrice: 21000, AdjustedPrice: 21300, QualityScore: 88.5, WeightedValue: 1885050},
			},
			Statistics: domain.PriceStatistics{Min: 21300, Max: 21600, Median: 21450},
		},
		Confidence:          domain.ConfidenceResult{Level: 55},
		InsuranceComparison: &domain.InsuranceComparison{InsuranceValue: 20000, Difference: -1456.78, DifferencePct: -6.8},
		NeedsReview:         true,
		ReviewReasons:       []string{"confidence 55 below 60", "1 comparables excluded"},
		Excluded:            []string{"c9"},
	}

	var buf bytes.Buffer
	require.NoError(t, Valuation(&buf, v))

	out := buf.String()
	assert.Contains(t, out, "$21456.78")
	assert.Contains(t, out, "55%")
	assert.Contains(t, out, "-1456.78")
	assert.Contains(t, out, "confidence 55 below 60; 1 comparables excluded")
	assert.Contains(t, out, "c9")
	assert.Contains(t, out, "88.5")
}

func TestValidation(t *testing.T) {
	t.Parallel()

	results := []domain.ValidationResult{
		{
			ComparableID: "c1",
			Errors: []domain.ValidationFinding{
				{Field: "list_price", Code: "INVALID_PRICE", Message: "Price $100 is outside the valid range", Severity: domain.SeverityError},
			},
			Warnings: []domain.ValidationFinding{
				{Field: "mileage", Code: "HIGH_MILEAGE", Message: "High mileage", Severity: domain.SeverityWarning},
			},
		},
		{IsValid: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Validation(&buf, results, domain.ValidationSummary{Total: 2, Valid: 1, Invalid: 1, Errors: 1, Warnings: 1}))

	out := buf.String()
	assert.Contains(t, out, "INVALID_PRICE")
	assert.Contains(t, out, "HIGH_MILEAGE")
	assert.Regexp(t, `Invalid:\s+1`, out)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("INVALID_PRICE")), bytes.Index(buf.Bytes(), []byte("HIGH_MILEAGE")))
}

func TestAppraisal(t *testing.T) {
	t.Parallel()

	valued := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	score := 91.0
	a := &domain.Appraisal{
		ID:          "a1",
		ClaimNumber: "CLM-1",
		Status:      domain.AppraisalValued,
		LossVehicle: domain.LossVehicle{Year: 2020, Make: "Honda", Model: "Accord", Trim: "EX", Mileage: intPtr(30000)},
		ValuedAt:    &valued,
		Comparables: []domain.Comparable{
			{ID: "c1", Source: "dealer", Year: 2021, Make: "Honda", Model: "Accord", ListPrice: 21000, QualityScore: &score},
			{ID: "c2", Source: "private", Year: 2019, Make: "Honda", Model: "Accord", ListPrice: 19000},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Appraisal(&buf, a))

	out := buf.String()
	assert.Contains(t, out, "2020 Honda Accord EX")
	assert.Contains(t, out, "2026-05-01 12:00:00")
	assert.Contains(t, out, "91.0")
	assert.Contains(t, out, "2019 Honda Accord")
}

func TestJobRuns(t *testing.T) {
	t.Parallel()

	rows := 4
	runs := []domain.JobRun{
		{JobName: "revalue_stale", Status: "succeeded", StartedAt: time.Now(), RowsAffected: &rows},
		{JobName: "cache_sweep", Status: "failed", StartedAt: time.Now(), ErrorText: "boom"},
	}

	var buf bytes.Buffer
	require.NoError(t, JobRuns(&buf, runs))
	assert.Contains(t, buf.String(), "revalue_stale")
	assert.Contains(t, buf.String(), "boom")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"cleared": 2}))
	assert.JSONEq(t, `{"cleared":2}`, buf.String())
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
