package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
	"github.com/donaldgifford/loss-valuation/internal/notify"
	notifyMocks "github.com/donaldgifford/loss-valuation/internal/notify/mocks"
	"github.com/donaldgifford/loss-valuation/internal/store"
	storeMocks "github.com/donaldgifford/loss-valuation/internal/store/mocks"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
	"github.com/donaldgifford/loss-valuation/pkg/validate"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time {
	return time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testLoss() domain.LossVehicle {
	return domain.LossVehicle{
		VIN:       "1HGCV1F30LA000001",
		Year:      2020,
		Make:      "Honda",
		Model:     "Accord",
		Trim:      "EX",
		Mileage:   intPtr(30000),
		Location:  "Austin, TX",
		Condition: domain.ConditionGood,
	}
}

func testComp(id string, price float64, miles int) domain.Comparable {
	return domain.Comparable{
		ID:               id,
		Source:           "dealer",
		Year:             2021,
		Make:             "Honda",
		Model:            "Accord",
		Trim:             "EX",
		Mileage:          intPtr(miles),
		Condition:        domain.ConditionGood,
		Location:         "Austin, TX",
		DistanceFromLoss: 12,
		ListPrice:        price,
	}
}

func threeComps() []domain.Comparable {
	return []domain.Comparable{
		testComp("c1", 21000, 28000),
		testComp("c2", 21500, 31000),
		testComp("c3", 22000, 33000),
	}
}

func testAppraisal(id string, comps []domain.Comparable) *domain.Appraisal {
	for i := range comps {
		comps[i].AppraisalID = id
	}
	return &domain.Appraisal{
		ID:          id,
		ClaimNumber: "CLM-" + id,
		Status:      domain.AppraisalDraft,
		LossVehicle: testLoss(),
		Stale:       true,
		Comparables: comps,
	}
}

func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *storeMocks.MockStore, *notifyMocks.MockNotifier) {
	t.Helper()
	ms := storeMocks.NewMockStore(t)
	mn := notifyMocks.NewMockNotifier(t)
	all := append([]EngineOption{WithLogger(quietLogger()), WithNow(fixedNow)}, opts...)
	return NewEngine(ms, mn, all...), ms, mn
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	eng := NewEngine(nil, nil)
	assert.Equal(t, defaultMinComparables, eng.minComparables)
	assert.Equal(t, defaultReviewConfidence, eng.reviewConfidence)
	assert.Equal(t, defaultRevalueBatchSize, eng.revalueBatchSize)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.Adjuster())
	assert.NotNil(t, eng.Valuator())
	assert.NotNil(t, eng.Valuator().Cache())
	assert.IsType(t, &notify.NoOpNotifier{}, eng.notifier)
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	l := quietLogger()
	v := valuation.NewCalculator(nil)
	eng := NewEngine(nil, nil,
		WithLogger(l),
		WithValuator(v),
		WithMinComparables(5),
		WithReviewConfidence(75),
		WithRevalueBatchSize(10),
		WithBaseURL("https://lv.example.com"),
	)

	assert.Same(t, l, eng.log)
	assert.Same(t, v, eng.Valuator())
	assert.Equal(t, 5, eng.minComparables)
	assert.Equal(t, 75, eng.reviewConfidence)
	assert.Equal(t, 10, eng.revalueBatchSize)
	assert.Equal(t, "https://lv.example.com", eng.baseURL)
}

func TestValue_AllValid(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()
	comps := threeComps()

	v, err := eng.Value(context.Background(), &loss, comps)
	require.NoError(t, err)

	assert.Greater(t, v.MarketValue, 20000.0)
	assert.Less(t, v.MarketValue, 23000.0)
	assert.Equal(t, 95, v.Confidence.Level)
	assert.False(t, v.NeedsReview)
	assert.Empty(t, v.ReviewReasons)
	assert.Empty(t, v.Excluded)
	assert.Nil(t, v.InsuranceComparison)
	assert.Equal(t, fixedNow(), v.ComputedAt)
	assert.Equal(t, domain.ValidationSummary{Total: 3, Valid: 3}, v.ValidationSummary)

	require.Len(t, v.Comparables, 3)
	for i := range v.Comparables {
		assert.NotNil(t, v.Comparables[i].QualityScore)
		assert.NotNil(t, v.Comparables[i].QualityScoreBreakdown)
		assert.NotNil(t, v.Comparables[i].Adjustments)
		assert.Contains(t, v.Validation, v.Comparables[i].ID)
	}

	// Inputs are untouched.
	for i := range comps {
		assert.Nil(t, comps[i].QualityScore)
		assert.Nil(t, comps[i].Adjustments)
	}
}

func TestValue_ExcludesInvalidComparables(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()

	bad := testComp("", 21200, 30000)
	bad.Location = "somewhere"
	comps := append(threeComps(), bad)

	v, err := eng.Value(context.Background(), &loss, comps)
	require.NoError(t, err)

	assert.Equal(t, []string{"#4"}, v.Excluded)
	require.Contains(t, v.Validation, "#4")
	assert.False(t, v.Validation["#4"].IsValid)
	excluded := v.Validation["#4"]
	assert.True(t, excluded.HasError(validate.CodeInvalidLocation))

	assert.Len(t, v.Calculation.Comparables, 3)
	assert.Nil(t, v.Comparables[3].QualityScore)
	assert.True(t, v.NeedsReview)
	assert.Contains(t, v.ReviewReasons, "1 comparables excluded")
}

func TestValue_DuplicateIDsGetDistinctKeys(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()
	comps := threeComps()
	comps[2].ID = "c1"

	v, err := eng.Value(context.Background(), &loss, comps)
	require.NoError(t, err)
	assert.Len(t, v.Validation, 3)
	assert.Contains(t, v.Validation, "c1#3")
}

func TestValue_PriceOutlierNeedsReview(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()
	comps := []domain.Comparable{
		testComp("c1", 21000, 30000),
		testComp("c2", 21200, 30000),
		testComp("c3", 21400, 30000),
		testComp("c4", 21600, 30000),
		testComp("c5", 40000, 30000),
		testComp("c6", 21300, 30000),
	}

	v, err := eng.Value(context.Background(), &loss, comps)
	require.NoError(t, err)

	outlier := v.Validation["c5"]
	assert.True(t, outlier.HasWarning(validate.CodePriceOutlier))
	assert.Empty(t, v.Excluded)
	assert.True(t, v.NeedsReview)
	assert.Contains(t, v.ReviewReasons, "1 comparables flagged as price outliers")
}

func TestValue_TooFewComparablesNeedsReview(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()

	v, err := eng.Value(context.Background(), &loss, threeComps()[:1])
	require.NoError(t, err)
	assert.True(t, v.NeedsReview)
	assert.Contains(t, v.ReviewReasons, "only 1 usable comparables (minimum 3)")
}

func TestValue_InsuranceComparison(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()
	loss.InsuranceValue = floatPtr(18000)

	v, err := eng.Value(context.Background(), &loss, threeComps())
	require.NoError(t, err)
	require.NotNil(t, v.InsuranceComparison)
	assert.InDelta(t, 18000, v.InsuranceComparison.InsuranceValue, 0)
	assert.InDelta(t, v.MarketValue-18000, v.InsuranceComparison.Difference, 0.01)
}

func TestValue_Errors(t *testing.T) {
	t.Parallel()

	badYear := testLoss()
	badYear.Year = 1800

	noMileage := testLoss()
	noMileage.Mileage = nil

	invalid := threeComps()
	for i := range invalid {
		invalid[i].ListPrice = 0
	}

	tests := []struct {
		name    string
		loss    *domain.LossVehicle
		comps   []domain.Comparable
		wantErr error
		field   string
	}{
		{name: "nil loss vehicle", loss: nil, comps: threeComps(), wantErr: valuation.ErrNoLossVehicle, field: "loss_vehicle"},
		{name: "loss year out of range", loss: &badYear, comps: threeComps(), wantErr: valuation.ErrInvalidLossYear, field: "loss_vehicle.year"},
		{name: "loss mileage missing", loss: &noMileage, comps: threeComps(), wantErr: valuation.ErrInvalidLossMileage, field: "loss_vehicle.mileage"},
		{name: "no comparables", loss: ptr(testLoss()), comps: nil, wantErr: valuation.ErrNoComparables, field: "comparables"},
		{name: "every comparable excluded", loss: ptr(testLoss()), comps: invalid, wantErr: valuation.ErrNoComparables, field: "comparables"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng, _, _ := newTestEngine(t)
			before := ptestutil.ToFloat64(metrics.ValuationFailuresTotal.WithLabelValues(tt.field))

			v, err := eng.Value(context.Background(), tt.loss, tt.comps)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, v)

			var calcErr *valuation.CalculationError
			require.ErrorAs(t, err, &calcErr)
			assert.Equal(t, tt.field, calcErr.Field)

			after := ptestutil.ToFloat64(metrics.ValuationFailuresTotal.WithLabelValues(tt.field))
			assert.GreaterOrEqual(t, after, before+1)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestValue_CountsValidationFindings(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()
	comps := threeComps()
	comps[0].Make = "Hondda"

	before := ptestutil.ToFloat64(metrics.ValidationFindingsTotal.WithLabelValues(validate.CodeUnknownMake, "warning"))

	_, err := eng.Value(context.Background(), &loss, comps)
	require.NoError(t, err)

	after := ptestutil.ToFloat64(metrics.ValidationFindingsTotal.WithLabelValues(validate.CodeUnknownMake, "warning"))
	assert.GreaterOrEqual(t, after, before+1)
}

func TestAppraise_Valued(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	a := testAppraisal("a1", threeComps())

	ms.EXPECT().GetAppraisal(mock.Anything, "a1").Return(a, nil).Once()
	ms.EXPECT().
		UpdateComparableDerived(mock.Anything, mock.MatchedBy(func(c *domain.Comparable) bool {
			return c.AppraisalID == "a1" && c.QualityScore != nil && c.Adjustments != nil
		})).
		Return(nil).Times(3)
	ms.EXPECT().
		SaveValuation(mock.Anything, mock.MatchedBy(func(v *domain.Valuation) bool {
			return v.AppraisalID == "a1" && !v.NeedsReview
		}), domain.AppraisalValued).
		Return(nil).Once()

	v, err := eng.Appraise(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", v.AppraisalID)
	assert.Greater(t, v.MarketValue, 0.0)
}

func TestAppraise_NeedsReviewSendsAlert(t *testing.T) {
	t.Parallel()

	eng, ms, mn := newTestEngine(t, WithBaseURL("https://lv.example.com/"))
	a := testAppraisal("a2", threeComps()[:1])

	ms.EXPECT().GetAppraisal(mock.Anything, "a2").Return(a, nil).Once()
	ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().SaveValuation(mock.Anything, mock.Anything, domain.AppraisalReview).Return(nil).Once()

	before := ptestutil.ToFloat64(metrics.ReviewAlertsTotal)
	mn.EXPECT().
		SendReviewAlert(mock.Anything, mock.MatchedBy(func(alert *notify.ReviewAlert) bool {
			return alert.ClaimNumber == "CLM-a2" &&
				alert.Vehicle == "2020 Honda Accord EX" &&
				alert.ComparableCount == 1 &&
				alert.URL == "https://lv.example.com/api/v1/appraisals/a2"
		})).
		Return(nil).Once()

	v, err := eng.Appraise(context.Background(), "a2")
	require.NoError(t, err)
	assert.True(t, v.NeedsReview)
	assert.GreaterOrEqual(t, ptestutil.ToFloat64(metrics.ReviewAlertsTotal), before+1)
}

func TestAppraise_NotifierFailureKeepsValuation(t *testing.T) {
	t.Parallel()

	eng, ms, mn := newTestEngine(t)
	a := testAppraisal("a3", threeComps()[:2])

	ms.EXPECT().GetAppraisal(mock.Anything, "a3").Return(a, nil).Once()
	ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(nil).Times(2)
	ms.EXPECT().SaveValuation(mock.Anything, mock.Anything, domain.AppraisalReview).Return(nil).Once()
	mn.EXPECT().SendReviewAlert(mock.Anything, mock.Anything).Return(errors.New("webhook down")).Once()

	before := ptestutil.ToFloat64(metrics.NotificationFailuresTotal)

	v, err := eng.Appraise(context.Background(), "a3")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.GreaterOrEqual(t, ptestutil.ToFloat64(metrics.NotificationFailuresTotal), before+1)
}

func TestAppraise_Approved(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	a := testAppraisal("a4", threeComps())
	a.Status = domain.AppraisalApproved

	ms.EXPECT().GetAppraisal(mock.Anything, "a4").Return(a, nil).Once()

	_, err := eng.Appraise(context.Background(), "a4")
	require.ErrorIs(t, err, ErrAppraisalApproved)
}

func TestAppraise_NotFound(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.EXPECT().GetAppraisal(mock.Anything, "missing").Return(nil, store.ErrNotFound).Once()

	_, err := eng.Appraise(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAppraise_SaveErrors(t *testing.T) {
	t.Parallel()

	t.Run("derived fields", func(t *testing.T) {
		t.Parallel()

		eng, ms, _ := newTestEngine(t)
		ms.EXPECT().GetAppraisal(mock.Anything, "a5").Return(testAppraisal("a5", threeComps()), nil).Once()
		ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(errors.New("db down")).Times(3)

		_, err := eng.Appraise(context.Background(), "a5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving derived fields")
	})

	t.Run("valuation", func(t *testing.T) {
		t.Parallel()

		eng, ms, _ := newTestEngine(t)
		ms.EXPECT().GetAppraisal(mock.Anything, "a6").Return(testAppraisal("a6", threeComps()), nil).Once()
		ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(nil).Times(3)
		ms.EXPECT().SaveValuation(mock.Anything, mock.Anything, domain.AppraisalValued).
			Return(errors.New("db down")).Once()

		_, err := eng.Appraise(context.Background(), "a6")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving valuation")
	})
}

func TestRevalueStale(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t, WithRevalueBatchSize(25))

	ms.EXPECT().ListStaleAppraisals(mock.Anything, 25).Return([]domain.Appraisal{
		{ID: "ok"}, {ID: "empty"}, {ID: "broken"},
	}, nil).Once()

	ms.EXPECT().GetAppraisal(mock.Anything, "ok").Return(testAppraisal("ok", threeComps()), nil).Once()
	ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(nil).Times(3)
	ms.EXPECT().SaveValuation(mock.Anything, mock.Anything, domain.AppraisalValued).Return(nil).Once()

	// No comparables: deferred, not an error.
	ms.EXPECT().GetAppraisal(mock.Anything, "empty").Return(testAppraisal("empty", nil), nil).Once()
	ms.EXPECT().MarkAppraisalStale(mock.Anything, "empty").Return(nil).Once()

	ms.EXPECT().GetAppraisal(mock.Anything, "broken").Return(nil, errors.New("db down")).Once()

	n, err := eng.RevalueStale(context.Background())
	assert.Equal(t, 1, n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appraisal broken")
	assert.NotContains(t, err.Error(), "appraisal empty")
}

func TestRevalueStale_UnvaluableBatchIsDeferred(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t, WithRevalueBatchSize(2))

	// First run: the whole batch is drafts without comparables.
	ms.EXPECT().ListStaleAppraisals(mock.Anything, 2).Return([]domain.Appraisal{
		{ID: "draft-1"}, {ID: "draft-2"},
	}, nil).Once()
	for _, id := range []string{"draft-1", "draft-2"} {
		ms.EXPECT().GetAppraisal(mock.Anything, id).Return(testAppraisal(id, nil), nil).Once()
		ms.EXPECT().MarkAppraisalStale(mock.Anything, id).Return(nil).Once()
	}

	n, err := eng.RevalueStale(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Deferred drafts now sort last, so the next run reaches a valuable one.
	ms.EXPECT().ListStaleAppraisals(mock.Anything, 2).Return([]domain.Appraisal{
		{ID: "ready"}, {ID: "draft-1"},
	}, nil).Once()
	ms.EXPECT().GetAppraisal(mock.Anything, "ready").Return(testAppraisal("ready", threeComps()), nil).Once()
	ms.EXPECT().UpdateComparableDerived(mock.Anything, mock.Anything).Return(nil).Times(3)
	ms.EXPECT().SaveValuation(mock.Anything, mock.Anything, domain.AppraisalValued).Return(nil).Once()
	ms.EXPECT().GetAppraisal(mock.Anything, "draft-1").Return(testAppraisal("draft-1", nil), nil).Once()
	ms.EXPECT().MarkAppraisalStale(mock.Anything, "draft-1").Return(nil).Once()

	n, err = eng.RevalueStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRevalueStale_DeferError(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.EXPECT().ListStaleAppraisals(mock.Anything, mock.Anything).
		Return([]domain.Appraisal{{ID: "draft"}}, nil).Once()
	ms.EXPECT().GetAppraisal(mock.Anything, "draft").Return(testAppraisal("draft", nil), nil).Once()
	ms.EXPECT().MarkAppraisalStale(mock.Anything, "draft").Return(errors.New("db down")).Once()

	n, err := eng.RevalueStale(context.Background())
	assert.Zero(t, n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deferring appraisal draft")
}

func TestRevalueStale_ListError(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.EXPECT().ListStaleAppraisals(mock.Anything, defaultRevalueBatchSize).
		Return(nil, errors.New("db down")).Once()

	n, err := eng.RevalueStale(context.Background())
	assert.Zero(t, n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing stale appraisals")
}

func TestRevalueStale_ContextCancelled(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.EXPECT().ListStaleAppraisals(mock.Anything, mock.Anything).
		Return([]domain.Appraisal{{ID: "a"}}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := eng.RevalueStale(ctx)
	assert.Zero(t, n)
	require.ErrorIs(t, err, context.Canceled)
}

func TestInvalidateAppraisal(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t)
	loss := testLoss()

	v, err := eng.Value(context.Background(), &loss, threeComps())
	require.NoError(t, err)
	require.Equal(t, 2, eng.Valuator().Cache().Len())

	a := &domain.Appraisal{ID: "a7", LossVehicle: loss, Comparables: v.Comparables}
	assert.Equal(t, 2, eng.InvalidateAppraisal(a))
	assert.Zero(t, eng.Valuator().Cache().Len())

	// Nothing derived, nothing to drop.
	assert.Zero(t, eng.InvalidateAppraisal(testAppraisal("a8", threeComps())))
}

func TestSweepAndClearCache(t *testing.T) {
	t.Parallel()

	clock := fixedNow()
	cache := valuation.NewCache(
		valuation.WithTTL(time.Minute),
		valuation.WithClock(func() time.Time { return clock }),
	)
	eng, _, _ := newTestEngine(t, WithValuator(valuation.NewCalculator(cache, valuation.WithNow(fixedNow))))
	loss := testLoss()

	_, err := eng.Value(context.Background(), &loss, threeComps())
	require.NoError(t, err)
	assert.Zero(t, eng.SweepCache())
	assert.Equal(t, 2, cache.Len())

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, 2, eng.SweepCache())

	_, err = eng.Value(context.Background(), &loss, threeComps())
	require.NoError(t, err)
	stats := eng.CacheStats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, time.Minute, stats.TTL)

	assert.Equal(t, 2, eng.ClearCache())
	assert.Zero(t, cache.Len())
}

func TestSweepCache_NoCache(t *testing.T) {
	t.Parallel()

	eng, _, _ := newTestEngine(t, WithValuator(valuation.NewCalculator(nil)))
	assert.Zero(t, eng.SweepCache())
	assert.Zero(t, eng.ClearCache())
	assert.Equal(t, valuation.CacheStats{}, eng.CacheStats())
}

func TestSyncStateMetrics(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.EXPECT().GetSystemState(mock.Anything).Return(&domain.SystemState{
		AppraisalsStale:  4,
		AppraisalsReview: 2,
	}, nil).Once()

	eng.SyncStateMetrics(context.Background())

	assert.InDelta(t, 4, ptestutil.ToFloat64(metrics.StaleAppraisals), 0)
	assert.InDelta(t, 2, ptestutil.ToFloat64(metrics.AppraisalsNeedingReview), 0)
}

func TestSyncStateMetrics_StoreError(t *testing.T) {
	t.Parallel()

	eng, ms, _ := newTestEngine(t)
	ms.EXPECT().GetSystemState(mock.Anything).Return(nil, errors.New("db down")).Once()

	assert.NotPanics(t, func() { eng.SyncStateMetrics(context.Background()) })
}
