package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
	"github.com/donaldgifford/loss-valuation/internal/notify"
	"github.com/donaldgifford/loss-valuation/internal/store"
	"github.com/donaldgifford/loss-valuation/internal/telemetry"
	"github.com/donaldgifford/loss-valuation/pkg/adjust"
	"github.com/donaldgifford/loss-valuation/pkg/validate"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

const (
	defaultMinComparables   = 3
	defaultReviewConfidence = 60
	defaultRevalueBatchSize = 100
)

// ErrAppraisalApproved is returned when revaluing an approved appraisal.
var ErrAppraisalApproved = errors.New("appraisal is approved and cannot be revalued")

// Engine orchestrates validation, scoring, adjustment, aggregation,
// persistence and review alerting.
type Engine struct {
	store    store.Store
	notifier notify.Notifier
	adjuster *adjust.Calculator
	valuator *valuation.Calculator
	log      *slog.Logger
	now      func() time.Time

	minComparables   int
	reviewConfidence int
	revalueBatchSize int
	baseURL          string
}

// NewEngine creates a new Engine. The store may be nil for stateless use
// (Value only); a nil notifier disables review alerts.
func NewEngine(s store.Store, n notify.Notifier, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:            s,
		notifier:         n,
		log:              slog.Default(),
		now:              time.Now,
		minComparables:   defaultMinComparables,
		reviewConfidence: defaultReviewConfidence,
		revalueBatchSize: defaultRevalueBatchSize,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.notifier == nil {
		eng.notifier = notify.NewNoOpNotifier(eng.log)
	}
	if eng.adjuster == nil {
		eng.adjuster = adjust.NewCalculator(adjust.WithNow(eng.now))
	}
	if eng.valuator == nil {
		eng.valuator = valuation.NewCalculator(
			valuation.NewCache(valuation.WithLookupHook(metrics.ObserveCacheLookup)),
			valuation.WithNow(eng.now),
			valuation.WithLogger(eng.log),
		)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNow overrides the clock used for validation and timestamps.
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithAdjuster sets the price adjustment calculator.
func WithAdjuster(a *adjust.Calculator) EngineOption {
	return func(e *Engine) {
		e.adjuster = a
	}
}

// WithValuator sets the market value calculator and, through it, the cache.
func WithValuator(v *valuation.Calculator) EngineOption {
	return func(e *Engine) {
		e.valuator = v
	}
}

// WithMinComparables sets how many usable comparables a valuation needs
// before it stops being flagged for review.
func WithMinComparables(n int) EngineOption {
	return func(e *Engine) {
		e.minComparables = n
	}
}

// WithReviewConfidence sets the confidence level below which a valuation
// is flagged for review.
func WithReviewConfidence(level int) EngineOption {
	return func(e *Engine) {
		e.reviewConfidence = level
	}
}

// WithRevalueBatchSize caps how many stale appraisals one RevalueStale run
// processes.
func WithRevalueBatchSize(n int) EngineOption {
	return func(e *Engine) {
		e.revalueBatchSize = n
	}
}

// WithBaseURL sets the public URL used for links in review alerts.
func WithBaseURL(u string) EngineOption {
	return func(e *Engine) {
		e.baseURL = u
	}
}

// Adjuster returns the engine's price adjustment calculator.
func (eng *Engine) Adjuster() *adjust.Calculator { return eng.adjuster }

// Valuator returns the engine's market value calculator.
func (eng *Engine) Valuator() *valuation.Calculator { return eng.valuator }

// Clock returns the engine's clock.
func (eng *Engine) Clock() func() time.Time { return eng.now }

// Value runs a stateless valuation. Every comparable is validated against
// the others; invalid ones, and ones whose adjusted price cannot be
// computed, are excluded. The rest are scored, adjusted and aggregated.
// The returned Valuation carries all comparables, excluded ones without
// derived fields. comps is not modified.
func (eng *Engine) Value(
	ctx context.Context,
	loss *domain.LossVehicle,
	comps []domain.Comparable,
) (*domain.Valuation, error) {
	_, span := telemetry.Tracer().Start(ctx, "engine.Value",
		trace.WithAttributes(attribute.Int("comparables.input", len(comps))),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.ValuationDuration.Observe(time.Since(start).Seconds())
	}()

	v, err := eng.value(loss, comps)
	if err != nil {
		recordFailure(span, err)
		return nil, err
	}

	metrics.ValuationsTotal.Inc()
	metrics.MarketValueDollars.Observe(v.MarketValue)
	metrics.ConfidenceLevel.Observe(float64(v.Confidence.Level))

	span.SetAttributes(
		attribute.Float64("market_value", v.MarketValue),
		attribute.Int("confidence", v.Confidence.Level),
		attribute.Int("comparables.excluded", len(v.Excluded)),
		attribute.Bool("needs_review", v.NeedsReview),
	)
	return v, nil
}

func (eng *Engine) value(loss *domain.LossVehicle, comps []domain.Comparable) (*domain.Valuation, error) {
	now := eng.now()
	if err := valuation.CheckLossVehicle(loss, now); err != nil {
		return nil, err
	}

	working := slices.Clone(comps)
	results := validate.ValidateMultiple(working, loss, validate.WithNow(eng.now))

	v := &domain.Valuation{
		Validation:        make(map[string]domain.ValidationResult, len(results)),
		ValidationSummary: validate.Summarize(results),
		ComputedAt:        now,
	}

	used := make([]domain.Comparable, 0, len(working))
	outliers := 0
	for i := range working {
		key := resultKey(v.Validation, &working[i], i)
		v.Validation[key] = results[i]
		recordFindings(&results[i])

		if results[i].HasWarning(validate.CodePriceOutlier) {
			outliers++
		}
		if !results[i].IsValid {
			working[i].ClearDerived()
			v.Excluded = append(v.Excluded, key)
			continue
		}
		if err := Derive(eng.adjuster, &working[i], loss); err != nil {
			eng.log.Warn("comparable excluded", "comparable", key, "error", err)
			v.Excluded = append(v.Excluded, key)
			continue
		}
		used = append(used, working[i])
	}

	calc, err := eng.valuator.CalculateMarketValue(used, loss)
	if err != nil {
		return nil, err
	}

	v.MarketValue = calc.FinalMarketValue
	v.Calculation = *calc
	v.Confidence = eng.valuator.CalculateConfidenceLevel(used)
	v.InsuranceComparison = valuation.InsuranceComparison(calc.FinalMarketValue, loss)
	v.Comparables = working
	v.ReviewReasons = eng.reviewReasons(len(used), v.Confidence.Level, outliers, len(v.Excluded))
	v.NeedsReview = len(v.ReviewReasons) > 0

	return v, nil
}

// resultKey names a comparable in the validation map: its ID, or its
// 1-based position when the ID is empty or already taken.
func resultKey(seen map[string]domain.ValidationResult, c *domain.Comparable, i int) string {
	if c.ID != "" {
		if _, dup := seen[c.ID]; !dup {
			return c.ID
		}
		return fmt.Sprintf("%s#%d", c.ID, i+1)
	}
	return fmt.Sprintf("#%d", i+1)
}

func recordFindings(r *domain.ValidationResult) {
	for i := range r.Errors {
		metrics.ValidationFindingsTotal.WithLabelValues(r.Errors[i].Code, string(domain.SeverityError)).Inc()
	}
	for i := range r.Warnings {
		metrics.ValidationFindingsTotal.WithLabelValues(r.Warnings[i].Code, string(domain.SeverityWarning)).Inc()
	}
}

func recordFailure(span trace.Span, err error) {
	field := "unknown"
	var calcErr *valuation.CalculationError
	if errors.As(err, &calcErr) {
		field = calcErr.Field
	}
	metrics.ValuationFailuresTotal.WithLabelValues(field).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (eng *Engine) reviewReasons(used, confidence, outliers, excluded int) []string {
	var reasons []string
	if used < eng.minComparables {
		reasons = append(reasons, fmt.Sprintf("only %d usable comparables (minimum %d)", used, eng.minComparables))
	}
	if confidence < eng.reviewConfidence {
		reasons = append(reasons, fmt.Sprintf("confidence %d below %d", confidence, eng.reviewConfidence))
	}
	if outliers > 0 {
		reasons = append(reasons, fmt.Sprintf("%d comparables flagged as price outliers", outliers))
	}
	if excluded > 0 {
		reasons = append(reasons, fmt.Sprintf("%d comparables excluded", excluded))
	}
	return reasons
}

// Appraise values a stored appraisal: it loads the loss vehicle and
// comparables, runs Value, persists the derived comparable fields and the
// valuation, and sends a review alert when the valuation needs review.
func (eng *Engine) Appraise(ctx context.Context, appraisalID string) (*domain.Valuation, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "engine.Appraise",
		trace.WithAttributes(attribute.String("appraisal.id", appraisalID)),
	)
	defer span.End()

	a, err := eng.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return nil, fmt.Errorf("loading appraisal %s: %w", appraisalID, err)
	}
	if a.Status == domain.AppraisalApproved {
		return nil, ErrAppraisalApproved
	}

	v, err := eng.Value(ctx, &a.LossVehicle, a.Comparables)
	if err != nil {
		return nil, fmt.Errorf("valuing appraisal %s: %w", appraisalID, err)
	}
	v.AppraisalID = a.ID

	var errs []error
	for i := range v.Comparables {
		if err := eng.store.UpdateComparableDerived(ctx, &v.Comparables[i]); err != nil {
			errs = append(errs, fmt.Errorf("comparable %s: %w", v.Comparables[i].ID, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		span.SetStatus(codes.Error, "saving derived fields")
		return nil, fmt.Errorf("saving derived fields: %w", err)
	}

	status := domain.AppraisalValued
	if v.NeedsReview {
		status = domain.AppraisalReview
	}
	if err := eng.store.SaveValuation(ctx, v, status); err != nil {
		span.SetStatus(codes.Error, "saving valuation")
		return nil, fmt.Errorf("saving valuation: %w", err)
	}

	eng.log.Info("appraisal valued",
		"appraisal", a.ID,
		"claim", a.ClaimNumber,
		"market_value", v.MarketValue,
		"confidence", v.Confidence.Level,
		"needs_review", v.NeedsReview,
	)

	if v.NeedsReview {
		eng.sendReviewAlert(ctx, a, v)
	}
	return v, nil
}

// InvalidateAppraisal drops the cached results of an appraisal's last
// valuation, identified by the comparables that carry derived fields.
func (eng *Engine) InvalidateAppraisal(a *domain.Appraisal) int {
	used := make([]domain.Comparable, 0, len(a.Comparables))
	for i := range a.Comparables {
		if a.Comparables[i].QualityScore != nil && a.Comparables[i].Adjustments != nil {
			used = append(used, a.Comparables[i])
		}
	}
	if len(used) == 0 {
		return 0
	}
	return eng.valuator.Invalidate(used, &a.LossVehicle)
}

// RevalueStale revalues up to the batch size of stale appraisals. Appraisals
// whose data cannot produce a market value stay stale but are moved behind
// the rest of the queue, so they cannot starve later batches; other
// failures are joined into the returned error.
func (eng *Engine) RevalueStale(ctx context.Context) (int, error) {
	stale, err := eng.store.ListStaleAppraisals(ctx, eng.revalueBatchSize)
	if err != nil {
		return 0, fmt.Errorf("listing stale appraisals: %w", err)
	}

	var errs []error
	valued := 0
	for i := range stale {
		if ctx.Err() != nil {
			return valued, ctx.Err()
		}

		if _, err := eng.Appraise(ctx, stale[i].ID); err != nil {
			var calcErr *valuation.CalculationError
			if errors.As(err, &calcErr) {
				eng.log.Warn("stale appraisal cannot be valued",
					"appraisal", stale[i].ID,
					"field", calcErr.Field,
					"error", calcErr.Wrapped,
				)
				if err := eng.store.MarkAppraisalStale(ctx, stale[i].ID); err != nil {
					errs = append(errs, fmt.Errorf("deferring appraisal %s: %w", stale[i].ID, err))
				}
				continue
			}
			errs = append(errs, fmt.Errorf("appraisal %s: %w", stale[i].ID, err))
			continue
		}
		valued++
	}

	return valued, errors.Join(errs...)
}

// SweepCache removes expired valuation cache entries.
func (eng *Engine) SweepCache() int {
	c := eng.valuator.Cache()
	if c == nil {
		return 0
	}
	n := c.Sweep()
	metrics.CacheEntries.Set(float64(c.Len()))
	return n
}

// ClearCache empties the valuation cache.
func (eng *Engine) ClearCache() int {
	c := eng.valuator.Cache()
	if c == nil {
		return 0
	}
	n := c.Clear()
	metrics.CacheEntries.Set(0)
	return n
}

// CacheStats reports the valuation cache size and hit counters.
func (eng *Engine) CacheStats() valuation.CacheStats {
	if c := eng.valuator.Cache(); c != nil {
		return c.Stats()
	}
	return valuation.CacheStats{}
}

// SyncStateMetrics refreshes the gauges derived from the system state.
func (eng *Engine) SyncStateMetrics(ctx context.Context) {
	state, err := eng.store.GetSystemState(ctx)
	if err != nil {
		eng.log.Warn("failed to read system state", "error", err)
		return
	}
	metrics.StaleAppraisals.Set(float64(state.AppraisalsStale))
	metrics.AppraisalsNeedingReview.Set(float64(state.AppraisalsReview))
	if c := eng.valuator.Cache(); c != nil {
		metrics.CacheEntries.Set(float64(c.Len()))
	}
}
