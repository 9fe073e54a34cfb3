package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/loss-valuation/internal/engine"
	score "github.com/donaldgifford/loss-valuation/pkg/scorer"
	"github.com/donaldgifford/loss-valuation/pkg/validate"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// ComputeHandler serves stateless computations over request data.
type ComputeHandler struct {
	eng *engine.Engine
}

// NewComputeHandler creates a new ComputeHandler.
func NewComputeHandler(eng *engine.Engine) *ComputeHandler {
	return &ComputeHandler{eng: eng}
}

// --- Input/Output types ---

// ValuationRequest carries a loss vehicle and its comparables.
type ValuationRequest struct {
	LossVehicle LossVehicleBody  `json:"loss_vehicle"`
	Comparables []ComparableBody `json:"comparables"`
}

// ComputeInput is the request for valuations, scores and adjustments.
type ComputeInput struct {
	Body ValuationRequest
}

// ValueOutput is the response for a stateless valuation.
type ValueOutput struct {
	Body *domain.Valuation
}

// ValidationsInput is the request for batch validation. The loss vehicle
// is optional and enables the cross-vehicle warnings.
type ValidationsInput struct {
	Body struct {
		LossVehicle *LossVehicleBody `json:"loss_vehicle,omitempty"`
		Comparables []ComparableBody `json:"comparables"`
	}
}

// ValidationsOutput is the response for batch validation.
type ValidationsOutput struct {
	Body struct {
		Results []domain.ValidationResult `json:"results"`
		Summary domain.ValidationSummary  `json:"summary"`
	}
}

// ScoreResult is the quality score of one comparable.
type ScoreResult struct {
	ComparableID string                       `json:"comparable_id,omitempty"`
	QualityScore float64                      `json:"quality_score"`
	Breakdown    domain.QualityScoreBreakdown `json:"breakdown"`
}

// ScoresOutput is the response for quality scoring.
type ScoresOutput struct {
	Body struct {
		Scores []ScoreResult `json:"scores"`
	}
}

// AdjustmentResult is the price adjustment of one comparable, or why it
// could not be computed.
type AdjustmentResult struct {
	ComparableID string                   `json:"comparable_id,omitempty"`
	Adjustments  *domain.PriceAdjustments `json:"adjustments,omitempty"`
	Error        string                   `json:"error,omitempty"`
}

// AdjustmentsOutput is the response for price adjustment.
type AdjustmentsOutput struct {
	Body struct {
		Adjustments []AdjustmentResult `json:"adjustments"`
	}
}

// ConfidenceComparable is the derived data confidence is computed from.
type ConfidenceComparable struct {
	ID            string  `json:"id,omitempty"`
	QualityScore  float64 `json:"quality_score"  minimum:"0" maximum:"100"`
	AdjustedPrice float64 `json:"adjusted_price" minimum:"0"`
}

// ConfidenceInput is the request for a confidence level.
type ConfidenceInput struct {
	Body struct {
		Comparables []ConfidenceComparable `json:"comparables"`
	}
}

// ConfidenceOutput is the response for a confidence level.
type ConfidenceOutput struct {
	Body domain.ConfidenceResult
}

// --- Handlers ---

// Value runs validation, scoring, adjustment and aggregation over the
// request without storing anything.
func (h *ComputeHandler) Value(ctx context.Context, input *ComputeInput) (*ValueOutput, error) {
	loss := input.Body.LossVehicle.ToDomain()
	v, err := h.eng.Value(ctx, &loss, comparablesToDomain(input.Body.Comparables))
	if err != nil {
		return nil, valuationError("valuation failed", err)
	}
	return &ValueOutput{Body: v}, nil
}

// Validate checks each comparable against the others.
func (h *ComputeHandler) Validate(_ context.Context, input *ValidationsInput) (*ValidationsOutput, error) {
	var loss *domain.LossVehicle
	if input.Body.LossVehicle != nil {
		lv := input.Body.LossVehicle.ToDomain()
		loss = &lv
	}

	results := validate.ValidateMultiple(
		comparablesToDomain(input.Body.Comparables), loss, validate.WithNow(h.eng.Clock()),
	)

	resp := &ValidationsOutput{}
	resp.Body.Results = results
	resp.Body.Summary = validate.Summarize(results)
	return resp, nil
}

// Score computes the quality score of each comparable.
func (h *ComputeHandler) Score(_ context.Context, input *ComputeInput) (*ScoresOutput, error) {
	loss := input.Body.LossVehicle.ToDomain()
	if err := valuation.CheckLossVehicle(&loss, h.eng.Clock()()); err != nil {
		return nil, valuationError("scoring failed", err)
	}

	comps := comparablesToDomain(input.Body.Comparables)
	resp := &ScoresOutput{}
	resp.Body.Scores = make([]ScoreResult, 0, len(comps))
	for i := range comps {
		b := score.Score(&comps[i], &loss)
		resp.Body.Scores = append(resp.Body.Scores, ScoreResult{
			ComparableID: comps[i].ID,
			QualityScore: b.FinalScore,
			Breakdown:    b,
		})
	}
	return resp, nil
}

// Adjust computes the price adjustments of each comparable. Comparables
// whose adjusted price would be invalid carry an error instead.
func (h *ComputeHandler) Adjust(_ context.Context, input *ComputeInput) (*AdjustmentsOutput, error) {
	loss := input.Body.LossVehicle.ToDomain()
	if err := valuation.CheckLossVehicle(&loss, h.eng.Clock()()); err != nil {
		return nil, valuationError("adjustment failed", err)
	}

	comps := comparablesToDomain(input.Body.Comparables)
	resp := &AdjustmentsOutput{}
	resp.Body.Adjustments = make([]AdjustmentResult, 0, len(comps))
	for i := range comps {
		r := AdjustmentResult{ComparableID: comps[i].ID}
		adj, err := h.eng.Adjuster().Calculate(&comps[i], &loss)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Adjustments = adj
		}
		resp.Body.Adjustments = append(resp.Body.Adjustments, r)
	}
	return resp, nil
}

// Confidence rates a set of scored, adjusted comparables.
func (h *ComputeHandler) Confidence(_ context.Context, input *ConfidenceInput) (*ConfidenceOutput, error) {
	comps := make([]domain.Comparable, len(input.Body.Comparables))
	for i, c := range input.Body.Comparables {
		qs := c.QualityScore
		comps[i] = domain.Comparable{
			ID:           c.ID,
			QualityScore: &qs,
			Adjustments:  &domain.PriceAdjustments{AdjustedPrice: c.AdjustedPrice},
		}
	}
	return &ConfidenceOutput{Body: h.eng.Valuator().CalculateConfidenceLevel(comps)}, nil
}

// RegisterComputeRoutes registers the stateless computation endpoints.
func RegisterComputeRoutes(api huma.API, h *ComputeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "compute-valuation",
		Method:      http.MethodPost,
		Path:        "/api/v1/valuations",
		Summary:     "Compute a market value",
		Description: "Validates, scores and adjusts the comparables, then returns the quality-weighted market value, confidence and audit trail. Nothing is stored.",
		Tags:        []string{"compute"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Value)

	huma.Register(api, huma.Operation{
		OperationID: "validate-comparables",
		Method:      http.MethodPost,
		Path:        "/api/v1/validations",
		Summary:     "Validate comparables",
		Description: "Returns data-quality errors and warnings for each comparable.",
		Tags:        []string{"compute"},
	}, h.Validate)

	huma.Register(api, huma.Operation{
		OperationID: "score-comparables",
		Method:      http.MethodPost,
		Path:        "/api/v1/scores",
		Summary:     "Score comparables",
		Description: "Returns the 0-100 quality score of each comparable relative to the loss vehicle.",
		Tags:        []string{"compute"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Score)

	huma.Register(api, huma.Operation{
		OperationID: "adjust-comparables",
		Method:      http.MethodPost,
		Path:        "/api/v1/adjustments",
		Summary:     "Adjust comparable prices",
		Description: "Returns mileage, equipment and condition adjustments for each comparable.",
		Tags:        []string{"compute"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Adjust)

	huma.Register(api, huma.Operation{
		OperationID: "compute-confidence",
		Method:      http.MethodPost,
		Path:        "/api/v1/confidence",
		Summary:     "Compute a confidence level",
		Description: "Rates a set of scored, adjusted comparables by count, score spread and price spread.",
		Tags:        []string{"compute"},
	}, h.Confidence)
}
