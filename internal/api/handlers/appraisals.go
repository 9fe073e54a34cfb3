package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/loss-valuation/internal/engine"
	"github.com/donaldgifford/loss-valuation/internal/store"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// AppraisalsHandler handles stored appraisals, their comparables and
// valuations.
type AppraisalsHandler struct {
	store store.Store
	eng   *engine.Engine
}

// NewAppraisalsHandler creates a new AppraisalsHandler.
func NewAppraisalsHandler(s store.Store, eng *engine.Engine) *AppraisalsHandler {
	return &AppraisalsHandler{store: s, eng: eng}
}

// --- Input/Output types ---

// AppraisalIDInput identifies an appraisal.
type AppraisalIDInput struct {
	ID string `path:"id" doc:"Appraisal UUID"`
}

// ListAppraisalsInput is the input for listing appraisals.
type ListAppraisalsInput struct {
	Status      string `query:"status"       doc:"Filter by status"         enum:"draft,valued,needs_review,approved,"`
	Stale       string `query:"stale"        doc:"Filter by stale flag"     enum:"true,false,"`
	ClaimNumber string `query:"claim_number" doc:"Filter by claim number"`
	Make        string `query:"make"         doc:"Filter by loss vehicle make (case-insensitive)"`
	Limit       int    `query:"limit"        doc:"Number of results (default 50)"                  minimum:"1" maximum:"500"`
	Offset      int    `query:"offset"       doc:"Pagination offset"                               minimum:"0"`
	OrderBy     string `query:"order_by"     doc:"Sort field"                enum:"created_at,updated_at,valued_at,"`
}

// ListAppraisalsOutput is the response for listing appraisals.
type ListAppraisalsOutput struct {
	Body struct {
		Appraisals []domain.Appraisal `json:"appraisals"`
		Total      int                `json:"total"`
		Limit      int                `json:"limit"`
		Offset     int                `json:"offset"`
	}
}

// CreateAppraisalInput is the request for creating an appraisal.
type CreateAppraisalInput struct {
	Body struct {
		ClaimNumber string          `json:"claim_number"    minLength:"1" doc:"Insurance claim number"`
		LossVehicle LossVehicleBody `json:"loss_vehicle"`
		Notes       string          `json:"notes,omitempty"`
	}
}

// AppraisalOutput is the response carrying one appraisal.
type AppraisalOutput struct {
	Body *domain.Appraisal
}

// UpdateLossVehicleInput is the request for replacing the loss vehicle.
type UpdateLossVehicleInput struct {
	ID   string `path:"id" doc:"Appraisal UUID"`
	Body LossVehicleBody
}

// SetStatusInput is the request for moving an appraisal through review.
type SetStatusInput struct {
	ID   string `path:"id" doc:"Appraisal UUID"`
	Body struct {
		Status string `json:"status" enum:"draft,valued,needs_review,approved"`
	}
}

// ComparablesOutput is the response listing an appraisal's comparables.
type ComparablesOutput struct {
	Body []domain.Comparable
}

// AddComparableInput is the request for adding or replacing a comparable.
type AddComparableInput struct {
	ID   string `path:"id" doc:"Appraisal UUID"`
	Body ComparableBody
}

// ComparableOutput is the response carrying one comparable.
type ComparableOutput struct {
	Body *domain.Comparable
}

// DeleteComparableInput identifies a comparable of an appraisal.
type DeleteComparableInput struct {
	ID           string `path:"id"            doc:"Appraisal UUID"`
	ComparableID string `path:"comparable_id" doc:"Comparable ID"`
}

// --- Handlers ---

const defaultListLimit = 50

// ListAppraisals returns appraisals with optional filters and pagination.
func (h *AppraisalsHandler) ListAppraisals(
	ctx context.Context,
	input *ListAppraisalsInput,
) (*ListAppraisalsOutput, error) {
	q := &store.AppraisalQuery{
		Limit:   defaultListLimit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}
	if input.Status != "" {
		q.Status = &input.Status
	}
	if input.Stale != "" {
		stale := input.Stale == "true"
		q.Stale = &stale
	}
	if input.ClaimNumber != "" {
		q.ClaimNumber = &input.ClaimNumber
	}
	if input.Make != "" {
		q.Make = &input.Make
	}

	appraisals, total, err := h.store.ListAppraisals(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing appraisals failed: " + err.Error())
	}
	if appraisals == nil {
		appraisals = []domain.Appraisal{}
	}

	resp := &ListAppraisalsOutput{}
	resp.Body.Appraisals = appraisals
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// CreateAppraisal stores a new draft appraisal.
func (h *AppraisalsHandler) CreateAppraisal(
	ctx context.Context,
	input *CreateAppraisalInput,
) (*AppraisalOutput, error) {
	a := &domain.Appraisal{
		ClaimNumber: input.Body.ClaimNumber,
		Status:      domain.AppraisalDraft,
		LossVehicle: input.Body.LossVehicle.ToDomain(),
		Notes:       input.Body.Notes,
	}
	if err := h.store.CreateAppraisal(ctx, a); err != nil {
		return nil, huma.Error500InternalServerError("creating appraisal failed: " + err.Error())
	}
	return &AppraisalOutput{Body: a}, nil
}

// GetAppraisal returns an appraisal with its comparables.
func (h *AppraisalsHandler) GetAppraisal(ctx context.Context, input *AppraisalIDInput) (*AppraisalOutput, error) {
	a, err := h.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AppraisalOutput{Body: a}, nil
}

// DeleteAppraisal removes an appraisal and everything under it.
func (h *AppraisalsHandler) DeleteAppraisal(ctx context.Context, input *AppraisalIDInput) (*struct{}, error) {
	a, err := h.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.store.DeleteAppraisal(ctx, a.ID); err != nil {
		return nil, valuationError("deleting appraisal failed", err)
	}
	h.eng.InvalidateAppraisal(a)
	return nil, nil
}

// UpdateLossVehicle replaces the loss vehicle and marks the appraisal stale.
func (h *AppraisalsHandler) UpdateLossVehicle(
	ctx context.Context,
	input *UpdateLossVehicleInput,
) (*AppraisalOutput, error) {
	a, err := h.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.AppraisalApproved {
		return nil, huma.Error409Conflict("appraisal is approved")
	}

	lv := input.Body.ToDomain()
	if err := h.store.UpdateLossVehicle(ctx, a.ID, &lv); err != nil {
		return nil, valuationError("updating loss vehicle failed", err)
	}
	h.eng.InvalidateAppraisal(a)

	a.LossVehicle = lv
	a.Stale = true
	return &AppraisalOutput{Body: a}, nil
}

// SetStatus moves an appraisal to a new status, e.g. approving a reviewed
// valuation.
func (h *AppraisalsHandler) SetStatus(ctx context.Context, input *SetStatusInput) (*AppraisalOutput, error) {
	a, err := h.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	status := domain.AppraisalStatus(input.Body.Status)
	if status == domain.AppraisalApproved && a.ValuedAt == nil {
		return nil, huma.Error409Conflict("appraisal has not been valued")
	}
	if err := h.store.SetAppraisalStatus(ctx, a.ID, status); err != nil {
		return nil, valuationError("setting status failed", err)
	}

	a.Status = status
	return &AppraisalOutput{Body: a}, nil
}

// ListComparables returns an appraisal's comparables.
func (h *AppraisalsHandler) ListComparables(
	ctx context.Context,
	input *AppraisalIDInput,
) (*ComparablesOutput, error) {
	if err := checkID("appraisal", input.ID); err != nil {
		return nil, err
	}
	comps, err := h.store.ListComparables(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing comparables failed: " + err.Error())
	}
	if comps == nil {
		comps = []domain.Comparable{}
	}
	return &ComparablesOutput{Body: comps}, nil
}

// AddComparable adds or replaces a comparable and marks the appraisal stale.
func (h *AppraisalsHandler) AddComparable(
	ctx context.Context,
	input *AddComparableInput,
) (*ComparableOutput, error) {
	a, err := h.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.AppraisalApproved {
		return nil, huma.Error409Conflict("appraisal is approved")
	}

	c := input.Body.ToDomain()
	c.AppraisalID = a.ID
	if err := h.store.UpsertComparable(ctx, &c); err != nil {
		return nil, valuationError("saving comparable failed", err)
	}
	h.eng.InvalidateAppraisal(a)

	return &ComparableOutput{Body: &c}, nil
}

// DeleteComparable removes a comparable and marks the appraisal stale.
func (h *AppraisalsHandler) DeleteComparable(
	ctx context.Context,
	input *DeleteComparableInput,
) (*struct{}, error) {
	a, err := h.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.AppraisalApproved {
		return nil, huma.Error409Conflict("appraisal is approved")
	}

	if err := h.store.DeleteComparable(ctx, a.ID, input.ComparableID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("comparable not found")
		}
		return nil, valuationError("deleting comparable failed", err)
	}
	h.eng.InvalidateAppraisal(a)
	return nil, nil
}

// Valuate values the appraisal from its stored data and saves the result.
func (h *AppraisalsHandler) Valuate(ctx context.Context, input *AppraisalIDInput) (*ValueOutput, error) {
	if err := checkID("appraisal", input.ID); err != nil {
		return nil, err
	}
	v, err := h.eng.Appraise(ctx, input.ID)
	if err != nil {
		return nil, valuationError("valuation failed", err)
	}
	return &ValueOutput{Body: v}, nil
}

// GetValuation returns the latest saved valuation of an appraisal.
func (h *AppraisalsHandler) GetValuation(ctx context.Context, input *AppraisalIDInput) (*ValueOutput, error) {
	if err := checkID("appraisal", input.ID); err != nil {
		return nil, err
	}
	v, err := h.store.GetLatestValuation(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("no valuation for appraisal")
		}
		return nil, huma.Error500InternalServerError("fetching valuation failed: " + err.Error())
	}
	return &ValueOutput{Body: v}, nil
}

func (h *AppraisalsHandler) load(ctx context.Context, id string) (*domain.Appraisal, error) {
	if err := checkID("appraisal", id); err != nil {
		return nil, err
	}
	a, err := h.store.GetAppraisal(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("appraisal not found")
		}
		return nil, huma.Error500InternalServerError("fetching appraisal failed: " + err.Error())
	}
	return a, nil
}

// RegisterAppraisalRoutes registers appraisal endpoints with the Huma API.
func RegisterAppraisalRoutes(api huma.API, h *AppraisalsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-appraisals",
		Method:      http.MethodGet,
		Path:        "/api/v1/appraisals",
		Summary:     "List appraisals",
		Description: "Returns appraisals with optional filters for status, stale flag, claim number and make.",
		Tags:        []string{"appraisals"},
	}, h.ListAppraisals)

	huma.Register(api, huma.Operation{
		OperationID:   "create-appraisal",
		Method:        http.MethodPost,
		Path:          "/api/v1/appraisals",
		Summary:       "Create an appraisal",
		Description:   "Stores a draft appraisal for a loss vehicle. Comparables are added separately.",
		Tags:          []string{"appraisals"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateAppraisal)

	huma.Register(api, huma.Operation{
		OperationID: "get-appraisal",
		Method:      http.MethodGet,
		Path:        "/api/v1/appraisals/{id}",
		Summary:     "Get an appraisal",
		Description: "Returns an appraisal with its comparables.",
		Tags:        []string{"appraisals"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetAppraisal)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-appraisal",
		Method:        http.MethodDelete,
		Path:          "/api/v1/appraisals/{id}",
		Summary:       "Delete an appraisal",
		Tags:          []string{"appraisals"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteAppraisal)

	huma.Register(api, huma.Operation{
		OperationID: "update-loss-vehicle",
		Method:      http.MethodPut,
		Path:        "/api/v1/appraisals/{id}/loss-vehicle",
		Summary:     "Replace the loss vehicle",
		Description: "Replaces the loss vehicle and marks the appraisal for revaluation.",
		Tags:        []string{"appraisals"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
	}, h.UpdateLossVehicle)

	huma.Register(api, huma.Operation{
		OperationID: "set-appraisal-status",
		Method:      http.MethodPut,
		Path:        "/api/v1/appraisals/{id}/status",
		Summary:     "Set appraisal status",
		Description: "Moves an appraisal through review. Only valued appraisals can be approved.",
		Tags:        []string{"appraisals"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
	}, h.SetStatus)

	huma.Register(api, huma.Operation{
		OperationID: "list-comparables",
		Method:      http.MethodGet,
		Path:        "/api/v1/appraisals/{id}/comparables",
		Summary:     "List comparables",
		Tags:        []string{"comparables"},
		Errors:      []int{http.StatusNotFound},
	}, h.ListComparables)

	huma.Register(api, huma.Operation{
		OperationID:   "add-comparable",
		Method:        http.MethodPost,
		Path:          "/api/v1/appraisals/{id}/comparables",
		Summary:       "Add or replace a comparable",
		Description:   "Adds a comparable, or replaces the one with the same ID, and marks the appraisal for revaluation.",
		Tags:          []string{"comparables"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
	}, h.AddComparable)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-comparable",
		Method:        http.MethodDelete,
		Path:          "/api/v1/appraisals/{id}/comparables/{comparable_id}",
		Summary:       "Delete a comparable",
		Tags:          []string{"comparables"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
	}, h.DeleteComparable)

	huma.Register(api, huma.Operation{
		OperationID: "valuate-appraisal",
		Method:      http.MethodPost,
		Path:        "/api/v1/appraisals/{id}/valuate",
		Summary:     "Value an appraisal",
		Description: "Values the appraisal from its stored comparables, saves the result and alerts when it needs review.",
		Tags:        []string{"appraisals"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity},
	}, h.Valuate)

	huma.Register(api, huma.Operation{
		OperationID: "get-valuation",
		Method:      http.MethodGet,
		Path:        "/api/v1/appraisals/{id}/valuation",
		Summary:     "Get the latest valuation",
		Tags:        []string{"appraisals"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetValuation)
}
