package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/donaldgifford/loss-valuation/internal/engine"
	"github.com/donaldgifford/loss-valuation/internal/store"
	"github.com/donaldgifford/loss-valuation/pkg/adjust"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
)

// valuationError maps engine and store failures to HTTP errors: computation
// failures are 422 naming the field, missing rows 404, approved appraisals
// 409, anything else 500.
func valuationError(msg string, err error) error {
	var calcErr *valuation.CalculationError
	switch {
	case errors.As(err, &calcErr):
		return huma.Error422UnprocessableEntity(msg+": "+err.Error(), &huma.ErrorDetail{
			Message:  calcErr.Wrapped.Error(),
			Location: "body." + calcErr.Field,
		})
	case errors.Is(err, adjust.ErrInvalidAdjustedPrice):
		return huma.Error422UnprocessableEntity(msg + ": " + err.Error())
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound(msg + ": not found")
	case errors.Is(err, engine.ErrAppraisalApproved):
		return huma.Error409Conflict(msg + ": " + err.Error())
	default:
		return huma.Error500InternalServerError(msg + ": " + err.Error())
	}
}

// checkID rejects ids that are not UUIDs with 404, the same answer a
// missing row gets.
func checkID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return huma.Error404NotFound(kind + " not found")
	}
	return nil
}
