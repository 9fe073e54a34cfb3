package valuation

import (
	"errors"
	"fmt"
)

// Precondition and computation failures. Each is wrapped in a
// *CalculationError naming the offending comparable and field.
var (
	ErrNoLossVehicle       = errors.New("loss vehicle is required")
	ErrInvalidLossYear     = errors.New("loss vehicle year is missing or out of range")
	ErrInvalidLossMileage  = errors.New("loss vehicle mileage is missing or out of range")
	ErrNoComparables       = errors.New("at least one comparable is required")
	ErrInvalidListPrice    = errors.New("list price must be positive")
	ErrInvalidMileage      = errors.New("mileage is missing or negative")
	ErrInvalidYear         = errors.New("model year is missing or out of range")
	ErrMissingAdjustment   = errors.New("adjusted price is missing or not a finite non-negative amount")
	ErrInvalidQualityScore = errors.New("quality score is missing or outside 0-100")
	ErrZeroTotalWeight     = errors.New("zero total weight: quality scores sum to zero")
	ErrNonFiniteResult     = errors.New("market value is not finite")
)

// CalculationError identifies the comparable and field that stopped a
// market value computation.
type CalculationError struct {
	ComparableID string
	Field        string
	Wrapped      error
}

func (e *CalculationError) Error() string {
	if e.ComparableID == "" {
		return fmt.Sprintf("valuation: %s: %s", e.Field, e.Wrapped)
	}
	return fmt.Sprintf("valuation: comparable %q: %s: %s", e.ComparableID, e.Field, e.Wrapped)
}

func (e *CalculationError) Unwrap() error { return e.Wrapped }

func newCalculationError(comparableID, field string, wrapped error) *CalculationError {
	return &CalculationError{ComparableID: comparableID, Field: field, Wrapped: wrapped}
}
