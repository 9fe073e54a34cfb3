package client

import (
	"context"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
)

// ValidationsResponse is the result of batch validation.
type ValidationsResponse struct {
	Results []domain.ValidationResult `json:"results"`
	Summary domain.ValidationSummary  `json:"summary"`
}

type computeRequest struct {
	LossVehicle *domain.LossVehicle `json:"loss_vehicle,omitempty"`
	Comparables []comparableRequest `json:"comparables"`
}

// Value computes a market value without storing anything.
func (c *Client) Value(
	ctx context.Context,
	lv *domain.LossVehicle,
	comps []domain.Comparable,
) (*domain.Valuation, error) {
	var v domain.Valuation
	req := computeRequest{LossVehicle: lv, Comparables: newComparableRequests(comps)}
	if err := c.post(ctx, "/api/v1/valuations", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Validate checks comparables for data-quality problems. lv may be nil.
func (c *Client) Validate(
	ctx context.Context,
	lv *domain.LossVehicle,
	comps []domain.Comparable,
) (*ValidationsResponse, error) {
	var resp ValidationsResponse
	req := computeRequest{LossVehicle: lv, Comparables: newComparableRequests(comps)}
	if err := c.post(ctx, "/api/v1/validations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CacheStats returns the valuation cache statistics.
func (c *Client) CacheStats(ctx context.Context) (*valuation.CacheStats, error) {
	var stats valuation.CacheStats
	if err := c.get(ctx, "/api/v1/cache/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ClearCache empties the valuation cache and returns how many entries
// were removed.
func (c *Client) ClearCache(ctx context.Context) (int, error) {
	var resp struct {
		Cleared int `json:"cleared"`
	}
	if err := c.del(ctx, "/api/v1/cache", &resp); err != nil {
		return 0, err
	}
	return resp.Cleared, nil
}

// SystemState returns aggregate counts across appraisals and valuations.
func (c *Client) SystemState(ctx context.Context) (*domain.SystemState, error) {
	var state domain.SystemState
	if err := c.get(ctx, "/api/v1/system/state", &state); err != nil {
		return nil, err
	}
	return &state, nil
}
