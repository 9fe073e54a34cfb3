package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// AppraisalsResponse wraps a paginated appraisals response.
type AppraisalsResponse struct {
	Appraisals []domain.Appraisal `json:"appraisals"`
	Total      int                `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// ListAppraisalsParams defines query parameters for appraisal queries.
type ListAppraisalsParams struct {
	Status      string
	Stale       *bool
	ClaimNumber string
	Make        string
	Limit       int
	Offset      int
	OrderBy     string
}

// comparableRequest contains only the fields the API accepts for a
// comparable; derived fields are computed server side.
type comparableRequest struct {
	ID               string           `json:"id,omitempty"`
	Source           string           `json:"source,omitempty"`
	ListingURL       string           `json:"listing_url,omitempty"`
	VIN              string           `json:"vin,omitempty"`
	Year             int              `json:"year,omitempty"`
	Make             string           `json:"make,omitempty"`
	Model            string           `json:"model,omitempty"`
	Trim             string           `json:"trim,omitempty"`
	Mileage          *int             `json:"mileage,omitempty"`
	Condition        domain.Condition `json:"condition,omitempty"`
	Equipment        []string         `json:"equipment,omitempty"`
	Location         string           `json:"location,omitempty"`
	DistanceFromLoss float64          `json:"distance_from_loss,omitempty"`
	ListPrice        float64          `json:"list_price,omitempty"`
}

func newComparableRequest(c *domain.Comparable) comparableRequest {
	return comparableRequest{
		ID:               c.ID,
		Source:           c.Source,
		ListingURL:       c.ListingURL,
		VIN:              c.VIN,
		Year:             c.Year,
		Make:             c.Make,
		Model:            c.Model,
		Trim:             c.Trim,
		Mileage:          c.Mileage,
		Condition:        c.Condition,
		Equipment:        c.Equipment,
		Location:         c.Location,
		DistanceFromLoss: c.DistanceFromLoss,
		ListPrice:        c.ListPrice,
	}
}

func newComparableRequests(comps []domain.Comparable) []comparableRequest {
	out := make([]comparableRequest, len(comps))
	for i := range comps {
		out[i] = newComparableRequest(&comps[i])
	}
	return out
}

// ListAppraisals returns appraisals matching the given parameters.
func (c *Client) ListAppraisals(
	ctx context.Context,
	params *ListAppraisalsParams,
) (*AppraisalsResponse, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Stale != nil {
		q.Set("stale", strconv.FormatBool(*params.Stale))
	}
	if params.ClaimNumber != "" {
		q.Set("claim_number", params.ClaimNumber)
	}
	if params.Make != "" {
		q.Set("make", params.Make)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/appraisals"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp AppraisalsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAppraisal returns a single appraisal with its comparables.
func (c *Client) GetAppraisal(ctx context.Context, id string) (*domain.Appraisal, error) {
	var a domain.Appraisal
	if err := c.get(ctx, "/api/v1/appraisals/"+url.PathEscape(id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAppraisal creates a draft appraisal for a loss vehicle.
func (c *Client) CreateAppraisal(
	ctx context.Context,
	claimNumber string,
	lv *domain.LossVehicle,
	notes string,
) (*domain.Appraisal, error) {
	req := struct {
		ClaimNumber string              `json:"claim_number"`
		LossVehicle *domain.LossVehicle `json:"loss_vehicle"`
		Notes       string              `json:"notes,omitempty"`
	}{claimNumber, lv, notes}

	var created domain.Appraisal
	if err := c.post(ctx, "/api/v1/appraisals", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteAppraisal removes an appraisal.
func (c *Client) DeleteAppraisal(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/appraisals/"+url.PathEscape(id), nil)
}

// UpdateLossVehicle replaces an appraisal's loss vehicle.
func (c *Client) UpdateLossVehicle(
	ctx context.Context,
	id string,
	lv *domain.LossVehicle,
) (*domain.Appraisal, error) {
	var a domain.Appraisal
	if err := c.put(ctx, fmt.Sprintf("/api/v1/appraisals/%s/loss-vehicle", url.PathEscape(id)), lv, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetAppraisalStatus moves an appraisal to a new status.
func (c *Client) SetAppraisalStatus(
	ctx context.Context,
	id string,
	status domain.AppraisalStatus,
) (*domain.Appraisal, error) {
	body := map[string]string{"status": string(status)}
	var a domain.Appraisal
	if err := c.put(ctx, fmt.Sprintf("/api/v1/appraisals/%s/status", url.PathEscape(id)), body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListComparables returns an appraisal's comparables.
func (c *Client) ListComparables(ctx context.Context, appraisalID string) ([]domain.Comparable, error) {
	var comps []domain.Comparable
	path := fmt.Sprintf("/api/v1/appraisals/%s/comparables", url.PathEscape(appraisalID))
	if err := c.get(ctx, path, &comps); err != nil {
		return nil, err
	}
	return comps, nil
}

// AddComparable adds a comparable to an appraisal, replacing any with the
// same ID.
func (c *Client) AddComparable(
	ctx context.Context,
	appraisalID string,
	comp *domain.Comparable,
) (*domain.Comparable, error) {
	var saved domain.Comparable
	path := fmt.Sprintf("/api/v1/appraisals/%s/comparables", url.PathEscape(appraisalID))
	if err := c.post(ctx, path, newComparableRequest(comp), &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteComparable removes a comparable from an appraisal.
func (c *Client) DeleteComparable(ctx context.Context, appraisalID, comparableID string) error {
	path := fmt.Sprintf("/api/v1/appraisals/%s/comparables/%s",
		url.PathEscape(appraisalID), url.PathEscape(comparableID))
	return c.del(ctx, path, nil)
}

// Valuate values a stored appraisal and returns the saved valuation.
func (c *Client) Valuate(ctx context.Context, appraisalID string) (*domain.Valuation, error) {
	var v domain.Valuation
	path := fmt.Sprintf("/api/v1/appraisals/%s/valuate", url.PathEscape(appraisalID))
	if err := c.post(ctx, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetValuation returns the latest saved valuation of an appraisal.
func (c *Client) GetValuation(ctx context.Context, appraisalID string) (*domain.Valuation, error) {
	var v domain.Valuation
	path := fmt.Sprintf("/api/v1/appraisals/%s/valuation", url.PathEscape(appraisalID))
	if err := c.get(ctx, path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
