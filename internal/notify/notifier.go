// Package notify defines the notification interface and implementations
// for review alert delivery.
package notify

import (
	"context"
	"fmt"
)

// ReviewAlert describes a valuation that an adjuster should look at before
// it is used.
type ReviewAlert struct {
	AppraisalID     string
	ClaimNumber     string
	Vehicle         string // "2020 Honda Accord EX"
	MarketValue     float64
	ConfidenceLevel int
	ComparableCount int
	InsuranceValue  *float64
	DifferencePct   *float64
	Reasons         []string
	URL             string
}

// Notifier defines the interface for sending review alerts.
type Notifier interface {
	SendReviewAlert(ctx context.Context, alert *ReviewAlert) error
}

// VehicleLabel formats year, make, model and trim for alert titles.
func VehicleLabel(year int, vehicleMake, model, trim string) string {
	label := fmt.Sprintf("%d %s %s", year, vehicleMake, model)
	if trim != "" {
		label += " " + trim
	}
	return label
}
