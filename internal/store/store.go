// Package store defines the datastore abstraction for loss-valuation.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// AppraisalQuery defines optional filters for appraisal listings.
type AppraisalQuery struct {
	Status      *string
	Stale       *bool
	ClaimNumber *string
	Make        *string
	Limit       int // default 50
	Offset      int
	OrderBy     string // "created_at", "updated_at", "valued_at"
}

// Store defines all data access operations for loss-valuation.
type Store interface {
	// Appraisals
	CreateAppraisal(ctx context.Context, a *domain.Appraisal) error
	GetAppraisal(ctx context.Context, id string) (*domain.Appraisal, error)
	ListAppraisals(ctx context.Context, q *AppraisalQuery) ([]domain.Appraisal, int, error)
	UpdateLossVehicle(ctx context.Context, id string, lv *domain.LossVehicle) error
	SetAppraisalStatus(ctx context.Context, id string, status domain.AppraisalStatus) error
	MarkAppraisalStale(ctx context.Context, id string) error
	ListStaleAppraisals(ctx context.Context, limit int) ([]domain.Appraisal, error)
	DeleteAppraisal(ctx context.Context, id string) error

	// Comparables
	UpsertComparable(ctx context.Context, c *domain.Comparable) error
	GetComparable(ctx context.Context, appraisalID, id string) (*domain.Comparable, error)
	ListComparables(ctx context.Context, appraisalID string) ([]domain.Comparable, error)
	UpdateComparableDerived(ctx context.Context, c *domain.Comparable) error
	DeleteComparable(ctx context.Context, appraisalID, id string) error

	// Valuations
	SaveValuation(ctx context.Context, v *domain.Valuation, status domain.AppraisalStatus) error
	GetLatestValuation(ctx context.Context, appraisalID string) (*domain.Valuation, error)

	GetSystemState(ctx context.Context) (*domain.SystemState, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
	RecoverStaleJobRuns(ctx context.Context, olderThan time.Duration) (int, error)
	AcquireSchedulerLock(ctx context.Context, jobName string, holder string, ttl time.Duration) (bool, error)
	ReleaseSchedulerLock(ctx context.Context, jobName string, holder string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
