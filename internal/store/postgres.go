package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithMaxConns caps the pool size. Values below one keep the default.
func WithMaxConns(n int) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = int32(n) //nolint:gosec // pool size comes from validated config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := RunMigrations(ctx, s.pool)
	return err
}

// CreateAppraisal inserts a new appraisal. New appraisals start stale so the
// scheduler values them.
func (s *PostgresStore) CreateAppraisal(ctx context.Context, a *domain.Appraisal) error {
	if a.Status == "" {
		a.Status = domain.AppraisalDraft
	}

	args := lossVehicleArgs(&a.LossVehicle)
	args["claim_number"] = a.ClaimNumber
	args["status"] = string(a.Status)
	args["notes"] = a.Notes

	if err := s.pool.QueryRow(ctx, queryCreateAppraisal, args).Scan(
		&a.ID, &a.Stale, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("creating appraisal: %w", err)
	}
	return nil
}

// GetAppraisal retrieves an appraisal and its comparables.
func (s *PostgresStore) GetAppraisal(ctx context.Context, id string) (*domain.Appraisal, error) {
	a := &domain.Appraisal{}
	if err := scanAppraisal(s.pool.QueryRow(ctx, queryGetAppraisal, id), a); err != nil {
		return nil, notFound("getting appraisal", err)
	}

	comps, err := s.ListComparables(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Comparables = comps

	return a, nil
}

// ListAppraisals queries appraisals with optional filters, returning results
// and the total count. Comparables are not loaded.
func (s *PostgresStore) ListAppraisals(
	ctx context.Context,
	q *AppraisalQuery,
) ([]domain.Appraisal, int, error) {
	if q == nil {
		q = &AppraisalQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting appraisals: %w", err)
	}

	appraisals, err := s.queryAppraisals(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}

	return appraisals, total, nil
}

// UpdateLossVehicle replaces the loss vehicle of an appraisal and marks it stale.
func (s *PostgresStore) UpdateLossVehicle(
	ctx context.Context,
	id string,
	lv *domain.LossVehicle,
) error {
	args := lossVehicleArgs(lv)
	args["id"] = id

	tag, err := s.pool.Exec(ctx, queryUpdateLossVehicle, args)
	if err != nil {
		return fmt.Errorf("updating loss vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating loss vehicle %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetAppraisalStatus moves an appraisal to the given status.
func (s *PostgresStore) SetAppraisalStatus(
	ctx context.Context,
	id string,
	status domain.AppraisalStatus,
) error {
	tag, err := s.pool.Exec(ctx, querySetAppraisalStatus, id, string(status))
	if err != nil {
		return fmt.Errorf("setting appraisal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("setting appraisal status %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkAppraisalStale flags an appraisal for revaluation. Its updated_at is
// bumped, which moves it to the back of ListStaleAppraisals.
func (s *PostgresStore) MarkAppraisalStale(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryMarkAppraisalStale, id)
	if err != nil {
		return fmt.Errorf("marking appraisal stale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("marking appraisal stale %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListStaleAppraisals returns unapproved stale appraisals, oldest first.
func (s *PostgresStore) ListStaleAppraisals(
	ctx context.Context,
	limit int,
) ([]domain.Appraisal, error) {
	return s.queryAppraisals(ctx, queryListStaleAppraisals, limit)
}

// DeleteAppraisal removes an appraisal with its comparables and valuations.
func (s *PostgresStore) DeleteAppraisal(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteAppraisal, id)
	if err != nil {
		return fmt.Errorf("deleting appraisal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting appraisal %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpsertComparable inserts or replaces a comparable by (appraisal_id, id).
// Derived fields are cleared and the owning appraisal is marked stale.
func (s *PostgresStore) UpsertComparable(ctx context.Context, c *domain.Comparable) error {
	args := pgx.NamedArgs{
		"id":                 c.ID,
		"appraisal_id":       c.AppraisalID,
		"source":             c.Source,
		"listing_url":        c.ListingURL,
		"vin":                c.VIN,
		"year":               c.Year,
		"make":               c.Make,
		"model":              c.Model,
		"trim":               c.Trim,
		"mileage":            c.Mileage,
		"condition":          string(c.Condition),
		"equipment":          c.Equipment,
		"location":           c.Location,
		"distance_from_loss": c.DistanceFromLoss,
		"list_price":         c.ListPrice,
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queryMarkAppraisalStale, c.AppraisalID)
		if err != nil {
			return fmt.Errorf("marking appraisal stale: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("appraisal %s: %w", c.AppraisalID, ErrNotFound)
		}

		if err := tx.QueryRow(ctx, queryUpsertComparable, args).Scan(
			&c.ID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("upserting comparable: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.ClearDerived()
	return nil
}

// GetComparable retrieves a single comparable of an appraisal.
func (s *PostgresStore) GetComparable(
	ctx context.Context,
	appraisalID, id string,
) (*domain.Comparable, error) {
	c := &domain.Comparable{}
	if err := scanComparable(s.pool.QueryRow(ctx, queryGetComparable, appraisalID, id), c); err != nil {
		return nil, notFound("getting comparable", err)
	}
	return c, nil
}

// ListComparables returns the comparables of an appraisal in insertion order.
func (s *PostgresStore) ListComparables(
	ctx context.Context,
	appraisalID string,
) ([]domain.Comparable, error) {
	rows, err := s.pool.Query(ctx, queryListComparables, appraisalID)
	if err != nil {
		return nil, fmt.Errorf("querying comparables: %w", err)
	}
	defer rows.Close()

	var comps []domain.Comparable
	for rows.Next() {
		var c domain.Comparable
		if err := scanComparable(rows, &c); err != nil {
			return nil, fmt.Errorf("scanning comparable: %w", err)
		}
		comps = append(comps, c)
	}

	return comps, rows.Err()
}

// UpdateComparableDerived persists the quality score and adjustments of a
// comparable without touching its market data.
func (s *PostgresStore) UpdateComparableDerived(ctx context.Context, c *domain.Comparable) error {
	args := pgx.NamedArgs{
		"appraisal_id":            c.AppraisalID,
		"id":                      c.ID,
		"quality_score":           c.QualityScore,
		"quality_score_breakdown": c.QualityScoreBreakdown,
		"adjustments":             c.Adjustments,
	}

	tag, err := s.pool.Exec(ctx, queryUpdateComparableDerived, args)
	if err != nil {
		return fmt.Errorf("updating comparable derived fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating comparable %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

// DeleteComparable removes a comparable and marks its appraisal stale.
func (s *PostgresStore) DeleteComparable(ctx context.Context, appraisalID, id string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queryDeleteComparable, appraisalID, id)
		if err != nil {
			return fmt.Errorf("deleting comparable: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("deleting comparable %s: %w", id, ErrNotFound)
		}

		if _, err := tx.Exec(ctx, queryMarkAppraisalStale, appraisalID); err != nil {
			return fmt.Errorf("marking appraisal stale: %w", err)
		}
		return nil
	})
}

// SaveValuation records a valuation and moves its appraisal to status,
// clearing the stale flag.
func (s *PostgresStore) SaveValuation(
	ctx context.Context,
	v *domain.Valuation,
	status domain.AppraisalStatus,
) error {
	if v.ComputedAt.IsZero() {
		v.ComputedAt = time.Now()
	}

	args := pgx.NamedArgs{
		"appraisal_id":         v.AppraisalID,
		"market_value":         v.MarketValue,
		"calculation":          v.Calculation,
		"confidence":           v.Confidence,
		"confidence_level":     v.Confidence.Level,
		"insurance_comparison": v.InsuranceComparison,
		"validation":           v.Validation,
		"validation_summary":   v.ValidationSummary,
		"needs_review":         v.NeedsReview,
		"review_reasons":       v.ReviewReasons,
		"excluded_comparables": v.Excluded,
		"computed_at":          v.ComputedAt,
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, queryInsertValuation, args).Scan(&v.ID); err != nil {
			return fmt.Errorf("inserting valuation: %w", err)
		}

		tag, err := tx.Exec(ctx, queryMarkAppraisalValued, v.AppraisalID, string(status), v.ComputedAt)
		if err != nil {
			return fmt.Errorf("marking appraisal valued: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("appraisal %s: %w", v.AppraisalID, ErrNotFound)
		}
		return nil
	})
}

// GetLatestValuation returns the most recent valuation of an appraisal.
func (s *PostgresStore) GetLatestValuation(
	ctx context.Context,
	appraisalID string,
) (*domain.Valuation, error) {
	v := &domain.Valuation{}
	err := s.pool.QueryRow(ctx, queryGetLatestValuation, appraisalID).Scan(
		&v.ID, &v.AppraisalID, &v.MarketValue, &v.Calculation, &v.Confidence,
		&v.InsuranceComparison, &v.Validation, &v.ValidationSummary,
		&v.NeedsReview, &v.ReviewReasons, &v.Excluded, &v.ComputedAt,
	)
	if err != nil {
		return nil, notFound("getting latest valuation", err)
	}
	return v, nil
}

// GetSystemState returns aggregate counts from the system_state view.
func (s *PostgresStore) GetSystemState(ctx context.Context) (*domain.SystemState, error) {
	st := &domain.SystemState{}
	if err := s.pool.QueryRow(ctx, queryGetSystemState).Scan(
		&st.AppraisalsTotal, &st.AppraisalsStale, &st.AppraisalsReview,
		&st.ComparablesTotal, &st.ComparablesUnscored, &st.ValuationsTotal,
	); err != nil {
		return nil, fmt.Errorf("getting system state: %w", err)
	}
	return st, nil
}

// InsertJobRun records the start of a scheduled job and returns its UUID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run as finished with the given status and metadata.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns the most recent runs for a specific job, newest first.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// ListLatestJobRuns returns the single most recent run for each distinct job name.
func (s *PostgresStore) ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListLatestJobRuns)
	if err != nil {
		return nil, fmt.Errorf("querying latest job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// RecoverStaleJobRuns marks any 'running' job rows older than olderThan as 'crashed',
// then deletes all rows older than 30 days. Returns the number of rows marked as crashed.
func (s *PostgresStore) RecoverStaleJobRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStaleJobRunsCrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale job runs crashed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldJobRuns); err != nil {
		return affected, fmt.Errorf("deleting old job runs: %w", err)
	}

	return affected, nil
}

// AcquireSchedulerLock attempts to acquire a distributed lock for the given job.
// Returns true if the lock was acquired, false if another holder already owns it.
func (s *PostgresStore) AcquireSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var gotName string
	err := s.pool.QueryRow(ctx, queryAcquireSchedulerLock, jobName, holder, expiresAt).Scan(&gotName)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // lock held by another; conflict not replaced
	}
	if err != nil {
		return false, fmt.Errorf("acquiring scheduler lock: %w", err)
	}

	return true, nil
}

// ReleaseSchedulerLock deletes the lock row for the given job and holder.
func (s *PostgresStore) ReleaseSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
) error {
	_, err := s.pool.Exec(ctx, queryReleaseSchedulerLock, jobName, holder)
	if err != nil {
		return fmt.Errorf("releasing scheduler lock: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryAppraisals(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Appraisal, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying appraisals: %w", err)
	}
	defer rows.Close()

	var appraisals []domain.Appraisal
	for rows.Next() {
		var a domain.Appraisal
		if err := scanAppraisal(rows, &a); err != nil {
			return nil, fmt.Errorf("scanning appraisal: %w", err)
		}
		appraisals = append(appraisals, a)
	}

	return appraisals, rows.Err()
}

// notFound maps pgx.ErrNoRows to ErrNotFound.
func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func lossVehicleArgs(lv *domain.LossVehicle) pgx.NamedArgs {
	return pgx.NamedArgs{
		"vin":             lv.VIN,
		"year":            lv.Year,
		"make":            lv.Make,
		"model":           lv.Model,
		"trim":            lv.Trim,
		"mileage":         lv.Mileage,
		"location":        lv.Location,
		"condition":       string(lv.Condition),
		"equipment":       lv.Equipment,
		"insurance_value": lv.InsuranceValue,
	}
}

// scanJobRuns scans rows from a job_runs query into a slice.
func scanJobRuns(rows pgx.Rows) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanAppraisal(row scannable, a *domain.Appraisal) error {
	lv := &a.LossVehicle
	return row.Scan(
		&a.ID, &a.ClaimNumber, &a.Status,
		&lv.VIN, &lv.Year, &lv.Make, &lv.Model, &lv.Trim, &lv.Mileage, &lv.Location, &lv.Condition,
		&lv.Equipment, &lv.InsuranceValue,
		&a.Stale, &a.Notes, &a.ValuedAt, &a.CreatedAt, &a.UpdatedAt,
	)
}

func scanComparable(row scannable, c *domain.Comparable) error {
	return row.Scan(
		&c.ID, &c.AppraisalID, &c.Source, &c.ListingURL, &c.VIN,
		&c.Year, &c.Make, &c.Model, &c.Trim, &c.Mileage, &c.Condition, &c.Equipment,
		&c.Location, &c.DistanceFromLoss, &c.ListPrice,
		&c.QualityScore, &c.QualityScoreBreakdown, &c.Adjustments,
		&c.CreatedAt, &c.UpdatedAt,
	)
}
