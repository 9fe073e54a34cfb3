package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

const appraisalColumns = `id, claim_number, status,
	vin, year, make, model, trim, mileage, location, condition,
	COALESCE(equipment, '{}'), insurance_value,
	stale, notes, valued_at, created_at, updated_at`

const comparableColumns = `id, appraisal_id, source, listing_url, vin,
	year, make, model, trim, mileage, condition, COALESCE(equipment, '{}'),
	location, distance_from_loss, list_price,
	quality_score, quality_score_breakdown, adjustments,
	created_at, updated_at`

const valuationColumns = `id, appraisal_id, market_value, calculation, confidence,
	insurance_comparison, validation, validation_summary,
	needs_review, COALESCE(review_reasons, '{}'), COALESCE(excluded_comparables, '{}'),
	computed_at`

// Appraisal queries.
const (
	queryCreateAppraisal = `
		INSERT INTO appraisals (
			claim_number, status,
			vin, year, make, model, trim, mileage, location, condition,
			equipment, insurance_value, stale, notes
		) VALUES (
			@claim_number, @status,
			@vin, @year, @make, @model, @trim, @mileage, @location, @condition,
			@equipment, @insurance_value, true, @notes
		)
		RETURNING id, stale, created_at, updated_at`

	queryGetAppraisal = `SELECT ` + appraisalColumns + `
		FROM appraisals
		WHERE id = $1`

	queryUpdateLossVehicle = `
		UPDATE appraisals SET
			vin             = @vin,
			year            = @year,
			make            = @make,
			model           = @model,
			trim            = @trim,
			mileage         = @mileage,
			location        = @location,
			condition       = @condition,
			equipment       = @equipment,
			insurance_value = @insurance_value,
			stale           = true,
			updated_at      = now()
		WHERE id = @id`

	querySetAppraisalStatus = `
		UPDATE appraisals SET
			status     = $2,
			updated_at = now()
		WHERE id = $1`

	queryMarkAppraisalStale = `
		UPDATE appraisals SET
			stale      = true,
			updated_at = now()
		WHERE id = $1`

	queryListStaleAppraisals = `SELECT ` + appraisalColumns + `
		FROM appraisals
		WHERE stale = true AND status <> 'approved'
		ORDER BY updated_at ASC
		LIMIT $1`

	queryDeleteAppraisal = `DELETE FROM appraisals WHERE id = $1`
)

// Comparable queries.
const (
	queryUpsertComparable = `
		INSERT INTO comparables (
			id, appraisal_id, source, listing_url, vin,
			year, make, model, trim, mileage, condition, equipment,
			location, distance_from_loss, list_price
		) VALUES (
			COALESCE(NULLIF(@id, ''), gen_random_uuid()::text), @appraisal_id, @source, @listing_url, @vin,
			@year, @make, @model, @trim, @mileage, @condition, @equipment,
			@location, @distance_from_loss, @list_price
		)
		ON CONFLICT (appraisal_id, id) DO UPDATE SET
			source                  = EXCLUDED.source,
			listing_url             = EXCLUDED.listing_url,
			vin                     = EXCLUDED.vin,
			year                    = EXCLUDED.year,
			make                    = EXCLUDED.make,
			model                   = EXCLUDED.model,
			trim                    = EXCLUDED.trim,
			mileage                 = EXCLUDED.mileage,
			condition               = EXCLUDED.condition,
			equipment               = EXCLUDED.equipment,
			location                = EXCLUDED.location,
			distance_from_loss      = EXCLUDED.distance_from_loss,
			list_price              = EXCLUDED.list_price,
			quality_score           = NULL,
			quality_score_breakdown = NULL,
			adjustments             = NULL,
			updated_at              = now()
		RETURNING id, created_at, updated_at`

	queryGetComparable = `SELECT ` + comparableColumns + `
		FROM comparables
		WHERE appraisal_id = $1 AND id = $2`

	queryListComparables = `SELECT ` + comparableColumns + `
		FROM comparables
		WHERE appraisal_id = $1
		ORDER BY created_at ASC, id ASC`

	queryUpdateComparableDerived = `
		UPDATE comparables SET
			quality_score           = @quality_score,
			quality_score_breakdown = @quality_score_breakdown,
			adjustments             = @adjustments,
			updated_at              = now()
		WHERE appraisal_id = @appraisal_id AND id = @id`

	queryDeleteComparable = `DELETE FROM comparables WHERE appraisal_id = $1 AND id = $2`
)

// Valuation queries.
const (
	queryInsertValuation = `
		INSERT INTO valuations (
			appraisal_id, market_value, calculation, confidence, confidence_level,
			insurance_comparison, validation, validation_summary,
			needs_review, review_reasons, excluded_comparables, computed_at
		) VALUES (
			@appraisal_id, @market_value, @calculation, @confidence, @confidence_level,
			@insurance_comparison, @validation, @validation_summary,
			@needs_review, @review_reasons, @excluded_comparables, @computed_at
		)
		RETURNING id`

	queryMarkAppraisalValued = `
		UPDATE appraisals SET
			status     = $2,
			stale      = false,
			valued_at  = $3,
			updated_at = now()
		WHERE id = $1`

	queryGetLatestValuation = `SELECT ` + valuationColumns + `
		FROM valuations
		WHERE appraisal_id = $1
		ORDER BY computed_at DESC
		LIMIT 1`
)

// System state query.
const (
	queryGetSystemState = `
		SELECT appraisals_total, appraisals_stale, appraisals_needs_review,
			comparables_total, comparables_unscored, valuations_total
		FROM system_state`
)

// Scheduler queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name)
		VALUES ($1)
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at  = now(),
			status        = $2,
			error_text    = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE job_name = $1
		ORDER BY started_at DESC
		LIMIT $2`

	queryListLatestJobRuns = `
		SELECT DISTINCT ON (job_name)
			id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		ORDER BY job_name, started_at DESC`

	queryMarkStaleJobRunsCrashed = `
		UPDATE job_runs SET
			status       = 'crashed',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldJobRuns = `
		DELETE FROM job_runs WHERE started_at < now() - interval '30 days'`

	queryAcquireSchedulerLock = `
		INSERT INTO scheduler_locks (job_name, lock_holder, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO UPDATE
			SET locked_at   = now(),
				lock_holder = EXCLUDED.lock_holder,
				expires_at  = EXCLUDED.expires_at
			WHERE scheduler_locks.expires_at < now()
		RETURNING job_name`

	queryReleaseSchedulerLock = `
		DELETE FROM scheduler_locks WHERE job_name = $1 AND lock_holder = $2`
)
