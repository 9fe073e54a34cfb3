package handlers

import (
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/loss-valuation/internal/engine"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// scheduledJobs is the order jobs are reported in. Runs recorded under any
// other name belong to jobs this build no longer schedules.
var scheduledJobs = []string{engine.JobRevalueStale, engine.JobCacheSweep}

// JobsProvider defines the store methods required by the jobs handler.
type JobsProvider interface {
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
}

// JobsHandler serves the revaluation and cache sweep run history.
type JobsHandler struct {
	store JobsProvider
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(s JobsProvider) *JobsHandler {
	return &JobsHandler{store: s}
}

// ListJobsOutput holds the latest run of each scheduled job.
type ListJobsOutput struct {
	Body []domain.JobRun
}

// GetJobHistoryInput selects a scheduled job and how many runs to return.
type GetJobHistoryInput struct {
	JobName string `path:"job_name" enum:"revalue_stale,cache_sweep" doc:"Scheduled job name"`
	Limit   int    `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum runs to return"`
}

// GetJobHistoryOutput is the run history of one job, newest first.
type GetJobHistoryOutput struct {
	Body []domain.JobRun
}

// ListJobs returns the latest run of each scheduled job in schedule order.
// Jobs that have not run yet are omitted.
func (h *JobsHandler) ListJobs(
	ctx context.Context,
	_ *struct{},
) (*ListJobsOutput, error) {
	runs, err := h.store.ListLatestJobRuns(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing jobs failed: " + err.Error())
	}

	latest := make([]domain.JobRun, 0, len(scheduledJobs))
	for _, name := range scheduledJobs {
		i := slices.IndexFunc(runs, func(r domain.JobRun) bool { return r.JobName == name })
		if i >= 0 {
			latest = append(latest, runs[i])
		}
	}

	return &ListJobsOutput{Body: latest}, nil
}

// GetJobHistory returns the recent runs of one scheduled job.
func (h *JobsHandler) GetJobHistory(
	ctx context.Context,
	input *GetJobHistoryInput,
) (*GetJobHistoryOutput, error) {
	runs, err := h.store.ListJobRuns(ctx, input.JobName, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("fetching job history failed: " + err.Error())
	}

	if runs == nil {
		runs = []domain.JobRun{}
	}

	return &GetJobHistoryOutput{Body: runs}, nil
}

// RegisterJobRoutes registers the scheduler job endpoints.
func RegisterJobRoutes(api huma.API, h *JobsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs",
		Summary:     "Latest run of each scheduled job",
		Description: "Returns the most recent stale revaluation and cache sweep runs.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListJobs)

	huma.Register(api, huma.Operation{
		OperationID: "get-job-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/{job_name}",
		Summary:     "Run history of a scheduled job",
		Description: "Returns recent runs of revalue_stale or cache_sweep, newest first, " +
			"with status, rows affected and any error.",
		Tags:   []string{"scheduler"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.GetJobHistory)
}
