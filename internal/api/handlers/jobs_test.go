package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/loss-valuation/internal/api/handlers"
	"github.com/donaldgifford/loss-valuation/internal/engine"
	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// fakeJobRuns records the arguments of ListJobRuns.
type fakeJobRuns struct {
	latest  []domain.JobRun
	history []domain.JobRun
	err     error

	gotJob   string
	gotLimit int
}

func (f *fakeJobRuns) ListLatestJobRuns(_ context.Context) ([]domain.JobRun, error) {
	return f.latest, f.err
}

func (f *fakeJobRuns) ListJobRuns(_ context.Context, jobName string, limit int) ([]domain.JobRun, error) {
	f.gotJob, f.gotLimit = jobName, limit
	return f.history, f.err
}

func jobRun(id, job, status string, rows int) domain.JobRun {
	return domain.JobRun{
		ID:           id,
		JobName:      job,
		StartedAt:    time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
		Status:       status,
		RowsAffected: &rows,
	}
}

func newJobsAPI(t *testing.T, f *fakeJobRuns) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(f))
	return api
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		latest   []domain.JobRun
		err      error
		wantCode int
		wantIDs  []string
		wantBody string
	}{
		{
			name: "schedule order with retired jobs dropped",
			latest: []domain.JobRun{
				jobRun("r2", engine.JobCacheSweep, "succeeded", 4),
				jobRun("r9", "rescore", "succeeded", 0),
				jobRun("r1", engine.JobRevalueStale, "failed", 0),
			},
			wantCode: http.StatusOK,
			wantIDs:  []string{"r1", "r2"},
		},
		{
			name:     "nothing has run yet",
			wantCode: http.StatusOK,
			wantIDs:  []string{},
		},
		{
			name:     "store error",
			err:      errors.New("db error"),
			wantCode: http.StatusInternalServerError,
			wantBody: "listing jobs failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newJobsAPI(t, &fakeJobRuns{latest: tt.latest, err: tt.err})
			resp := api.Get("/api/v1/jobs")
			require.Equal(t, tt.wantCode, resp.Code, resp.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
				return
			}

			var runs []domain.JobRun
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &runs))
			ids := make([]string, 0, len(runs))
			for _, r := range runs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGetJobHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		history   []domain.JobRun
		err       error
		wantCode  int
		wantJob   string
		wantLimit int
		wantBody  string
	}{
		{
			name: "revalue history with default limit",
			path: "/api/v1/jobs/revalue_stale",
			history: []domain.JobRun{
				jobRun("r3", engine.JobRevalueStale, "succeeded", 12),
				jobRun("r2", engine.JobRevalueStale, "failed", 0),
			},
			wantCode:  http.StatusOK,
			wantJob:   engine.JobRevalueStale,
			wantLimit: 20,
			wantBody:  `"rows_affected":12`,
		},
		{
			name:      "cache sweep with explicit limit",
			path:      "/api/v1/jobs/cache_sweep?limit=5",
			wantCode:  http.StatusOK,
			wantJob:   engine.JobCacheSweep,
			wantLimit: 5,
			wantBody:  "[]",
		},
		{
			name:     "unknown job",
			path:     "/api/v1/jobs/ingestion",
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "limit above maximum",
			path:     "/api/v1/jobs/revalue_stale?limit=500",
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "store error",
			path:     "/api/v1/jobs/revalue_stale",
			err:      errors.New("db error"),
			wantCode: http.StatusInternalServerError,
			wantJob:  engine.JobRevalueStale,
			wantBody: "fetching job history failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeJobRuns{history: tt.history, err: tt.err}
			resp := newJobsAPI(t, f).Get(tt.path)
			require.Equal(t, tt.wantCode, resp.Code, resp.Body.String())

			assert.Equal(t, tt.wantJob, f.gotJob)
			if tt.wantLimit != 0 {
				assert.Equal(t, tt.wantLimit, f.gotLimit)
			}
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}
