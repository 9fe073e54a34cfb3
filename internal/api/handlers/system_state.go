package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// SystemStateProvider reads the precomputed appraisal and valuation counts.
type SystemStateProvider interface {
	GetSystemState(ctx context.Context) (*domain.SystemState, error)
}

// SystemStateHandler serves the aggregate appraisal, comparable, valuation
// and cache counts.
type SystemStateHandler struct {
	store SystemStateProvider
	cache CacheController
}

// NewSystemStateHandler creates a SystemStateHandler. cache may be nil.
func NewSystemStateHandler(s SystemStateProvider, cache CacheController) *SystemStateHandler {
	return &SystemStateHandler{store: s, cache: cache}
}

// SystemStateOutput is the response for GET /api/v1/system/state.
type SystemStateOutput struct {
	Body *domain.SystemState
}

// GetSystemState merges the stored counts with this instance's cache
// statistics. The hit ratio is zero until the first lookup.
func (h *SystemStateHandler) GetSystemState(
	ctx context.Context,
	_ *struct{},
) (*SystemStateOutput, error) {
	state, err := h.store.GetSystemState(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("reading system state failed: " + err.Error())
	}

	if h.cache != nil {
		stats := h.cache.CacheStats()
		state.CacheEntries = stats.Entries
		if lookups := stats.Hits + stats.Misses; lookups > 0 {
			state.CacheHitRatio = float64(stats.Hits) / float64(lookups)
		}
	}
	return &SystemStateOutput{Body: state}, nil
}

// RegisterSystemStateRoutes registers GET /api/v1/system/state.
func RegisterSystemStateRoutes(api huma.API, h *SystemStateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-system-state",
		Method:      http.MethodGet,
		Path:        "/api/v1/system/state",
		Summary:     "Appraisal, valuation and cache counts",
		Description: "Returns appraisal totals (stale, needing review), comparable and valuation " +
			"counts, and the valuation cache size and hit ratio of the serving instance.",
		Tags:   []string{"system"},
		Errors: []int{http.StatusInternalServerError},
	}, h.GetSystemState)
}
