package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/loss-valuation/pkg/valuation"
)

// CacheController exposes the valuation cache to the API.
type CacheController interface {
	ClearCache() int
	CacheStats() valuation.CacheStats
}

// CacheHandler handles valuation cache inspection and clearing.
type CacheHandler struct {
	cache CacheController
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(c CacheController) *CacheHandler {
	return &CacheHandler{cache: c}
}

// ClearCacheOutput is the response for clearing the cache.
type ClearCacheOutput struct {
	Body struct {
		Cleared int `json:"cleared" doc:"Number of entries removed"`
	}
}

// CacheStatsOutput is the response for cache statistics.
type CacheStatsOutput struct {
	Body valuation.CacheStats
}

// Clear drops every cached valuation result.
func (h *CacheHandler) Clear(_ context.Context, _ *struct{}) (*ClearCacheOutput, error) {
	resp := &ClearCacheOutput{}
	resp.Body.Cleared = h.cache.ClearCache()
	return resp, nil
}

// Stats returns the cache size and hit counters.
func (h *CacheHandler) Stats(_ context.Context, _ *struct{}) (*CacheStatsOutput, error) {
	return &CacheStatsOutput{Body: h.cache.CacheStats()}, nil
}

// RegisterCacheRoutes registers cache endpoints with the Huma API.
func RegisterCacheRoutes(api huma.API, h *CacheHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-cache",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cache",
		Summary:     "Clear the valuation cache",
		Tags:        []string{"cache"},
	}, h.Clear)

	huma.Register(api, huma.Operation{
		OperationID: "get-cache-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/cache/stats",
		Summary:     "Get valuation cache statistics",
		Description: "Returns the number of cached entries, hit and miss counts and the entry TTL.",
		Tags:        []string{"cache"},
	}, h.Stats)
}
