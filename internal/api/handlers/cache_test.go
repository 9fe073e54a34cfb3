package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/loss-valuation/internal/api/handlers"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
)

func TestCacheHandler_Stats(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{stats: valuation.CacheStats{Entries: 4, Hits: 10, Misses: 3, TTL: time.Minute}}

	_, api := humatest.New(t)
	handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(cache))

	resp := api.Get("/api/v1/cache/stats")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"entries":4`)
	assert.Contains(t, resp.Body.String(), `"hits":10`)
	assert.Contains(t, resp.Body.String(), `"misses":3`)
}

func TestCacheHandler_Clear(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{stats: valuation.CacheStats{Entries: 5}}

	_, api := humatest.New(t)
	handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(cache))

	resp := api.Delete("/api/v1/cache")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"cleared":5`)
	assert.Equal(t, 5, cache.cleared)

	resp = api.Delete("/api/v1/cache")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"cleared":0`)
}
