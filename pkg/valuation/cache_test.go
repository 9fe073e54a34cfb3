package valuation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func sampleComps() []domain.Comparable {
	return []domain.Comparable{
		comp("a", 20000, 80),
		comp("b", 22000, 60),
		comp("c", 18000, 100),
	}
}

func TestCache_HitMatchesUncached(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cached := newCalc(cache)

	first, err := cached.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	second, err := cached.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	uncached, err := newCalc(nil).CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)

	assert.Equal(t, uncached, first)
	assert.Equal(t, uncached, second)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, DefaultTTL, stats.TTL)
}

func TestCache_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := newCalc(NewCache())

	first, err := c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	first.FinalMarketValue = 1
	first.Steps[0].Description = "tampered"
	first.Comparables[0].ID = "tampered"

	second, err := c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	assert.InDelta(t, 19667.0, second.FinalMarketValue, 0.001)
	assert.NotEqual(t, "tampered", second.Steps[0].Description)
	assert.Equal(t, "a", second.Comparables[0].ID)
}

func TestCache_TrackedFieldChangesMiss(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(comps []domain.Comparable, lv *domain.LossVehicle)
		valueMoves bool
	}{
		{
			name:       "adjusted price",
			mutate:     func(c []domain.Comparable, _ *domain.LossVehicle) { c[0].Adjustments.AdjustedPrice = 25000 },
			valueMoves: true,
		},
		{
			name:       "quality score",
			mutate:     func(c []domain.Comparable, _ *domain.LossVehicle) { c[2].QualityScore = floatPtr(10) },
			valueMoves: true,
		},
		{
			name:   "list price",
			mutate: func(c []domain.Comparable, _ *domain.LossVehicle) { c[1].ListPrice = 30000 },
		},
		{
			name:   "comparable mileage",
			mutate: func(c []domain.Comparable, _ *domain.LossVehicle) { c[1].Mileage = intPtr(90000) },
		},
		{
			name:   "loss mileage",
			mutate: func(_ []domain.Comparable, lv *domain.LossVehicle) { lv.Mileage = intPtr(45000) },
		},
		{
			name:   "loss condition",
			mutate: func(_ []domain.Comparable, lv *domain.LossVehicle) { lv.Condition = domain.ConditionPoor },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache := NewCache()
			c := newCalc(cache)

			before, err := c.CalculateMarketValue(sampleComps(), loss())
			require.NoError(t, err)

			comps, lv := sampleComps(), loss()
			tt.mutate(comps, lv)

			after, err := c.CalculateMarketValue(comps, lv)
			require.NoError(t, err)

			assert.Equal(t, uint64(2), cache.Stats().Misses)
			assert.Zero(t, cache.Stats().Hits)
			if tt.valueMoves {
				assert.NotEqual(t, before.FinalMarketValue, after.FinalMarketValue)
			}
		})
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: fixedNow()}
	cache := NewCache(WithTTL(time.Minute), WithClock(clock.Now))
	c := newCalc(cache)

	_, err := c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	_ = c.CalculateConfidenceLevel(sampleComps())
	assert.Equal(t, 2, cache.Len())

	clock.Advance(30 * time.Second)
	assert.Zero(t, cache.Sweep())

	clock.Advance(31 * time.Second)
	assert.Equal(t, 2, cache.Sweep())
	assert.Zero(t, cache.Len())
}

func TestCache_SweptOnLookup(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: fixedNow()}
	cache := NewCache(WithTTL(time.Minute), WithClock(clock.Now))
	c := newCalc(cache)

	_, err := c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)

	assert.Equal(t, uint64(2), cache.Stats().Misses)
	assert.Equal(t, 1, cache.Len())
}

func TestCalculator_Invalidate(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	c := newCalc(cache)

	_, err := c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	_ = c.CalculateConfidenceLevel(sampleComps())
	require.Equal(t, 2, cache.Len())

	assert.Equal(t, 2, c.Invalidate(sampleComps(), loss()))
	assert.Zero(t, cache.Len())
	assert.Zero(t, c.Invalidate(sampleComps(), loss()))
}

func TestCache_InvalidateKeyAndClear(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	c := newCalc(cache)

	_, err := c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)

	key, err := Key(KindMarketValue, sampleComps(), loss())
	require.NoError(t, err)
	assert.True(t, cache.Invalidate(key))
	assert.False(t, cache.Invalidate(key))

	_ = c.CalculateConfidenceLevel(sampleComps())
	_, err = c.CalculateMarketValue(sampleComps(), loss())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Clear())
	assert.Zero(t, cache.Len())
}

func TestCache_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	c := newCalc(cache)

	comps := []domain.Comparable{comp("a", 20000, 0)}
	_, err := c.CalculateMarketValue(comps, loss())
	require.ErrorIs(t, err, ErrZeroTotalWeight)
	assert.Zero(t, cache.Len())
}

func TestCache_LookupHook(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[string][]bool{}
	cache := NewCache(WithLookupHook(func(kind string, hit bool) {
		mu.Lock()
		defer mu.Unlock()
		seen[kind] = append(seen[kind], hit)
	}))
	c := newCalc(cache)

	for range 2 {
		_, err := c.CalculateMarketValue(sampleComps(), loss())
		require.NoError(t, err)
		_ = c.CalculateConfidenceLevel(sampleComps())
	}

	assert.Equal(t, []bool{false, true}, seen[KindMarketValue])
	assert.Equal(t, []bool{false, true}, seen[KindConfidence])
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := newCalc(NewCache())

	var wg sync.WaitGroup
	results := make([]float64, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			calc, err := c.CalculateMarketValue(sampleComps(), loss())
			if err == nil {
				results[i] = calc.FinalMarketValue
			}
		}()
	}
	wg.Wait()

	for _, v := range results {
		assert.InDelta(t, 19667.0, v, 0.001)
	}
	assert.Equal(t, 1, c.Cache().Len())
}

func TestKey(t *testing.T) {
	t.Parallel()

	a, err := Key(KindMarketValue, sampleComps(), loss())
	require.NoError(t, err)
	b, err := Key(KindMarketValue, sampleComps(), loss())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	conf, err := Key(KindConfidence, sampleComps(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, conf)

	comps := sampleComps()
	comps[0], comps[1] = comps[1], comps[0]
	swapped, err := Key(KindMarketValue, comps, loss())
	require.NoError(t, err)
	assert.NotEqual(t, a, swapped)

	noAdj := sampleComps()
	noAdj[0].Adjustments = nil
	missing, err := Key(KindMarketValue, noAdj, loss())
	require.NoError(t, err)
	assert.NotEqual(t, a, missing)
}
