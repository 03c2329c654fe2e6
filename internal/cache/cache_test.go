package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) CacheHit()  { o.hits++ }
func (o *countingObserver) CacheMiss() { o.misses++ }

func TestCacheGetSet(t *testing.T) {
	obs := &countingObserver{}
	c := New[int](time.Minute, 0, obs)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 42)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string](time.Second, 0, nil)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int](time.Hour, 2, nil)
	c.now = func() time.Time { return now }

	c.Set("first", 1)
	now = now.Add(time.Minute)
	c.Set("second", 2)
	now = now.Add(time.Minute)
	c.Set("third", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("first")
	assert.False(t, ok)
	_, ok = c.Get("third")
	assert.True(t, ok)

	// overwriting an existing key does not evict
	c.Set("third", 4)
	assert.Equal(t, 2, c.Len())
}

func TestKeyIsStable(t *testing.T) {
	type params struct {
		City  string
		Areas map[string]float64
	}
	a := params{City: "Lahore", Areas: map[string]float64{"North": 1, "South": 2}}
	b := params{City: "Lahore", Areas: map[string]float64{"South": 2, "North": 1}}

	ka, err := Key("evaluate", a)
	require.NoError(t, err)
	kb, err := Key("evaluate", b)
	require.NoError(t, err)
	assert.Equal(t, ka, kb)
	assert.Len(t, ka, 64)

	kc, err := Key("evaluate", params{City: "Karachi", Areas: a.Areas})
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc)

	kd, err := Key("compare", a)
	require.NoError(t, err)
	assert.NotEqual(t, ka, kd)
}

func TestKeyRejectsUnencodable(t *testing.T) {
	_, err := Key("x", func() {})
	assert.Error(t, err)
}
