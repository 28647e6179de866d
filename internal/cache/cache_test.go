package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, time.Minute)

	var got entry
	ok, err := m.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", entry{Name: "TCS", Price: 3500.5}, time.Minute))
	ok, err = m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entry{Name: "TCS", Price: 3500.5}, got)
}

func TestMemory_ValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, time.Minute)

	in := []entry{{Name: "a"}}
	require.NoError(t, m.Set(ctx, "k", in, time.Minute))
	in[0].Name = "mutated"

	var out []entry
	_, err := m.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.Equal(t, "a", out[0].Name)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, time.Minute)

	require.NoError(t, m.Set(ctx, "k", 1, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var v int
	ok, err := m.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, time.Minute)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, m.Set(ctx, k, k, time.Minute))
	}
	require.NoError(t, m.Delete(ctx, "a"))
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Purge(ctx))
	assert.Zero(t, m.Len())
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-redis-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}
