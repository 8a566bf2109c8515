package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Minute, time.Minute, "test:", 0)

	_, ok, err := mc.Get(ctx, "calc:badbet")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"winsNeeded":"7"}`)
	require.NoError(t, mc.Set(ctx, "calc:badbet", value, time.Minute))
	value[0] = 'X'

	got, ok, err := mc.Get(ctx, "calc:badbet")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"winsNeeded":"7"}`, string(got))

	hits, misses, ratio := mc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 0.5, ratio)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Minute, time.Minute, "", 0)

	require.NoError(t, mc.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := mc.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheDeleteAndClose(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Minute, time.Minute, "", 0)

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, mc.Delete(ctx, "a"))
	assert.Equal(t, 1, mc.ItemCount())

	assert.NoError(t, mc.Ping(ctx))
	require.NoError(t, mc.Close())
	assert.Zero(t, mc.ItemCount())
}

func TestMemoryCacheLimitPurgesExpired(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Hour, time.Hour, "", 2)

	require.NoError(t, mc.Set(ctx, "old1", []byte("1"), 5*time.Millisecond))
	require.NoError(t, mc.Set(ctx, "old2", []byte("2"), 5*time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, mc.Set(ctx, "new", []byte("3"), time.Minute))

	assert.Equal(t, 1, mc.ItemCount())
}

func TestMemoryCacheLimitEvictsLiveEntries(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Hour, time.Hour, "p", 2)

	for i := 0; i < 50; i++ {
		require.NoError(t, mc.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Duration(i+1)*time.Minute))
		assert.LessOrEqual(t, mc.ItemCount(), 2)
	}

	_, ok, err := mc.Get(ctx, "k49")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, _ = mc.Get(ctx, "k0")
	assert.False(t, ok)
}

func TestMemoryCacheLimitKeepsOverwrites(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Hour, time.Hour, "", 2)

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, mc.Set(ctx, "a", []byte("3"), time.Minute))

	assert.Equal(t, 2, mc.ItemCount())
	got, ok, err := mc.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("3"), got)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(time.Minute, time.Minute, "", 0)

	type snapshot struct {
		Loss float64 `json:"loss"`
	}
	require.NoError(t, SetJSON(ctx, mc, "cmp", snapshot{Loss: 25}, time.Minute))

	var got snapshot
	ok, err := GetJSON(ctx, mc, "cmp", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 25.0, got.Loss)

	ok, err = GetJSON(ctx, mc, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Set(ctx, "broken", []byte("{"), time.Minute))
	_, err = GetJSON(ctx, mc, "broken", &got)
	assert.Error(t, err)
}

func TestRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestRedisCacheWrapKey(t *testing.T) {
	c := &RedisCache{prefix: "badbets:"}
	assert.Equal(t, "badbets:calc:kelly", c.wrapKey("calc:kelly"))
}
