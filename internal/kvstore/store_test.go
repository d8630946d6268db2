package kvstore

import (
	"context"
	"testing"

	"lovecorner/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pickupLines", PostsKey)
	assert.Equal(t, "comments_pickup_42", CommentsKey("42"))
	assert.Equal(t, "notifications_alice", NotificationsKey("alice"))
}

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", []byte(`[1,2]`)))
	raw, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[1,2]`), raw)

	// The store hands out copies, not aliases.
	raw[0] = 'x'
	raw2, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), raw2)
}

func TestRedis_GetSet(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	store := NewRedis(client)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "pickupLines", []byte(`[]`)))
	raw, ok, err := store.Get(ctx, "pickupLines")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), raw)
}

// Not parallel: swaps the package-level tracer.
func TestRedis_EmitsStoreSpans(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("kvstore-test")
	defer func() { observability.Tracer = prev }()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	store := NewRedis(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "pickupLines", []byte(`[]`)))
	_, _, err = store.Get(ctx, "pickupLines")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "store.set", spans[0].Name())
	assert.Equal(t, "store.get", spans[1].Name())
}

func TestOpenRedis_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := OpenRedis("redis://localhost:6379/not-a-db")
	assert.Error(t, err)
}

func TestGetJSON_Defaults(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		t.Parallel()
		var dst []int
		found, err := GetJSON(ctx, m, "absent", &dst)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, dst)
	})

	t.Run("malformed value treated as absent", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, m.Set(ctx, "broken", []byte(`{not json`)))
		var dst []int
		found, err := GetJSON(ctx, m, "broken", &dst)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("type mismatch leaves dst untouched", func(t *testing.T) {
		t.Parallel()
		// Valid JSON, wrong element type: the decoder reports the error
		// only after filling part of the slice.
		require.NoError(t, m.Set(ctx, "mismatched", []byte(`["one",2,3]`)))
		var dst []int
		found, err := GetJSON(ctx, m, "mismatched", &dst)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, dst, "partial decode must not leak out")
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, SetJSON(ctx, m, "nums", []int{3, 1}))
		var dst []int
		found, err := GetJSON(ctx, m, "nums", &dst)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []int{3, 1}, dst)
	})
}
