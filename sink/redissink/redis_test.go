package redissink

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatch"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestSink_BatchesUntilFlush(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	s := New(client, Config{Key: "logs:test", BatchSize: 10})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "app", "buffered")))
	}
	assert.Equal(t, 3, s.Pending())
	assert.False(t, mr.Exists("logs:test"))

	require.NoError(t, s.Flush())
	assert.Equal(t, 0, s.Pending())

	entries, err := mr.List("logs:test")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSink_PushesFullBatch(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	s := New(client, Config{Key: "logs:batch", BatchSize: 2})

	require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "", "one")))
	require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "", "two")))
	require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "", "three")))

	entries, err := mr.List("logs:batch")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, s.Pending())
}

func TestSink_EntryFormat(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	s := New(client, Config{})

	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	rec := core.NewRecordAt(ts, core.WarnLevel, "billing", "quota near limit",
		core.Field{Key: "used", Type: core.IntType, Int64: 95})
	require.NoError(t, s.Write(rec))
	require.NoError(t, s.Flush())

	entries, err := mr.List(defaultKey)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &got))
	assert.Equal(t, "WARN", got["level"])
	assert.Equal(t, "billing", got["target"])
	assert.Equal(t, "quota near limit", got["message"])
	assert.Equal(t, float64(95), got["used"])
	assert.Equal(t, "2026-01-15T12:00:00Z", got["time"])
}

func TestSink_MaxLenTrimsOldest(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	s := New(client, Config{Key: "logs:capped", MaxLen: 3, BatchSize: 1})

	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Write(core.NewRecord(core.InfoLevel, "", msg)))
	}

	entries, err := mr.List("logs:capped")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Contains(t, entries[0], `"message":"c"`)
	assert.Contains(t, entries[2], `"message":"e"`)
}

func TestSink_PushFailure(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()

	s := New(client, Config{Timeout: 500 * time.Millisecond})
	require.NoError(t, s.Write(core.NewRecord(core.ErrorLevel, "", "lost")))

	mr.Close()

	err := s.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push 1 records")
	assert.Equal(t, 0, s.Pending(), "failed batch is discarded")
}

func TestSink_ThroughDispatcher(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	var sinkErrs []error
	d := dispatch.New(New(client, Config{Key: "logs:app", MinLevel: core.WarnLevel}), dispatch.Config{
		Level:       core.InfoLevel,
		OnSinkError: func(err error) { sinkErrs = append(sinkErrs, err) },
	})

	d.Emit(core.NewRecord(core.InfoLevel, "app", "vetoed by sink"))
	d.Emit(core.NewRecord(core.WarnLevel, "app", "kept"))
	d.Emit(core.NewRecord(core.ErrorLevel, "app", "kept too"))
	require.NoError(t, d.Close())

	entries, err := mr.List("logs:app")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], `"message":"kept"`)
	assert.Contains(t, entries[1], `"message":"kept too"`)
	assert.Empty(t, sinkErrs)
	assert.Equal(t, uint64(1), d.Stats().FilteredTotal)
}
