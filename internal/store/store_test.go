package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreFromClient(client, "test:", 0), mr
}

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis": func(t *testing.T) Store {
			s, _ := newRedis(t)
			return s
		},
		"sqlite": func(t *testing.T) Store { return newSQLite(t) },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, err := s.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Save(ctx, "session:1", []byte(`{"a":1}`)))
			got, err := s.Load(ctx, "session:1")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got))

			require.NoError(t, s.Save(ctx, "session:1", []byte(`{"a":2}`)))
			got, err = s.Load(ctx, "session:1")
			require.NoError(t, err)
			assert.Equal(t, `{"a":2}`, string(got), "save overwrites")

			require.NoError(t, s.Delete(ctx, "session:1"))
			_, err = s.Load(ctx, "session:1")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete(ctx, "session:1"), "deleting an absent key is not an error")
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Save(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[0] = 'y'

	again, _ := s.Load(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, s.Len())
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "milpay:", time.Hour)
	defer s.Close()

	require.NoError(t, s.Save(ctx, "result:42", []byte("x")))
	assert.True(t, mr.Exists("milpay:result:42"))
	assert.Equal(t, time.Hour, mr.TTL("milpay:result:42"))

	mr.FastForward(2 * time.Hour)
	_, err = s.Load(ctx, "result:42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = NewRedisStore(ctx, RedisOptions{Addr: addr})
	assert.ErrorContains(t, err, "redis ping failed")
}

func TestJSONHelpers(t *testing.T) {
	type payload struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, SaveJSON(ctx, s, "p", payload{ID: "abc", Count: 3}))
	var got payload
	require.NoError(t, LoadJSON(ctx, s, "p", &got))
	assert.Equal(t, payload{ID: "abc", Count: 3}, got)

	assert.ErrorIs(t, LoadJSON(ctx, s, "absent", &got), ErrNotFound)

	require.NoError(t, s.Save(ctx, "broken", []byte("{")))
	assert.ErrorContains(t, LoadJSON(ctx, s, "broken", &got), "decode broken")
}
