package sessionstore_test

import (
	"context"
	"testing"
	"time"

	"recipebox/internal/testutil"
	"recipebox/pkg/sessionstore"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	return testutil.StartContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	})
}

func TestRedisStorage(t *testing.T) {
	addr := startRedis(t)
	store, err := sessionstore.NewRedisStorage("redis://" + addr + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	val, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("abc", []byte("payload"), time.Minute))
	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, store.Delete("abc"))
	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("short", []byte("x"), 50*time.Millisecond))
	assert.Eventually(t, func() bool {
		v, err := store.Get("short")
		return err == nil && v == nil
	}, 3*time.Second, 50*time.Millisecond)
}

func TestRedisStorageResetKeepsOtherKeys(t *testing.T) {
	addr := startRedis(t)
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Set(context.Background(), "unrelated", "keep", 0).Err())

	store := sessionstore.NewRedisStorageFromClient(client, "test:session:")
	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))
	require.NoError(t, store.Reset())

	for _, key := range []string{"a", "b"} {
		v, err := store.Get(key)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
	kept, err := client.Get(context.Background(), "unrelated").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)
}

func TestNewRedisStorageBadURL(t *testing.T) {
	_, err := sessionstore.NewRedisStorage("not-a-url")
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}
