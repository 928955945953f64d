// internal/auth/statestore_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStateStore_PutAndConsume(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStateStore(client, 10*time.Minute)

	mock.ExpectSet("oauth:state:abc123", "google", 10*time.Minute).SetVal("OK")
	require.NoError(t, store.Put(context.Background(), "abc123", "google"))

	mock.ExpectGetDel("oauth:state:abc123").SetVal("google")
	provider, err := store.Consume(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "google", provider)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStateStore_ConsumeUnknownState(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStateStore(client, 10*time.Minute)

	mock.ExpectGetDel("oauth:state:missing").RedisNil()

	_, err := store.Consume(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStateUnknown)
}
