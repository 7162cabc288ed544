package confirmation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, time.Minute), mr
}

func TestStore_IssueConsume(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "cancel", "b-1", "tok-1", "u-1"))
	assert.Equal(t, time.Minute, mr.TTL("rental:confirm:cancel:b-1:tok-1"))

	userID, err := store.Consume(ctx, "cancel", "b-1", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	_, err = store.Consume(ctx, "cancel", "b-1", "tok-1")
	assert.True(t, errors.Is(err, ErrTokenNotFound))
}

func TestStore_WrongTokenKeepsIssued(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "cancel", "b-1", "tok-1", "u-1"))

	_, err := store.Consume(ctx, "cancel", "b-1", "tok-2")
	assert.True(t, errors.Is(err, ErrTokenNotFound))

	_, err = store.Consume(ctx, "cancel", "b-2", "tok-1")
	assert.True(t, errors.Is(err, ErrTokenNotFound))

	_, err = store.Consume(ctx, "cancel", "b-1", "tok-1")
	assert.NoError(t, err)
}

func TestStore_Expiry(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "cancel", "b-1", "tok-1", "u-1"))
	mr.FastForward(2 * time.Minute)

	_, err := store.Consume(ctx, "cancel", "b-1", "tok-1")
	assert.True(t, errors.Is(err, ErrTokenNotFound))
}
