package tripsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

func setupRepository(t *testing.T) (*Repository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRepository(client, time.Hour), mr
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	session := domain.NewTripSession("s-1", "u-1", now)
	session.Destination = domain.DestinationInfo{Origin: "Dhaka", Destination: "Sylhet"}
	session.Features = session.Features.Toggle(domain.Feature{Label: "GPS Navigation", Price: 5})
	session.QRAck = &domain.QRAcknowledgment{TransactionRef: "tx-1", Amount: 105, AcknowledgedAt: now}

	require.NoError(t, repo.Save(ctx, session))
	assert.True(t, mr.Exists("rental:trip_session:s-1"))
	assert.Equal(t, time.Hour, mr.TTL("rental:trip_session:s-1"))

	got, err := repo.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.Trip.Start.Equal(session.Trip.Start))
	assert.True(t, got.Trip.End.Equal(session.Trip.End))
	assert.Equal(t, "Sylhet", got.Destination.Destination)
	assert.Equal(t, []string{"GPS Navigation"}, got.Features.Labels())
	require.NotNil(t, got.QRAck)
	assert.Equal(t, "tx-1", got.QRAck.TransactionRef)
}

func TestRepository_NotFoundAndExpiry(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	require.NoError(t, repo.Save(ctx, domain.NewTripSession("s-2", "u-1", time.Now())))
	mr.FastForward(2 * time.Hour)

	_, err = repo.Get(ctx, "s-2")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestRepository_Delete(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewTripSession("s-3", "u-1", time.Now())))
	require.NoError(t, repo.Delete(ctx, "s-3"))
	assert.True(t, errors.Is(repo.Delete(ctx, "s-3"), ErrSessionNotFound))
}

func TestRepository_CorruptedRecord(t *testing.T) {
	repo, mr := setupRepository(t)
	require.NoError(t, mr.Set("rental:trip_session:bad", "{not json"))

	_, err := repo.Get(context.Background(), "bad")
	assert.True(t, errors.Is(err, ErrDecode))
}
