package tripsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

const keyTripSession = "rental:trip_session:%s"

// DefaultTTL время жизни неактивной сессии
const DefaultTTL = 24 * time.Hour

// Repository хранилище сессий выбора поездки в Redis
// TTL продлевается при каждой записи
type Repository struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(client redis.Cmdable, ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Repository{client: client, ttl: ttl}
}

// Save сохраняет сессию целиком (последняя запись выигрывает)
func (r *Repository) Save(ctx context.Context, session *domain.TripSession) error {
	data, err := json.Marshal(fromDomain(session))
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	if err := r.client.Set(ctx, key(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set: %v", ErrStorage, err)
	}

	return nil
}

// Get получает сессию по ID
func (r *Repository) Get(ctx context.Context, id string) (*domain.TripSession, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get: %v", ErrStorage, err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}

	return rec.toDomain(), nil
}

// Delete удаляет сессию
func (r *Repository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrStorage, err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func key(id string) string {
	return fmt.Sprintf(keyTripSession, id)
}
