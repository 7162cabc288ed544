package confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyConfirmation = "rental:confirm:%s:%s:%s"

// DefaultTTL время жизни токена подтверждения
const DefaultTTL = 5 * time.Minute

// Store одноразовые токены подтверждения необратимых действий (отмена бронирования)
// Ключ включает сам токен, поэтому неверный токен не сжигает выданный
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStore создает новое хранилище токенов
func NewStore(client redis.Cmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// TTL время жизни выдаваемых токенов
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Issue сохраняет токен для действия над объектом, значение - ID пользователя
func (s *Store) Issue(ctx context.Context, action, objectID, token, userID string) error {
	if err := s.client.Set(ctx, key(action, objectID, token), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Issue - set: %v", ErrStorage, err)
	}
	return nil
}

// Consume атомарно забирает токен (GETDEL) и возвращает ID пользователя, выдавшего его
func (s *Store) Consume(ctx context.Context, action, objectID, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, key(action, objectID, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Consume - getdel: %v", ErrStorage, err)
	}
	return userID, nil
}

func key(action, objectID, token string) string {
	return fmt.Sprintf(keyConfirmation, action, objectID, token)
}
