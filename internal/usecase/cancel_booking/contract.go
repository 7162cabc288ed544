package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
)

// BookingServiceClient интерфейс клиента удаленного сервиса бронирований
type BookingServiceClient interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// ConfirmationStore хранилище одноразовых токенов подтверждения
type ConfirmationStore interface {
	TTL() time.Duration
	Issue(ctx context.Context, action, objectID, token, userID string) error
	Consume(ctx context.Context, action, objectID, token string) (string, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики действий с бронированием
type Metrics interface {
	BookingAction(action, result string)
}

// TokenGenerator генератор токенов подтверждения
type TokenGenerator interface {
	NewToken() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDTokenGenerator токены на основе UUID v4
type UUIDTokenGenerator struct{}

func (UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}
