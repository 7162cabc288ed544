package tripsession

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/paymentgateway"
)

// SessionRepository интерфейс хранилища сессий выбора поездки
type SessionRepository interface {
	Save(ctx context.Context, session *domain.TripSession) error
	Get(ctx context.Context, id string) (*domain.TripSession, error)
	Delete(ctx context.Context, id string) error
}

// CarServiceClient интерфейс клиента сервиса автомобилей
type CarServiceClient interface {
	GetCar(ctx context.Context, id string) (*domain.Car, error)
}

// PaymentGatewayClient интерфейс клиента платежного шлюза
type PaymentGatewayClient interface {
	GetTransaction(ctx context.Context, reference string) (*paymentgateway.Transaction, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator генератор идентификаторов сессий
type IDGenerator interface {
	NewID() string
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

// UUIDGenerator генерирует UUID v4
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
