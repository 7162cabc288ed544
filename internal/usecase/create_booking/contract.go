package create_booking

import (
	"context"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
)

// SessionRepository интерфейс хранилища сессий выбора поездки
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.TripSession, error)
	Save(ctx context.Context, session *domain.TripSession) error
}

// CarServiceClient интерфейс клиента сервиса автомобилей
type CarServiceClient interface {
	GetCar(ctx context.Context, id string) (*domain.Car, error)
}

// BookingServiceClient интерфейс клиента удаленного сервиса бронирований
type BookingServiceClient interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики создания бронирований
type Metrics interface {
	BookingCreated(paymentType string)
}

// OTPPicker выбирает код выдачи автомобиля
type OTPPicker interface {
	Pick() int
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

// PoolOTPPicker равновероятно выбирает код из фиксированного набора, совпадения допустимы
type PoolOTPPicker struct{}

func (PoolOTPPicker) Pick() int {
	return domain.OTPCandidates[rand.Intn(len(domain.OTPCandidates))]
}
