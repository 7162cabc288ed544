package get_invoice

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// BookingServiceClient интерфейс клиента удаленного сервиса бронирований
type BookingServiceClient interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
}

// CarServiceClient интерфейс клиента сервиса автомобилей
type CarServiceClient interface {
	GetCar(ctx context.Context, id string) (*domain.Car, error)
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
