package bookings

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// BookingServiceClient интерфейс клиента удаленного сервиса бронирований
type BookingServiceClient interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	ListMine(ctx context.Context) ([]*domain.Booking, error)
}

// CarServiceClient интерфейс клиента удаленного сервиса автомобилей
type CarServiceClient interface {
	GetCar(ctx context.Context, id string) (*domain.Car, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
