package search_cars

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
)

// SessionRepository интерфейс хранилища сессий выбора поездки
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.TripSession, error)
}

// CarServiceClient интерфейс клиента сервиса автомобилей
type CarServiceClient interface {
	ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, *apiclient.Meta, error)
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
