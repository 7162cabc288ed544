package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/create_booking"
)

// CreateBookingUseCase оформляет бронирование автомобиля по данным сессии поездки:
// период, опции и маршрут берутся из сессии, стоимость пересчитывается на сервере
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
