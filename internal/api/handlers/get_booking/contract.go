package get_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/bookings/models"
)

// BookingService чтение бронирования вместе с набором доступных действий
type BookingService interface {
	GetByID(ctx context.Context, id, userID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
