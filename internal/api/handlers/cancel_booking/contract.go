package cancel_booking

import (
	"context"

	cancelBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/cancel_booking"
)

// CancelBookingUseCase двухшаговая отмена бронирования: выдача токена, подтверждение или отказ
type CancelBookingUseCase interface {
	RequestCancellation(ctx context.Context, bookingID, userID string) (*cancelBooking.ConfirmationResponse, error)
	ConfirmCancellation(ctx context.Context, bookingID, userID, token string) error
	AbortCancellation(ctx context.Context, bookingID, userID, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
