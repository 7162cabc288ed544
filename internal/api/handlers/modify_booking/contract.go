package modify_booking

import (
	"context"

	modifyBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/modify_booking"
)

// ModifyBookingUseCase меняет даты или опции бронирования в статусе pending и пересчитывает стоимость
type ModifyBookingUseCase interface {
	Execute(ctx context.Context, req *modifyBooking.Request) (*modifyBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
