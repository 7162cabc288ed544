package worker

import (
	"context"

	confirmPayment "github.com/m04kA/SMC-RentalBookingService/internal/usecase/confirm_payment"
)

// PaymentVerifier проверка заявок на оплату у платежного шлюза
type PaymentVerifier interface {
	VerifyPending(ctx context.Context) (*confirmPayment.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
