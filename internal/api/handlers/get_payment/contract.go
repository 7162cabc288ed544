package get_payment

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// PaymentStatusUseCase статус оплаты; незавершенная заявка проверяется у шлюза при запросе
type PaymentStatusUseCase interface {
	GetStatus(ctx context.Context, paymentID, userID string) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
