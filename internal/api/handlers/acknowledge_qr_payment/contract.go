package acknowledge_qr_payment

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

// SessionService подтверждение QR оплаты в сессии поездки
// Транзакция сверяется со шлюзом, в сессии сохраняется только прошедшая оплата
type SessionService interface {
	AcknowledgeQRPayment(ctx context.Context, id, userID, transactionRef string) (*models.SessionResponse, error)
	ClearQRAcknowledgment(ctx context.Context, id, userID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
