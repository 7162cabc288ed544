package get_quote

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

// SessionService расчет стоимости автомобиля на период и опции сессии
type SessionService interface {
	Quote(ctx context.Context, id, userID, carID string) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
