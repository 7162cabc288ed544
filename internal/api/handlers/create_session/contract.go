package create_session

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

// SessionService открывает сессию выбора поездки с периодом по умолчанию
type SessionService interface {
	Create(ctx context.Context, userID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
