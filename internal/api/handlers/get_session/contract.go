package get_session

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

type SessionService interface {
	Get(ctx context.Context, id, userID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
