package set_destination

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

// SessionService маршрут поездки: частичное обновление и сброс
type SessionService interface {
	SetDestination(ctx context.Context, id, userID string, req models.SetDestinationRequest) (*models.SessionResponse, error)
	ClearDestination(ctx context.Context, id, userID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
