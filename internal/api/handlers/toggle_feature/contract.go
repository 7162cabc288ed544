package toggle_feature

import (
	"context"

	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

// SessionService включение и отключение опции из каталога в сессии
type SessionService interface {
	ToggleFeature(ctx context.Context, id, userID, label string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
