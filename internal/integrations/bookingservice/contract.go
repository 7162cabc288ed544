package bookingservice

import (
	"context"
	"net/url"

	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
)

// APIClient общий клиент удаленного API
type APIClient interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (*apiclient.Meta, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
