package middleware

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
)

// TokenParser разбор access token
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
