package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/stripegateway"
)

// PaymentRepository интерфейс репозитория оплат
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*domain.Payment, error)
	ListByStatus(ctx context.Context, status domain.PaymentStatus, limit uint64) ([]*domain.Payment, error)
	TransitionStatus(ctx context.Context, id string, from []domain.PaymentStatus, upd payment.StatusUpdate) error
	IncrementAttempts(ctx context.Context, id string) error
}

// BookingServiceClient интерфейс клиента удаленного сервиса бронирований
type BookingServiceClient interface {
	Update(ctx context.Context, id string, update domain.BookingUpdate) (*domain.Booking, error)
}

// WebhookParser проверка подписи и разбор событий Stripe
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*stripegateway.WebhookEvent, error)
}

// TransactionVerifier проверка транзакций QR / кошельков у платежного шлюза
type TransactionVerifier interface {
	GetTransaction(ctx context.Context, reference string) (*paymentgateway.Transaction, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики оплат
type Metrics interface {
	Payment(method, status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
