package pay_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/stripegateway"
)

// BookingServiceClient интерфейс клиента удаленного сервиса бронирований
type BookingServiceClient interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, id string, update domain.BookingUpdate) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория оплат
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.Payment, error)
	AttachCheckoutSession(ctx context.Context, id, sessionID, checkoutURL string) error
	TransitionStatus(ctx context.Context, id string, from []domain.PaymentStatus, upd payment.StatusUpdate) error
}

// CheckoutGateway интерфейс оплаты картой
type CheckoutGateway interface {
	CreateCheckoutSession(req stripegateway.CheckoutRequest) (*stripegateway.CheckoutSession, error)
}

// Metrics бизнес-метрики оплат
type Metrics interface {
	Payment(method, status string)
}

// IDGenerator генератор идентификаторов оплат
type IDGenerator interface {
	NewID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UUIDGenerator генерирует UUID v4
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
