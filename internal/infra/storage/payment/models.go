package payment

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// StatusUpdate изменения при переходе оплаты в новый статус
type StatusUpdate struct {
	Status            domain.PaymentStatus
	ProviderPaymentID *string
	FailureReason     *string
	VerifiedAt        *time.Time
}

const (
	// uniqueViolation код ошибки PostgreSQL unique_violation
	uniqueViolation = "23505"

	// inFlightIndex частичный уникальный индекс: одна незавершенная оплата на бронирование
	inFlightIndex = "uq_payments_booking_in_flight"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"user_id",
	"method",
	"status",
	"amount",
	"currency",
	"transaction_ref",
	"checkout_session_id",
	"checkout_url",
	"provider_payment_id",
	"attempts",
	"failure_reason",
	"verified_at",
	"created_at",
	"updated_at",
}
