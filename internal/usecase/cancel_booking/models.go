package cancel_booking

import "time"

// ActionCancel действие, для которого выдается токен подтверждения
const ActionCancel = "cancel_booking"

// ConfirmationResponse токен, который клиент передает на втором шаге
type ConfirmationResponse struct {
	BookingID string
	Token     string
	ExpiresAt time.Time
}
