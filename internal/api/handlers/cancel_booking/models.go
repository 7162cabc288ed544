package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/cancel_booking"
)

// ConfirmRequest токен подтверждения отмены
type ConfirmRequest struct {
	Token string `json:"token"`
}

// ConfirmationResponse HTTP ответ на первый шаг отмены
type ConfirmationResponse struct {
	BookingID string    `json:"bookingId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *cancelBooking.ConfirmationResponse) *ConfirmationResponse {
	return &ConfirmationResponse{
		BookingID: resp.BookingID,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	}
}
