package get_payment

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

// PaymentResponse состояние оплаты
type PaymentResponse struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"bookingId"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	Final         bool       `json:"final"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	FailureReason string     `json:"failureReason,omitempty"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Method:        string(p.Method),
		Status:        string(p.Status),
		Final:         p.Status.IsFinal(),
		Amount:        p.Amount,
		Currency:      p.Currency,
		FailureReason: ptr.Value(p.FailureReason),
		VerifiedAt:    p.VerifiedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
