package pay_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-RentalBookingService/internal/service/bookings/models"
	payBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/pay_booking"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

// PayBookingRequest HTTP запрос на оплату бронирования
type PayBookingRequest struct {
	Method         string `json:"method"`
	TransactionRef string `json:"transactionRef,omitempty"`
	CustomerEmail  string `json:"customerEmail,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PayBookingRequest) ToUseCaseRequest(bookingID, userID string) *payBooking.Request {
	return &payBooking.Request{
		BookingID:      bookingID,
		UserID:         userID,
		Method:         r.Method,
		TransactionRef: r.TransactionRef,
		CustomerEmail:  r.CustomerEmail,
	}
}

// PaymentResponse запись об оплате
type PaymentResponse struct {
	ID             string     `json:"id"`
	BookingID      string     `json:"bookingId"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	TransactionRef string     `json:"transactionRef,omitempty"`
	VerifiedAt     *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// PayBookingResponse HTTP ответ на оплату
type PayBookingResponse struct {
	Outcome     string                         `json:"outcome"`
	Payment     *PaymentResponse               `json:"payment"`
	Booking     *bookingModels.BookingResponse `json:"booking,omitempty"`
	CheckoutURL string                         `json:"checkoutUrl,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *payBooking.Response) *PayBookingResponse {
	return &PayBookingResponse{
		Outcome:     string(resp.Outcome),
		Payment:     fromDomainPayment(resp.Payment),
		Booking:     bookingModels.FromDomainBooking(resp.Booking),
		CheckoutURL: resp.CheckoutURL,
	}
}

func fromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:             p.ID,
		BookingID:      p.BookingID,
		Method:         string(p.Method),
		Status:         string(p.Status),
		Amount:         p.Amount,
		Currency:       p.Currency,
		TransactionRef: ptr.Value(p.TransactionRef),
		VerifiedAt:     p.VerifiedAt,
		CreatedAt:      p.CreatedAt,
	}
}
