package modify_booking

import (
	"time"

	bookingModels "github.com/m04kA/SMC-RentalBookingService/internal/service/bookings/models"
	sessionModels "github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
	modifyBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/modify_booking"
)

// ModifyBookingRequest HTTP запрос на изменение бронирования
// features: null оставляет текущие опции, [] убирает все
type ModifyBookingRequest struct {
	Dates    []time.Time `json:"dates"`
	Features []string    `json:"features"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyBookingRequest) ToUseCaseRequest(bookingID, userID string) *modifyBooking.Request {
	return &modifyBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Dates:     r.Dates,
		Features:  r.Features,
	}
}

// ModifyBookingResponse HTTP ответ с измененным бронированием
type ModifyBookingResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
	Quote   *sessionModels.QuoteResponse   `json:"quote"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *modifyBooking.Response) *ModifyBookingResponse {
	return &ModifyBookingResponse{
		Booking: bookingModels.FromDomainBooking(resp.Booking),
		Quote:   sessionModels.FromQuote(resp.Booking.Car, resp.Quote),
	}
}
