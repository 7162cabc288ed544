package create_booking

import (
	bookingModels "github.com/m04kA/SMC-RentalBookingService/internal/service/bookings/models"
	sessionModels "github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
	createBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP запрос на создание бронирования
type CreateBookingRequest struct {
	SessionID      string `json:"sessionId"`
	CarID          string `json:"carId"`
	NIDOrPassport  string `json:"nidOrPassport"`
	DrivingLicense string `json:"drivingLicense"`
	PaymentType    string `json:"paymentType"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) *createBooking.Request {
	return &createBooking.Request{
		SessionID:      r.SessionID,
		UserID:         userID,
		CarID:          r.CarID,
		NIDOrPassport:  r.NIDOrPassport,
		DrivingLicense: r.DrivingLicense,
		PaymentType:    r.PaymentType,
	}
}

// CreateBookingResponse HTTP ответ с созданным бронированием
type CreateBookingResponse struct {
	Booking  *bookingModels.BookingResponse `json:"booking"`
	Quote    *sessionModels.QuoteResponse   `json:"quote"`
	Redirect string                         `json:"redirect"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:  bookingModels.FromDomainBooking(resp.Booking),
		Quote:    sessionModels.FromQuote(resp.Booking.Car, resp.Quote),
		Redirect: resp.Redirect,
	}
}
