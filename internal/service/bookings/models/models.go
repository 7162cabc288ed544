package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// CarResponse автомобиль в составе бронирования
type CarResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Model        string   `json:"model,omitempty"`
	Year         string   `json:"year,omitempty"`
	CarType      string   `json:"carType,omitempty"`
	PricePerHour float64  `json:"pricePerHour"`
	PricePerDay  float64  `json:"pricePerDay"`
	Images       []string `json:"images,omitempty"`
}

// FeatureResponse опция бронирования
type FeatureResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ActionsResponse действия, доступные пользователю
type ActionsResponse struct {
	Modify          bool `json:"modify"`
	Cancel          bool `json:"cancel"`
	Pay             bool `json:"pay"`
	ViewInvoice     bool `json:"viewInvoice"`
	RejectionNotice bool `json:"rejectionNotice"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"userId,omitempty"`
	CarID              string            `json:"carId"`
	Car                *CarResponse      `json:"car,omitempty"`
	Origin             string            `json:"origin"`
	Destination        string            `json:"destination"`
	StartDate          time.Time         `json:"startDate"`
	EndDate            time.Time         `json:"endDate"`
	DurationHours      int               `json:"durationHours"`
	AdditionalFeatures []FeatureResponse `json:"additionalFeatures"`
	TotalCost          float64           `json:"totalCost"`
	PaymentType        string            `json:"paymentType"`
	PaymentID          string            `json:"paymentId,omitempty"`
	CompletedPayment   bool              `json:"completedPayment"`
	Status             string            `json:"status"`
	OTP                int               `json:"otp"`
	Actions            ActionsResponse   `json:"actions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	actions := b.Actions()
	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		CarID:              b.CarID,
		Car:                FromDomainCar(b.Car),
		Origin:             b.Origin,
		Destination:        b.Destination,
		StartDate:          b.Trip.Start,
		EndDate:            b.Trip.End,
		DurationHours:      b.Trip.DurationHours(),
		AdditionalFeatures: make([]FeatureResponse, 0, len(b.AdditionalFeatures)),
		TotalCost:          b.TotalCost,
		PaymentType:        string(b.PaymentType),
		PaymentID:          b.PaymentID,
		CompletedPayment:   b.CompletedPayment,
		Status:             string(b.Status),
		OTP:                b.OTP,
		Actions: ActionsResponse{
			Modify:          actions.Modify,
			Cancel:          actions.Cancel,
			Pay:             actions.Pay,
			ViewInvoice:     actions.ViewInvoice,
			RejectionNotice: actions.RejectionNotice,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	for _, f := range b.AdditionalFeatures {
		resp.AdditionalFeatures = append(resp.AdditionalFeatures, FeatureResponse{Name: f.Name, Price: f.Price})
	}

	return resp
}

// FromDomainCar конвертирует автомобиль
func FromDomainCar(c *domain.Car) *CarResponse {
	if c == nil {
		return nil
	}
	return &CarResponse{
		ID:           c.ID,
		Name:         c.Name,
		Model:        c.Model,
		Year:         c.Year,
		CarType:      c.CarType,
		PricePerHour: c.PricePerHour,
		PricePerDay:  c.PricePerDay,
		Images:       c.Images,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
