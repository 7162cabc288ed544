package bookingservice

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/carservice"
)

// Feature опция бронирования в формате удаленного API
type Feature struct {
	Name  string           `json:"name"`
	Price carservice.Price `json:"price"`
}

// CarRef поле carId: заполненный объект автомобиля или только id
type CarRef struct {
	ID  string
	Car *carservice.Car
}

func (r *CarRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	var car carservice.Car
	if err := json.Unmarshal(data, &car); err != nil {
		return err
	}
	r.ID = car.ID
	r.Car = &car
	return nil
}

// UserRef поле user: объект пользователя или только id
type UserRef struct {
	ID string
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	var user struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}
	r.ID = user.ID
	if r.ID == "" {
		r.ID = user.Email
	}
	return nil
}

// Booking модель бронирования из удаленного API
type Booking struct {
	ID                 string           `json:"_id"`
	User               UserRef          `json:"user"`
	CarID              CarRef           `json:"carId"`
	Origin             string           `json:"origin"`
	Destination        string           `json:"destination"`
	DrivingLicense     string           `json:"drivingLicense"`
	NIDOrPassport      string           `json:"nidOrPassport"`
	StartDate          time.Time        `json:"startDate"`
	EndDate            time.Time        `json:"endDate"`
	TotalCost          carservice.Price `json:"totalCost"`
	AdditionalFeatures []Feature        `json:"additionalFeatures"`
	PaymentType        string           `json:"paymentType"`
	PaymentID          string           `json:"paymentId"`
	CompletedPayment   bool             `json:"completedPayment"`
	Status             string           `json:"status"`
	OTP                int              `json:"otp"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// ToDomain конвертирует модель удаленного API в доменную
// Неизвестный способ оплаты сохраняется как есть
func (b *Booking) ToDomain() *domain.Booking {
	paymentType, err := domain.ParsePaymentType(b.PaymentType)
	if err != nil {
		paymentType = domain.PaymentType(b.PaymentType)
	}

	features := make([]domain.BookedFeature, 0, len(b.AdditionalFeatures))
	for _, f := range b.AdditionalFeatures {
		features = append(features, domain.BookedFeature{Name: f.Name, Price: float64(f.Price)})
	}

	booking := &domain.Booking{
		ID:                 b.ID,
		UserID:             b.User.ID,
		CarID:              b.CarID.ID,
		Origin:             b.Origin,
		Destination:        b.Destination,
		NIDOrPassport:      b.NIDOrPassport,
		DrivingLicense:     b.DrivingLicense,
		Trip:               domain.TripRange{Start: b.StartDate, End: b.EndDate},
		AdditionalFeatures: features,
		TotalCost:          float64(b.TotalCost),
		PaymentType:        paymentType,
		PaymentID:          b.PaymentID,
		CompletedPayment:   b.CompletedPayment,
		Status:             domain.BookingStatus(b.Status),
		OTP:                b.OTP,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CarID.Car != nil {
		booking.Car = b.CarID.Car.ToDomain()
	}

	return booking
}

// FeaturePayload опция в теле запроса
type FeaturePayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CreatePayload тело запроса создания бронирования
type CreatePayload struct {
	CarID              string           `json:"carId"`
	Origin             string           `json:"origin"`
	Destination        string           `json:"destination"`
	DrivingLicense     string           `json:"drivingLicense"`
	NIDOrPassport      string           `json:"nidOrPassport"`
	StartDate          time.Time        `json:"startDate"`
	EndDate            time.Time        `json:"endDate"`
	TotalCost          float64          `json:"totalCost"`
	AdditionalFeatures []FeaturePayload `json:"additionalFeatures"`
	PaymentType        string           `json:"paymentType"`
	PaymentID          string           `json:"paymentId,omitempty"`
	CompletedPayment   bool             `json:"completedPayment"`
	Status             string           `json:"status"`
	OTP                int              `json:"otp"`
}

// UpdatePayload тело запроса обновления бронирования (только измененные поля)
type UpdatePayload struct {
	StartDate          *time.Time       `json:"startDate,omitempty"`
	EndDate            *time.Time       `json:"endDate,omitempty"`
	AdditionalFeatures []FeaturePayload `json:"additionalFeatures,omitempty"`
	TotalCost          *float64         `json:"totalCost,omitempty"`
	PaymentType        *string          `json:"paymentType,omitempty"`
	PaymentID          *string          `json:"paymentId,omitempty"`
	CompletedPayment   *bool            `json:"completedPayment,omitempty"`
}

func toFeaturePayload(features []domain.BookedFeature) []FeaturePayload {
	out := make([]FeaturePayload, 0, len(features))
	for _, f := range features {
		out = append(out, FeaturePayload{Name: f.Name, Price: f.Price})
	}
	return out
}

// NewCreatePayload собирает тело запроса из доменного бронирования
func NewCreatePayload(b *domain.Booking) *CreatePayload {
	return &CreatePayload{
		CarID:              b.CarID,
		Origin:             b.Origin,
		Destination:        b.Destination,
		DrivingLicense:     b.DrivingLicense,
		NIDOrPassport:      b.NIDOrPassport,
		StartDate:          b.Trip.Start,
		EndDate:            b.Trip.End,
		TotalCost:          b.TotalCost,
		AdditionalFeatures: toFeaturePayload(b.AdditionalFeatures),
		PaymentType:        b.PaymentType.WireValue(),
		PaymentID:          b.PaymentID,
		CompletedPayment:   b.CompletedPayment,
		Status:             string(b.Status),
		OTP:                b.OTP,
	}
}

// NewUpdatePayload собирает тело запроса обновления
func NewUpdatePayload(u domain.BookingUpdate) *UpdatePayload {
	p := &UpdatePayload{
		TotalCost:        u.TotalCost,
		PaymentID:        u.PaymentID,
		CompletedPayment: u.CompletedPayment,
	}
	if u.Trip != nil {
		start, end := u.Trip.Start, u.Trip.End
		p.StartDate = &start
		p.EndDate = &end
	}
	if u.AdditionalFeatures != nil {
		p.AdditionalFeatures = toFeaturePayload(u.AdditionalFeatures)
	}
	if u.PaymentType != nil {
		wire := u.PaymentType.WireValue()
		p.PaymentType = &wire
	}
	return p
}
