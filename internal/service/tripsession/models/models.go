package models

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
)

// Request модели

// SetTripTimeRequest одна дата меняет только начало, две задают диапазон
type SetTripTimeRequest struct {
	Dates []time.Time `json:"dates"`
}

// SetDestinationRequest частичное обновление маршрута
type SetDestinationRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

// ToDomain конвертирует запрос в domain модель
func (r SetDestinationRequest) ToDomain() domain.DestinationInfo {
	return domain.DestinationInfo{
		Origin:      r.Origin,
		Destination: r.Destination,
		Distance:    r.Distance,
		Duration:    r.Duration,
	}
}

// Response модели

// TripResponse диапазон поездки
type TripResponse struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	DurationHours int       `json:"durationHours"`
}

// DestinationResponse маршрут поездки
type DestinationResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Distance    string `json:"distance,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// FeatureResponse опция с ценой
type FeatureResponse struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// QRAcknowledgmentResponse подтвержденная оплата по QR
type QRAcknowledgmentResponse struct {
	TransactionRef string    `json:"transactionRef"`
	Amount         float64   `json:"amount"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
}

// SessionResponse ответ с состоянием сессии
type SessionResponse struct {
	ID          string                    `json:"id"`
	Trip        TripResponse              `json:"trip"`
	Destination DestinationResponse       `json:"destination"`
	Features    []FeatureResponse         `json:"features"`
	QRPayment   *QRAcknowledgmentResponse `json:"qrPayment,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// FeatureChargeResponse вклад опции в стоимость
type FeatureChargeResponse struct {
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unitPrice"`
	Amount    float64 `json:"amount"`
}

// QuoteResponse расчет стоимости для автомобиля
type QuoteResponse struct {
	CarID         string                  `json:"carId"`
	DurationHours int                     `json:"durationHours"`
	Days          int                     `json:"days"`
	Hours         int                     `json:"hours"`
	PerDay        bool                    `json:"perDay"`
	BilledUnits   int                     `json:"billedUnits"`
	PricePerHour  float64                 `json:"pricePerHour"`
	PricePerDay   float64                 `json:"pricePerDay"`
	BasePrice     float64                 `json:"basePrice"`
	FeaturesPrice float64                 `json:"featuresPrice"`
	TotalPrice    float64                 `json:"totalPrice"`
	Features      []FeatureChargeResponse `json:"features"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.TripSession) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID: s.ID,
		Trip: TripResponse{
			StartDate:     s.Trip.Start,
			EndDate:       s.Trip.End,
			DurationHours: s.Trip.DurationHours(),
		},
		Destination: DestinationResponse{
			Origin:      s.Destination.Origin,
			Destination: s.Destination.Destination,
			Distance:    s.Destination.Distance,
			Duration:    s.Destination.Duration,
		},
		Features:  FromDomainFeatures(s.Features.Items()),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	if s.QRAck != nil {
		resp.QRPayment = &QRAcknowledgmentResponse{
			TransactionRef: s.QRAck.TransactionRef,
			Amount:         s.QRAck.Amount,
			AcknowledgedAt: s.QRAck.AcknowledgedAt,
		}
	}

	return resp
}

// FromDomainFeatures конвертирует список опций
func FromDomainFeatures(items []domain.Feature) []FeatureResponse {
	resp := make([]FeatureResponse, 0, len(items))
	for _, f := range items {
		resp = append(resp, FeatureResponse{Label: f.Label, Price: f.Price})
	}
	return resp
}

// FromQuote конвертирует расчет стоимости
func FromQuote(car *domain.Car, q pricing.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		DurationHours: q.DurationHours,
		Days:          q.Days,
		Hours:         q.Hours,
		PerDay:        q.PerDay,
		BilledUnits:   q.BilledUnits,
		BasePrice:     q.BasePrice,
		FeaturesPrice: q.FeaturesPrice,
		TotalPrice:    q.Total,
		Features:      make([]FeatureChargeResponse, 0, len(q.Features)),
	}

	if car != nil {
		resp.CarID = car.ID
		resp.PricePerHour = car.PricePerHour
		resp.PricePerDay = car.PricePerDay
	}

	for _, f := range q.Features {
		resp.Features = append(resp.Features, FeatureChargeResponse{
			Label:     f.Label,
			UnitPrice: f.UnitPrice,
			Amount:    f.Amount,
		})
	}

	return resp
}
