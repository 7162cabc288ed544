package events

import "time"

// Type тип события жизненного цикла бронирования
type Type string

const (
	BookingCreated          Type = "booking.created"
	BookingModified         Type = "booking.modified"
	BookingCancelled        Type = "booking.cancelled"
	BookingPaymentConfirmed Type = "booking.payment_confirmed"
)

// Event сообщение о бронировании для внешних подписчиков (уведомления, аналитика)
type Event struct {
	Type        Type      `json:"type"`
	BookingID   string    `json:"bookingId"`
	UserID      string    `json:"userId,omitempty"`
	CarID       string    `json:"carId,omitempty"`
	PaymentID   string    `json:"paymentId,omitempty"`
	PaymentType string    `json:"paymentType,omitempty"`
	Status      string    `json:"status,omitempty"`
	TotalCost   float64   `json:"totalCost,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}
