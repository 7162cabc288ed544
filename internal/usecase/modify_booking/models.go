package modify_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
)

// Request модель запроса на изменение бронирования
type Request struct {
	BookingID string
	UserID    string
	Dates     []time.Time // одна дата меняет начало, две задают диапазон, пусто - без изменений
	Features  []string    // nil - оставить текущие опции
}

// Response модель ответа с измененным бронированием
type Response struct {
	Booking *domain.Booking
	Quote   pricing.Quote
}
