package create_booking

import (
	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
)

// BookingsListRoute страница, на которую клиент переходит после создания
const BookingsListRoute = "/dashboard/my-bookings"

// Request модель запроса на создание бронирования
type Request struct {
	SessionID      string // ID сессии выбора поездки (диапазон, маршрут, опции)
	UserID         string // ID пользователя из access token
	CarID          string // ID автомобиля
	NIDOrPassport  string // Номер NID или паспорта
	DrivingLicense string // Номер водительского удостоверения
	PaymentType    string // Способ оплаты, допускаются устаревшие написания
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  *domain.Booking
	Quote    pricing.Quote
	Redirect string // куда перейти клиенту после успеха
}
