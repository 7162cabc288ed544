package pay_booking

import "github.com/m04kA/SMC-RentalBookingService/internal/domain"

// Request модель запроса на оплату бронирования
type Request struct {
	BookingID      string
	UserID         string
	Method         string // способ оплаты, допускаются устаревшие написания
	TransactionRef string // обязателен для QR и кошельков
	CustomerEmail  string // для Stripe Checkout (необязательно)
}

// Outcome результат оплаты для клиента
type Outcome string

const (
	// OutcomeAwaitingAdmin наличные, подтверждает администратор
	OutcomeAwaitingAdmin Outcome = "awaiting_admin"
	// OutcomeRedirect клиент переходит на страницу Stripe Checkout
	OutcomeRedirect Outcome = "redirect"
	// OutcomeVerifying транзакция проверяется у платежного шлюза
	OutcomeVerifying Outcome = "verifying"
)

// Response модель ответа
type Response struct {
	Outcome     Outcome
	Payment     *domain.Payment
	Booking     *domain.Booking // заполнено, если бронирование изменилось сразу
	CheckoutURL string
}
