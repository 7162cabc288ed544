package stripegateway

// CheckoutRequest параметры оплаты бронирования через Stripe Checkout
type CheckoutRequest struct {
	PaymentID     string
	BookingID     string
	Amount        float64
	Description   string
	CustomerEmail string
}

// CheckoutSession созданная сессия оплаты
type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent событие Stripe, нужное сервису
type WebhookEvent struct {
	ID              string
	Type            string
	SessionID       string
	PaymentID       string
	BookingID       string
	PaymentIntentID string
	Paid            bool
}

// Event types
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
)
