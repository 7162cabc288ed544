package stripegateway

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	metadataPaymentID = "payment_id"
	metadataBookingID = "booking_id"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки Stripe
type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

// Gateway оплата картой через Stripe Checkout
type Gateway struct {
	cfg           Config
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	log           Logger
}

// NewGateway создает шлюз и настраивает глобальный ключ stripe-go
func NewGateway(cfg Config, log Logger) *Gateway {
	stripe.Key = cfg.SecretKey
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &Gateway{
		cfg:           cfg,
		createSession: session.New,
		log:           log,
	}
}

// CreateCheckoutSession создает checkout session на сумму бронирования
func (g *Gateway) CreateCheckoutSession(req CheckoutRequest) (*CheckoutSession, error) {
	amount := ToMinorUnits(req.Amount)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidAmount, req.Amount)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(withPaymentID(g.cfg.SuccessURL, req.PaymentID)),
		CancelURL:         stripe.String(withPaymentID(g.cfg.CancelURL, req.PaymentID)),
		ClientReferenceID: stripe.String(req.PaymentID),
	}
	if req.CustomerEmail != "" && strings.Contains(req.CustomerEmail, "@") {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.AddMetadata(metadataPaymentID, req.PaymentID)
	params.AddMetadata(metadataBookingID, req.BookingID)

	sess, err := g.createSession(params)
	if err != nil {
		g.log.Error("Stripe: failed to create checkout session for booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrCheckout, err)
	}

	g.log.Info("Stripe: checkout session=%s created for booking=%s amount=%d %s",
		sess.ID, req.BookingID, amount, g.cfg.Currency)
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook проверяет подпись и разбирает событие checkout session
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookEvent{ID: event.ID, Type: string(event.Type)}

	switch result.Type {
	case EventCheckoutCompleted, EventCheckoutExpired:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		if sess.ID == "" {
			return nil, fmt.Errorf("%w: no session id", ErrInvalidEvent)
		}

		result.SessionID = sess.ID
		result.PaymentID = sess.ClientReferenceID
		if result.PaymentID == "" {
			result.PaymentID = sess.Metadata[metadataPaymentID]
		}
		result.BookingID = sess.Metadata[metadataBookingID]
		result.Paid = sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
		if sess.PaymentIntent != nil {
			result.PaymentIntentID = sess.PaymentIntent.ID
		}
	}

	return result, nil
}

// ToMinorUnits переводит сумму в центы
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func withPaymentID(base, paymentID string) string {
	if base == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "payment_id=" + paymentID
}
