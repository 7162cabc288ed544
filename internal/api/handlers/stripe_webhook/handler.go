package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-RentalBookingService/internal/usecase/confirm_payment"
)

const (
	// SignatureHeader заголовок с подписью Stripe
	SignatureHeader = "Stripe-Signature"

	maxPayloadBytes = 64 << 10
)

const (
	msgInvalidPayload   = "некорректное тело webhook"
	msgInvalidSignature = "неверная подпись webhook"
	msgDisabled         = "оплата через Stripe не настроена"
	msgAccepted         = "событие принято"
)

type Handler struct {
	useCase WebhookUseCase
	logger  Logger
}

func NewHandler(useCase WebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Без авторизации: подлинность события проверяется по подписи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	err = h.useCase.HandleStripeWebhook(r.Context(), payload, r.Header.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrWebhookDisabled):
			h.logger.Warn("POST /webhooks/stripe - Webhook received but Stripe is disabled")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDisabled)

		case errors.Is(err, confirmPayment.ErrInvalidSignature):
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPayload)

		default:
			// 5xx, чтобы Stripe повторил доставку
			h.logger.Error("POST /webhooks/stripe - Failed to process event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgAccepted, nil)
}
