package get_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	confirmPayment "github.com/m04kA/SMC-RentalBookingService/internal/usecase/confirm_payment"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidID     = "некорректный ID оплаты"
	msgNotFound      = "оплата не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase PaymentStatusUseCase
	logger  Logger
}

func NewHandler(useCase PaymentStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/{paymentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /payments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	payment, err := h.useCase.GetStatus(r.Context(), paymentID, userID)
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("GET /payments/{id} - Remote API error: payment_id=%s, error=%v", paymentID, err)
			return
		}

		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			h.logger.Warn("GET /payments/{id} - Access denied: payment_id=%s, user_id=%s", paymentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payments/{id} - Failed to get payment: payment_id=%s, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainPayment(payment))
}
