package acknowledge_qr_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequest      = "некорректное тело запроса"
	msgTransactionNotFound = "транзакция не найдена"
	msgPaymentNotCompleted = "оплата по QR еще не завершена"
	msgNotFound            = "сессия не найдена или истекла"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/qr-acknowledgement
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/qr-acknowledgement - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/qr-acknowledgement - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	session, err := h.service.AcknowledgeQRPayment(r.Context(), sessionID, userID, req.TransactionRef)
	if err != nil {
		switch {
		case errors.Is(err, tripsession.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, tripsession.ErrTransactionNotFound):
			handlers.RespondNotFound(w, msgTransactionNotFound)

		case errors.Is(err, tripsession.ErrPaymentNotCompleted):
			h.logger.Warn("POST /sessions/{id}/qr-acknowledgement - Payment not completed: transaction=%s", req.TransactionRef)
			handlers.RespondConflict(w, msgPaymentNotCompleted)

		case errors.Is(err, tripsession.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tripsession.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/qr-acknowledgement - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /sessions/{id}/qr-acknowledgement - Failed to acknowledge payment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/qr-acknowledgement - Payment acknowledged: session_id=%s, transaction=%s", sessionID, req.TransactionRef)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleClear DELETE /api/v1/sessions/{sessionId}/qr-acknowledgement
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sessions/{id}/qr-acknowledgement - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.ClearQRAcknowledgment(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, tripsession.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tripsession.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /sessions/{id}/qr-acknowledgement - Failed to clear acknowledgment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
