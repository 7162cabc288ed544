package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/cancel_booking"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректный ID бронирования или токен"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotCancel        = "бронирование не может быть отменено"
	msgInvalidConfirmation = "токен подтверждения недействителен или истек"
	msgCancelled           = "бронирование отменено"
	msgCancellationAborted = "отмена бронирования прервана"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancellation
// Первый шаг: выдает токен подтверждения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancellation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.RequestCancellation(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, "POST /bookings/{id}/cancellation", bookingID, userID, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation - Confirmation issued: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleConfirm POST /api/v1/bookings/{bookingId}/cancellation/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancellation/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.useCase.ConfirmCancellation(r.Context(), bookingID, userID, req.Token); err != nil {
		h.respondError(w, "POST /bookings/{id}/cancellation/confirm", bookingID, userID, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancellation/confirm - Booking cancelled: booking_id=%s, user_id=%s", bookingID, userID)
	handlers.RespondMessage(w, http.StatusOK, msgCancelled, nil)
}

// HandleAbort DELETE /api/v1/bookings/{bookingId}/cancellation?token=
func (h *Handler) HandleAbort(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id}/cancellation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" && r.ContentLength > 0 {
		var req ConfirmRequest
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("DELETE /bookings/{id}/cancellation - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		token = req.Token
	}

	if err := h.useCase.AbortCancellation(r.Context(), bookingID, userID, token); err != nil {
		h.respondError(w, "DELETE /bookings/{id}/cancellation", bookingID, userID, err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgCancellationAborted, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route, bookingID, userID string, err error) {
	if handlers.RespondRemoteError(w, err) {
		h.logger.Warn("%s - Remote API error: booking_id=%s, error=%v", route, bookingID, err)
		return
	}

	switch {
	case errors.Is(err, cancelBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, cancelBooking.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, cancelBooking.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: booking_id=%s, user_id=%s", route, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, cancelBooking.ErrNotCancellable):
		h.logger.Warn("%s - Cannot cancel booking: booking_id=%s", route, bookingID)
		handlers.RespondConflict(w, msgCannotCancel)

	case errors.Is(err, cancelBooking.ErrInvalidConfirmation):
		handlers.RespondConflict(w, msgInvalidConfirmation)

	default:
		h.logger.Error("%s - Failed to process cancellation: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
