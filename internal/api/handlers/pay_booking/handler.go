package pay_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	payBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/pay_booking"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный способ оплаты или ссылка на транзакцию"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotPayable         = "бронирование не ожидает оплаты"
	msgMethodUnavailable  = "способ оплаты недоступен"
)

type Handler struct {
	useCase PayBookingUseCase
	logger  Logger
}

func NewHandler(useCase PayBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PayBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("POST /bookings/{id}/payments - Remote API error: booking_id=%s, error=%v", bookingID, err)
			return
		}

		switch {
		case errors.Is(err, payBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, payBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payments - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payBooking.ErrNotPayable):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not payable: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotPayable)

		case errors.Is(err, payBooking.ErrMethodUnavailable):
			h.logger.Warn("POST /bookings/{id}/payments - Method unavailable: method=%s", req.Method)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgMethodUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed to pay booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Redirect завершается на стороне Stripe, остальные исходы продолжаются асинхронно
	status := http.StatusAccepted
	if result.Outcome == payBooking.OutcomeRedirect {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings/{id}/payments - Payment started: booking_id=%s, payment_id=%s, outcome=%s",
		bookingID, result.Payment.ID, result.Outcome)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
