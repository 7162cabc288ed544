package modify_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	modifyBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/modify_booking"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные даты или опции"
	msgUnknownFeature     = "опция отсутствует в каталоге"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotModifiable      = "изменить можно только бронирование в статусе pending"
)

type Handler struct {
	useCase ModifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase ModifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ModifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("PUT /bookings/{id} - Remote API error: booking_id=%s, error=%v", bookingID, err)
			return
		}

		switch {
		case errors.Is(err, modifyBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, modifyBooking.ErrUnknownFeature):
			handlers.RespondBadRequest(w, msgUnknownFeature)

		case errors.Is(err, modifyBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyBooking.ErrNotModifiable):
			h.logger.Warn("PUT /bookings/{id} - Booking not modifiable: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotModifiable)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to modify booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking modified successfully: booking_id=%s, total=%.2f",
		bookingID, result.Booking.TotalCost)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
