package set_trip_time

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidRequest = "некорректное тело запроса"
	msgInvalidDates   = "некорректные даты поездки"
	msgNotFound       = "сессия не найдена или истекла"
	msgForbidden      = "доступ запрещен"
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

// Handle PUT /api/v1/sessions/{sessionId}/trip-time
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sessions/{id}/trip-time - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetTripTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/trip-time - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	session, err := h.service.SetTripTime(r.Context(), sessionID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, tripsession.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id}/trip-time - Invalid dates: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, tripsession.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tripsession.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/trip-time - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /sessions/{id}/trip-time - Failed to set trip time: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/trip-time - Trip updated: session_id=%s, hours=%d", sessionID, session.Trip.DurationHours)
	handlers.RespondJSON(w, http.StatusOK, session)
}
