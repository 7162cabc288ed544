package get_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgMissingCarID  = "не указан ID автомобиля"
	msgCarNotFound   = "автомобиль не найден"
	msgNotFound      = "сессия не найдена или истекла"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/sessions/{sessionId}/quote?carId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	carID := r.URL.Query().Get("carId")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions/{id}/quote - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	quote, err := h.service.Quote(r.Context(), sessionID, userID, carID)
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("GET /sessions/{id}/quote - Remote API error: %v", err)
			return
		}

		switch {
		case errors.Is(err, tripsession.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingCarID)

		case errors.Is(err, tripsession.ErrCarNotFound):
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, tripsession.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tripsession.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /sessions/{id}/quote - Failed to compute quote: session_id=%s, car_id=%s, error=%v", sessionID, carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, quote)
}
