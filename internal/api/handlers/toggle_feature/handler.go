package toggle_feature

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidRequest = "некорректное тело запроса"
	msgUnknownFeature = "опция отсутствует в каталоге"
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

// Handle POST /api/v1/sessions/{sessionId}/features/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/features/toggle - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/features/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	session, err := h.service.ToggleFeature(r.Context(), sessionID, userID, req.Label)
	if err != nil {
		switch {
		case errors.Is(err, tripsession.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, tripsession.ErrUnknownFeature):
			h.logger.Warn("POST /sessions/{id}/features/toggle - Unknown feature: label=%q", req.Label)
			handlers.RespondBadRequest(w, msgUnknownFeature)

		case errors.Is(err, tripsession.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tripsession.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/features/toggle - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /sessions/{id}/features/toggle - Failed to toggle feature: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/features/toggle - Feature toggled: session_id=%s, label=%q, selected=%d",
		sessionID, req.Label, len(session.Features))
	handlers.RespondJSON(w, http.StatusOK, session)
}
