package set_destination

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

// Handle PATCH /api/v1/sessions/{sessionId}/destination
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/destination - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetDestinationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/destination - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	session, err := h.service.SetDestination(r.Context(), sessionID, userID, req)
	if err != nil {
		h.respondError(w, "PATCH /sessions/{id}/destination", sessionID, userID, err)
		return
	}

	h.logger.Info("PATCH /sessions/{id}/destination - Destination updated: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleClear DELETE /api/v1/sessions/{sessionId}/destination
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sessions/{id}/destination - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.service.ClearDestination(r.Context(), sessionID, userID)
	if err != nil {
		h.respondError(w, "DELETE /sessions/{id}/destination", sessionID, userID, err)
		return
	}

	h.logger.Info("DELETE /sessions/{id}/destination - Destination cleared: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) respondError(w http.ResponseWriter, route, sessionID, userID string, err error) {
	switch {
	case errors.Is(err, tripsession.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequest)

	case errors.Is(err, tripsession.ErrSessionNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, tripsession.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: session_id=%s, user_id=%s", route, sessionID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Failed to update destination: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
