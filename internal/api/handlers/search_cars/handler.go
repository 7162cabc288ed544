package search_cars

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	searchCars "github.com/m04kA/SMC-RentalBookingService/internal/usecase/search_cars"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidPage       = "некорректный номер страницы"
	msgInvalidPriceRange = "некорректный диапазон цен, ожидается min-max"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgSessionNotFound   = "сессия не найдена или истекла"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	useCase SearchCarsUseCase
	logger  Logger
}

func NewHandler(useCase SearchCarsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars?sessionId=&carType=&carBrand=&priceRange=&page=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /cars - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	// Номер страницы опционален
	page := 0
	if pageStr := query.Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			h.logger.Warn("GET /cars - Invalid page: %q", pageStr)
			handlers.RespondBadRequest(w, msgInvalidPage)
			return
		}
		page = parsed
	}

	req := &searchCars.Request{
		SessionID:  query.Get("sessionId"),
		UserID:     userID,
		CarType:    query.Get("carType"),
		CarBrand:   query.Get("carBrand"),
		PriceRange: query.Get("priceRange"),
		Page:       page,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("GET /cars - Remote API error: %v", err)
			return
		}

		switch {
		case errors.Is(err, searchCars.ErrInvalidPriceRange):
			handlers.RespondBadRequest(w, msgInvalidPriceRange)

		case errors.Is(err, searchCars.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, searchCars.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, searchCars.ErrAccessDenied):
			h.logger.Warn("GET /cars - Access denied: session_id=%s, user_id=%s", req.SessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /cars - Failed to search cars: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cars - Cars retrieved: user_id=%s, count=%d", userID, len(result.Cars))
	handlers.RespondJSON(w, http.StatusOK, result)
}
