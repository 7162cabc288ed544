package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/create_booking"
)

const (
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "не заполнены обязательные поля бронирования"
	msgSessionNotFound       = "сессия не найдена или истекла"
	msgForbidden             = "доступ запрещен"
	msgCarNotFound           = "автомобиль не найден"
	msgCarUnavailable        = "автомобиль больше недоступен"
	msgQRPaymentRequired     = "оплата по QR не подтверждена"
	msgQRPaymentInsufficient = "сумма оплаты по QR меньше стоимости аренды"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		if handlers.RespondRemoteError(w, err) {
			h.logger.Warn("POST /bookings - Remote API error: user_id=%s, error=%v", userID, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: session_id=%s, user_id=%s", req.SessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: car_id=%s", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrCarUnavailable):
			h.logger.Warn("POST /bookings - Car unavailable: car_id=%s", req.CarID)
			handlers.RespondConflict(w, msgCarUnavailable)

		case errors.Is(err, createBooking.ErrQRPaymentNotAcknowledged):
			handlers.RespondConflict(w, msgQRPaymentRequired)

		case errors.Is(err, createBooking.ErrQRPaymentInsufficient):
			h.logger.Warn("POST /bookings - QR payment insufficient: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgQRPaymentInsufficient)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, car_id=%s, error=%v",
				userID, req.CarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, car_id=%s",
		result.Booking.ID, userID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
