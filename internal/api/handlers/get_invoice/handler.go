package get_invoice

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	getInvoice "github.com/m04kA/SMC-RentalBookingService/internal/usecase/get_invoice"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidID     = "некорректный ID бронирования"
	msgNotFound      = "бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgUnavailable   = "счет недоступен для отклоненного бронирования"
)

type Handler struct {
	useCase InvoiceUseCase
	logger  Logger
}

func NewHandler(useCase InvoiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/invoice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/invoice - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	invoice, err := h.useCase.Execute(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}/invoice", bookingID, userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, invoice)
}

// HandlePDF GET /api/v1/bookings/{bookingId}/invoice.pdf
func (h *Handler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/invoice.pdf - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	doc, err := h.useCase.RenderPDF(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}/invoice.pdf", bookingID, userID, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		h.logger.Warn("GET /bookings/{id}/invoice.pdf - Failed to write document: booking_id=%s, error=%v", bookingID, err)
		return
	}

	h.logger.Info("GET /bookings/{id}/invoice.pdf - Invoice rendered: booking_id=%s, size=%d", bookingID, len(doc.Content))
}

func (h *Handler) respondError(w http.ResponseWriter, route, bookingID, userID string, err error) {
	if handlers.RespondRemoteError(w, err) {
		h.logger.Warn("%s - Remote API error: booking_id=%s, error=%v", route, bookingID, err)
		return
	}

	switch {
	case errors.Is(err, getInvoice.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidID)

	case errors.Is(err, getInvoice.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, getInvoice.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: booking_id=%s, user_id=%s", route, bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, getInvoice.ErrInvoiceUnavailable):
		handlers.RespondConflict(w, msgUnavailable)

	default:
		h.logger.Error("%s - Failed to build invoice: booking_id=%s, error=%v", route, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
