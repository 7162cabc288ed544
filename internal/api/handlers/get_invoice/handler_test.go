package get_invoice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
	getInvoice "github.com/m04kA/SMC-RentalBookingService/internal/usecase/get_invoice"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, bookingID, userID string) (*getInvoice.Invoice, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getInvoice.Invoice), args.Error(1)
}

func (m *MockUseCase) RenderPDF(ctx context.Context, bookingID, userID string) (*getInvoice.Document, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getInvoice.Document), args.Error(1)
}

func newRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	creds := auth.NewCredentials("user-1", "user", "token", "")
	return req.WithContext(auth.WithCredentials(req.Context(), creds))
}

func TestHandlePDF(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("RenderPDF", mock.Anything, "b-1", "user-1").Return(&getInvoice.Document{
		FileName:    "invoice-b-1.pdf",
		ContentType: getInvoice.PDFContentType,
		Content:     []byte("%PDF-1.3 test"),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).HandlePDF(rec, newRequest("/api/v1/bookings/b-1/invoice.pdf"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, getInvoice.PDFContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-b-1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", getInvoice.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", getInvoice.ErrAccessDenied, http.StatusForbidden},
		{"rejected booking", getInvoice.ErrInvoiceUnavailable, http.StatusConflict},
		{"internal", getInvoice.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, "b-1", "user-1").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest("/api/v1/bookings/b-1/invoice"))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
