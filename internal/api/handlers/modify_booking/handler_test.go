package modify_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
	modifyBooking "github.com/m04kA/SMC-RentalBookingService/internal/usecase/modify_booking"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *modifyBooking.Request) (*modifyBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modifyBooking.Response), args.Error(1)
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/b-1", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "b-1"})
	creds := auth.NewCredentials("user-1", "user", "token", "")
	return req.WithContext(auth.WithCredentials(req.Context(), creds))
}

func TestHandle_Modified(t *testing.T) {
	uc := new(MockUseCase)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *modifyBooking.Request) bool {
		return r.BookingID == "b-1" && r.UserID == "user-1" && len(r.Dates) == 2 &&
			len(r.Features) == 1 && r.Features[0] == "GPS"
	})).Return(&modifyBooking.Response{
		Booking: &domain.Booking{
			ID:        "b-1",
			UserID:    "user-1",
			CarID:     "car-1",
			Status:    domain.StatusPending,
			Trip:      domain.TripRange{Start: start, End: end},
			TotalCost: 210,
		},
		Quote: pricing.Quote{DurationHours: 48, Days: 2, PerDay: true, BilledUnits: 2, Total: 210},
	}, nil)

	body := `{"dates":["2026-03-02T10:00:00Z","2026-03-04T10:00:00Z"],"features":["GPS"]}`
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(body))

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data ModifyBookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Data.Booking)
	assert.Equal(t, 210.0, env.Data.Booking.TotalCost)
	require.NotNil(t, env.Data.Quote)
	assert.Equal(t, 2, env.Data.Quote.Days)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLogout bool
	}{
		{"invalid dates", modifyBooking.ErrInvalidInput, http.StatusBadRequest, false},
		{"unknown feature", modifyBooking.ErrUnknownFeature, http.StatusBadRequest, false},
		{"not found", modifyBooking.ErrBookingNotFound, http.StatusNotFound, false},
		{"access denied", modifyBooking.ErrAccessDenied, http.StatusForbidden, false},
		{"not modifiable", modifyBooking.ErrNotModifiable, http.StatusConflict, false},
		{"remote unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, true},
		{"remote failure", &domain.ServiceError{StatusCode: 500, Message: "booking service down"}, http.StatusBadGateway, false},
		{"internal", modifyBooking.ErrInternal, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(`{"features":[]}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLogout {
				assert.Equal(t, "true", rec.Header().Get(handlers.HeaderSessionLogout))
			} else {
				assert.Empty(t, rec.Header().Get(handlers.HeaderSessionLogout))
			}
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := new(MockUseCase)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(`{"dates":"tomorrow"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_MissingUser(t *testing.T) {
	uc := new(MockUseCase)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/b-1", strings.NewReader(`{}`))

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(handlers.HeaderSessionLogout))
}
