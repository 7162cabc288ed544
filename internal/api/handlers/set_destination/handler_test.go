package set_destination

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession/models"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) SetDestination(ctx context.Context, id, userID string, req models.SetDestinationRequest) (*models.SessionResponse, error) {
	args := m.Called(ctx, id, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResponse), args.Error(1)
}

func (m *MockSessionService) ClearDestination(ctx context.Context, id, userID string) (*models.SessionResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResponse), args.Error(1)
}

func newRequest(method, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/v1/sessions/s-1/destination", nil)
	} else {
		req = httptest.NewRequest(method, "/api/v1/sessions/s-1/destination", strings.NewReader(body))
	}
	req = mux.SetURLVars(req, map[string]string{"sessionId": "s-1"})
	creds := auth.NewCredentials("user-1", "user", "token", "")
	return req.WithContext(auth.WithCredentials(req.Context(), creds))
}

func TestHandle_PartialUpdate(t *testing.T) {
	svc := new(MockSessionService)
	svc.On("SetDestination", mock.Anything, "s-1", "user-1", models.SetDestinationRequest{Destination: "Chittagong"}).
		Return(&models.SessionResponse{ID: "s-1", Destination: models.DestinationResponse{Origin: "Dhaka", Destination: "Chittagong"}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(http.MethodPatch, `{"destination":"Chittagong"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data models.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Dhaka", env.Data.Destination.Origin)
	assert.Equal(t, "Chittagong", env.Data.Destination.Destination)
}

func TestHandleClear(t *testing.T) {
	svc := new(MockSessionService)
	svc.On("ClearDestination", mock.Anything, "s-1", "user-1").Return(&models.SessionResponse{ID: "s-1"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).HandleClear(rec, newRequest(http.MethodDelete, ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid", tripsession.ErrInvalidInput, http.StatusBadRequest},
		{"session expired", tripsession.ErrSessionNotFound, http.StatusNotFound},
		{"foreign session", tripsession.ErrAccessDenied, http.StatusForbidden},
		{"internal", tripsession.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSessionService)
			svc.On("SetDestination", mock.Anything, "s-1", "user-1", mock.Anything).Return(nil, tt.err)
			svc.On("ClearDestination", mock.Anything, "s-1", "user-1").Return(nil, tt.err)
			h := NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(http.MethodPatch, `{"origin":"Dhaka"}`))
			assert.Equal(t, tt.wantStatus, rec.Code)

			rec = httptest.NewRecorder()
			h.HandleClear(rec, newRequest(http.MethodDelete, ""))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_UnknownField(t *testing.T) {
	svc := new(MockSessionService)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(http.MethodPatch, `{"city":"Dhaka"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SetDestination", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
