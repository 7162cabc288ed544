package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
)

type carData struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second, logger.NewNop())
}

func ctxWithCreds(access, refresh string) (context.Context, *auth.Credentials) {
	creds := auth.NewCredentials("u-1", "user", access, refresh)
	return auth.WithCredentials(context.Background(), creds), creds
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cars/c-1", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"statusCode":200,"success":true,"message":"ok","meta":{"total":1,"pageNumber":1,"limitDataCount":10,"totalPage":1},"data":{"_id":"c-1","name":"Corolla"}}`))
	}))
	defer server.Close()

	ctx, _ := ctxWithCreds("access-1", "refresh-1")

	var out carData
	meta, err := newTestClient(server.URL).Do(ctx, http.MethodGet, "/cars/c-1", nil, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", out.Name)
	require.NotNil(t, meta)
	assert.Equal(t, 1, meta.Total)
}

func TestClient_Do_RefreshesOnceAndRetries(t *testing.T) {
	var calls, refreshes int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == DefaultRefreshPath {
			atomic.AddInt32(&refreshes, 1)
			cookie, err := r.Cookie(RefreshTokenCookie)
			if assert.NoError(t, err) {
				assert.Equal(t, "refresh-1", cookie.Value)
			}
			w.Write([]byte(`{"statusCode":200,"success":true,"data":{"accessToken":"access-2"}}`))
			return
		}

		atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"jwt expired"}`))
			return
		}
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"_id":"c-1","name":"Corolla"}}`))
	}))
	defer server.Close()

	ctx, creds := ctxWithCreds("access-1", "refresh-1")

	var out carData
	_, err := newTestClient(server.URL).Do(ctx, http.MethodGet, "/cars/c-1", nil, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", out.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshes))

	token, refreshed := creds.RefreshedToken()
	assert.True(t, refreshed)
	assert.Equal(t, "access-2", token)
}

func TestClient_Do_SecondUnauthorizedIsAuthError(t *testing.T) {
	var calls, refreshes int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == DefaultRefreshPath {
			atomic.AddInt32(&refreshes, 1)
			w.Write([]byte(`{"statusCode":200,"success":true,"data":{"accessToken":"access-2"}}`))
			return
		}
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx, _ := ctxWithCreds("access-1", "refresh-1")

	_, err := newTestClient(server.URL).Do(ctx, http.MethodDelete, "/bookings/b-1", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshes))
}

func TestClient_Do_RefreshRejected(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == DefaultRefreshPath {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"refresh token expired"}`))
			return
		}
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx, _ := ctxWithCreds("access-1", "refresh-1")

	_, err := newTestClient(server.URL).Do(ctx, http.MethodGet, "/bookings/my-bookings", nil, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Do_ServiceErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
		wantStack   string
	}{
		{
			name:        "error payload",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"message":"Car is not available","stack":"Error: at booking.service"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Car is not available",
			wantStack:   "Error: at booking.service",
		},
		{
			name:        "success false with 200",
			status:      http.StatusOK,
			body:        `{"statusCode":200,"success":false,"message":"Booking failed"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "Booking failed",
		},
		{
			name:        "non json body",
			status:      http.StatusBadGateway,
			body:        `upstream down`,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Do(context.Background(), http.MethodPost, "/bookings", nil, map[string]string{"a": "b"}, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrServiceError))

			var svcErr *domain.ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tt.wantStatus, svcErr.StatusCode)
			assert.Equal(t, tt.wantMessage, svcErr.Message)
			assert.Equal(t, tt.wantStack, svcErr.Stack)
		})
	}
}

func TestClient_Do_NoCredentialsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Do(context.Background(), http.MethodGet, "/cars", nil, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&domain.ServiceError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&domain.ServiceError{StatusCode: http.StatusBadRequest}))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "GET /cars", endpointLabel(http.MethodGet, "/cars/c-1"))
	assert.Equal(t, "POST /bookings", endpointLabel(http.MethodPost, "/bookings"))
}
