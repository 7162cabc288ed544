package carservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Price
		wantErr bool
	}{
		{`120`, 120, false},
		{`"120"`, 120, false},
		{`"12.5"`, 12.5, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p Price
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	api := apiclient.NewClient(server.URL, 5*time.Second, logger.NewNop())
	return NewClient(api, logger.NewNop())
}

func TestClient_GetCar(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cars/c-1":
			w.Write([]byte(`{"success":true,"data":{"_id":"c-1","name":"Corolla","model":"X","year":2021,"carType":"sedan","pricePerHour":"10","pricePerDay":"100","features":["GPS Navigation"],"images":[{"url":"http://img/1.png","blurHash":"L"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"Car not found"}`))
		}
	})

	car, err := client.GetCar(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Corolla", car.Name)
	assert.Equal(t, "2021", car.Year)
	assert.Equal(t, 10.0, car.PricePerHour)
	assert.Equal(t, 100.0, car.PricePerDay)
	assert.Equal(t, []string{"http://img/1.png"}, car.Images)

	_, err = client.GetCar(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrCarNotFound))
}

func TestClient_ListCars(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cars", r.URL.Path)
		assert.Equal(t, "suv", r.URL.Query().Get("carType"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, start.Format(time.RFC3339), r.URL.Query().Get("startDate"))
		w.Write([]byte(`{"success":true,"meta":{"total":2,"pageNumber":2,"limitDataCount":10,"totalPage":2},"data":[{"_id":"c-1","pricePerHour":"10","pricePerDay":"100"},{"_id":"c-2","isDeleted":true}]}`))
	})

	trip := domain.TripRange{Start: start, End: start.Add(24 * time.Hour)}
	cars, meta, err := client.ListCars(context.Background(), domain.CarFilter{CarType: "suv", Page: 2, Trip: &trip})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "c-1", cars[0].ID)
	assert.Equal(t, 2, meta.Total)
}
