package bookingservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

const populatedBooking = `{
	"_id": "b-1",
	"user": {"_id": "u-1", "email": "rider@example.com"},
	"carId": {"_id": "c-1", "name": "Corolla", "pricePerHour": "10", "pricePerDay": "100"},
	"origin": "Dhaka",
	"destination": "Sylhet",
	"drivingLicense": "DL-1",
	"nidOrPassport": "NID-1",
	"startDate": "2025-06-10T10:00:00Z",
	"endDate": "2025-06-11T10:00:00Z",
	"totalCost": 105,
	"additionalFeatures": [{"name": "GPS Navigation", "price": 5}],
	"paymentType": "Google Pay",
	"paymentId": "",
	"completedPayment": false,
	"status": "approved",
	"otp": 1003
}`

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(apiclient.NewClient(server.URL, 5*time.Second, logger.NewNop()), logger.NewNop())
}

func TestBooking_UnmarshalCarRef(t *testing.T) {
	var populated Booking
	require.NoError(t, json.Unmarshal([]byte(populatedBooking), &populated))
	b := populated.ToDomain()
	assert.Equal(t, "c-1", b.CarID)
	require.NotNil(t, b.Car)
	assert.Equal(t, 100.0, b.Car.PricePerDay)
	assert.Equal(t, "u-1", b.UserID)
	assert.Equal(t, domain.PaymentGooglePay, b.PaymentType)
	assert.Equal(t, domain.StatusApproved, b.Status)
	assert.Equal(t, 24, b.Trip.DurationHours())

	var bare Booking
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b-2","carId":"c-9","user":"u-2","paymentType":"razorpay"}`), &bare))
	b = bare.ToDomain()
	assert.Equal(t, "c-9", b.CarID)
	assert.Nil(t, b.Car)
	assert.Equal(t, "u-2", b.UserID)
	assert.Equal(t, domain.PaymentType("razorpay"), b.PaymentType)
}

func TestClient_Create(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var payload CreatePayload
		if assert.NoError(t, json.Unmarshal(body, &payload)) {
			assert.Equal(t, "c-1", payload.CarID)
			assert.Equal(t, "Google Pay", payload.PaymentType)
			assert.True(t, payload.CompletedPayment)
			assert.Equal(t, []FeaturePayload{{Name: "GPS Navigation", Price: 5}}, payload.AdditionalFeatures)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"statusCode":201,"success":true,"data":` + populatedBooking + `}`))
	})

	created, err := client.Create(context.Background(), &domain.Booking{
		CarID:              "c-1",
		PaymentType:        domain.PaymentGooglePay,
		CompletedPayment:   true,
		AdditionalFeatures: []domain.BookedFeature{{Name: "GPS Navigation", Price: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "b-1", created.ID)
}

func TestClient_UpdateOnlySendsChangedFields(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bookings/b-1", r.URL.Path)

		var raw map[string]interface{}
		body, _ := io.ReadAll(r.Body)
		if assert.NoError(t, json.Unmarshal(body, &raw)) {
			assert.Equal(t, "cash", raw["paymentType"])
			assert.Equal(t, false, raw["completedPayment"])
			assert.NotContains(t, raw, "startDate")
			assert.NotContains(t, raw, "totalCost")
		}
		w.Write([]byte(`{"success":true,"data":` + populatedBooking + `}`))
	})

	cash := domain.PaymentCash
	_, err := client.Update(context.Background(), "b-1", domain.BookingUpdate{
		PaymentType:      &cash,
		CompletedPayment: ptr.Ptr(false),
	})
	require.NoError(t, err)
}

func TestClient_GetAndDeleteNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Booking not found"}`))
	})

	_, err := client.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrBookingNotFound))

	err = client.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrBookingNotFound))
}

func TestClient_ListMine(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/my-bookings", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[` + populatedBooking + `]}`))
	})

	bookings, err := client.ListMine(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 1003, bookings[0].OTP)
}
