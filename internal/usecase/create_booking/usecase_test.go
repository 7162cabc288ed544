package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	sessionRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/tripsession"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return testNow }

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Get(ctx context.Context, id string) (*domain.TripSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripSession), args.Error(1)
}

func (m *MockSessionRepo) Save(ctx context.Context, s *domain.TripSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockCarClient struct {
	mock.Mock
}

func (m *MockCarClient) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

type MockBookingClient struct {
	mock.Mock
}

func (m *MockBookingClient) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type nopMetrics struct{ created []string }

func (m *nopMetrics) BookingCreated(paymentType string) { m.created = append(m.created, paymentType) }

type recordingPublisher struct{ events []events.Event }

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	uc        *UseCase
	sessions  *MockSessionRepo
	cars      *MockCarClient
	bookings  *MockBookingClient
	metrics   *nopMetrics
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		sessions:  &MockSessionRepo{},
		cars:      &MockCarClient{},
		bookings:  &MockBookingClient{},
		metrics:   &nopMetrics{},
		publisher: &recordingPublisher{},
	}
	f.uc = NewUseCase(f.sessions, f.cars, f.bookings, f.publisher, f.metrics, domain.DefaultFeatureCatalog(), logger.NewNop()).
		WithTimeProvider(fixedTime{})
	return f
}

func newSession() *domain.TripSession {
	s := domain.NewTripSession("sess-1", "user-1", testNow)
	s.Destination = domain.DestinationInfo{Origin: "Dhaka", Destination: "Sylhet"}
	s.Features = domain.NewFeatureSelection(domain.Feature{Label: "GPS Navigation", Price: 5})
	return s
}

func validRequest(paymentType string) *Request {
	return &Request{
		SessionID:      "sess-1",
		UserID:         "user-1",
		CarID:          "car-1",
		NIDOrPassport:  "1990123456",
		DrivingLicense: "DL-42",
		PaymentType:    paymentType,
	}
}

var testCar = &domain.Car{ID: "car-1", Name: "Corolla", PricePerHour: 10, PricePerDay: 100}

func TestExecute_QRWithoutAcknowledgment(t *testing.T) {
	f := newFixture()
	f.sessions.On("Get", mock.Anything, "sess-1").Return(newSession(), nil)

	_, err := f.uc.Execute(context.Background(), validRequest("qr code"))

	assert.ErrorIs(t, err, ErrQRPaymentNotAcknowledged)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.cars.AssertNotCalled(t, "GetCar", mock.Anything, mock.Anything)
}

func TestExecute_Stripe(t *testing.T) {
	f := newFixture()
	f.sessions.On("Get", mock.Anything, "sess-1").Return(newSession(), nil)
	f.cars.On("GetCar", mock.Anything, "car-1").Return(testCar, nil)

	var sent *domain.Booking
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*domain.Booking) }).
		Return(&domain.Booking{ID: "bk-1", Status: domain.StatusPending, TotalCost: 105}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest("stripe"))
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Equal(t, 105.0, sent.TotalCost)
	assert.True(t, sent.CompletedPayment)
	assert.Equal(t, domain.StatusPending, sent.Status)
	assert.Equal(t, "Dhaka", sent.Origin)
	assert.Equal(t, []domain.BookedFeature{{Name: "GPS Navigation", Price: 5}}, sent.AdditionalFeatures)
	assert.True(t, domain.IsOTPCandidate(sent.OTP))

	assert.Equal(t, BookingsListRoute, resp.Redirect)
	assert.Equal(t, testCar, resp.Booking.Car)
	assert.Equal(t, []string{"stripe"}, f.metrics.created)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingCreated, f.publisher.events[0].Type)
	f.sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExecute_Cash(t *testing.T) {
	f := newFixture()
	f.sessions.On("Get", mock.Anything, "sess-1").Return(newSession(), nil)
	f.cars.On("GetCar", mock.Anything, "car-1").Return(testCar, nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return !b.CompletedPayment && b.Status == domain.StatusPending && b.PaymentType == domain.PaymentCash
	})).Return(&domain.Booking{ID: "bk-1"}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("cash"))
	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestExecute_QRAcknowledged(t *testing.T) {
	f := newFixture()
	session := newSession()
	session.QRAck = &domain.QRAcknowledgment{TransactionRef: "TX-1", Amount: 105, AcknowledgedAt: testNow}

	f.sessions.On("Get", mock.Anything, "sess-1").Return(session, nil)
	f.sessions.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.TripSession) bool {
		return s.QRAck == nil
	})).Return(nil)
	f.cars.On("GetCar", mock.Anything, "car-1").Return(testCar, nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PaymentID == "TX-1" && b.Status == domain.StatusApproved && b.CompletedPayment
	})).Return(&domain.Booking{ID: "bk-1", Status: domain.StatusApproved}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("qr_code"))
	require.NoError(t, err)
	f.sessions.AssertExpectations(t)
	f.bookings.AssertExpectations(t)
}

func TestExecute_QRInsufficientAmount(t *testing.T) {
	f := newFixture()
	session := newSession()
	session.QRAck = &domain.QRAcknowledgment{TransactionRef: "TX-1", Amount: 50}

	f.sessions.On("Get", mock.Anything, "sess-1").Return(session, nil)
	f.cars.On("GetCar", mock.Anything, "car-1").Return(testCar, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("qr_code"))
	assert.ErrorIs(t, err, ErrQRPaymentInsufficient)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ServiceErrorLeavesSessionUntouched(t *testing.T) {
	f := newFixture()
	session := newSession()
	session.QRAck = &domain.QRAcknowledgment{TransactionRef: "TX-1", Amount: 105}
	remoteErr := &domain.ServiceError{StatusCode: 400, Message: "Car already booked"}

	f.sessions.On("Get", mock.Anything, "sess-1").Return(session, nil)
	f.cars.On("GetCar", mock.Anything, "car-1").Return(testCar, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, remoteErr)

	_, err := f.uc.Execute(context.Background(), validRequest("qr_code"))
	assert.ErrorIs(t, err, domain.ErrServiceError)
	f.sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
	assert.Empty(t, f.metrics.created)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"missing nid", func(r *Request) { r.NIDOrPassport = " " }},
		{"missing license", func(r *Request) { r.DrivingLicense = "" }},
		{"missing car", func(r *Request) { r.CarID = "" }},
		{"unknown payment", func(r *Request) { r.PaymentType = "bitcoin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest("cash")
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			f.sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_SessionErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.sessions.On("Get", mock.Anything, "sess-1").Return(nil, sessionRepo.ErrSessionNotFound)

		_, err := f.uc.Execute(context.Background(), validRequest("cash"))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("foreign session", func(t *testing.T) {
		f := newFixture()
		session := newSession()
		session.UserID = "user-2"
		f.sessions.On("Get", mock.Anything, "sess-1").Return(session, nil)

		_, err := f.uc.Execute(context.Background(), validRequest("cash"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestExecute_DeletedCar(t *testing.T) {
	f := newFixture()
	f.sessions.On("Get", mock.Anything, "sess-1").Return(newSession(), nil)
	f.cars.On("GetCar", mock.Anything, "car-1").Return(&domain.Car{ID: "car-1", IsDeleted: true}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("cash"))
	assert.ErrorIs(t, err, ErrCarUnavailable)
}

func TestPoolOTPPicker(t *testing.T) {
	picker := PoolOTPPicker{}
	for i := 0; i < 200; i++ {
		assert.True(t, domain.IsOTPCandidate(picker.Pick()))
	}
}
