package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	paymentRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/stripegateway"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return testNow }

// memoryPayments повторяет условные переходы репозитория
type memoryPayments struct {
	items map[string]*domain.Payment
}

func (m *memoryPayments) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryPayments) GetByCheckoutSessionID(_ context.Context, sessionID string) (*domain.Payment, error) {
	for _, p := range m.items {
		if p.CheckoutSessionID != nil && *p.CheckoutSessionID == sessionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (m *memoryPayments) ListByStatus(_ context.Context, status domain.PaymentStatus, _ uint64) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range m.items {
		if p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryPayments) TransitionStatus(_ context.Context, id string, from []domain.PaymentStatus, upd paymentRepo.StatusUpdate) error {
	p, ok := m.items[id]
	if !ok {
		return paymentRepo.ErrStatusConflict
	}
	allowed := false
	for _, s := range from {
		if p.Status == s {
			allowed = true
		}
	}
	if !allowed {
		return paymentRepo.ErrStatusConflict
	}
	p.Status = upd.Status
	p.ProviderPaymentID = upd.ProviderPaymentID
	p.FailureReason = upd.FailureReason
	p.VerifiedAt = upd.VerifiedAt
	return nil
}

func (m *memoryPayments) IncrementAttempts(_ context.Context, id string) error {
	p, ok := m.items[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.Attempts++
	return nil
}

type MockBookingClient struct {
	mock.Mock
}

func (m *MockBookingClient) Update(ctx context.Context, id string, u domain.BookingUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type fakeVerifier map[string]*paymentgateway.Transaction

func (f fakeVerifier) GetTransaction(_ context.Context, ref string) (*paymentgateway.Transaction, error) {
	tx, ok := f[ref]
	if !ok {
		return nil, paymentgateway.ErrTransactionNotFound
	}
	return tx, nil
}

type fakeWebhooks struct {
	event *stripegateway.WebhookEvent
	err   error
}

func (f fakeWebhooks) ParseWebhook(_ []byte, _ string) (*stripegateway.WebhookEvent, error) {
	return f.event, f.err
}

type recordingPublisher struct{ events []events.Event }

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) Payment(string, string) {}

func paidUpdate(method domain.PaymentType, providerID string) interface{} {
	return mock.MatchedBy(func(u domain.BookingUpdate) bool {
		return u.CompletedPayment != nil && *u.CompletedPayment &&
			*u.PaymentType == method && *u.PaymentID == providerID && u.TotalCost == nil
	})
}

func qrPayment(id, ref string, amount float64, createdAt time.Time) *domain.Payment {
	return &domain.Payment{
		ID:             id,
		BookingID:      "bk-" + id,
		UserID:         "user-1",
		Method:         domain.PaymentQRCode,
		Status:         domain.PaymentStatusPendingVerification,
		Amount:         amount,
		TransactionRef: ptr.Ptr(ref),
		CreatedAt:      createdAt,
	}
}

func TestVerifyPending(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{
		"p-ok":      qrPayment("p-ok", "TX-OK", 105, testNow.Add(-time.Hour)),
		"p-pending": qrPayment("p-pending", "TX-WAIT", 105, testNow.Add(-time.Hour)),
		"p-failed":  qrPayment("p-failed", "TX-FAIL", 105, testNow.Add(-time.Hour)),
		"p-short":   qrPayment("p-short", "TX-SHORT", 105, testNow.Add(-time.Hour)),
		"p-old":     qrPayment("p-old", "TX-WAIT", 105, testNow.Add(-48*time.Hour)),
	}}
	verifier := fakeVerifier{
		"TX-OK":    {Reference: "TX-OK", Status: "succeeded", Amount: 105},
		"TX-WAIT":  {Reference: "TX-WAIT", Status: "pending"},
		"TX-FAIL":  {Reference: "TX-FAIL", Status: "declined"},
		"TX-SHORT": {Reference: "TX-SHORT", Status: "succeeded", Amount: 50},
	}
	bookings := &MockBookingClient{}
	bookings.On("Update", mock.Anything, "bk-p-ok", paidUpdate(domain.PaymentQRCode, "TX-OK")).
		Return(&domain.Booking{ID: "bk-p-ok", CompletedPayment: true}, nil).Once()
	publisher := &recordingPublisher{}

	uc := NewUseCase(repo, bookings, nil, verifier, publisher, nopMetrics{}, Config{MaxAge: 24 * time.Hour}, logger.NewNop()).
		WithTimeProvider(fixedTime{})

	report, err := uc.VerifyPending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Report{Checked: 5, Verified: 1, Failed: 2, Expired: 1, Pending: 1}, report)
	assert.Equal(t, domain.PaymentStatusVerified, repo.items["p-ok"].Status)
	assert.Equal(t, "TX-OK", *repo.items["p-ok"].ProviderPaymentID)
	assert.Equal(t, domain.PaymentStatusPendingVerification, repo.items["p-pending"].Status)
	assert.Equal(t, 1, repo.items["p-pending"].Attempts)
	assert.Equal(t, domain.PaymentStatusFailed, repo.items["p-failed"].Status)
	assert.Equal(t, domain.PaymentStatusFailed, repo.items["p-short"].Status)
	assert.Equal(t, domain.PaymentStatusExpired, repo.items["p-old"].Status)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.BookingPaymentConfirmed, publisher.events[0].Type)
	bookings.AssertExpectations(t)
}

func TestVerifyPending_BookingUpdateFailureKeepsClaimOpen(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{
		"p-ok": qrPayment("p-ok", "TX-OK", 105, testNow.Add(-time.Hour)),
	}}
	bookings := &MockBookingClient{}
	bookings.On("Update", mock.Anything, "bk-p-ok", mock.Anything).
		Return(nil, &domain.ServiceError{StatusCode: 502, Message: "bad gateway"})

	uc := NewUseCase(repo, bookings, nil, fakeVerifier{"TX-OK": {Reference: "TX-OK", Status: "paid", Amount: 105}},
		&recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop()).WithTimeProvider(fixedTime{})

	report, err := uc.VerifyPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, domain.PaymentStatusPendingVerification, repo.items["p-ok"].Status)
}

func TestGetStatus(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{
		"p-ok": qrPayment("p-ok", "TX-OK", 105, testNow.Add(-time.Hour)),
	}}
	bookings := &MockBookingClient{}
	bookings.On("Update", mock.Anything, "bk-p-ok", mock.Anything).Return(&domain.Booking{ID: "bk-p-ok"}, nil)

	uc := NewUseCase(repo, bookings, nil, fakeVerifier{"TX-OK": {Reference: "TX-OK", Status: "succeeded", Amount: 105}},
		&recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop()).WithTimeProvider(fixedTime{})

	_, err := uc.GetStatus(context.Background(), "p-ok", "user-2")
	assert.ErrorIs(t, err, ErrAccessDenied)

	p, err := uc.GetStatus(context.Background(), "p-ok", "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusVerified, p.Status)

	_, err = uc.GetStatus(context.Background(), "p-404", "user-1")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func stripePayment() *domain.Payment {
	return &domain.Payment{
		ID:                "p-stripe",
		BookingID:         "bk-1",
		UserID:            "user-1",
		Method:            domain.PaymentStripe,
		Status:            domain.PaymentStatusPending,
		Amount:            105,
		CheckoutSessionID: ptr.Ptr("cs_test_1"),
		CreatedAt:         testNow,
	}
}

func TestHandleStripeWebhook_Completed(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{"p-stripe": stripePayment()}}
	bookings := &MockBookingClient{}
	bookings.On("Update", mock.Anything, "bk-1", paidUpdate(domain.PaymentStripe, "pi_123")).
		Return(&domain.Booking{ID: "bk-1"}, nil).Once()
	publisher := &recordingPublisher{}

	event := &stripegateway.WebhookEvent{
		ID:              "evt_1",
		Type:            stripegateway.EventCheckoutCompleted,
		SessionID:       "cs_test_1",
		PaymentIntentID: "pi_123",
		Paid:            true,
	}
	uc := NewUseCase(repo, bookings, fakeWebhooks{event: event}, fakeVerifier{}, publisher, nopMetrics{}, Config{}, logger.NewNop()).
		WithTimeProvider(fixedTime{})

	require.NoError(t, uc.HandleStripeWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Equal(t, domain.PaymentStatusVerified, repo.items["p-stripe"].Status)

	// повторная доставка
	require.NoError(t, uc.HandleStripeWebhook(context.Background(), []byte(`{}`), "sig"))
	bookings.AssertNumberOfCalls(t, "Update", 1)
	assert.Len(t, publisher.events, 1)
}

func TestHandleStripeWebhook_Expired(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{"p-stripe": stripePayment()}}
	event := &stripegateway.WebhookEvent{Type: stripegateway.EventCheckoutExpired, SessionID: "cs_test_1", PaymentID: "p-stripe"}
	bookings := &MockBookingClient{}

	uc := NewUseCase(repo, bookings, fakeWebhooks{event: event}, fakeVerifier{}, &recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop())

	require.NoError(t, uc.HandleStripeWebhook(context.Background(), nil, "sig"))
	assert.Equal(t, domain.PaymentStatusExpired, repo.items["p-stripe"].Status)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleStripeWebhook_Errors(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{}}

	uc := NewUseCase(repo, &MockBookingClient{}, fakeWebhooks{err: stripegateway.ErrInvalidSignature}, fakeVerifier{},
		&recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop())
	assert.ErrorIs(t, uc.HandleStripeWebhook(context.Background(), nil, "bad"), ErrInvalidSignature)

	uc = NewUseCase(repo, &MockBookingClient{}, nil, fakeVerifier{}, &recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop())
	assert.ErrorIs(t, uc.HandleStripeWebhook(context.Background(), nil, "sig"), ErrWebhookDisabled)

	other := &stripegateway.WebhookEvent{Type: "invoice.paid"}
	uc = NewUseCase(repo, &MockBookingClient{}, fakeWebhooks{event: other}, fakeVerifier{}, &recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop())
	assert.NoError(t, uc.HandleStripeWebhook(context.Background(), nil, "sig"))

	unknown := &stripegateway.WebhookEvent{Type: stripegateway.EventCheckoutCompleted, SessionID: "cs_unknown", Paid: true}
	uc = NewUseCase(repo, &MockBookingClient{}, fakeWebhooks{event: unknown}, fakeVerifier{}, &recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop())
	assert.NoError(t, uc.HandleStripeWebhook(context.Background(), nil, "sig"))
}

func TestVerify_GatewayErrorCountsAttempt(t *testing.T) {
	repo := &memoryPayments{items: map[string]*domain.Payment{
		"p-1": qrPayment("p-1", "TX-1", 10, testNow),
	}}
	uc := NewUseCase(repo, &MockBookingClient{}, nil, errVerifier{}, &recordingPublisher{}, nopMetrics{}, Config{}, logger.NewNop()).
		WithTimeProvider(fixedTime{})

	report, err := uc.VerifyPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, 1, repo.items["p-1"].Attempts)
}

type errVerifier struct{}

func (errVerifier) GetTransaction(context.Context, string) (*paymentgateway.Transaction, error) {
	return nil, errors.New("timeout")
}
