package payment_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

var columns = []string{
	"id", "booking_id", "user_id", "method", "status", "amount", "currency",
	"transaction_ref", "checkout_session_id", "checkout_url", "provider_payment_id",
	"attempts", "failure_reason", "verified_at", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &domain.Payment{
		ID:             "pay-1",
		BookingID:      "bk-1",
		UserID:         "user-1",
		Method:         domain.PaymentQRCode,
		Status:         domain.PaymentStatusPendingVerification,
		Amount:         150,
		Currency:       "usd",
		TransactionRef: ptr.Ptr("TX-1"),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs("pay-1", "bk-1", "user-1", domain.PaymentQRCode, domain.PaymentStatusPendingVerification,
			150.0, "usd", p.TransactionRef, p.CheckoutSessionID, p.CheckoutURL).
		WillReturnRows(sqlmock.NewRows([]string{"attempts", "created_at", "updated_at"}).AddRow(0, now, now))

	created, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, 0, created.Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_PaymentInFlight(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)

	p := &domain.Payment{
		ID:        "pay-2",
		BookingID: "bk-1",
		UserID:    "user-1",
		Method:    domain.PaymentStripe,
		Status:    domain.PaymentStatusPending,
		Amount:    150,
		Currency:  "usd",
	}

	t.Run("open payment for the same booking", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_payments_booking_in_flight"})

		_, err := repo.Create(context.Background(), p)
		assert.ErrorIs(t, err, payment.ErrPaymentInFlight)
	})

	t.Run("other unique violation", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "payments_pkey"})

		_, err := repo.Create(context.Background(), p)
		assert.ErrorIs(t, err, payment.ErrExecQuery)
		assert.NotErrorIs(t, err, payment.ErrPaymentInFlight)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, booking_id, user_id")).
			WithArgs("pay-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"pay-1", "bk-1", "user-1", "stripe", "pending", 105.0, "usd",
				nil, "cs_test_1", "https://checkout.stripe.com/c/pay/cs_test_1", nil,
				0, nil, nil, now, now,
			))

		p, err := repo.GetByID(context.Background(), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStripe, p.Method)
		assert.Equal(t, domain.PaymentStatusPending, p.Status)
		assert.Nil(t, p.TransactionRef)
		require.NotNil(t, p.CheckoutSessionID)
		assert.Equal(t, "cs_test_1", *p.CheckoutSessionID)
		assert.Nil(t, p.VerifiedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, booking_id, user_id")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, booking_id")).
		WithArgs(domain.PaymentStatusPendingVerification).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("pay-1", "bk-1", "user-1", "qr_code", "pending_verification", 10.0, "usd",
				"TX-1", nil, nil, nil, 2, nil, nil, now, now).
			AddRow("pay-2", "bk-2", "user-2", "google_pay", "pending_verification", 20.0, "usd",
				"TX-2", nil, nil, nil, 0, nil, nil, now, now))

	payments, err := repo.ListByStatus(context.Background(), domain.PaymentStatusPendingVerification, 50)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "TX-1", *payments[0].TransactionRef)
	assert.Equal(t, 2, payments[0].Attempts)
	assert.Equal(t, domain.PaymentGooglePay, payments[1].Method)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByBooking(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE booking_id = $1 ORDER BY created_at DESC")).
		WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("pay-2", "bk-1", "user-1", "qr_code", "pending_verification", 105.0, "usd",
				"TX-2", nil, nil, nil, 1, nil, nil, now, now).
			AddRow("pay-1", "bk-1", "user-1", "stripe", "expired", 105.0, "usd",
				nil, "cs_test_1", nil, nil, 0, "checkout session expired", nil, now.Add(-time.Hour), now))

	payments, err := repo.ListByBooking(context.Background(), "bk-1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "pay-2", payments[0].ID)
	assert.Equal(t, domain.PaymentStatusPendingVerification, payments[0].Status)
	assert.Equal(t, domain.PaymentStatusExpired, payments[1].Status)
	require.NotNil(t, payments[1].FailureReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransitionStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)
	verifiedAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	from := []domain.PaymentStatus{domain.PaymentStatusPendingVerification}

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
			WithArgs(domain.PaymentStatusVerified, verifiedAt, "pay-1", "pending_verification").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.TransitionStatus(context.Background(), "pay-1", from, payment.StatusUpdate{
			Status:     domain.PaymentStatusVerified,
			VerifiedAt: &verifiedAt,
		})
		assert.NoError(t, err)
	})

	t.Run("already moved", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE payments")).
			WithArgs(domain.PaymentStatusVerified, verifiedAt, "pay-1", "pending_verification").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.TransitionStatus(context.Background(), "pay-1", from, payment.StatusUpdate{
			Status:     domain.PaymentStatusVerified,
			VerifiedAt: &verifiedAt,
		})
		assert.ErrorIs(t, err, payment.ErrStatusConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AttachCheckoutSession(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)
	url := "https://checkout.stripe.com/c/pay/cs_test_1"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET checkout_session_id = $1, checkout_url = $2")).
		WithArgs("cs_test_1", url, "pay-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET checkout_session_id = $1, checkout_url = $2")).
		WithArgs("cs_test_1", url, "pay-2", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.AttachCheckoutSession(context.Background(), "pay-1", "cs_test_1", url))
	assert.ErrorIs(t, repo.AttachCheckoutSession(context.Background(), "pay-2", "cs_test_1", url), payment.ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IncrementAttempts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := payment.NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET attempts = attempts + 1")).
		WithArgs("pay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payments SET attempts = attempts + 1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.IncrementAttempts(context.Background(), "pay-1"))
	assert.ErrorIs(t, repo.IncrementAttempts(context.Background(), "missing"), payment.ErrPaymentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
