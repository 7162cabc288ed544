package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/pkg/psqlbuilder"
)

// Repository репозиторий записей об оплате бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оплат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись об оплате
// Вторая оплата в статусе pending или pending_verification для того же бронирования отклоняется с ErrPaymentInFlight
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"id",
			"booking_id",
			"user_id",
			"method",
			"status",
			"amount",
			"currency",
			"transaction_ref",
			"checkout_session_id",
			"checkout_url",
		).
		Values(
			p.ID,
			p.BookingID,
			p.UserID,
			p.Method,
			p.Status,
			p.Amount,
			p.Currency,
			p.TransactionRef,
			p.CheckoutSessionID,
			p.CheckoutURL,
		).
		Suffix("RETURNING attempts, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.Attempts,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isInFlightViolation(err) {
			return nil, fmt.Errorf("%w: booking %s", ErrPaymentInFlight, p.BookingID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает запись об оплате по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCheckoutSessionID получает запись по ID Stripe checkout session
func (r *Repository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByCheckoutSessionID", squirrel.Eq{"checkout_session_id": sessionID})
}

// ListByStatus получает оплаты в статусе, старые первыми
func (r *Repository) ListByStatus(ctx context.Context, status domain.PaymentStatus, limit uint64) ([]*domain.Payment, error) {
	builder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at ASC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// ListByBooking получает все оплаты бронирования, новые первыми
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Payment, error) {
	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// TransitionStatus переводит оплату в новый статус, только если текущий статус входит в from
func (r *Repository) TransitionStatus(ctx context.Context, id string, from []domain.PaymentStatus, upd StatusUpdate) error {
	builder := psqlbuilder.Update("payments").
		Set("status", upd.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if len(from) > 0 {
		statuses := make([]string, len(from))
		for i, s := range from {
			statuses[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if upd.ProviderPaymentID != nil {
		builder = builder.Set("provider_payment_id", *upd.ProviderPaymentID)
	}
	if upd.FailureReason != nil {
		builder = builder.Set("failure_reason", *upd.FailureReason)
	}
	if upd.VerifiedAt != nil {
		builder = builder.Set("verified_at", *upd.VerifiedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// AttachCheckoutSession сохраняет данные Stripe checkout session у ожидающей оплаты
func (r *Repository) AttachCheckoutSession(ctx context.Context, id, sessionID, checkoutURL string) error {
	query, args, err := psqlbuilder.Update("payments").
		Set("checkout_session_id", sessionID).
		Set("checkout_url", checkoutURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.PaymentStatusPending)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AttachCheckoutSession - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachCheckoutSession - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AttachCheckoutSession - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// IncrementAttempts увеличивает счетчик проверок у шлюза
func (r *Repository) IncrementAttempts(ctx context.Context, id string) error {
	query, args, err := psqlbuilder.Update("payments").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementAttempts - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementAttempts - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementAttempts - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Payment, error) {
	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.UserID,
		&p.Method,
		&p.Status,
		&p.Amount,
		&p.Currency,
		&p.TransactionRef,
		&p.CheckoutSessionID,
		&p.CheckoutURL,
		&p.ProviderPaymentID,
		&p.Attempts,
		&p.FailureReason,
		&p.VerifiedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// scanPayments сканирует результаты запроса в слайс оплат
func scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

func isInFlightViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == inFlightIndex
}
