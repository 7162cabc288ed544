package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	paymentRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/stripegateway"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

var openStatuses = []domain.PaymentStatus{
	domain.PaymentStatusPending,
	domain.PaymentStatusPendingVerification,
}

// UseCase серверное подтверждение оплат: webhook Stripe и опрос платежного шлюза
// Бронирование получает completedPayment=true только после подтверждения
type UseCase struct {
	paymentRepo   PaymentRepository
	bookingClient BookingServiceClient
	webhooks      WebhookParser
	verifier      TransactionVerifier
	publisher     EventPublisher
	metrics       Metrics
	cfg           Config
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// webhooks может быть nil, если Stripe не настроен
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingClient BookingServiceClient,
	webhooks WebhookParser,
	verifier TransactionVerifier,
	publisher EventPublisher,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &UseCase{
		paymentRepo:   paymentRepo,
		bookingClient: bookingClient,
		webhooks:      webhooks,
		verifier:      verifier,
		publisher:     publisher,
		metrics:       metrics,
		cfg:           cfg,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// HandleStripeWebhook обрабатывает событие checkout session
// Повторная доставка того же события не меняет результат
func (uc *UseCase) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if uc.webhooks == nil {
		return ErrWebhookDisabled
	}

	event, err := uc.webhooks.ParseWebhook(payload, signature)
	if err != nil {
		uc.logger.Warn("StripeWebhook: rejected event: %v", err)
		if errors.Is(err, stripegateway.ErrInvalidSignature) {
			return ErrInvalidSignature
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("StripeWebhook: event id=%s, type=%s, session=%s, payment=%s",
		event.ID, event.Type, event.SessionID, event.PaymentID)

	switch event.Type {
	case stripegateway.EventCheckoutCompleted, stripegateway.EventCheckoutExpired:
	default:
		uc.logger.Info("StripeWebhook: ignoring event type=%s", event.Type)
		return nil
	}

	p, err := uc.findStripePayment(ctx, event)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			uc.logger.Warn("StripeWebhook: no payment for session=%s, payment=%s", event.SessionID, event.PaymentID)
			return nil
		}
		return err
	}

	if p.Status.IsFinal() {
		uc.logger.Info("StripeWebhook: payment id=%s already %s", p.ID, p.Status)
		return nil
	}

	if event.Type == stripegateway.EventCheckoutExpired {
		return uc.transition(ctx, p, domain.PaymentStatusExpired, "checkout session expired")
	}

	if !event.Paid {
		uc.logger.Info("StripeWebhook: session=%s completed but not paid yet", event.SessionID)
		return nil
	}

	providerID := event.PaymentIntentID
	if providerID == "" {
		providerID = event.SessionID
	}
	return uc.confirm(ctx, p, providerID)
}

// VerifyPending проверяет у шлюза все заявки QR / кошельков
func (uc *UseCase) VerifyPending(ctx context.Context) (*Report, error) {
	payments, err := uc.paymentRepo.ListByStatus(ctx, domain.PaymentStatusPendingVerification, uc.cfg.BatchSize)
	if err != nil {
		uc.logger.Error("VerifyPending: failed to list payments: %v", err)
		return nil, fmt.Errorf("%w: VerifyPending - list payments: %v", ErrInternal, err)
	}

	report := &Report{}
	for _, p := range payments {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Checked++
		status, err := uc.verify(ctx, p)
		if err != nil {
			uc.logger.Error("VerifyPending: payment id=%s: %v", p.ID, err)
		}

		switch status {
		case domain.PaymentStatusVerified:
			report.Verified++
		case domain.PaymentStatusFailed:
			report.Failed++
		case domain.PaymentStatusExpired:
			report.Expired++
		default:
			report.Pending++
		}
	}

	if report.Checked > 0 {
		uc.logger.Info("VerifyPending: checked=%d, verified=%d, failed=%d, expired=%d, pending=%d",
			report.Checked, report.Verified, report.Failed, report.Expired, report.Pending)
	}
	return report, nil
}

// GetStatus возвращает состояние оплаты владельцу
// Заявка, ожидающая проверки, проверяется у шлюза сразу
func (uc *UseCase) GetStatus(ctx context.Context, paymentID, userID string) (*domain.Payment, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidInput)
	}

	p, err := uc.get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		uc.logger.Warn("GetStatus: access denied for user=%s to payment id=%s", userID, paymentID)
		return nil, ErrAccessDenied
	}

	if p.Status != domain.PaymentStatusPendingVerification {
		return p, nil
	}

	if _, err := uc.verify(ctx, p); err != nil {
		uc.logger.Warn("GetStatus: verification of payment id=%s failed: %v", paymentID, err)
		return p, nil
	}

	return uc.get(ctx, paymentID)
}

// verify одна проверка заявки, возвращает статус после проверки
func (uc *UseCase) verify(ctx context.Context, p *domain.Payment) (domain.PaymentStatus, error) {
	if uc.timeProvider.Now().Sub(p.CreatedAt) > uc.cfg.MaxAge {
		return domain.PaymentStatusExpired, uc.transition(ctx, p, domain.PaymentStatusExpired, "verification window elapsed")
	}

	if p.TransactionRef == nil || *p.TransactionRef == "" {
		return domain.PaymentStatusFailed, uc.transition(ctx, p, domain.PaymentStatusFailed, "missing transaction reference")
	}

	tx, err := uc.verifier.GetTransaction(ctx, *p.TransactionRef)
	if err != nil && !errors.Is(err, paymentgateway.ErrTransactionNotFound) {
		uc.bumpAttempts(ctx, p)
		return p.Status, fmt.Errorf("gateway: %w", err)
	}
	if err != nil {
		// транзакция может появиться у шлюза с задержкой
		uc.bumpAttempts(ctx, p)
		return p.Status, nil
	}

	switch tx.DomainStatus() {
	case domain.TransactionSucceeded:
		if tx.Amount > 0 && tx.Amount+0.005 < p.Amount {
			reason := fmt.Sprintf("amount mismatch: paid %.2f of %.2f", tx.Amount, p.Amount)
			return domain.PaymentStatusFailed, uc.transition(ctx, p, domain.PaymentStatusFailed, reason)
		}
		if err := uc.confirm(ctx, p, tx.Reference); err != nil {
			return p.Status, err
		}
		return domain.PaymentStatusVerified, nil
	case domain.TransactionFailed:
		return domain.PaymentStatusFailed, uc.transition(ctx, p, domain.PaymentStatusFailed, "declined by payment gateway")
	default:
		uc.bumpAttempts(ctx, p)
		return p.Status, nil
	}
}

// confirm отмечает бронирование оплаченным, затем закрывает заявку
func (uc *UseCase) confirm(ctx context.Context, p *domain.Payment, providerID string) error {
	if providerID == "" {
		providerID = p.ID
	}

	_, err := uc.bookingClient.Update(ctx, p.BookingID, domain.BookingUpdate{
		PaymentType:      ptr.Ptr(p.Method),
		PaymentID:        ptr.Ptr(providerID),
		CompletedPayment: ptr.Ptr(true),
	})
	if err != nil {
		uc.logger.Error("Confirm: failed to update booking id=%s for payment id=%s: %v", p.BookingID, p.ID, err)
		if domain.IsRemoteError(err) {
			return err
		}
		return fmt.Errorf("%w: Confirm - update booking: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	err = uc.paymentRepo.TransitionStatus(ctx, p.ID, openStatuses, paymentRepo.StatusUpdate{
		Status:            domain.PaymentStatusVerified,
		ProviderPaymentID: &providerID,
		VerifiedAt:        &now,
	})
	if errors.Is(err, paymentRepo.ErrStatusConflict) {
		uc.logger.Info("Confirm: payment id=%s already closed", p.ID)
		return nil
	}
	if err != nil {
		uc.logger.Error("Confirm: failed to mark payment id=%s verified: %v", p.ID, err)
		return fmt.Errorf("%w: Confirm - update payment: %v", ErrInternal, err)
	}

	uc.metrics.Payment(string(p.Method), string(domain.PaymentStatusVerified))
	if err := uc.publisher.Publish(ctx, events.Event{
		Type:        events.BookingPaymentConfirmed,
		BookingID:   p.BookingID,
		UserID:      p.UserID,
		PaymentID:   p.ID,
		PaymentType: string(p.Method),
		TotalCost:   p.Amount,
		OccurredAt:  now,
	}); err != nil {
		uc.logger.Warn("Confirm: failed to publish event for payment id=%s: %v", p.ID, err)
	}

	uc.logger.Info("Confirm: payment id=%s verified, booking id=%s, provider=%s", p.ID, p.BookingID, providerID)
	return nil
}

func (uc *UseCase) transition(ctx context.Context, p *domain.Payment, status domain.PaymentStatus, reason string) error {
	err := uc.paymentRepo.TransitionStatus(ctx, p.ID, openStatuses, paymentRepo.StatusUpdate{
		Status:        status,
		FailureReason: &reason,
	})
	if errors.Is(err, paymentRepo.ErrStatusConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: transition to %s: %v", ErrInternal, status, err)
	}

	uc.metrics.Payment(string(p.Method), string(status))
	uc.logger.Info("Transition: payment id=%s -> %s (%s)", p.ID, status, reason)
	return nil
}

func (uc *UseCase) bumpAttempts(ctx context.Context, p *domain.Payment) {
	if err := uc.paymentRepo.IncrementAttempts(ctx, p.ID); err != nil {
		uc.logger.Warn("Verify: failed to increment attempts for payment id=%s: %v", p.ID, err)
	}
}

func (uc *UseCase) findStripePayment(ctx context.Context, event *stripegateway.WebhookEvent) (*domain.Payment, error) {
	if event.PaymentID != "" {
		p, err := uc.get(ctx, event.PaymentID)
		if err == nil || !errors.Is(err, ErrPaymentNotFound) {
			return p, err
		}
	}

	p, err := uc.paymentRepo.GetByCheckoutSessionID(ctx, event.SessionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: find payment by session: %v", ErrInternal, err)
	}
	return p, nil
}

func (uc *UseCase) get(ctx context.Context, id string) (*domain.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("GetPayment: repository error for payment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get payment: %v", ErrInternal, err)
	}
	return p, nil
}
