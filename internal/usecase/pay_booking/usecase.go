package pay_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	bookingClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/stripegateway"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

// UseCase use case оплаты одобренного бронирования
// Каждый способ оплаты обрабатывается своим обработчиком, выбор исчерпывающий
type UseCase struct {
	bookingClient BookingServiceClient
	paymentRepo   PaymentRepository
	checkout      CheckoutGateway
	metrics       Metrics
	currency      string
	idGenerator   IDGenerator
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// checkout может быть nil, тогда оплата через Stripe недоступна
func NewUseCase(
	bookingClient BookingServiceClient,
	paymentRepo PaymentRepository,
	checkout CheckoutGateway,
	metrics Metrics,
	currency string,
	logger Logger,
) *UseCase {
	if currency == "" {
		currency = "usd"
	}
	return &UseCase{
		bookingClient: bookingClient,
		paymentRepo:   paymentRepo,
		checkout:      checkout,
		metrics:       metrics,
		currency:      currency,
		idGenerator:   UUIDGenerator{},
		logger:        logger,
	}
}

// WithIDGenerator подменяет генератор идентификаторов (для тестов)
func (uc *UseCase) WithIDGenerator(g IDGenerator) *UseCase {
	uc.idGenerator = g
	return uc
}

// Execute выполняет оплату выбранным способом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PayBooking: booking=%s, user=%s, method=%s", req.BookingID, req.UserID, req.Method)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	method, err := domain.ParsePaymentType(req.Method)
	if err != nil {
		uc.logger.Warn("PayBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := uc.bookingClient.Get(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapBookingError(req.BookingID, err)
	}
	if !booking.OwnedBy(req.UserID) {
		uc.logger.Warn("PayBooking: access denied for user=%s to booking id=%s", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}
	if !booking.CanPay() {
		uc.logger.Warn("PayBooking: booking id=%s is not payable, status=%s, completedPayment=%t",
			req.BookingID, booking.Status, booking.CompletedPayment)
		return nil, ErrNotPayable
	}

	// повторная оплата не начинается, пока предыдущая ожидает Stripe или шлюз
	// одновременные запросы дополнительно отсекает уникальный индекс в record
	if err := uc.ensureNoPaymentInFlight(ctx, req.BookingID); err != nil {
		return nil, err
	}

	switch method {
	case domain.PaymentCash:
		return uc.payCash(ctx, req, booking)
	case domain.PaymentStripe:
		return uc.payStripe(ctx, req, booking)
	case domain.PaymentGooglePay, domain.PaymentQRCode, domain.PaymentAamarPay:
		return uc.payWithVerification(ctx, req, booking, method)
	default:
		return nil, fmt.Errorf("%w: unsupported payment method %s", ErrInvalidInput, method)
	}
}

func (uc *UseCase) ensureNoPaymentInFlight(ctx context.Context, bookingID string) error {
	payments, err := uc.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		uc.logger.Error("PayBooking: failed to list payments for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: list payments: %v", ErrInternal, err)
	}

	for _, p := range payments {
		if p.Status == domain.PaymentStatusPending || p.Status == domain.PaymentStatusPendingVerification {
			uc.logger.Warn("PayBooking: booking id=%s already has payment id=%s in status=%s", bookingID, p.ID, p.Status)
			return fmt.Errorf("%w: payment %s is %s", ErrNotPayable, p.ID, p.Status)
		}
	}
	return nil
}

// payCash наличные: бронирование помечается cash без завершения оплаты, подтверждает администратор
func (uc *UseCase) payCash(ctx context.Context, req *Request, booking *domain.Booking) (*Response, error) {
	p, err := uc.record(ctx, booking, req.UserID, domain.PaymentCash, domain.PaymentStatusAwaitingAdmin, nil)
	if err != nil {
		return nil, err
	}

	updated, err := uc.bookingClient.Update(ctx, booking.ID, domain.BookingUpdate{
		PaymentType:      ptr.Ptr(domain.PaymentCash),
		CompletedPayment: ptr.Ptr(false),
	})
	if err != nil {
		uc.fail(ctx, p, err)
		return nil, uc.mapBookingError(booking.ID, err)
	}

	uc.metrics.Payment(string(domain.PaymentCash), string(p.Status))
	uc.logger.Info("PayBooking: cash payment id=%s recorded for booking id=%s", p.ID, booking.ID)

	return &Response{Outcome: OutcomeAwaitingAdmin, Payment: p, Booking: updated}, nil
}

// payStripe создает checkout session, оплата подтверждается webhook
// Запись об оплате создается до обращения к Stripe: уникальный индекс не дает открыть второй checkout
func (uc *UseCase) payStripe(ctx context.Context, req *Request, booking *domain.Booking) (*Response, error) {
	if uc.checkout == nil {
		uc.logger.Warn("PayBooking: stripe is not configured")
		return nil, ErrMethodUnavailable
	}

	p, err := uc.record(ctx, booking, req.UserID, domain.PaymentStripe, domain.PaymentStatusPending, nil)
	if err != nil {
		return nil, err
	}

	sess, err := uc.checkout.CreateCheckoutSession(stripegateway.CheckoutRequest{
		PaymentID:     p.ID,
		BookingID:     booking.ID,
		Amount:        booking.TotalCost,
		Description:   checkoutDescription(booking),
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		uc.fail(ctx, p, err)
		if errors.Is(err, stripegateway.ErrInvalidAmount) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("PayBooking: stripe checkout failed for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: stripe checkout: %v", ErrInternal, err)
	}

	// webhook находит оплату по payment id из metadata, поэтому ошибка здесь не прерывает оплату
	if err := uc.paymentRepo.AttachCheckoutSession(ctx, p.ID, sess.ID, sess.URL); err != nil {
		uc.logger.Warn("PayBooking: failed to attach session=%s to payment id=%s: %v", sess.ID, p.ID, err)
	}
	p.CheckoutSessionID = ptr.Ptr(sess.ID)
	p.CheckoutURL = ptr.Ptr(sess.URL)

	uc.metrics.Payment(string(domain.PaymentStripe), string(p.Status))
	uc.logger.Info("PayBooking: stripe payment id=%s, session=%s for booking id=%s", p.ID, sess.ID, booking.ID)

	return &Response{Outcome: OutcomeRedirect, Payment: p, CheckoutURL: sess.URL}, nil
}

// payWithVerification QR и кошельки: записывается заявка клиента, бронирование меняется только после проверки у шлюза
func (uc *UseCase) payWithVerification(ctx context.Context, req *Request, booking *domain.Booking, method domain.PaymentType) (*Response, error) {
	ref := strings.TrimSpace(req.TransactionRef)
	if ref == "" {
		return nil, fmt.Errorf("%w: transactionRef is required for %s", ErrInvalidInput, method)
	}

	p, err := uc.record(ctx, booking, req.UserID, method, domain.PaymentStatusPendingVerification, &ref)
	if err != nil {
		return nil, err
	}

	uc.metrics.Payment(string(method), string(p.Status))
	uc.logger.Info("PayBooking: %s payment id=%s awaiting verification, transaction=%s, booking id=%s",
		method, p.ID, ref, booking.ID)

	return &Response{Outcome: OutcomeVerifying, Payment: p}, nil
}

func (uc *UseCase) record(
	ctx context.Context,
	booking *domain.Booking,
	userID string,
	method domain.PaymentType,
	status domain.PaymentStatus,
	transactionRef *string,
) (*domain.Payment, error) {
	p := uc.newPayment(uc.idGenerator.NewID(), booking, userID, method, status)
	p.TransactionRef = transactionRef

	created, err := uc.paymentRepo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentInFlight) {
			uc.logger.Warn("PayBooking: booking id=%s already has a payment in flight", booking.ID)
			return nil, fmt.Errorf("%w: %v", ErrNotPayable, err)
		}
		uc.logger.Error("PayBooking: failed to record %s payment for booking id=%s: %v", method, booking.ID, err)
		return nil, fmt.Errorf("%w: record payment: %v", ErrInternal, err)
	}
	return created, nil
}

func (uc *UseCase) newPayment(id string, booking *domain.Booking, userID string, method domain.PaymentType, status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		ID:        id,
		BookingID: booking.ID,
		UserID:    userID,
		Method:    method,
		Status:    status,
		Amount:    booking.TotalCost,
		Currency:  uc.currency,
	}
}

// fail помечает запись оплаты неуспешной, если удаленный сервис отклонил изменение
func (uc *UseCase) fail(ctx context.Context, p *domain.Payment, cause error) {
	reason := cause.Error()
	err := uc.paymentRepo.TransitionStatus(ctx, p.ID, []domain.PaymentStatus{p.Status}, paymentRepo.StatusUpdate{
		Status:        domain.PaymentStatusFailed,
		FailureReason: &reason,
	})
	if err != nil {
		uc.logger.Error("PayBooking: failed to mark payment id=%s as failed: %v", p.ID, err)
		return
	}
	p.Status = domain.PaymentStatusFailed
	p.FailureReason = &reason
	uc.metrics.Payment(string(p.Method), string(p.Status))
}

func (uc *UseCase) mapBookingError(bookingID string, err error) error {
	if errors.Is(err, bookingClient.ErrBookingNotFound) {
		uc.logger.Warn("PayBooking: booking id=%s not found", bookingID)
		return ErrBookingNotFound
	}
	if domain.IsRemoteError(err) {
		uc.logger.Warn("PayBooking: booking service error for booking id=%s: %v", bookingID, err)
		return err
	}
	uc.logger.Error("PayBooking: booking service failure for booking id=%s: %v", bookingID, err)
	return fmt.Errorf("%w: booking service: %v", ErrInternal, err)
}

func checkoutDescription(b *domain.Booking) string {
	name := b.CarID
	if b.Car != nil && b.Car.Name != "" {
		name = strings.TrimSpace(b.Car.Name + " " + b.Car.Model)
	}
	return fmt.Sprintf("Car rental %s, %s - %s", name,
		b.Trip.Start.Format(domain.DateFormat), b.Trip.End.Format(domain.DateFormat))
}
