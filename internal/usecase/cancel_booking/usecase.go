package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	confirmationStore "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/confirmation"
	bookingClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/bookingservice"
)

// UseCase use case двухшаговой отмены бронирования
// Шаг 1 выдает одноразовый токен, шаг 2 атомарно его погашает и удаляет бронирование ровно один раз
type UseCase struct {
	bookingClient  BookingServiceClient
	store          ConfirmationStore
	publisher      EventPublisher
	metrics        Metrics
	tokenGenerator TokenGenerator
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingClient BookingServiceClient,
	store ConfirmationStore,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingClient:  bookingClient,
		store:          store,
		publisher:      publisher,
		metrics:        metrics,
		tokenGenerator: UUIDTokenGenerator{},
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTokenGenerator подменяет генератор токенов (для тестов)
func (uc *UseCase) WithTokenGenerator(g TokenGenerator) *UseCase {
	uc.tokenGenerator = g
	return uc
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// RequestCancellation открывает подтверждение отмены
func (uc *UseCase) RequestCancellation(ctx context.Context, bookingID, userID string) (*ConfirmationResponse, error) {
	uc.logger.Info("RequestCancellation: booking=%s, user=%s", bookingID, userID)

	if _, err := uc.loadCancellable(ctx, "RequestCancellation", bookingID, userID); err != nil {
		return nil, err
	}

	token := uc.tokenGenerator.NewToken()
	if err := uc.store.Issue(ctx, ActionCancel, bookingID, token, userID); err != nil {
		uc.logger.Error("RequestCancellation: failed to issue token for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: RequestCancellation - issue token: %v", ErrInternal, err)
	}

	uc.metrics.BookingAction("cancel_request", "success")
	uc.logger.Info("RequestCancellation: token issued for booking id=%s", bookingID)

	return &ConfirmationResponse{
		BookingID: bookingID,
		Token:     token,
		ExpiresAt: uc.timeProvider.Now().Add(uc.store.TTL()),
	}, nil
}

// ConfirmCancellation погашает токен и удаляет бронирование
// Повторное подтверждение с тем же токеном отклоняется
// При временном сбое удаленного сервиса токен возвращается, подтверждение можно повторить
func (uc *UseCase) ConfirmCancellation(ctx context.Context, bookingID, userID, token string) error {
	uc.logger.Info("ConfirmCancellation: booking=%s, user=%s", bookingID, userID)

	if err := uc.consume(ctx, "ConfirmCancellation", bookingID, userID, token); err != nil {
		return err
	}

	// статус мог измениться, пока открыто подтверждение
	booking, err := uc.loadCancellable(ctx, "ConfirmCancellation", bookingID, userID)
	if err != nil {
		uc.restoreToken(ctx, bookingID, userID, token, err)
		return err
	}

	if err := uc.bookingClient.Delete(ctx, bookingID); err != nil {
		uc.metrics.BookingAction("cancel", "failed")
		mapped := uc.mapBookingError("ConfirmCancellation", bookingID, err)
		uc.restoreToken(ctx, bookingID, userID, token, mapped)
		return mapped
	}

	uc.metrics.BookingAction("cancel", "success")
	if err := uc.publisher.Publish(ctx, events.Event{
		Type:       events.BookingCancelled,
		BookingID:  bookingID,
		UserID:     userID,
		CarID:      booking.CarID,
		Status:     string(booking.Status),
		TotalCost:  booking.TotalCost,
		OccurredAt: uc.timeProvider.Now(),
	}); err != nil {
		uc.logger.Warn("ConfirmCancellation: failed to publish event for booking id=%s: %v", bookingID, err)
	}

	uc.logger.Info("ConfirmCancellation: booking id=%s cancelled", bookingID)
	return nil
}

// AbortCancellation закрывает подтверждение без отмены ("No, keep booking")
// Повторный вызов не является ошибкой
func (uc *UseCase) AbortCancellation(ctx context.Context, bookingID, userID, token string) error {
	uc.logger.Info("AbortCancellation: booking=%s, user=%s", bookingID, userID)

	err := uc.consume(ctx, "AbortCancellation", bookingID, userID, token)
	if err != nil && !errors.Is(err, ErrInvalidConfirmation) {
		return err
	}

	uc.metrics.BookingAction("cancel_abort", "success")
	return nil
}

func (uc *UseCase) consume(ctx context.Context, op, bookingID, userID, token string) error {
	if strings.TrimSpace(bookingID) == "" || strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: bookingId and token are required", ErrInvalidInput)
	}

	owner, err := uc.store.Consume(ctx, ActionCancel, bookingID, token)
	if err != nil {
		if errors.Is(err, confirmationStore.ErrTokenNotFound) {
			uc.logger.Warn("%s: invalid or expired token for booking id=%s", op, bookingID)
			return ErrInvalidConfirmation
		}
		uc.logger.Error("%s: failed to consume token for booking id=%s: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - consume token: %v", ErrInternal, op, err)
	}

	if owner != userID {
		uc.logger.Warn("%s: token for booking id=%s was issued to another user", op, bookingID)
		return ErrAccessDenied
	}

	return nil
}

// restoreToken возвращает погашенный токен, если отмена сорвалась не по вине бронирования
func (uc *UseCase) restoreToken(ctx context.Context, bookingID, userID, token string, cause error) {
	switch {
	case errors.Is(cause, ErrNotCancellable),
		errors.Is(cause, ErrAccessDenied),
		errors.Is(cause, ErrBookingNotFound),
		errors.Is(cause, ErrInvalidInput):
		return
	}

	if err := uc.store.Issue(ctx, ActionCancel, bookingID, token, userID); err != nil {
		uc.logger.Warn("ConfirmCancellation: failed to restore token for booking id=%s: %v", bookingID, err)
		return
	}
	uc.logger.Info("ConfirmCancellation: token restored for booking id=%s after %v", bookingID, cause)
}

func (uc *UseCase) loadCancellable(ctx context.Context, op, bookingID, userID string) (*domain.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	booking, err := uc.bookingClient.Get(ctx, bookingID)
	if err != nil {
		return nil, uc.mapBookingError(op, bookingID, err)
	}

	if !booking.OwnedBy(userID) {
		uc.logger.Warn("%s: access denied for user=%s to booking id=%s", op, userID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanCancel() {
		uc.logger.Warn("%s: booking id=%s cannot be cancelled, status=%s", op, bookingID, booking.Status)
		return nil, ErrNotCancellable
	}

	return booking, nil
}

func (uc *UseCase) mapBookingError(op, bookingID string, err error) error {
	if errors.Is(err, bookingClient.ErrBookingNotFound) {
		uc.logger.Warn("%s: booking id=%s not found", op, bookingID)
		return ErrBookingNotFound
	}
	if domain.IsRemoteError(err) {
		uc.logger.Warn("%s: booking service error for booking id=%s: %v", op, bookingID, err)
		return err
	}
	uc.logger.Error("%s: booking service failure for booking id=%s: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - booking service: %v", ErrInternal, op, err)
}
