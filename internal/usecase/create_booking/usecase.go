package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	sessionRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/tripsession"
	carClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/carservice"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
)

// UseCase use case для создания бронирования из сессии выбора поездки
type UseCase struct {
	sessionRepo   SessionRepository
	carClient     CarServiceClient
	bookingClient BookingServiceClient
	publisher     EventPublisher
	metrics       Metrics
	catalog       *domain.FeatureCatalog
	otpPicker     OTPPicker
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	carClient CarServiceClient,
	bookingClient BookingServiceClient,
	publisher EventPublisher,
	metrics Metrics,
	catalog *domain.FeatureCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		carClient:     carClient,
		bookingClient: bookingClient,
		publisher:     publisher,
		metrics:       metrics,
		catalog:       catalog,
		otpPicker:     PoolOTPPicker{},
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithOTPPicker подменяет генератор кода выдачи
func (uc *UseCase) WithOTPPicker(p OTPPicker) *UseCase {
	uc.otpPicker = p
	return uc
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// При ошибке удаленного сервиса сессия не изменяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, session=%s, car=%s, payment=%s",
		req.UserID, req.SessionID, req.CarID, req.PaymentType)

	// 1. Валидация полей формы
	paymentType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сессию и проверяем владельца
	session, err := uc.sessionRepo.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("CreateBooking: session id=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("CreateBooking: failed to get session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}
	if session.UserID != req.UserID {
		uc.logger.Warn("CreateBooking: access denied for user=%s to session id=%s", req.UserID, req.SessionID)
		return nil, ErrAccessDenied
	}

	// 3. QR оплата должна быть подтверждена до обращения к сервису бронирований
	if paymentType == domain.PaymentQRCode && session.QRAck == nil {
		uc.logger.Warn("CreateBooking: qr payment not acknowledged, session id=%s", req.SessionID)
		return nil, ErrQRPaymentNotAcknowledged
	}

	// 4. Нормализуем и проверяем диапазон поездки
	now := uc.timeProvider.Now()
	trip := domain.NewTripRange(session.Trip.Start, session.Trip.End)
	if err := domain.ValidateTripRange(trip, now); err != nil {
		uc.logger.Warn("CreateBooking: invalid trip range for session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Получаем автомобиль
	car, err := uc.carClient.GetCar(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carClient.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%s not found", req.CarID)
			return nil, ErrCarNotFound
		}
		if domain.IsRemoteError(err) {
			uc.logger.Warn("CreateBooking: car service error for car id=%s: %v", req.CarID, err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to get car id=%s: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}
	if car.IsDeleted {
		uc.logger.Warn("CreateBooking: car id=%s is deleted", req.CarID)
		return nil, ErrCarUnavailable
	}

	// 6. Расчет стоимости по диапазону и опциям сессии
	quote := pricing.QuoteFor(trip, car, session.Features.Labels(), uc.catalog)

	paymentID := ""
	if paymentType == domain.PaymentQRCode {
		if session.QRAck.Amount > 0 && session.QRAck.Amount < quote.Total {
			uc.logger.Warn("CreateBooking: qr payment amount=%.2f below total=%.2f, session id=%s",
				session.QRAck.Amount, quote.Total, req.SessionID)
			return nil, ErrQRPaymentInsufficient
		}
		paymentID = session.QRAck.TransactionRef
	}

	// 7. Формируем бронирование
	booking := &domain.Booking{
		UserID:             req.UserID,
		CarID:              car.ID,
		Origin:             session.Destination.Origin,
		Destination:        session.Destination.Destination,
		NIDOrPassport:      strings.TrimSpace(req.NIDOrPassport),
		DrivingLicense:     strings.TrimSpace(req.DrivingLicense),
		Trip:               trip,
		AdditionalFeatures: session.Features.ToBooked(uc.catalog),
		TotalCost:          quote.Total,
		PaymentType:        paymentType,
		PaymentID:          paymentID,
		CompletedPayment:   paymentType.CompletesOnCreate(),
		Status:             paymentType.InitialStatus(),
		OTP:                uc.otpPicker.Pick(),
	}

	// 8. Создаем бронирование в удаленном сервисе
	created, err := uc.bookingClient.Create(ctx, booking)
	if err != nil {
		if domain.IsRemoteError(err) {
			uc.logger.Warn("CreateBooking: booking service rejected booking for user=%s: %v", req.UserID, err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to create booking for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
	if created.Car == nil {
		created.Car = car
	}

	// 9. Подтверждение QR одноразовое
	if session.QRAck != nil {
		session.QRAck = nil
		session.UpdatedAt = now
		if err := uc.sessionRepo.Save(ctx, session); err != nil {
			uc.logger.Warn("CreateBooking: failed to clear qr acknowledgment for session id=%s: %v", req.SessionID, err)
		}
	}

	uc.metrics.BookingCreated(paymentType.String())
	if err := uc.publisher.Publish(ctx, events.Event{
		Type:        events.BookingCreated,
		BookingID:   created.ID,
		UserID:      req.UserID,
		CarID:       car.ID,
		PaymentType: paymentType.String(),
		Status:      string(created.Status),
		TotalCost:   created.TotalCost,
		OccurredAt:  now,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", created.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%.2f, status=%s",
		created.ID, created.TotalCost, created.Status)

	return &Response{
		Booking:  created,
		Quote:    quote,
		Redirect: BookingsListRoute,
	}, nil
}
