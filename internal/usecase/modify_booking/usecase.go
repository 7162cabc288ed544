package modify_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	bookingClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalBookingService/pkg/ptr"
)

// UseCase use case для изменения дат и опций бронирования
type UseCase struct {
	bookingClient BookingServiceClient
	carClient     CarServiceClient
	publisher     EventPublisher
	metrics       Metrics
	catalog       *domain.FeatureCatalog
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingClient BookingServiceClient,
	carClient CarServiceClient,
	publisher EventPublisher,
	metrics Metrics,
	catalog *domain.FeatureCatalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingClient: bookingClient,
		carClient:     carClient,
		publisher:     publisher,
		metrics:       metrics,
		catalog:       catalog,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute пересчитывает стоимость и отправляет обновление
// Разрешено только для бронирований в статусе pending, иначе удаленный сервис не вызывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyBooking: booking=%s, user=%s, dates=%d, features=%v",
		req.BookingID, req.UserID, len(req.Dates), req.Features)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	// 1. Получаем бронирование и проверяем доступность изменения
	booking, err := uc.bookingClient.Get(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapBookingError(req.BookingID, err)
	}
	if !booking.OwnedBy(req.UserID) {
		uc.logger.Warn("ModifyBooking: access denied for user=%s to booking id=%s", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}
	if !booking.CanModify() {
		uc.logger.Warn("ModifyBooking: booking id=%s cannot be modified, status=%s", req.BookingID, booking.Status)
		uc.metrics.BookingAction("modify", "rejected")
		return nil, ErrNotModifiable
	}

	// 2. Новый диапазон
	trip := booking.Trip
	if len(req.Dates) > 0 {
		trip, err = domain.UpdateTripRange(booking.Trip, req.Dates)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		trip = domain.NewTripRange(trip.Start, trip.End)
	}
	if err := domain.ValidateTripRange(trip, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ModifyBooking: invalid trip range for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Опции только из каталога
	selection := domain.SeedFromBooking(booking.AdditionalFeatures)
	if req.Features != nil {
		selection, err = uc.selectFeatures(req.Features)
		if err != nil {
			uc.logger.Warn("ModifyBooking: invalid features for booking id=%s: %v", req.BookingID, err)
			return nil, err
		}
	}

	// 4. Автомобиль нужен для тарифов
	car := booking.Car
	if car == nil {
		car, err = uc.carClient.GetCar(ctx, booking.CarID)
		if err != nil {
			if domain.IsRemoteError(err) {
				return nil, err
			}
			uc.logger.Error("ModifyBooking: failed to get car id=%s: %v", booking.CarID, err)
			return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
		}
	}

	// 5. Пересчет и обновление
	quote := pricing.QuoteFor(trip, car, selection.Labels(), uc.catalog)
	update := domain.BookingUpdate{
		Trip:               &trip,
		AdditionalFeatures: selection.ToBooked(uc.catalog),
		TotalCost:          ptr.Ptr(quote.Total),
	}

	updated, err := uc.bookingClient.Update(ctx, req.BookingID, update)
	if err != nil {
		uc.metrics.BookingAction("modify", "failed")
		return nil, uc.mapBookingError(req.BookingID, err)
	}
	if updated.Car == nil {
		updated.Car = car
	}

	uc.metrics.BookingAction("modify", "success")
	if err := uc.publisher.Publish(ctx, events.Event{
		Type:       events.BookingModified,
		BookingID:  req.BookingID,
		UserID:     req.UserID,
		CarID:      car.ID,
		Status:     string(updated.Status),
		TotalCost:  quote.Total,
		OccurredAt: uc.timeProvider.Now(),
	}); err != nil {
		uc.logger.Warn("ModifyBooking: failed to publish event for booking id=%s: %v", req.BookingID, err)
	}

	uc.logger.Info("ModifyBooking: booking id=%s updated, hours=%d, total=%.2f", req.BookingID, quote.DurationHours, quote.Total)
	return &Response{Booking: updated, Quote: quote}, nil
}

func (uc *UseCase) selectFeatures(labels []string) (domain.FeatureSelection, error) {
	items := make([]domain.Feature, 0, len(labels))
	for _, label := range labels {
		f, ok := uc.catalog.Get(strings.TrimSpace(label))
		if !ok {
			return domain.FeatureSelection{}, fmt.Errorf("%w: %q", ErrUnknownFeature, label)
		}
		items = append(items, f)
	}
	return domain.NewFeatureSelection(items...), nil
}

func (uc *UseCase) mapBookingError(bookingID string, err error) error {
	if errors.Is(err, bookingClient.ErrBookingNotFound) {
		uc.logger.Warn("ModifyBooking: booking id=%s not found", bookingID)
		return ErrBookingNotFound
	}
	if domain.IsRemoteError(err) {
		uc.logger.Warn("ModifyBooking: booking service error for booking id=%s: %v", bookingID, err)
		return err
	}
	uc.logger.Error("ModifyBooking: booking service failure for booking id=%s: %v", bookingID, err)
	return fmt.Errorf("%w: booking service: %v", ErrInternal, err)
}
