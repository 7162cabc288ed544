package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	bookingClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований с набором доступных действий
type Service struct {
	bookingClient BookingServiceClient
	carClient     CarServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingClient BookingServiceClient,
	carClient CarServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingClient: bookingClient,
		carClient:     carClient,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
// Если удаленный API вернул только id автомобиля, автомобиль запрашивается отдельно
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	booking, err := s.bookingClient.Get(ctx, id)
	if err != nil {
		if errors.Is(err, bookingClient.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: remote error for booking id=%s: %v", id, err)
		if domain.IsRemoteError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetByID - booking service error: %v", ErrInternal, err)
	}

	if !booking.OwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	if booking.Car == nil && booking.CarID != "" {
		car, err := s.carClient.GetCar(ctx, booking.CarID)
		if err != nil {
			// бронирование отдаем и без данных автомобиля
			s.logger.Warn("GetByID: failed to load car id=%s for booking id=%s: %v", booking.CarID, id, err)
		} else {
			booking.Car = car
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s, status=%s", id, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования текущего пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var status *domain.BookingStatus
	if req.Status != nil && *req.Status != "" {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	list, err := s.bookingClient.ListMine(ctx)
	if err != nil {
		s.logger.Error("GetUserBookings: remote error for user=%s: %v", req.UserID, err)
		if domain.IsRemoteError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetUserBookings - booking service error: %v", ErrInternal, err)
	}

	filtered := make([]*domain.Booking, 0, len(list))
	for _, b := range list {
		if !b.OwnedBy(req.UserID) {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		filtered = append(filtered, b)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(filtered), req.UserID)
	return models.FromDomainBookingList(filtered), nil
}
