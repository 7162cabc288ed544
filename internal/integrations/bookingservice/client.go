package bookingservice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
)

const (
	bookingsPath   = "/bookings"
	myBookingsPath = "/bookings/my-bookings"
)

// Client клиент сервиса бронирований
type Client struct {
	api APIClient
	log Logger
}

// NewClient создает новый экземпляр клиента сервиса бронирований
func NewClient(api APIClient, log Logger) *Client {
	return &Client{api: api, log: log}
}

// Create создает бронирование; id и итоговый статус назначает удаленный сервис
func (c *Client) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var created Booking
	if _, err := c.api.Do(ctx, http.MethodPost, bookingsPath, nil, NewCreatePayload(booking), &created); err != nil {
		return nil, err
	}

	if created.ID == "" {
		return nil, fmt.Errorf("%w: created booking has no id", ErrInvalidResponse)
	}

	return created.ToDomain(), nil
}

// Get получает бронирование по ID
func (c *Client) Get(ctx context.Context, id string) (*domain.Booking, error) {
	var booking Booking
	if _, err := c.api.Do(ctx, http.MethodGet, bookingPath(id), nil, nil, &booking); err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.ID == "" {
		return nil, ErrBookingNotFound
	}

	return booking.ToDomain(), nil
}

// Update обновляет изменяемые поля бронирования
func (c *Client) Update(ctx context.Context, id string, update domain.BookingUpdate) (*domain.Booking, error) {
	var updated Booking
	if _, err := c.api.Do(ctx, http.MethodPut, bookingPath(id), nil, NewUpdatePayload(update), &updated); err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	// некоторые версии API отвечают без data
	if updated.ID == "" {
		return c.Get(ctx, id)
	}

	return updated.ToDomain(), nil
}

// Delete удаляет (отменяет) бронирование
func (c *Client) Delete(ctx context.Context, id string) error {
	if _, err := c.api.Do(ctx, http.MethodDelete, bookingPath(id), nil, nil, nil); err != nil {
		if apiclient.IsNotFound(err) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// ListMine получает бронирования текущего пользователя
func (c *Client) ListMine(ctx context.Context) ([]*domain.Booking, error) {
	var bookings []Booking
	if _, err := c.api.Do(ctx, http.MethodGet, myBookingsPath, nil, nil, &bookings); err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0, len(bookings))
	for i := range bookings {
		result = append(result, bookings[i].ToDomain())
	}
	return result, nil
}

func bookingPath(id string) string {
	return bookingsPath + "/" + url.PathEscape(id)
}
