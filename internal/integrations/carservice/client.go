package carservice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
)

// Client клиент сервиса автомобилей
type Client struct {
	api APIClient
	log Logger
}

// NewClient создает новый экземпляр клиента сервиса автомобилей
func NewClient(api APIClient, log Logger) *Client {
	return &Client{api: api, log: log}
}

// GetCar получает автомобиль по ID
func (c *Client) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	var car Car
	if _, err := c.api.Do(ctx, http.MethodGet, "/cars/"+url.PathEscape(id), nil, nil, &car); err != nil {
		if apiclient.IsNotFound(err) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	if car.ID == "" {
		return nil, ErrCarNotFound
	}

	return car.ToDomain(), nil
}

// ListCars получает список автомобилей с фильтрами каталога
func (c *Client) ListCars(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, *apiclient.Meta, error) {
	query := url.Values{}
	if filter.CarType != "" {
		query.Set("carType", filter.CarType)
	}
	if filter.CarBrand != "" {
		query.Set("carBrand", filter.CarBrand)
	}
	if filter.PriceRange != "" {
		query.Set("priceRange", filter.PriceRange)
	}
	if filter.Trip != nil {
		query.Set("startDate", filter.Trip.Start.Format(domain.DateTimeFormat))
		query.Set("endDate", filter.Trip.End.Format(domain.DateTimeFormat))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	var cars []Car
	meta, err := c.api.Do(ctx, http.MethodGet, "/cars", query, nil, &cars)
	if err != nil {
		return nil, nil, fmt.Errorf("list cars: %w", err)
	}

	result := make([]*domain.Car, 0, len(cars))
	for i := range cars {
		if cars[i].IsDeleted {
			continue
		}
		result = append(result, cars[i].ToDomain())
	}

	c.log.Info("ListCars: fetched %d cars (type=%s, brand=%s, price=%s)",
		len(result), filter.CarType, filter.CarBrand, filter.PriceRange)
	return result, meta, nil
}
