package carservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// Price цена из удаленного API: приходит числом или строкой ("120")
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", s, err)
		}
		*p = Price(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// Text строковое поле, которое иногда приходит числом (year)
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(string(data))
	return nil
}

// Image изображение автомобиля
type Image struct {
	URL      string `json:"url"`
	BlurHash string `json:"blurHash"`
}

// Car модель автомобиля из удаленного API
type Car struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	CarType      string   `json:"carType"`
	Model        string   `json:"model"`
	Year         Text     `json:"year"`
	Description  string   `json:"description"`
	Color        string   `json:"color"`
	Images       []Image  `json:"images"`
	Features     []string `json:"features"`
	PricePerHour Price    `json:"pricePerHour"`
	PricePerDay  Price    `json:"pricePerDay"`
	Status       string   `json:"status"`
	IsDeleted    bool     `json:"isDeleted"`
}

// ToDomain конвертирует модель удаленного API в доменную
func (c *Car) ToDomain() *domain.Car {
	images := make([]string, 0, len(c.Images))
	for _, img := range c.Images {
		images = append(images, img.URL)
	}

	return &domain.Car{
		ID:           c.ID,
		Name:         c.Name,
		Model:        c.Model,
		Year:         string(c.Year),
		CarType:      c.CarType,
		Color:        c.Color,
		Description:  c.Description,
		PricePerHour: float64(c.PricePerHour),
		PricePerDay:  float64(c.PricePerDay),
		Features:     c.Features,
		Images:       images,
		Status:       c.Status,
		IsDeleted:    c.IsDeleted,
	}
}
