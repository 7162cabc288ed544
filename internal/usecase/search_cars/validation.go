package search_cars

import (
	"fmt"
	"strconv"
	"strings"
)

const maxFilterLength = 64

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidInput)
	}

	if len(req.CarType) > maxFilterLength || len(req.CarBrand) > maxFilterLength {
		return fmt.Errorf("%w: filter value is too long", ErrInvalidInput)
	}

	if req.PriceRange != "" {
		if _, _, err := parsePriceRange(req.PriceRange); err != nil {
			return err
		}
	}

	return nil
}

// parsePriceRange разбирает диапазон "min-max"
func parsePriceRange(s string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected min-max, got %q", ErrInvalidPriceRange, s)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}

	if lo < 0 || hi < lo {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}

	return lo, hi, nil
}
