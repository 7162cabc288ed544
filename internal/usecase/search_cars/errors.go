package search_cars

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия выбора поездки не найдена или истекла
	ErrSessionNotFound = errors.New("search_cars: session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("search_cars: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_cars: invalid input data")

	// ErrInvalidPriceRange возвращается при некорректном диапазоне цен
	ErrInvalidPriceRange = errors.New("search_cars: invalid price range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_cars: internal error")
)
