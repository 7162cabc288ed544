package bookingservice

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookingservice client: booking not found")

	// ErrInvalidResponse возвращается, если бронирование в ответе не удалось разобрать
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")
)
