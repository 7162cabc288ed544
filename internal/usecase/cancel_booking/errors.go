package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrNotCancellable возвращается, когда бронирование не в статусе pending
	ErrNotCancellable = errors.New("cancel_booking: only pending bookings can be cancelled")

	// ErrInvalidConfirmation возвращается, когда токен не выдан, уже использован или истек
	ErrInvalidConfirmation = errors.New("cancel_booking: confirmation token is invalid or expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
