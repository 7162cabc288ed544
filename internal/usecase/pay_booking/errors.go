package pay_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("pay_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("pay_booking: access denied")

	// ErrNotPayable возвращается, когда бронирование не одобрено или уже оплачено
	ErrNotPayable = errors.New("pay_booking: booking is not awaiting payment")

	// ErrMethodUnavailable возвращается, когда способ оплаты не настроен
	ErrMethodUnavailable = errors.New("pay_booking: payment method is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pay_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("pay_booking: internal error")
)
