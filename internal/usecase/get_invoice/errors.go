package get_invoice

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("get_invoice: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("get_invoice: access denied")

	// ErrInvoiceUnavailable возвращается для отклоненных бронирований
	ErrInvoiceUnavailable = errors.New("get_invoice: invoice is not available for this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_invoice: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_invoice: internal error")
)
