package modify_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("modify_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("modify_booking: access denied")

	// ErrNotModifiable возвращается, когда бронирование не в статусе pending
	ErrNotModifiable = errors.New("modify_booking: only pending bookings can be modified")

	// ErrUnknownFeature возвращается, когда опции нет в каталоге
	ErrUnknownFeature = errors.New("modify_booking: feature is not in the catalog")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_booking: internal error")
)
