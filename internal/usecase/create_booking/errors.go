package create_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия выбора поездки не найдена или истекла
	ErrSessionNotFound = errors.New("create_booking: trip session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("create_booking: car not found")

	// ErrCarUnavailable возвращается, когда автомобиль удален из каталога
	ErrCarUnavailable = errors.New("create_booking: car is no longer available")

	// ErrQRPaymentNotAcknowledged возвращается, когда оплата по QR не подтверждена перед созданием
	ErrQRPaymentNotAcknowledged = errors.New("create_booking: qr payment has not been confirmed")

	// ErrQRPaymentInsufficient возвращается, когда подтвержденная сумма меньше стоимости аренды
	ErrQRPaymentInsufficient = errors.New("create_booking: confirmed qr payment does not cover the total cost")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
