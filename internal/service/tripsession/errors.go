package tripsession

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("trip session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnknownFeature возвращается, когда опции нет в каталоге
	ErrUnknownFeature = errors.New("feature is not in the catalog")

	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("car not found")

	// ErrTransactionNotFound возвращается, когда шлюз не знает транзакцию
	ErrTransactionNotFound = errors.New("payment transaction not found")

	// ErrPaymentNotCompleted возвращается, когда транзакция еще не прошла или отклонена
	ErrPaymentNotCompleted = errors.New("payment transaction is not completed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
