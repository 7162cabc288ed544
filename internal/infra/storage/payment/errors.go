package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда запись об оплате не найдена
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrStatusConflict возвращается, когда оплата уже не в ожидаемом статусе
	ErrStatusConflict = errors.New("payment.repository: payment status changed concurrently")

	// ErrPaymentInFlight возвращается, когда у бронирования уже есть незавершенная оплата
	ErrPaymentInFlight = errors.New("payment.repository: booking already has a payment in flight")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
