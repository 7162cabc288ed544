package stripegateway

import "errors"

var (
	// ErrCheckout возвращается при ошибке создания checkout session
	ErrCheckout = errors.New("stripegateway: failed to create checkout session")

	// ErrInvalidSignature возвращается, если подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("stripegateway: invalid webhook signature")

	// ErrInvalidEvent возвращается, если событие не удалось разобрать
	ErrInvalidEvent = errors.New("stripegateway: invalid webhook event")

	// ErrInvalidAmount возвращается при неположительной сумме оплаты
	ErrInvalidAmount = errors.New("stripegateway: invalid amount")
)
