package confirm_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда запись об оплате не найдена
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrAccessDenied возвращается, когда оплата принадлежит другому пользователю
	ErrAccessDenied = errors.New("confirm_payment: access denied")

	// ErrInvalidSignature возвращается для webhook с неверной подписью
	ErrInvalidSignature = errors.New("confirm_payment: invalid webhook signature")

	// ErrWebhookDisabled возвращается, когда Stripe не настроен
	ErrWebhookDisabled = errors.New("confirm_payment: stripe webhook is not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
