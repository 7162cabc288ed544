package stripe_webhook

import "context"

// WebhookUseCase подтверждение оплаты картой по событию Stripe с проверкой подписи
type WebhookUseCase interface {
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
