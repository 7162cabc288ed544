package confirm_payment

import "time"

const (
	// DefaultMaxAge после этого срока непроверенная заявка истекает
	DefaultMaxAge = 24 * time.Hour

	// DefaultBatchSize сколько заявок проверяется за один проход
	DefaultBatchSize = 100
)

// Config параметры проверки оплат
type Config struct {
	MaxAge    time.Duration
	BatchSize uint64
}

// Report итог одного прохода проверки
type Report struct {
	Checked  int
	Verified int
	Failed   int
	Expired  int
	Pending  int
}
