package paymentgateway

import "github.com/m04kA/SMC-RentalBookingService/internal/domain"

// Transaction транзакция QR / кошелька у платежного шлюза
type Transaction struct {
	Reference string  `json:"reference"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"`
}

// DomainStatus нормализует статус шлюза; неизвестные статусы считаются pending
func (t *Transaction) DomainStatus() domain.TransactionStatus {
	switch t.Status {
	case "succeeded", "success", "paid", "completed":
		return domain.TransactionSucceeded
	case "failed", "declined", "cancelled", "canceled":
		return domain.TransactionFailed
	default:
		return domain.TransactionPending
	}
}

type transactionEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}
