package acknowledge_qr_payment

// Request ссылка на транзакцию QR оплаты
type Request struct {
	TransactionRef string `json:"transactionRef"`
}
