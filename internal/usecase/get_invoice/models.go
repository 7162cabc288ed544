package get_invoice

import "time"

// PDFContentType тип содержимого выгрузки
const PDFContentType = "application/pdf"

// Payment status labels
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// InvoiceCar автомобиль в счете
type InvoiceCar struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model,omitempty"`
	Year  string `json:"year,omitempty"`
}

// InvoiceLine строка опции в счете
type InvoiceLine struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Amount    float64 `json:"amount"`
}

// Invoice счет по бронированию
type Invoice struct {
	BookingID     string        `json:"bookingId"`
	Car           InvoiceCar    `json:"car"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	DurationHours int           `json:"durationHours"`
	Duration      string        `json:"duration"` // "N day(s), M hour(s)"
	PerDay        bool          `json:"perDay"`
	BilledUnits   int           `json:"billedUnits"`
	BasePrice     float64       `json:"basePrice"`
	FeaturesPrice float64       `json:"featuresPrice"`
	Total         float64       `json:"total"`
	Features      []InvoiceLine `json:"features"`
	OTP           int           `json:"otp"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"paymentStatus"`
	PaymentMethod string        `json:"paymentMethod"`
	PaymentID     string        `json:"paymentId,omitempty"`
	GeneratedAt   time.Time     `json:"generatedAt"`
}

// Document выгруженный счет
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}
