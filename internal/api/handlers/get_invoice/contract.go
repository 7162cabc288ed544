package get_invoice

import (
	"context"

	getInvoice "github.com/m04kA/SMC-RentalBookingService/internal/usecase/get_invoice"
)

// InvoiceUseCase счет по бронированию в JSON или PDF
type InvoiceUseCase interface {
	Execute(ctx context.Context, bookingID, userID string) (*getInvoice.Invoice, error)
	RenderPDF(ctx context.Context, bookingID, userID string) (*getInvoice.Document, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
