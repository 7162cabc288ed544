package get_invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

const pdfDateTimeFormat = "2006-01-02 15:04"

// renderPDF печатная форма счета
func renderPDF(inv *Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.BookingID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	row(pdf, "Booking ID", inv.BookingID)
	row(pdf, "Generated", inv.GeneratedAt.Format(pdfDateTimeFormat))
	pdf.Ln(4)

	section(pdf, "Car")
	row(pdf, "Name", safe(inv.Car.Name, inv.Car.ID))
	row(pdf, "Model", safe(inv.Car.Model, "-"))
	row(pdf, "Year", safe(inv.Car.Year, "-"))
	pdf.Ln(4)

	section(pdf, "Trip")
	row(pdf, "Pick-up", safe(inv.Origin, "-"))
	row(pdf, "Drop-off", safe(inv.Destination, "-"))
	row(pdf, "Start", inv.StartDate.Format(pdfDateTimeFormat))
	row(pdf, "End", inv.EndDate.Format(pdfDateTimeFormat))
	row(pdf, "Duration", inv.Duration)
	row(pdf, "OTP", fmt.Sprintf("%d", inv.OTP))
	pdf.Ln(4)

	section(pdf, "Charges")
	unit := "hour(s)"
	if inv.PerDay {
		unit = "day(s)"
	}
	row(pdf, "Base price", fmt.Sprintf("%s (%d %s)", money(inv.BasePrice), inv.BilledUnits, unit))
	for _, f := range inv.Features {
		row(pdf, f.Name, fmt.Sprintf("%s (%s x %d)", money(f.Amount), money(f.UnitPrice), inv.BilledUnits))
	}
	pdf.SetFont("Helvetica", "B", 12)
	row(pdf, "Total", money(inv.Total))
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(4)

	section(pdf, "Payment")
	row(pdf, "Booking status", inv.Status)
	row(pdf, "Payment status", inv.PaymentStatus)
	row(pdf, "Method", safe(inv.PaymentMethod, "-"))
	row(pdf, "Payment ID", safe(inv.PaymentID, "-"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(50, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func safe(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// durationLabel "N day(s), M hour(s)"
func durationLabel(hours int) string {
	days := hours / domain.HoursPerDay
	rest := hours % domain.HoursPerDay
	return fmt.Sprintf("%d day(s), %d hour(s)", days, rest)
}
