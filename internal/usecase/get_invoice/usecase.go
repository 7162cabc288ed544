package get_invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	bookingClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-RentalBookingService/internal/service/pricing"
)

// UseCase проекция бронирования в счет (JSON или PDF), состояние не меняется
type UseCase struct {
	bookingClient BookingServiceClient
	carClient     CarServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingClient BookingServiceClient, carClient CarServiceClient, logger Logger) *UseCase {
	return &UseCase{
		bookingClient: bookingClient,
		carClient:     carClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute собирает счет по бронированию
func (uc *UseCase) Execute(ctx context.Context, bookingID, userID string) (*Invoice, error) {
	uc.logger.Info("GetInvoice: booking=%s, user=%s", bookingID, userID)

	if strings.TrimSpace(bookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	booking, err := uc.bookingClient.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingClient.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("GetInvoice: failed to get booking id=%s: %v", bookingID, err)
		if domain.IsRemoteError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetInvoice - get booking: %v", ErrInternal, err)
	}
	if !booking.OwnedBy(userID) {
		uc.logger.Warn("GetInvoice: access denied for user=%s to booking id=%s", userID, bookingID)
		return nil, ErrAccessDenied
	}
	if !booking.CanViewInvoice() {
		uc.logger.Warn("GetInvoice: invoice unavailable for booking id=%s, status=%s", bookingID, booking.Status)
		return nil, ErrInvoiceUnavailable
	}

	car := booking.Car
	if car == nil && booking.CarID != "" {
		car, err = uc.carClient.GetCar(ctx, booking.CarID)
		if err != nil {
			// счет формируется и без данных автомобиля
			uc.logger.Warn("GetInvoice: failed to load car id=%s: %v", booking.CarID, err)
			car = nil
		}
	}

	return uc.build(booking, car), nil
}

// RenderPDF печатная форма счета
func (uc *UseCase) RenderPDF(ctx context.Context, bookingID, userID string) (*Document, error) {
	inv, err := uc.Execute(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	content, err := renderPDF(inv)
	if err != nil {
		uc.logger.Error("GetInvoice: failed to render pdf for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: render pdf: %v", ErrInternal, err)
	}

	uc.logger.Info("GetInvoice: rendered pdf for booking id=%s, size=%d", bookingID, len(content))
	return &Document{
		FileName:    fmt.Sprintf("invoice-%s.pdf", inv.BookingID),
		ContentType: PDFContentType,
		Content:     content,
	}, nil
}

// build опции тарифицируются по ценам, сохраненным в бронировании
func (uc *UseCase) build(b *domain.Booking, car *domain.Car) *Invoice {
	labels := make([]string, 0, len(b.AdditionalFeatures))
	booked := make([]domain.Feature, 0, len(b.AdditionalFeatures))
	for _, f := range b.AdditionalFeatures {
		labels = append(labels, f.Name)
		booked = append(booked, domain.Feature{Label: f.Name, Price: f.Price})
	}

	q := pricing.QuoteFor(b.Trip, car, labels, domain.NewFeatureCatalog(booked...))

	inv := &Invoice{
		BookingID:     b.ID,
		Car:           InvoiceCar{ID: b.CarID},
		Origin:        b.Origin,
		Destination:   b.Destination,
		StartDate:     b.Trip.Start,
		EndDate:       b.Trip.End,
		DurationHours: q.DurationHours,
		Duration:      durationLabel(q.DurationHours),
		PerDay:        q.PerDay,
		BilledUnits:   q.BilledUnits,
		BasePrice:     q.BasePrice,
		FeaturesPrice: q.FeaturesPrice,
		Total:         b.TotalCost,
		Features:      make([]InvoiceLine, 0, len(q.Features)),
		OTP:           b.OTP,
		Status:        string(b.Status),
		PaymentStatus: PaymentStatusUnpaid,
		PaymentMethod: string(b.PaymentType),
		PaymentID:     b.PaymentID,
		GeneratedAt:   uc.timeProvider.Now(),
	}

	if car != nil {
		inv.Car = InvoiceCar{ID: car.ID, Name: car.Name, Model: car.Model, Year: car.Year}
	} else {
		// без тарифа автомобиля базовая цена выводится из сохраненной суммы
		inv.BasePrice = b.TotalCost - q.FeaturesPrice
		if inv.BasePrice < 0 {
			inv.BasePrice = 0
		}
	}
	if inv.Total == 0 {
		inv.Total = q.BasePrice + q.FeaturesPrice
	}
	if b.CompletedPayment {
		inv.PaymentStatus = PaymentStatusPaid
	}

	for _, f := range q.Features {
		inv.Features = append(inv.Features, InvoiceLine{Name: f.Label, UnitPrice: f.UnitPrice, Amount: f.Amount})
	}

	return inv
}
