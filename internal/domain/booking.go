package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a car rental reservation stored by the remote booking service
type Booking struct {
	ID                 string
	UserID             string
	CarID              string
	Car                *Car // nil, если удаленный API вернул только id
	Origin             string
	Destination        string
	NIDOrPassport      string
	DrivingLicense     string
	Trip               TripRange
	AdditionalFeatures []BookedFeature
	TotalCost          float64
	PaymentType        PaymentType
	PaymentID          string
	CompletedPayment   bool
	Status             BookingStatus
	OTP                int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BookingActions набор доступных действий над бронированием
type BookingActions struct {
	Modify          bool
	Cancel          bool
	Pay             bool
	ViewInvoice     bool
	RejectionNotice bool
}

// Actions вычисляет доступные действия по статусу и признаку оплаты
func (b *Booking) Actions() BookingActions {
	switch b.Status {
	case StatusPending:
		return BookingActions{Modify: true, Cancel: true, ViewInvoice: true}
	case StatusApproved:
		if b.CompletedPayment {
			return BookingActions{ViewInvoice: true}
		}
		return BookingActions{Pay: true, ViewInvoice: true}
	case StatusRejected:
		return BookingActions{RejectionNotice: true}
	case StatusCompleted:
		return BookingActions{ViewInvoice: true}
	default:
		return BookingActions{}
	}
}

// CanModify изменение доступно только для pending
func (b *Booking) CanModify() bool {
	return b.Actions().Modify
}

// CanCancel отмена доступна только для pending
func (b *Booking) CanCancel() bool {
	return b.Actions().Cancel
}

// CanPay оплата доступна для approved без завершенной оплаты
func (b *Booking) CanPay() bool {
	return b.Actions().Pay
}

// CanViewInvoice счет доступен везде, кроме rejected
func (b *Booking) CanViewInvoice() bool {
	return b.Actions().ViewInvoice
}

// BookingUpdate изменяемые поля бронирования, nil означает "не менять"
type BookingUpdate struct {
	Trip               *TripRange
	AdditionalFeatures []BookedFeature
	TotalCost          *float64
	PaymentType        *PaymentType
	PaymentID          *string
	CompletedPayment   *bool
}

// OwnedBy true, если бронирование принадлежит пользователю
// Пустой UserID означает, что удаленный API не вернул владельца, проверку выполняет он сам
func (b *Booking) OwnedBy(userID string) bool {
	return b.UserID == "" || b.UserID == userID
}
