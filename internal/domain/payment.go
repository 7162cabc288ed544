package domain

import (
	"fmt"
	"strings"
	"time"
)

// PaymentType способ оплаты бронирования (закрытый набор)
type PaymentType string

const (
	PaymentCash      PaymentType = "cash"
	PaymentStripe    PaymentType = "stripe"
	PaymentAamarPay  PaymentType = "aamar_pay"
	PaymentQRCode    PaymentType = "qr_code"
	PaymentGooglePay PaymentType = "google_pay"
)

// PaymentTypes все поддерживаемые способы оплаты
var PaymentTypes = []PaymentType{
	PaymentCash,
	PaymentStripe,
	PaymentAamarPay,
	PaymentQRCode,
	PaymentGooglePay,
}

// ParsePaymentType принимает каноническое и устаревшие написания ("Google Pay", "qr code", "Aamar Pay")
func ParsePaymentType(s string) (PaymentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch PaymentType(normalized) {
	case PaymentCash, PaymentStripe, PaymentAamarPay, PaymentQRCode, PaymentGooglePay:
		return PaymentType(normalized), nil
	default:
		return "", fmt.Errorf("%w: unknown payment type %q", ErrValidation, s)
	}
}

// CompletesOnCreate оплата считается выполненной при создании для всех способов, кроме наличных
func (p PaymentType) CompletesOnCreate() bool {
	return p != PaymentCash
}

// InitialStatus статус нового бронирования: approved для QR, pending для остальных
func (p PaymentType) InitialStatus() BookingStatus {
	if p == PaymentQRCode {
		return StatusApproved
	}
	return StatusPending
}

// RequiresVerification оплата подтверждается проверкой транзакции у платежного шлюза
func (p PaymentType) RequiresVerification() bool {
	switch p {
	case PaymentQRCode, PaymentGooglePay, PaymentAamarPay:
		return true
	default:
		return false
	}
}

// WireValue написание, которое ожидает удаленный API бронирований
func (p PaymentType) WireValue() string {
	switch p {
	case PaymentGooglePay:
		return "Google Pay"
	case PaymentAamarPay:
		return "Aamar Pay"
	default:
		return string(p)
	}
}

func (p PaymentType) String() string {
	return string(p)
}

// PaymentStatus состояние записи об оплате
type PaymentStatus string

const (
	PaymentStatusPending             PaymentStatus = "pending"
	PaymentStatusPendingVerification PaymentStatus = "pending_verification"
	PaymentStatusAwaitingAdmin       PaymentStatus = "awaiting_admin"
	PaymentStatusVerified            PaymentStatus = "verified"
	PaymentStatusFailed              PaymentStatus = "failed"
	PaymentStatusExpired             PaymentStatus = "expired"
)

// IsFinal статус больше не меняется
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusFailed || s == PaymentStatusExpired
}

// TransactionStatus статус транзакции у платежного шлюза
type TransactionStatus string

const (
	TransactionSucceeded TransactionStatus = "succeeded"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Payment запись об оплате бронирования
type Payment struct {
	ID                string
	BookingID         string
	UserID            string
	Method            PaymentType
	Status            PaymentStatus
	Amount            float64
	Currency          string
	TransactionRef    *string
	CheckoutSessionID *string
	CheckoutURL       *string
	ProviderPaymentID *string
	Attempts          int
	FailureReason     *string
	VerifiedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
