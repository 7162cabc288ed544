package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Actions(t *testing.T) {
	tests := []struct {
		name      string
		status    BookingStatus
		completed bool
		want      BookingActions
	}{
		{"pending", StatusPending, false, BookingActions{Modify: true, Cancel: true, ViewInvoice: true}},
		{"approved unpaid", StatusApproved, false, BookingActions{Pay: true, ViewInvoice: true}},
		{"approved paid", StatusApproved, true, BookingActions{ViewInvoice: true}},
		{"rejected", StatusRejected, false, BookingActions{RejectionNotice: true}},
		{"completed", StatusCompleted, true, BookingActions{ViewInvoice: true}},
		{"unknown status", BookingStatus("archived"), false, BookingActions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, CompletedPayment: tt.completed}
			assert.Equal(t, tt.want, b.Actions())
			assert.Equal(t, tt.want.Modify, b.CanModify())
			assert.Equal(t, tt.want.Cancel, b.CanCancel())
			assert.Equal(t, tt.want.Pay, b.CanPay())
			assert.Equal(t, tt.want.ViewInvoice, b.CanViewInvoice())
		})
	}
}

func TestParsePaymentType(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentType
	}{
		{"cash", PaymentCash},
		{"stripe", PaymentStripe},
		{"qr_code", PaymentQRCode},
		{"qr code", PaymentQRCode},
		{"Google Pay", PaymentGooglePay},
		{"google_pay", PaymentGooglePay},
		{"Aamar Pay", PaymentAamarPay},
		{" aamar-pay ", PaymentAamarPay},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePaymentType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePaymentType("razorpay")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPaymentType_Rules(t *testing.T) {
	for _, p := range PaymentTypes {
		assert.Equal(t, p != PaymentCash, p.CompletesOnCreate(), p)
		if p == PaymentQRCode {
			assert.Equal(t, StatusApproved, p.InitialStatus())
		} else {
			assert.Equal(t, StatusPending, p.InitialStatus(), p)
		}
	}

	assert.True(t, PaymentGooglePay.RequiresVerification())
	assert.False(t, PaymentStripe.RequiresVerification())
	assert.False(t, PaymentCash.RequiresVerification())
	assert.Equal(t, "Google Pay", PaymentGooglePay.WireValue())
	assert.Equal(t, "cash", PaymentCash.WireValue())
}

func TestDestinationInfo_Merge(t *testing.T) {
	d := DestinationInfo{Origin: "Dhaka", Destination: "Sylhet", Distance: "240 km"}
	got := d.Merge(DestinationInfo{Destination: "Chittagong"})
	assert.Equal(t, DestinationInfo{Origin: "Dhaka", Destination: "Chittagong", Distance: "240 km"}, got)
}

func TestIsOTPCandidate(t *testing.T) {
	assert.True(t, IsOTPCandidate(1001))
	assert.True(t, IsOTPCandidate(1008))
	assert.False(t, IsOTPCandidate(1009))
}
