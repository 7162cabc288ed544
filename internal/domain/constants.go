package domain

import "time"

// Trip defaults
const (
	DefaultTripLength = 24 * time.Hour
	HoursPerDay       = 24
)

// Form validation constants
const (
	MaxIdentityFieldLength = 64
	MaxLocationLength      = 256
)

// Time format constants
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
)

// OTPCandidates фиксированный набор кодов выдачи автомобиля
// Коды не уникальны между бронированиями
var OTPCandidates = [8]int{1001, 1002, 1003, 1004, 1005, 1006, 1007, 1008}

// IsOTPCandidate проверяет, что код входит в набор
func IsOTPCandidate(otp int) bool {
	for _, c := range OTPCandidates {
		if c == otp {
			return true
		}
	}
	return false
}
