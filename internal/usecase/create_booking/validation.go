package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// validateRequest валидирует поля формы и возвращает разобранный способ оплаты
func validateRequest(req *Request) (domain.PaymentType, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return "", fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CarID) == "" {
		return "", fmt.Errorf("%w: carId is required", ErrInvalidInput)
	}

	if err := validateIdentityField("nidOrPassport", req.NIDOrPassport); err != nil {
		return "", err
	}

	if err := validateIdentityField("drivingLicense", req.DrivingLicense); err != nil {
		return "", err
	}

	paymentType, err := domain.ParsePaymentType(req.PaymentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return paymentType, nil
}

// validateIdentityField проверяет обязательное поле документа
func validateIdentityField(name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	if len(value) > domain.MaxIdentityFieldLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, name, domain.MaxIdentityFieldLength)
	}
	return nil
}
