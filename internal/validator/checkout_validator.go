package validator

import (
	"fmt"
	"strings"

	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/usecase"
)

type checkoutValidator struct{}

func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// Every required shipping field is checked before anything is written.
func (v *checkoutValidator) ValidateShippingAddress(a model.ShippingAddress) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"country", a.Country},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}

	if !emailRe.MatchString(strings.TrimSpace(a.Email)) {
		return ErrInvalidInput
	}

	switch a.PaymentMethod {
	case model.PaymentMTNMomo, model.PaymentAirtelMoney, model.PaymentCashDelivery:
		return nil
	default:
		return fmt.Errorf("unknown payment method %q", a.PaymentMethod)
	}
}
