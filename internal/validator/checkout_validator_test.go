package validator_test

import (
	"testing"

	"github.com/Solvent24/odette-market/internal/domain/model"
	"github.com/Solvent24/odette-market/internal/validator"

	"github.com/stretchr/testify/assert"
)

func validAddress() model.ShippingAddress {
	return model.ShippingAddress{
		FullName:      "Odette U.",
		Email:         "odette@example.com",
		Phone:         "0788123456",
		Address:       "KN 5 Rd",
		City:          "Kigali",
		State:         "Kigali City",
		Country:       "Rwanda",
		PaymentMethod: model.PaymentMTNMomo,
	}
}

func TestValidateShippingAddress_OK(t *testing.T) {
	v := validator.NewCheckoutValidator()
	assert.NoError(t, v.ValidateShippingAddress(validAddress()))
}

func TestValidateShippingAddress_MissingFields(t *testing.T) {
	v := validator.NewCheckoutValidator()

	cases := []func(*model.ShippingAddress){
		func(a *model.ShippingAddress) { a.FullName = "" },
		func(a *model.ShippingAddress) { a.Email = "  " },
		func(a *model.ShippingAddress) { a.Phone = "" },
		func(a *model.ShippingAddress) { a.Address = "" },
		func(a *model.ShippingAddress) { a.City = "" },
		func(a *model.ShippingAddress) { a.State = "" },
		func(a *model.ShippingAddress) { a.Country = "" },
	}

	for i, mutate := range cases {
		a := validAddress()
		mutate(&a)
		assert.Error(t, v.ValidateShippingAddress(a), "case %d", i)
	}
}

func TestValidateShippingAddress_BadEmail(t *testing.T) {
	v := validator.NewCheckoutValidator()

	a := validAddress()
	a.Email = "not-an-email"
	assert.Error(t, v.ValidateShippingAddress(a))
}

func TestValidateShippingAddress_PostalCodeIsOptional(t *testing.T) {
	v := validator.NewCheckoutValidator()

	a := validAddress()
	a.PostalCode = ""
	assert.NoError(t, v.ValidateShippingAddress(a))
}

func TestValidateShippingAddress_UnknownPaymentMethod(t *testing.T) {
	v := validator.NewCheckoutValidator()

	a := validAddress()
	a.PaymentMethod = "paypal"
	assert.Error(t, v.ValidateShippingAddress(a))
}

func TestValidateShippingAddress_AllMethodsAccepted(t *testing.T) {
	v := validator.NewCheckoutValidator()

	for _, m := range []model.PaymentMethod{
		model.PaymentMTNMomo,
		model.PaymentAirtelMoney,
		model.PaymentCashDelivery,
	} {
		a := validAddress()
		a.PaymentMethod = m
		assert.NoError(t, v.ValidateShippingAddress(a), string(m))
	}
}
