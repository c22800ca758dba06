package domain

import dErrors "boxoffice/pkg/domain-errors"

// PaymentMethod is a domain value that identifies how an order is paid.
// Invariant: the value must be one of the supported payment methods.
//
// Usage: construct via ParsePaymentMethod at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentMethodCard     PaymentMethod = "CREDIT_DEBIT_CARD"
	PaymentMethodApplePay PaymentMethod = "APPLE_PAY"
	PaymentMethodPayPal   PaymentMethod = "PAYPAL"
)

// validPaymentMethods is the single source of truth for valid payment methods.
var validPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCard:     true,
	PaymentMethodApplePay: true,
	PaymentMethodPayPal:   true,
}

// ParsePaymentMethod constructs a PaymentMethod from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "payment method cannot be empty")
	}
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unsupported payment method: %q", s)
	}
	return m, nil
}

// IsValid reports whether the payment method is in the allowlist.
func (m PaymentMethod) IsValid() bool {
	return validPaymentMethods[m]
}

func (m PaymentMethod) String() string {
	return string(m)
}
