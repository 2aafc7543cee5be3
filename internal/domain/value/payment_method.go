package value

import (
	"startupconnect/internal/domain"
	"startupconnect/pkg/errcodes"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodBank PaymentMethod = "bank"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodBank:
		return PaymentMethod(s), nil
	}

	return "", domain.NewError(errcodes.UnknownPaymentMethod, "unknown payment method: "+s)
}
