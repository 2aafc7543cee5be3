package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/errcodes"
)

// fixedNow keeps expiry checks deterministic: mid-2026.
var fixedNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func testValidator() *Validator {
	return NewValidator().WithClock(func() time.Time { return fixedNow })
}

var (
	jpegProof = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pdfProof  = []byte("%PDF-1.4\n%proof")
	gifProof  = []byte("GIF89a trailing bytes")
)

func validCard() Details {
	return Details{
		Method:     value.PaymentMethodCard,
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/27",
		CVV:        "123",
	}
}

func TestValidator_Card(t *testing.T) {
	tt := []struct {
		name     string
		mutate   func(*Details)
		wantCode string
	}{
		{
			name:   "valid with spaces in number",
			mutate: func(*Details) {},
		},
		{
			name:   "valid four digit cvv",
			mutate: func(d *Details) { d.CVV = "1234" },
		},
		{
			name:   "expires this month is still valid",
			mutate: func(d *Details) { d.Expiry = "06/26" },
		},
		{
			name:     "fifteen digits",
			mutate:   func(d *Details) { d.CardNumber = "411111111111111" },
			wantCode: string(errcodes.InvalidCardNumber),
		},
		{
			name:     "letters in number",
			mutate:   func(d *Details) { d.CardNumber = "4111x11111111111" },
			wantCode: string(errcodes.InvalidCardNumber),
		},
		{
			name:     "two digit cvv",
			mutate:   func(d *Details) { d.CVV = "12" },
			wantCode: string(errcodes.InvalidCVV),
		},
		{
			name:     "expiry month thirteen",
			mutate:   func(d *Details) { d.Expiry = "13/27" },
			wantCode: string(errcodes.InvalidExpiry),
		},
		{
			name:     "expiry without slash",
			mutate:   func(d *Details) { d.Expiry = "1227" },
			wantCode: string(errcodes.InvalidExpiry),
		},
		{
			name:     "expired last month",
			mutate:   func(d *Details) { d.Expiry = "05/26" },
			wantCode: string(errcodes.CardExpired),
		},
		{
			name:     "expired last year",
			mutate:   func(d *Details) { d.Expiry = "12/25" },
			wantCode: string(errcodes.CardExpired),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			details := validCard()
			tc.mutate(&details)

			err := testValidator().Validate(details)
			if tc.wantCode == "" {
				require.NoError(t, err)
				return
			}

			code, ok := domain.GetCode(err)
			require.True(t, ok)
			require.Equal(t, tc.wantCode, string(code))
		})
	}
}

func TestValidator_UPI(t *testing.T) {
	tt := []struct {
		name     string
		details  Details
		wantCode string
	}{
		{
			name:    "valid with jpeg proof",
			details: Details{Method: value.PaymentMethodUPI, UPIID: "someone@sbi", Proof: jpegProof},
		},
		{
			name:    "valid with pdf proof",
			details: Details{Method: value.PaymentMethodUPI, UPIID: "9871234560@upi", Proof: pdfProof},
		},
		{
			name:     "missing at sign",
			details:  Details{Method: value.PaymentMethodUPI, UPIID: "someone.sbi", Proof: jpegProof},
			wantCode: string(errcodes.InvalidUPIID),
		},
		{
			name:     "no proof",
			details:  Details{Method: value.PaymentMethodUPI, UPIID: "someone@sbi"},
			wantCode: string(errcodes.MissingPaymentProof),
		},
		{
			name:     "gif proof rejected by content",
			details:  Details{Method: value.PaymentMethodUPI, UPIID: "someone@sbi", Proof: gifProof},
			wantCode: string(errcodes.InvalidPaymentProof),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := testValidator().Validate(tc.details)
			if tc.wantCode == "" {
				require.NoError(t, err)
				return
			}

			code, ok := domain.GetCode(err)
			require.True(t, ok)
			require.Equal(t, tc.wantCode, string(code))
		})
	}
}

func TestValidator_Bank(t *testing.T) {
	valid := Details{
		Method:        value.PaymentMethodBank,
		BankName:      "State Bank",
		AccountHolder: "Jordan Smith",
		AccountNumber: "123456789012",
		IFSC:          "SBIN0001234",
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, testValidator().Validate(valid))
	})

	tt := []struct {
		name     string
		mutate   func(*Details)
		wantCode string
	}{
		{
			name:     "empty bank name",
			mutate:   func(d *Details) { d.BankName = "" },
			wantCode: string(errcodes.InvalidBankName),
		},
		{
			name:     "digits in holder name",
			mutate:   func(d *Details) { d.AccountHolder = "Jordan 2nd" },
			wantCode: string(errcodes.InvalidAccountHolder),
		},
		{
			name:     "letters in account number",
			mutate:   func(d *Details) { d.AccountNumber = "12345678A" },
			wantCode: string(errcodes.InvalidAccountNumber),
		},
		{
			name:     "account number too long",
			mutate:   func(d *Details) { d.AccountNumber = "1234567890123456789" },
			wantCode: string(errcodes.InvalidAccountNumber),
		},
		{
			name:     "lowercase ifsc",
			mutate:   func(d *Details) { d.IFSC = "sbin0001234" },
			wantCode: string(errcodes.InvalidIFSC),
		},
		{
			name:     "ifsc missing zero",
			mutate:   func(d *Details) { d.IFSC = "SBIN1001234" },
			wantCode: string(errcodes.InvalidIFSC),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			details := valid
			tc.mutate(&details)

			code, ok := domain.GetCode(testValidator().Validate(details))
			require.True(t, ok)
			require.Equal(t, tc.wantCode, string(code))
		})
	}
}

func TestValidator_UnknownMethod(t *testing.T) {
	err := testValidator().Validate(Details{Method: value.PaymentMethod("crypto")})

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.UnknownPaymentMethod, code)
}
