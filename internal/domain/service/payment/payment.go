package payment

import (
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/errcodes"
)

// Payment capture is simulated: validation happens entirely client-side and
// nothing is charged. Its only effect is gating the accept workflow, so the
// rules here are the whole payment system.

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	upiRe        = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
	holderRe     = regexp.MustCompile(`^[A-Za-z ]+$`)
	accountRe    = regexp.MustCompile(`^\d{1,18}$`)
	ifscRe       = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// allowedProofTypes are the accepted payment proof formats. The type comes
// from sniffing the bytes, never from a client-supplied file name.
var allowedProofTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// Details is everything the payer submitted. Only the fields of the chosen
// method are inspected; the rest may stay zero.
type Details struct {
	Method value.PaymentMethod

	CardNumber string
	Expiry     string
	CVV        string

	UPIID string
	Proof []byte

	BankName      string
	AccountHolder string
	AccountNumber string
	IFSC          string
}

// Validator checks payment details against the capture rules. The clock is
// injectable so expiry checks stay deterministic in tests.
type Validator struct {
	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate returns nil when the details pass, otherwise the first failed
// rule as a typed error. Checks run in field order, matching the order the
// payment form presents them.
func (v *Validator) Validate(details Details) error {
	switch details.Method {
	case value.PaymentMethodCard:
		return v.validateCard(details)
	case value.PaymentMethodUPI:
		return v.validateUPI(details)
	case value.PaymentMethodBank:
		return v.validateBank(details)
	default:
		return domain.NewError(errcodes.UnknownPaymentMethod, "unknown payment method: "+details.Method.String())
	}
}

func (v *Validator) validateCard(details Details) error {
	number := strings.ReplaceAll(details.CardNumber, " ", "")

	if !cardNumberRe.MatchString(number) {
		return domain.NewError(errcodes.InvalidCardNumber, "card number must be 16 digits")
	}

	if !cvvRe.MatchString(details.CVV) {
		return domain.NewError(errcodes.InvalidCVV, "CVV must be 3 or 4 digits")
	}

	return v.validateExpiry(details.Expiry)
}

func (v *Validator) validateExpiry(expiry string) error {
	if !expiryRe.MatchString(expiry) {
		return domain.NewError(errcodes.InvalidExpiry, "expiry must be MM/YY")
	}

	expires, err := time.Parse("01/06", expiry)
	if err != nil {
		return domain.NewError(errcodes.InvalidExpiry, "expiry must be MM/YY")
	}

	// A card is valid through the last day of its expiry month.
	now := v.now()
	if expires.Year() < now.Year() || (expires.Year() == now.Year() && expires.Month() < now.Month()) {
		return domain.NewError(errcodes.CardExpired, "card has expired")
	}

	return nil
}

func (v *Validator) validateUPI(details Details) error {
	if !upiRe.MatchString(details.UPIID) {
		return domain.NewError(errcodes.InvalidUPIID, "invalid UPI id format")
	}

	if len(details.Proof) == 0 {
		return domain.NewError(errcodes.MissingPaymentProof, "a screenshot or PDF payment proof is required")
	}

	proofType := mimetype.Detect(details.Proof)
	for _, allowed := range allowedProofTypes {
		if proofType.Is(allowed) {
			return nil
		}
	}

	return domain.NewError(errcodes.InvalidPaymentProof, "only .jpg, .png or .pdf files are allowed")
}

func (v *Validator) validateBank(details Details) error {
	if details.BankName == "" {
		return domain.NewError(errcodes.InvalidBankName, "bank name is required")
	}

	if !holderRe.MatchString(details.AccountHolder) {
		return domain.NewError(errcodes.InvalidAccountHolder, "account holder name may contain only letters and spaces")
	}

	if !accountRe.MatchString(details.AccountNumber) {
		return domain.NewError(errcodes.InvalidAccountNumber, "account number must be 1 to 18 digits")
	}

	if !ifscRe.MatchString(details.IFSC) {
		return domain.NewError(errcodes.InvalidIFSC, "invalid IFSC code")
	}

	return nil
}
