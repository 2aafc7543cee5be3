package value

import (
	"startupconnect/internal/domain"
	"startupconnect/pkg/errcodes"
)

// OfferStatus is the server-owned lifecycle state of an investment offer.
// NEGOTIATING and CLOSED are written by the client as part of the workflow;
// ACTIVE is the state offers are created in.
type OfferStatus string

const (
	OfferStatusActive      OfferStatus = "ACTIVE"
	OfferStatusNegotiating OfferStatus = "NEGOTIATING"
	OfferStatusClosed      OfferStatus = "CLOSED"
)

func (s OfferStatus) String() string {
	return string(s)
}

// Terminal reports whether no further workflow action applies to the offer.
func (s OfferStatus) Terminal() bool {
	return s == OfferStatusClosed
}

func ParseOfferStatus(s string) (OfferStatus, error) {
	switch OfferStatus(s) {
	case OfferStatusActive, OfferStatusNegotiating, OfferStatusClosed:
		return OfferStatus(s), nil
	}

	return "", domain.NewError(errcodes.InvalidOfferStatus, "unknown offer status: "+s)
}
