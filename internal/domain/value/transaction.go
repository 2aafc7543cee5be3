package value

import (
	"startupconnect/internal/domain"
	"startupconnect/pkg/errcodes"
)

type TransactionStatus string

const (
	TransactionStatusPending     TransactionStatus = "PENDING"
	TransactionStatusNegotiating TransactionStatus = "NEGOTIATING"
	TransactionStatusAccepted    TransactionStatus = "ACCEPTED"
	TransactionStatusRejected    TransactionStatus = "REJECTED"
)

func (s TransactionStatus) String() string {
	return string(s)
}

// TransactionType names the workflow step a transaction row records. The
// backend accepts both NEGOTIATION and the legacy NEGOTIATE spelling; the
// orchestrator only ever writes NEGOTIATION and ACCEPT.
type TransactionType string

const (
	TransactionTypeNegotiation TransactionType = "NEGOTIATION"
	TransactionTypeNegotiate   TransactionType = "NEGOTIATE"
	TransactionTypeAccept      TransactionType = "ACCEPT"
)

func (t TransactionType) String() string {
	return string(t)
}

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusNegotiating,
		TransactionStatusAccepted, TransactionStatusRejected:
		return TransactionStatus(s), nil
	}

	return "", domain.NewError(errcodes.InvalidTransaction, "unknown transaction status: "+s)
}

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeNegotiation, TransactionTypeNegotiate, TransactionTypeAccept:
		return TransactionType(s), nil
	}

	return "", domain.NewError(errcodes.InvalidTransaction, "unknown transaction type: "+s)
}
