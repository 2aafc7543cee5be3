package entity

import (
	"startupconnect/internal/domain/value"
	"time"
)

// Transaction is a persisted record of one workflow step against an offer,
// not a database transaction. The client creates a new row per action, so one
// offer accumulates rows over its negotiation lifetime.
type Transaction struct {
	ID              int64
	InvestorID      int64
	StartupID       int64
	OfferID         int64
	Amount          float64
	Status          value.TransactionStatus
	TransactionType value.TransactionType
	Description     string
	TransactionDate time.Time
}
