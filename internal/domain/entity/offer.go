package entity

import (
	"startupconnect/internal/domain/value"
	"time"
)

// Offer is a startup-authored investment proposal. The record is server-owned;
// this copy is transient and only as fresh as the last fetch.
type Offer struct {
	ID               int64
	StartupID        int64
	Amount           float64
	EquityPercentage float64
	Description      string
	Terms            string
	Status           value.OfferStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Actionable reports whether accept/negotiate actions still apply.
func (o Offer) Actionable() bool {
	return !o.Status.Terminal()
}
