package entity

import "time"

// AttemptKind is the workflow action an attempt records.
type AttemptKind string

const (
	AttemptKindNegotiate AttemptKind = "NEGOTIATE"
	AttemptKindAccept    AttemptKind = "ACCEPT"
	AttemptKindReject    AttemptKind = "REJECT"
)

// Attempt is one journaled run of a workflow action. The REST calls it spans
// share no transaction boundary, so the journal keeps the per-step outcomes
// that make partial failures and duplicate submissions diagnosable.
type Attempt struct {
	ID        string
	OfferID   int64
	Kind      AttemptKind
	StartedAt time.Time
	Steps     []AttemptStep
}

type AttemptStep struct {
	Name       string
	OK         bool
	Error      string
	FinishedAt time.Time
}
