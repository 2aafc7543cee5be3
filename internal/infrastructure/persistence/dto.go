package persistence

import (
	"database/sql"
	"time"

	"startupconnect/internal/domain/entity"
)

// attemptSchema maps one row of workflow_attempts.
type attemptSchema struct {
	ID        string    `db:"id"`
	OfferID   int64     `db:"offer_id"`
	Kind      string    `db:"kind"`
	StartedAt time.Time `db:"started_at"`
}

func fromAttempt(a entity.Attempt) attemptSchema {
	return attemptSchema{
		ID:        a.ID,
		OfferID:   a.OfferID,
		Kind:      string(a.Kind),
		StartedAt: a.StartedAt,
	}
}

func (s attemptSchema) toDomain() entity.Attempt {
	return entity.Attempt{
		ID:        s.ID,
		OfferID:   s.OfferID,
		Kind:      entity.AttemptKind(s.Kind),
		StartedAt: s.StartedAt,
	}
}

// stepSchema maps one row of workflow_attempt_steps.
type stepSchema struct {
	AttemptID  string         `db:"attempt_id"`
	Name       string         `db:"name"`
	OK         bool           `db:"ok"`
	Error      sql.NullString `db:"error"`
	FinishedAt time.Time      `db:"finished_at"`
}

func fromStep(attemptID string, step entity.AttemptStep) stepSchema {
	return stepSchema{
		AttemptID:  attemptID,
		Name:       step.Name,
		OK:         step.OK,
		Error:      sql.NullString{String: step.Error, Valid: step.Error != ""},
		FinishedAt: step.FinishedAt,
	}
}

func (s stepSchema) toDomain() entity.AttemptStep {
	return entity.AttemptStep{
		Name:       s.Name,
		OK:         s.OK,
		Error:      s.Error.String,
		FinishedAt: s.FinishedAt,
	}
}
