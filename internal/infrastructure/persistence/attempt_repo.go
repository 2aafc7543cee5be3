package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/pkg/errcodes"
)

// AttemptRepository persists the workflow attempt journal. The journal is an
// audit trail for a workflow that spans multiple non-transactional REST
// calls, so writes here are best-effort from the caller's point of view.
type AttemptRepository struct {
	db *sqlx.DB
}

func NewAttemptRepository(db *sqlx.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// withTx executes fn inside a database transaction.
func (r *AttemptRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Record stores an attempt together with its steps atomically.
func (r *AttemptRepository) Record(ctx context.Context, attempt entity.Attempt) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema := fromAttempt(attempt)

		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO workflow_attempts (id, offer_id, kind, started_at)
			VALUES (:id, :offer_id, :kind, :started_at)`, schema)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert attempt")
		}

		for _, step := range attempt.Steps {
			_, err := tx.NamedExecContext(ctx, `
				INSERT INTO workflow_attempt_steps (attempt_id, name, ok, error, finished_at)
				VALUES (:attempt_id, :name, :ok, :error, :finished_at)`,
				fromStep(attempt.ID, step))
			if err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to insert attempt step")
			}
		}

		return nil
	})
}

// GetByID returns one attempt with its steps in execution order.
func (r *AttemptRepository) GetByID(ctx context.Context, id string) (entity.Attempt, error) {
	var schema attemptSchema

	err := r.db.GetContext(ctx, &schema, `
		SELECT id, offer_id, kind, started_at
		FROM workflow_attempts
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Attempt{}, domain.NewError(errcodes.NotFound, "attempt not found")
		}
		return entity.Attempt{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get attempt")
	}

	attempt := schema.toDomain()

	steps, err := r.stepsFor(ctx, id)
	if err != nil {
		return entity.Attempt{}, err
	}

	attempt.Steps = steps

	return attempt, nil
}

// ListByOffer returns every journaled attempt against one offer, oldest
// first. Duplicate negotiations show up here as separate attempts.
func (r *AttemptRepository) ListByOffer(ctx context.Context, offerID int64) ([]entity.Attempt, error) {
	var schemas []attemptSchema

	err := r.db.SelectContext(ctx, &schemas, `
		SELECT id, offer_id, kind, started_at
		FROM workflow_attempts
		WHERE offer_id = $1
		ORDER BY started_at`, offerID)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list attempts")
	}

	attempts := make([]entity.Attempt, 0, len(schemas))

	for _, schema := range schemas {
		attempt := schema.toDomain()

		steps, err := r.stepsFor(ctx, attempt.ID)
		if err != nil {
			return nil, err
		}

		attempt.Steps = steps
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}

func (r *AttemptRepository) stepsFor(ctx context.Context, attemptID string) ([]entity.AttemptStep, error) {
	var schemas []stepSchema

	err := r.db.SelectContext(ctx, &schemas, `
		SELECT attempt_id, name, ok, error, finished_at
		FROM workflow_attempt_steps
		WHERE attempt_id = $1
		ORDER BY finished_at, name`, attemptID)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list attempt steps")
	}

	steps := make([]entity.AttemptStep, 0, len(schemas))
	for _, schema := range schemas {
		steps = append(steps, schema.toDomain())
	}

	return steps, nil
}
