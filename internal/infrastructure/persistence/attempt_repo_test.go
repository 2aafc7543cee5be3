package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain/entity"
	"startupconnect/pkg/dbtest"
	"startupconnect/pkg/tests"
)

func journalDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_workflow_journal.sql"))

	return db
}

func TestAttemptRepository_RecordAndGet(t *testing.T) {
	repo := NewAttemptRepository(journalDB(t))
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Millisecond)

	attempt := entity.Attempt{
		ID:        xid.New().String(),
		OfferID:   42,
		Kind:      entity.AttemptKindNegotiate,
		StartedAt: started,
		Steps: []entity.AttemptStep{
			{Name: "send_message", OK: true, FinishedAt: started.Add(10 * time.Millisecond)},
			{Name: "update_offer_status", OK: true, FinishedAt: started.Add(20 * time.Millisecond)},
			{Name: "create_transaction", OK: false, Error: "backend request failed", FinishedAt: started.Add(30 * time.Millisecond)},
		},
	}

	require.NoError(t, repo.Record(ctx, attempt))

	got, err := repo.GetByID(ctx, attempt.ID)
	require.NoError(t, err)
	require.Equal(t, attempt.OfferID, got.OfferID)
	require.Equal(t, entity.AttemptKindNegotiate, got.Kind)
	require.Len(t, got.Steps, 3)
	require.Equal(t, "send_message", got.Steps[0].Name)
	require.False(t, got.Steps[2].OK)
	require.Equal(t, "backend request failed", got.Steps[2].Error)
}

func TestAttemptRepository_ListByOffer(t *testing.T) {
	repo := NewAttemptRepository(journalDB(t))
	ctx := context.Background()

	// A fresh offer id isolates the test from earlier journal rows.
	offerID := tests.NewRandomizer().Int63()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Record(ctx, entity.Attempt{
			ID:        xid.New().String(),
			OfferID:   offerID,
			Kind:      entity.AttemptKindNegotiate,
			StartedAt: time.Now().UTC(),
		}))
	}

	attempts, err := repo.ListByOffer(ctx, offerID)
	require.NoError(t, err)
	require.Len(t, attempts, 2, "each negotiation run journals its own attempt")
}

func TestAttemptRepository_GetMissing(t *testing.T) {
	repo := NewAttemptRepository(journalDB(t))

	_, err := repo.GetByID(context.Background(), xid.New().String())
	require.Error(t, err)
}
