package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
	"startupconnect/internal/session"
)

func TestFileStore(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	// Empty store: not logged in, no error, no token.
	_, ok := store.Current()
	rq.False(ok)
	rq.Empty(store.Token())

	sess := entity.Session{
		Token: "test-token",
		User: entity.User{
			ID:    7,
			Email: "founder@acme.dev",
			Name:  "Acme Founder",
			Role:  value.RoleStartup,
		},
	}

	rq.NoError(store.Set(ctx, sess))

	got, ok := store.Current()
	rq.True(ok)
	rq.Equal(sess, got)
	rq.Equal("test-token", store.Token())

	// A second store over the same file sees the persisted session.
	reopened := session.NewFileStore(path)

	got, ok = reopened.Current()
	rq.True(ok)
	rq.Equal(sess, got)

	var cleared bool

	store.OnClear(func() { cleared = true })

	rq.NoError(store.Clear(ctx))
	rq.True(cleared)

	_, ok = store.Current()
	rq.False(ok)
	rq.Empty(store.Token())

	_, err := os.Stat(path)
	rq.ErrorIs(err, os.ErrNotExist)

	// Clearing an already-empty store is not an error.
	rq.NoError(store.Clear(ctx))
}

func TestFileStoreCorruptFile(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "session.json")
	rq.NoError(os.WriteFile(path, []byte("{not json"), 0o600))

	store := session.NewFileStore(path)

	_, ok := store.Current()
	rq.False(ok)
	rq.Empty(store.Token())
}
