package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/config"
	"startupconnect/internal/session"
)

func TestNewSessionStore_File(t *testing.T) {
	cfg := config.Config{}
	cfg.Session.Backend = "file"
	cfg.Session.Path = filepath.Join(t.TempDir(), "session.json")

	store, closeStore, err := newSessionStore(context.Background(), cfg)

	require.NoError(t, err)
	require.IsType(t, &session.FileStore{}, store)

	closeStore()
}

func TestNewSessionStore_UnknownBackend(t *testing.T) {
	cfg := config.Config{}
	cfg.Session.Backend = "memcached"

	_, _, err := newSessionStore(context.Background(), cfg)

	require.ErrorContains(t, err, "unknown session backend")
}
