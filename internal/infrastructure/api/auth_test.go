package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain"
	"startupconnect/pkg/errcodes"
)

func TestAuthClient_Login(t *testing.T) {
	t.Run("persists session on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)

			_, _ = w.Write([]byte(`{
				"token": "jwt-abc",
				"id": 11,
				"email": "founder@acme.io",
				"name": "Acme Founder",
				"role": "STARTUP"
			}`))
		}))
		defer srv.Close()

		store := &stubStore{}
		base := NewClient(srv.URL, store, srv.Client())

		sess, err := NewAuthClient(base).Login(context.Background(), "founder@acme.io", "secret")
		require.NoError(t, err)
		require.Equal(t, "jwt-abc", sess.Token)
		require.EqualValues(t, 11, sess.User.ID)

		persisted, ok := store.Current()
		require.True(t, ok)
		require.Equal(t, sess, persisted)
	})

	t.Run("401 becomes credentials mismatch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		store := &stubStore{}
		base := NewClient(srv.URL, store, srv.Client())

		_, err := NewAuthClient(base).Login(context.Background(), "founder@acme.io", "wrong")
		require.Error(t, err)

		code, ok := domain.GetCode(err)
		require.True(t, ok)
		require.Equal(t, errcodes.CredentialsMismatch, code)

		_, stillLoggedIn := store.Current()
		require.False(t, stillLoggedIn)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"token":"t","id":1,"email":"a@b.c","role":"SUPERUSER"}`))
		}))
		defer srv.Close()

		base := NewClient(srv.URL, &stubStore{}, srv.Client())

		_, err := NewAuthClient(base).Login(context.Background(), "a@b.c", "pw")
		require.Error(t, err)

		code, ok := domain.GetCode(err)
		require.True(t, ok)
		require.Equal(t, errcodes.InvalidUserRole, code)
	})
}

func TestAuthClient_Logout(t *testing.T) {
	store := loggedInStore()
	base := NewClient("http://unused", store, nil)

	require.NoError(t, NewAuthClient(base).Logout(context.Background()))

	_, ok := store.Current()
	require.False(t, ok)
	require.Empty(t, store.Token())
}
