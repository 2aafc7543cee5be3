package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/errcodes"
)

type stubStore struct {
	mu   sync.Mutex
	sess entity.Session
	ok   bool
}

func (s *stubStore) Current() (entity.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sess, s.ok
}

func (s *stubStore) Set(_ context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess, s.ok = sess, true

	return nil
}

func (s *stubStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess, s.ok = entity.Session{}, false

	return nil
}

func (s *stubStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sess.Token
}

func (s *stubStore) OnClear(func()) {}

func loggedInStore() *stubStore {
	return &stubStore{
		sess: entity.Session{
			User:  entity.User{ID: 7, Email: "investor@example.com", Role: value.RoleInvestor},
			Token: "test-token",
		},
		ok: true,
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tt := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "message extracted from body",
			status:      http.StatusBadRequest,
			body:        `{"message":"amount must be positive"}`,
			wantCode:    string(errcodes.ValidationError),
			wantMessage: "amount must be positive",
		},
		{
			name:        "code and message from envelope",
			status:      http.StatusNotFound,
			body:        `{"code":"OfferNotFound","message":"offer 42 not found"}`,
			wantCode:    string(errcodes.OfferNotFound),
			wantMessage: "offer 42 not found",
		},
		{
			name:        "unauthorized fallback message",
			status:      http.StatusUnauthorized,
			body:        ``,
			wantCode:    string(errcodes.NotAuthenticated),
			wantMessage: "you must be logged in to perform this action",
		},
		{
			name:        "non json body keeps fallback",
			status:      http.StatusInternalServerError,
			body:        `<html>backend blew up</html>`,
			wantCode:    string(errcodes.InternalServerError),
			wantMessage: "request failed with status 500",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, loggedInStore(), srv.Client())

			var dest struct{}
			err := client.get(context.Background(), "/whatever", nil, &dest)
			require.Error(t, err)

			var appErr *domain.AppError
			require.ErrorAs(t, err, &appErr)
			require.Equal(t, tc.wantCode, string(appErr.Code))
			require.Equal(t, tc.wantMessage, appErr.Message)
		})
	}
}

func TestClient_RequireSessionBeforeNetwork(t *testing.T) {
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, &stubStore{}, srv.Client())

	_, err := NewTransactionsClient(base).All(context.Background())
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.NotAuthenticated, code)
	require.Zero(t, requests, "no request may be issued without a session")
}

func TestClient_DecodeValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// id is required by the wire DTO; a payload without it means the
		// backend contract drifted.
		_, _ = w.Write([]byte(`[{"startupId":3,"amount":100000}]`))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, loggedInStore(), srv.Client())

	_, err := NewStartupsClient(base).Offers(context.Background(), 3)
	require.Error(t, err)

	code, ok := domain.GetCode(err)
	require.True(t, ok)
	require.Equal(t, errcodes.DecodeError, code)
}

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := loggedInStore()

	httpClient := NewHTTPClient(store, 0)
	base := NewClient(srv.URL, store, httpClient)

	_, err := NewTransactionsClient(base).All(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer test-token", gotAuth)
}
