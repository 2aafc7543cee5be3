package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/pkg/httpx"
)

type staticTokenSource string

func (s staticTokenSource) Token() string { return string(s) }

func TestAuthBearerRoundTripper(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		token      string
		wantHeader string
	}{
		{
			name:       "Token present",
			token:      "test-token",
			wantHeader: "Bearer test-token",
		},
		{
			name:       "Empty session attaches nothing",
			token:      "",
			wantHeader: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var gotHeader string

			httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("Authorization")
				w.WriteHeader(http.StatusOK)
			}))
			defer httpServer.Close()

			client := &http.Client{
				Transport: httpx.NewAuthBearerRoundTripper(
					http.DefaultTransport,
					staticTokenSource(tc.token),
				),
			}

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, httpServer.URL, http.NoBody)
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(http.StatusOK, resp.StatusCode)
			rq.Equal(tc.wantHeader, gotHeader)
		})
	}
}
