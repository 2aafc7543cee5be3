package httpx

import (
	"fmt"
	"net/http"
)

type tokenSource interface {
	Token() string
}

// AuthBearerRoundTripper attaches the session bearer token to outgoing
// requests when one is present. There is no refresh flow: an expired token is
// the backend's to reject, and the 401/403 surfaces to the caller as a typed
// error.
type AuthBearerRoundTripper struct {
	next        http.RoundTripper
	tokenSource tokenSource
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	tokenSource tokenSource,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:        next,
		tokenSource: tokenSource,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := rt.tokenSource.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
