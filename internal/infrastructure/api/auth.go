package api

import (
	"context"
	"fmt"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/pkg/errcodes"
)

// AuthClient handles login, registration and account maintenance. Login is
// the only operation that writes the session store; every other client only
// reads it.
type AuthClient struct {
	*Client
}

func NewAuthClient(base *Client) *AuthClient {
	return &AuthClient{Client: base}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Login authenticates against the backend and persists the returned session.
// A 401 here means bad credentials, not an expired token, so the code is
// remapped before it reaches the caller.
func (c *AuthClient) Login(ctx context.Context, email, password string) (entity.Session, error) {
	var dto sessionDTO

	err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &dto)
	if err != nil {
		if code, ok := domain.GetCode(err); ok && code == errcodes.NotAuthenticated {
			return entity.Session{}, domain.WrapError(err, errcodes.CredentialsMismatch, "invalid email or password")
		}

		return entity.Session{}, err
	}

	sess, err := dto.toEntity()
	if err != nil {
		return entity.Session{}, err
	}

	if err := c.sessions.Set(ctx, sess); err != nil {
		return entity.Session{}, fmt.Errorf("sessions.Set: %w", err)
	}

	return sess, nil
}

func (c *AuthClient) Register(ctx context.Context, params RegisterParams) (entity.User, error) {
	var dto userDTO

	if err := c.post(ctx, "/auth/register", params, &dto); err != nil {
		return entity.User{}, err
	}

	return dto.toEntity(), nil
}

// UpdatePassword changes the password of the given account. The backend
// scopes the change by the bearer token, hence the session requirement.
func (c *AuthClient) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	if err := requireID(userID, "user"); err != nil {
		return err
	}

	body := struct {
		Password string `json:"password"`
	}{Password: newPassword}

	return c.put(ctx, fmt.Sprintf("/auth/users/%d/password", userID), nil, body, nil)
}

// Logout drops the local session. Nothing is sent to the backend: the token
// simply stops being attached, matching the original client's behavior.
func (c *AuthClient) Logout(ctx context.Context) error {
	if err := c.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("sessions.Clear: %w", err)
	}

	return nil
}
