package api

import (
	"context"
	"net/url"

	"startupconnect/internal/domain/entity"
)

// UsersClient is the thin account-lookup surface.
type UsersClient struct {
	*Client
}

func NewUsersClient(base *Client) *UsersClient {
	return &UsersClient{Client: base}
}

func (c *UsersClient) ByEmail(ctx context.Context, email string) (entity.User, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.User{}, err
	}

	var dto userDTO
	if err := c.get(ctx, "/users/email/"+url.PathEscape(email), nil, &dto); err != nil {
		return entity.User{}, err
	}

	return dto.toEntity(), nil
}
