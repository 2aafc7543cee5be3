package api

import (
	"context"
	"net/url"
	"strconv"

	"startupconnect/internal/domain/entity"
)

// NotificationsClient reads the per-user notification feed. The poller calls
// List on an interval; MarkAsRead takes a plain id array because that is the
// wire shape the backend accepts.
type NotificationsClient struct {
	*Client
}

func NewNotificationsClient(base *Client) *NotificationsClient {
	return &NotificationsClient{Client: base}
}

func (c *NotificationsClient) List(ctx context.Context, userID int64) ([]entity.Notification, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	if err := requireID(userID, "user"); err != nil {
		return nil, err
	}

	query := url.Values{"userId": []string{strconv.FormatInt(userID, 10)}}

	var dtos []notificationDTO
	if err := c.get(ctx, "/notifications", query, &dtos); err != nil {
		return nil, err
	}

	return mapNotifications(dtos), nil
}

func (c *NotificationsClient) MarkAsRead(ctx context.Context, notificationIDs []int64) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	if len(notificationIDs) == 0 {
		return nil
	}

	return c.put(ctx, "/notifications/mark-as-read", nil, notificationIDs, nil)
}
