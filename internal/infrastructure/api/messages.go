package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"startupconnect/internal/domain/entity"
)

// MessagesClient is the negotiation chat surface. Messages address user
// accounts, not profiles; callers resolve the startup's owning user id first.
type MessagesClient struct {
	*Client
}

func NewMessagesClient(base *Client) *MessagesClient {
	return &MessagesClient{Client: base}
}

type sendMessageRequest struct {
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
}

func (c *MessagesClient) Send(ctx context.Context, senderID, receiverID int64, content string) (entity.Message, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.Message{}, err
	}

	req := sendMessageRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	var dto messageDTO
	if err := c.post(ctx, "/messages/send", req, &dto); err != nil {
		return entity.Message{}, err
	}

	return dto.toEntity(), nil
}

func (c *MessagesClient) Conversation(ctx context.Context, user1ID, user2ID int64) ([]entity.Message, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	query := url.Values{
		"user1": []string{strconv.FormatInt(user1ID, 10)},
		"user2": []string{strconv.FormatInt(user2ID, 10)},
	}

	var dtos []messageDTO
	if err := c.get(ctx, "/messages/conversation", query, &dtos); err != nil {
		return nil, err
	}

	return mapMessages(dtos), nil
}

// ConversationUsers lists the users the given account has exchanged messages
// with. Feeds the chat sidebar.
func (c *MessagesClient) ConversationUsers(ctx context.Context, userID int64) ([]entity.User, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	query := url.Values{"userId": []string{strconv.FormatInt(userID, 10)}}

	var dtos []userDTO
	if err := c.get(ctx, "/messages/conversation-users", query, &dtos); err != nil {
		return nil, err
	}

	return mapUsers(dtos), nil
}

// UserByID resolves a user account through the messaging service. This is
// how a startup profile id becomes the chat-addressable owner account.
func (c *MessagesClient) UserByID(ctx context.Context, userID int64) (entity.User, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.User{}, err
	}

	if err := requireID(userID, "user"); err != nil {
		return entity.User{}, err
	}

	var dto userDTO
	if err := c.get(ctx, fmt.Sprintf("/messages/user/%d", userID), nil, &dto); err != nil {
		return entity.User{}, err
	}

	return dto.toEntity(), nil
}
