package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"startupconnect/internal/domain/entity"
)

type EventKind string

const (
	EventNotification EventKind = "notification"
	EventMessage      EventKind = "message"
)

// Event is one newly observed item from a polled resource. Exactly one of
// Notification and Message is set, per Kind.
type Event struct {
	Kind         EventKind
	PollKey      string
	Notification entity.Notification
	Message      entity.Message
}

type NotificationLister interface {
	List(ctx context.Context, userID int64) ([]entity.Notification, error)
}

type ConversationFetcher interface {
	Conversation(ctx context.Context, user1ID, user2ID int64) ([]entity.Message, error)
}

// Coordinator owns at most one poller per resource key, so starting an
// already polled conversation is a no-op instead of a duplicate loop. Items
// already emitted are remembered in a TTL cache; each event is delivered
// once per cache lifetime even though every poll refetches the full list.
type Coordinator struct {
	notifications NotificationLister
	conversations ConversationFetcher
	events        chan<- Event

	interval time.Duration
	seen     *cache.Cache

	mu      sync.Mutex
	pollers map[string]*Poller
}

func NewCoordinator(
	notifications NotificationLister,
	conversations ConversationFetcher,
	events chan<- Event,
	seenTTL time.Duration,
) *Coordinator {
	return &Coordinator{
		notifications: notifications,
		conversations: conversations,
		events:        events,
		interval:      defaultPollInterval,
		seen:          cache.New(seenTTL, seenTTL),
		pollers:       make(map[string]*Poller),
	}
}

func (c *Coordinator) WithInterval(interval time.Duration) *Coordinator {
	if interval > 0 {
		c.interval = interval
	}
	return c
}

// WatchNotifications polls the notification feed of one user.
func (c *Coordinator) WatchNotifications(ctx context.Context, userID int64) (string, error) {
	key := fmt.Sprintf("notifications/%d", userID)

	return key, c.startPoller(ctx, key, func(ctx context.Context) error {
		notifications, err := c.notifications.List(ctx, userID)
		if err != nil {
			return err
		}

		for _, n := range notifications {
			if !c.markSeen(fmt.Sprintf("notification/%d", n.ID)) {
				continue
			}

			if err := c.emit(ctx, Event{Kind: EventNotification, PollKey: key, Notification: n}); err != nil {
				return err
			}
		}

		return nil
	})
}

// WatchConversation polls the chat between two users. The key is symmetric
// so both orderings of the pair map to the same poller.
func (c *Coordinator) WatchConversation(ctx context.Context, user1ID, user2ID int64) (string, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	key := fmt.Sprintf("conversation/%d/%d", user1ID, user2ID)

	return key, c.startPoller(ctx, key, func(ctx context.Context) error {
		messages, err := c.conversations.Conversation(ctx, user1ID, user2ID)
		if err != nil {
			return err
		}

		for _, m := range messages {
			if !c.markSeen(fmt.Sprintf("message/%d", m.ID)) {
				continue
			}

			if err := c.emit(ctx, Event{Kind: EventMessage, PollKey: key, Message: m}); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Coordinator) startPoller(ctx context.Context, key string, fetch func(ctx context.Context) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.pollers[key]; exists {
		return nil
	}

	poller := NewPoller(key, fetch).WithInterval(c.interval)
	if err := poller.Start(ctx); err != nil {
		return err
	}

	c.pollers[key] = poller

	return nil
}

// Unwatch stops and forgets the poller for one key.
func (c *Coordinator) Unwatch(key string) {
	c.mu.Lock()
	poller, ok := c.pollers[key]
	delete(c.pollers, key)
	c.mu.Unlock()

	if ok {
		poller.Stop()
	}
}

// StopAll shuts down every poller. Wired to the session store's OnClear so
// logout halts all background polling.
func (c *Coordinator) StopAll() {
	c.mu.Lock()
	pollers := make([]*Poller, 0, len(c.pollers))
	for _, p := range c.pollers {
		pollers = append(pollers, p)
	}
	c.pollers = make(map[string]*Poller)
	c.mu.Unlock()

	for _, p := range pollers {
		p.Stop()
	}
}

// Keys lists the active poll keys.
func (c *Coordinator) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.pollers))
	for key := range c.pollers {
		keys = append(keys, key)
	}

	return keys
}

// markSeen returns true the first time an id is observed within the TTL.
func (c *Coordinator) markSeen(id string) bool {
	if _, found := c.seen.Get(id); found {
		return false
	}

	c.seen.SetDefault(id, struct{}{})

	return true
}

func (c *Coordinator) emit(ctx context.Context, event Event) error {
	select {
	case c.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
