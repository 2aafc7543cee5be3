package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain/entity"
)

type fakeNotifications struct {
	mu    sync.Mutex
	items []entity.Notification
	calls int
}

func (f *fakeNotifications) List(_ context.Context, _ int64) ([]entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	out := make([]entity.Notification, len(f.items))
	copy(out, f.items)

	return out, nil
}

func (f *fakeNotifications) add(n entity.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
}

type fakeConversations struct {
	mu    sync.Mutex
	items []entity.Message
}

func (f *fakeConversations) Conversation(_ context.Context, _, _ int64) ([]entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.Message, len(f.items))
	copy(out, f.items)

	return out, nil
}

func testCoordinator(t *testing.T) (*Coordinator, *fakeNotifications, *fakeConversations, <-chan Event) {
	t.Helper()

	notifications := &fakeNotifications{}
	conversations := &fakeConversations{}
	events := make(chan Event, 64)

	coord := NewCoordinator(notifications, conversations, events, time.Minute).
		WithInterval(10 * time.Millisecond)
	t.Cleanup(coord.StopAll)

	return coord, notifications, conversations, events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()

	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestCoordinator_NotificationDedup(t *testing.T) {
	coord, notifications, _, events := testCoordinator(t)

	notifications.add(entity.Notification{ID: 1, UserID: 7, Message: "offer updated"})

	_, err := coord.WatchNotifications(context.Background(), 7)
	require.NoError(t, err)

	first := waitEvent(t, events)
	require.Equal(t, EventNotification, first.Kind)
	require.EqualValues(t, 1, first.Notification.ID)

	// The same id must not be emitted again even though every poll refetches
	// the whole list.
	notifications.add(entity.Notification{ID: 2, UserID: 7, Message: "new message"})

	second := waitEvent(t, events)
	require.EqualValues(t, 2, second.Notification.ID)

	select {
	case extra := <-events:
		t.Fatalf("unexpected duplicate event: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCoordinator_OnePollerPerKey(t *testing.T) {
	coord, _, _, _ := testCoordinator(t)
	ctx := context.Background()

	key1, err := coord.WatchConversation(ctx, 7, 11)
	require.NoError(t, err)

	// Reversed pair resolves to the same key, so no second poller starts.
	key2, err := coord.WatchConversation(ctx, 11, 7)
	require.NoError(t, err)
	require.Equal(t, key1, key2)

	_, err = coord.WatchNotifications(ctx, 7)
	require.NoError(t, err)

	require.Len(t, coord.Keys(), 2)
}

func TestCoordinator_UnwatchAndStopAll(t *testing.T) {
	coord, _, _, _ := testCoordinator(t)
	ctx := context.Background()

	key, err := coord.WatchNotifications(ctx, 7)
	require.NoError(t, err)

	_, err = coord.WatchConversation(ctx, 7, 11)
	require.NoError(t, err)

	coord.Unwatch(key)
	require.Len(t, coord.Keys(), 1)

	coord.StopAll()
	require.Empty(t, coord.Keys())
}

func TestPoller_StartStop(t *testing.T) {
	var mu sync.Mutex
	var fetches int

	poller := NewPoller("test", func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		fetches++
		return nil
	}).WithInterval(10 * time.Millisecond)

	require.NoError(t, poller.Start(context.Background()))
	require.True(t, poller.IsRunning())

	// A second Start on a running poller is refused.
	require.Error(t, poller.Start(context.Background()))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fetches >= 2
	}, 2*time.Second, 5*time.Millisecond)

	poller.Stop()
	require.False(t, poller.IsRunning())

	mu.Lock()
	after := fetches
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, after, fetches, "no fetches after Stop")
}
