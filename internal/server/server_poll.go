package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx/reply"
	"startupconnect/pkg/httpx/req"
	"startupconnect/pkg/rest"
)

type pollCoordinator interface {
	WatchNotifications(ctx context.Context, userID int64) (string, error)
	WatchConversation(ctx context.Context, user1ID, user2ID int64) (string, error)
	Unwatch(key string)
	Keys() []string
}

type userLookup interface {
	ByEmail(ctx context.Context, email string) (entity.User, error)
}

// PollServer manages background pollers over HTTP. Pollers outlive the
// request that starts them, so they run on the application context, not the
// request context.
type PollServer struct {
	coordinator pollCoordinator
	users       userLookup
	sessions    sessionReader
	runCtx      context.Context //nolint:containedctx // pollers outlive requests
}

func NewPollServer(
	runCtx context.Context,
	coordinator pollCoordinator,
	users userLookup,
	sessions sessionReader,
) PollServer {
	return PollServer{
		coordinator: coordinator,
		users:       users,
		sessions:    sessions,
		runCtx:      runCtx,
	}
}

func (s PollServer) getV1Polls(w http.ResponseWriter, r *http.Request) error {
	if _, ok := s.sessions.Current(); !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.PollKeys{Keys: s.coordinator.Keys()})

	return nil
}

func (s PollServer) postV1WatchNotifications(w http.ResponseWriter, r *http.Request) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	key, err := s.coordinator.WatchNotifications(s.runCtx, sess.User.ID)
	if err != nil {
		return fmt.Errorf("coordinator.WatchNotifications: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.WatchResponse{PollKey: key})

	return nil
}

func (s PollServer) postV1WatchConversation(w http.ResponseWriter, r *http.Request) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	var request rest.WatchConversationRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	peerID, err := s.resolvePeer(r.Context(), request)
	if err != nil {
		return err
	}

	key, err := s.coordinator.WatchConversation(s.runCtx, sess.User.ID, peerID)
	if err != nil {
		return fmt.Errorf("coordinator.WatchConversation: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.WatchResponse{PollKey: key})

	return nil
}

// resolvePeer turns the request into a peer user id, looking the account up
// by email when no id was given.
func (s PollServer) resolvePeer(ctx context.Context, request rest.WatchConversationRequest) (int64, error) {
	if request.PeerUserID > 0 {
		return request.PeerUserID, nil
	}

	if request.PeerEmail == "" {
		return 0, domain.NewError(errcodes.ValidationError, "either peerUserId or peerEmail is required")
	}

	peer, err := s.users.ByEmail(ctx, request.PeerEmail)
	if err != nil {
		return 0, fmt.Errorf("users.ByEmail: %w", err)
	}

	return peer.ID, nil
}

func (s PollServer) deleteV1Poll(w http.ResponseWriter, r *http.Request) error {
	if _, ok := s.sessions.Current(); !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	// Poll keys contain slashes, so they arrive URL-encoded.
	key, err := url.PathUnescape(chi.URLParam(r, "pollKey"))
	if err != nil {
		return domain.NewError(errcodes.ValidationError, "invalid poll key")
	}

	s.coordinator.Unwatch(key)
	reply.OK(w)

	return nil
}
