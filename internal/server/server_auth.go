package server

import (
	"context"
	"fmt"
	"net/http"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/infrastructure/api"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx/reply"
	"startupconnect/pkg/httpx/req"
	"startupconnect/pkg/rest"
)

type authClient interface {
	Login(ctx context.Context, email, password string) (entity.Session, error)
	Register(ctx context.Context, params api.RegisterParams) (entity.User, error)
	UpdatePassword(ctx context.Context, userID int64, newPassword string) error
	Logout(ctx context.Context) error
}

type sessionReader interface {
	Current() (entity.Session, bool)
}

type AuthServer struct {
	auth     authClient
	sessions sessionReader
}

func NewAuthServer(auth authClient, sessions sessionReader) AuthServer {
	return AuthServer{
		auth:     auth,
		sessions: sessions,
	}
}

func (s AuthServer) postV1Login(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.LoginRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	sess, err := s.auth.Login(ctx, request.Email, request.Password)
	if err != nil {
		return fmt.Errorf("auth.Login: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSession(sess))

	return nil
}

func (s AuthServer) postV1Register(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RegisterRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	user, err := s.auth.Register(ctx, api.RegisterParams{
		Email:    request.Email,
		Password: request.Password,
		Name:     request.Name,
		Role:     request.Role,
	})
	if err != nil {
		return fmt.Errorf("auth.Register: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTUser(user))

	return nil
}

func (s AuthServer) putV1Password(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sess, ok := s.sessions.Current()
	if !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	var request rest.UpdatePasswordRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.auth.UpdatePassword(ctx, sess.User.ID, request.Password); err != nil {
		return fmt.Errorf("auth.UpdatePassword: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s AuthServer) postV1Logout(w http.ResponseWriter, r *http.Request) error {
	if err := s.auth.Logout(r.Context()); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s AuthServer) getV1Session(w http.ResponseWriter, r *http.Request) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return domain.NewError(errcodes.NotAuthenticated, "no active session")
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTSession(sess))

	return nil
}
