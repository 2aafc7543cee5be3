package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
	"startupconnect/internal/infrastructure/api"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx/reply"
	"startupconnect/pkg/httpx/req"
	"startupconnect/pkg/rest"
)

type startupManager interface {
	Profile(ctx context.Context) (entity.StartupProfile, error)
	UpdateProfile(ctx context.Context, params api.StartupProfileParams) (entity.StartupProfile, error)
	CreateOffer(ctx context.Context, startupID int64, params api.OfferParams) (entity.Offer, error)
	UpdateOffer(ctx context.Context, startupID, offerID int64, params api.OfferParams) (entity.Offer, error)
	DeleteOffer(ctx context.Context, startupID, offerID int64) error
}

type investorManager interface {
	UpdateProfile(ctx context.Context, params api.InvestorProfileParams) (entity.InvestorProfile, error)
}

type pitchDeckManager interface {
	Upload(ctx context.Context, startupID int64, upload api.PitchDeckUpload) (entity.PitchDeck, error)
	Update(ctx context.Context, deckID int64, params api.PitchDeckParams) (entity.PitchDeck, error)
	Delete(ctx context.Context, deckID int64) error
	Download(ctx context.Context, deckID int64) ([]byte, string, error)
	PublicByStartup(ctx context.Context, startupID int64) ([]entity.PitchDeck, error)
}

type notificationMarker interface {
	MarkAsRead(ctx context.Context, notificationIDs []int64) error
}

// ManageServer exposes the owner-side maintenance operations: the startup's
// profile, offers and pitch decks, the investor's profile, and notification
// acknowledgement.
type ManageServer struct {
	startups      startupManager
	investors     investorManager
	pitchDecks    pitchDeckManager
	notifications notificationMarker
	sessions      sessionReader
}

func NewManageServer(
	startups startupManager,
	investors investorManager,
	pitchDecks pitchDeckManager,
	notifications notificationMarker,
	sessions sessionReader,
) ManageServer {
	return ManageServer{
		startups:      startups,
		investors:     investors,
		pitchDecks:    pitchDecks,
		notifications: notifications,
		sessions:      sessions,
	}
}

func (s ManageServer) putV1StartupProfile(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.requireRole(value.RoleStartup); err != nil {
		return err
	}

	var request rest.StartupProfilePayload
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	profile, err := s.startups.UpdateProfile(ctx, api.StartupProfileParams{
		CompanyName:  request.CompanyName,
		Description:  request.Description,
		Industry:     request.Industry,
		FundingStage: request.FundingStage,
		Website:      request.Website,
	})
	if err != nil {
		return fmt.Errorf("startups.UpdateProfile: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTStartupProfile(profile))

	return nil
}

func (s ManageServer) putV1InvestorProfile(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.requireRole(value.RoleInvestor); err != nil {
		return err
	}

	var request rest.InvestorProfilePayload
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	profile, err := s.investors.UpdateProfile(ctx, api.InvestorProfileParams{
		CompanyName:     request.CompanyName,
		Description:     request.Description,
		InvestmentFocus: request.InvestmentFocus,
		MinInvestment:   request.MinInvestment,
		MaxInvestment:   request.MaxInvestment,
	})
	if err != nil {
		return fmt.Errorf("investors.UpdateProfile: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTInvestorProfile(profile))

	return nil
}

func (s ManageServer) postV1CreateOffer(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	profile, err := s.ownProfile(ctx)
	if err != nil {
		return err
	}

	var request rest.OfferPayload
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	offer, err := s.startups.CreateOffer(ctx, profile.ID, newOfferParams(request))
	if err != nil {
		return fmt.Errorf("startups.CreateOffer: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTOwnOffer(offer))

	return nil
}

func (s ManageServer) putV1UpdateOffer(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	profile, err := s.ownProfile(ctx)
	if err != nil {
		return err
	}

	offerID, err := pathID(r, "offerID")
	if err != nil {
		return err
	}

	var request rest.OfferPayload
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	offer, err := s.startups.UpdateOffer(ctx, profile.ID, offerID, newOfferParams(request))
	if err != nil {
		return fmt.Errorf("startups.UpdateOffer: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTOwnOffer(offer))

	return nil
}

func (s ManageServer) deleteV1Offer(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	profile, err := s.ownProfile(ctx)
	if err != nil {
		return err
	}

	offerID, err := pathID(r, "offerID")
	if err != nil {
		return err
	}

	if err := s.startups.DeleteOffer(ctx, profile.ID, offerID); err != nil {
		return fmt.Errorf("startups.DeleteOffer: %w", err)
	}

	reply.OK(w)

	return nil
}

const maxPitchDeckUpload = 32 << 20

func (s ManageServer) postV1UploadPitchDeck(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	profile, err := s.ownProfile(ctx)
	if err != nil {
		return err
	}

	if err := r.ParseMultipartForm(maxPitchDeckUpload); err != nil {
		return domain.NewError(errcodes.ValidationError, "invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return domain.NewError(errcodes.ValidationError, "a pitch deck file is required")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	deck, err := s.pitchDecks.Upload(ctx, profile.ID, api.PitchDeckUpload{
		FileName:    header.Filename,
		Content:     content,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Public:      r.FormValue("isPublic") == "true",
	})
	if err != nil {
		return fmt.Errorf("pitchDecks.Upload: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTPitchDeck(deck))

	return nil
}

func (s ManageServer) putV1PitchDeck(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.requireRole(value.RoleStartup); err != nil {
		return err
	}

	deckID, err := pathID(r, "deckID")
	if err != nil {
		return err
	}

	var request rest.PitchDeckPayload
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deck, err := s.pitchDecks.Update(ctx, deckID, api.PitchDeckParams{
		Title:       request.Title,
		Description: request.Description,
		Public:      request.IsPublic,
	})
	if err != nil {
		return fmt.Errorf("pitchDecks.Update: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPitchDeck(deck))

	return nil
}

func (s ManageServer) deleteV1PitchDeck(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireRole(value.RoleStartup); err != nil {
		return err
	}

	deckID, err := pathID(r, "deckID")
	if err != nil {
		return err
	}

	if err := s.pitchDecks.Delete(r.Context(), deckID); err != nil {
		return fmt.Errorf("pitchDecks.Delete: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s ManageServer) getV1PitchDeckFile(w http.ResponseWriter, r *http.Request) error {
	if _, ok := s.sessions.Current(); !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	deckID, err := pathID(r, "deckID")
	if err != nil {
		return err
	}

	content, contentType, err := s.pitchDecks.Download(r.Context(), deckID)
	if err != nil {
		return fmt.Errorf("pitchDecks.Download: %w", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pitchdeck-%d"`, deckID))

	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}

	return nil
}

// getV1PublicPitchDecks lists the decks a startup shows to browsing
// investors. No role gate beyond being logged in: public means public.
func (s ManageServer) getV1PublicPitchDecks(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if _, ok := s.sessions.Current(); !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	startupID, err := pathID(r, "startupID")
	if err != nil {
		return err
	}

	decks, err := s.pitchDecks.PublicByStartup(ctx, startupID)
	if err != nil {
		return fmt.Errorf("pitchDecks.PublicByStartup: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPitchDecks(decks))

	return nil
}

func (s ManageServer) postV1MarkNotificationsRead(w http.ResponseWriter, r *http.Request) error {
	if _, ok := s.sessions.Current(); !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	var request rest.MarkReadRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.notifications.MarkAsRead(r.Context(), request.NotificationIDs); err != nil {
		return fmt.Errorf("notifications.MarkAsRead: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s ManageServer) requireRole(role value.Role) error {
	sess, ok := s.sessions.Current()
	if !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	if sess.User.Role != role {
		return domain.NewError(errcodes.Forbidden, "this operation is not available for your role")
	}

	return nil
}

// ownProfile resolves the caller's startup profile, the scope every offer
// and pitch deck operation runs in.
func (s ManageServer) ownProfile(ctx context.Context) (entity.StartupProfile, error) {
	if err := s.requireRole(value.RoleStartup); err != nil {
		return entity.StartupProfile{}, err
	}

	profile, err := s.startups.Profile(ctx)
	if err != nil {
		return entity.StartupProfile{}, fmt.Errorf("startups.Profile: %w", err)
	}

	return profile, nil
}

func newOfferParams(request rest.OfferPayload) api.OfferParams {
	return api.OfferParams{
		Amount:           request.Amount,
		EquityPercentage: request.EquityPercentage,
		Description:      request.Description,
		Terms:            request.Terms,
	}
}
