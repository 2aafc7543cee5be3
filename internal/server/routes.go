package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"startupconnect/internal/domain"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx/reply"
	"startupconnect/pkg/rest"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", handler(s.postV1Login))
				r.Post("/register", handler(s.postV1Register))
				r.Post("/logout", handler(s.postV1Logout))
				r.Put("/password", handler(s.putV1Password))
				r.Get("/session", handler(s.getV1Session))
			})

			r.Get("/offers", handler(s.getV1Offers))
			r.Get("/conversations", handler(s.getV1Conversations))

			r.Route("/startups", func(r chi.Router) {
				r.Put("/profile", handler(s.putV1StartupProfile))
				r.Post("/offers", handler(s.postV1CreateOffer))
				r.Put("/offers/{offerID}", handler(s.putV1UpdateOffer))
				r.Delete("/offers/{offerID}", handler(s.deleteV1Offer))

				r.Get("/{startupID}/pitchdecks", handler(s.getV1PublicPitchDecks))

				r.Route("/{startupID}/offers/{offerID}", func(r chi.Router) {
					r.Post("/negotiate", handler(s.postV1Negotiate))
					r.Post("/accept", handler(s.postV1Accept))
					r.Post("/reject", handler(s.postV1Reject))
				})
			})

			r.Put("/investors/profile", handler(s.putV1InvestorProfile))

			r.Route("/pitchdecks", func(r chi.Router) {
				r.Post("/", handler(s.postV1UploadPitchDeck))
				r.Put("/{deckID}", handler(s.putV1PitchDeck))
				r.Delete("/{deckID}", handler(s.deleteV1PitchDeck))
				r.Get("/{deckID}/file", handler(s.getV1PitchDeckFile))
			})

			r.Post("/notifications/read", handler(s.postV1MarkNotificationsRead))

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/investor", handler(s.getV1InvestorDashboard))
				r.Get("/startup", handler(s.getV1StartupDashboard))
				r.Get("/admin", handler(s.getV1AdminDashboard))
				r.Get("/admin/transactions.csv", handler(s.getV1TransactionsCSV))
			})

			r.Route("/polls", func(r chi.Router) {
				r.Get("/", handler(s.getV1Polls))
				r.Post("/notifications", handler(s.postV1WatchNotifications))
				r.Post("/conversation", handler(s.postV1WatchConversation))
				r.Delete("/{pollKey}", handler(s.deleteV1Poll))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			reply.JSON(r.Context(), w, statusForCode(appErr), rest.Error{
				Code:    appErr.Code.String(),
				Message: appErr.Message,
			})

			return
		}

		reply.Error(r.Context(), w, err)
	}
}

func statusForCode(err *domain.AppError) int {
	switch err.Code {
	case errcodes.NotAuthenticated, errcodes.CredentialsMismatch:
		return http.StatusUnauthorized
	case errcodes.Forbidden:
		return http.StatusForbidden
	case errcodes.NotFound, errcodes.OfferNotFound, errcodes.TransactionNotFound,
		errcodes.UserNotFound, errcodes.ProfileNotFound:
		return http.StatusNotFound
	case errcodes.BackendUnavailable, errcodes.DecodeError:
		return http.StatusBadGateway
	case errcodes.InternalServerError:
		return http.StatusInternalServerError
	default:
		// Everything else is a rejected input: validation, payment rules,
		// workflow preconditions.
		return http.StatusBadRequest
	}
}
