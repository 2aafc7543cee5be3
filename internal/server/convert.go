package server

import (
	"time"

	"github.com/samber/lo"

	"startupconnect/internal/dashboard"
	"startupconnect/internal/domain/entity"
	"startupconnect/pkg/rest"
)

func newRESTSession(sess entity.Session) rest.Session {
	return rest.Session{
		UserID: sess.User.ID,
		Email:  sess.User.Email,
		Name:   sess.User.Name,
		Role:   sess.User.Role.String(),
	}
}

func newRESTUser(user entity.User) rest.User {
	return rest.User{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role.String(),
	}
}

func newRESTUsers(users []entity.User) []rest.User {
	return lo.Map(users, func(user entity.User, _ int) rest.User {
		return newRESTUser(user)
	})
}

func newRESTOffer(row dashboard.OfferRow) rest.Offer {
	return rest.Offer{
		ID:               row.Offer.ID,
		StartupID:        row.Offer.StartupID,
		StartupName:      row.StartupName,
		Amount:           row.Offer.Amount,
		EquityPercentage: row.Offer.EquityPercentage,
		Description:      row.Offer.Description,
		Terms:            row.Offer.Terms,
		Status:           row.Offer.Status.String(),
		CanAccept:        row.CanAccept,
		CanNegotiate:     row.CanNegotiate,
	}
}

// newRESTOwnOffer renders an offer for its owning startup; the viewer action
// flags stay false because the owner never negotiates with itself.
func newRESTOwnOffer(offer entity.Offer) rest.Offer {
	return newRESTOffer(dashboard.OfferRow{Offer: offer})
}

func newRESTOffers(rows []dashboard.OfferRow) []rest.Offer {
	return lo.Map(rows, func(row dashboard.OfferRow, _ int) rest.Offer {
		return newRESTOffer(row)
	})
}

func newRESTTransaction(tx entity.Transaction) rest.Transaction {
	date := ""
	if !tx.TransactionDate.IsZero() {
		date = tx.TransactionDate.UTC().Format(time.RFC3339)
	}

	return rest.Transaction{
		ID:              tx.ID,
		InvestorID:      tx.InvestorID,
		StartupID:       tx.StartupID,
		OfferID:         tx.OfferID,
		Amount:          tx.Amount,
		Status:          tx.Status.String(),
		TransactionType: tx.TransactionType.String(),
		Description:     tx.Description,
		TransactionDate: date,
	}
}

func newRESTTransactions(txs []entity.Transaction) []rest.Transaction {
	return lo.Map(txs, func(tx entity.Transaction, _ int) rest.Transaction {
		return newRESTTransaction(tx)
	})
}

func newRESTNotifications(notifications []entity.Notification) []rest.Notification {
	return lo.Map(notifications, func(n entity.Notification, _ int) rest.Notification {
		return rest.Notification{
			ID:      n.ID,
			Message: n.Message,
			Read:    n.Read,
		}
	})
}

func newRESTStartupProfile(p entity.StartupProfile) rest.StartupProfile {
	return rest.StartupProfile{
		ID:           p.ID,
		CompanyName:  p.CompanyName,
		Description:  p.Description,
		Industry:     p.Industry,
		FundingStage: p.FundingStage,
		Website:      p.Website,
	}
}

func newRESTInvestorProfile(p entity.InvestorProfile) rest.InvestorProfile {
	return rest.InvestorProfile{
		ID:              p.ID,
		CompanyName:     p.CompanyName,
		Description:     p.Description,
		InvestmentFocus: p.InvestmentFocus,
		MinInvestment:   p.MinInvestment,
		MaxInvestment:   p.MaxInvestment,
	}
}

func newRESTPitchDeck(d entity.PitchDeck) rest.PitchDeck {
	return rest.PitchDeck{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FileName:    d.FileName,
		Public:      d.Public,
	}
}

func newRESTPitchDecks(decks []entity.PitchDeck) []rest.PitchDeck {
	return lo.Map(decks, func(d entity.PitchDeck, _ int) rest.PitchDeck {
		return newRESTPitchDeck(d)
	})
}

func sectionError(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

func newRESTInvestorDashboard(dash dashboard.InvestorDashboard) rest.InvestorDashboard {
	return rest.InvestorDashboard{
		Offers:             newRESTOffers(dash.Offers.Items),
		OffersError:        sectionError(dash.Offers.Err),
		Transactions:       newRESTTransactions(dash.Transactions.Items),
		TransactionsError:  sectionError(dash.Transactions.Err),
		Notifications:      newRESTNotifications(dash.Notifications.Items),
		NotificationsError: sectionError(dash.Notifications.Err),
	}
}

func newRESTStartupDashboard(dash dashboard.StartupDashboard) rest.StartupDashboard {
	out := rest.StartupDashboard{
		ProfileError:       sectionError(dash.ProfileErr),
		Offers:             newRESTOffers(dash.Offers.Items),
		OffersError:        sectionError(dash.Offers.Err),
		Transactions:       newRESTTransactions(dash.Transactions.Items),
		TransactionsError:  sectionError(dash.Transactions.Err),
		PitchDecks:         newRESTPitchDecks(dash.PitchDecks.Items),
		PitchDecksError:    sectionError(dash.PitchDecks.Err),
		Notifications:      newRESTNotifications(dash.Notifications.Items),
		NotificationsError: sectionError(dash.Notifications.Err),
	}

	if dash.ProfileErr == nil {
		profile := newRESTStartupProfile(dash.Profile)
		out.Profile = &profile
	}

	return out
}

func newRESTAdminDashboard(dash dashboard.AdminDashboard) rest.AdminDashboard {
	return rest.AdminDashboard{
		Investors: lo.Map(dash.Investors.Items, func(p entity.InvestorProfile, _ int) rest.InvestorProfile {
			return newRESTInvestorProfile(p)
		}),
		InvestorsError: sectionError(dash.Investors.Err),
		Startups: lo.Map(dash.Startups.Items, func(p entity.StartupProfile, _ int) rest.StartupProfile {
			return newRESTStartupProfile(p)
		}),
		StartupsError:     sectionError(dash.Startups.Err),
		Transactions:      newRESTTransactions(dash.Transactions.Items),
		TransactionsError: sectionError(dash.Transactions.Err),
	}
}
