package dashboard

import (
	"context"
	"sync"

	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
)

type StartupsClient interface {
	List(ctx context.Context) ([]entity.StartupProfile, error)
	Profile(ctx context.Context) (entity.StartupProfile, error)
	Offers(ctx context.Context, startupID int64) ([]entity.Offer, error)
}

type InvestorsClient interface {
	Profile(ctx context.Context) (entity.InvestorProfile, error)
	AdminList(ctx context.Context) ([]entity.InvestorProfile, error)
}

type TransactionsClient interface {
	All(ctx context.Context) ([]entity.Transaction, error)
	ByInvestor(ctx context.Context, investorID int64) ([]entity.Transaction, error)
	ByStartup(ctx context.Context, startupID int64) ([]entity.Transaction, error)
}

type NotificationsClient interface {
	List(ctx context.Context, userID int64) ([]entity.Notification, error)
}

type PitchDecksClient interface {
	ByStartup(ctx context.Context, startupID int64) ([]entity.PitchDeck, error)
}

// Section is one independently loaded dashboard block. A failed section
// carries its error here instead of failing the whole dashboard, so one
// broken backend route degrades a single block only.
type Section[T any] struct {
	Items []T
	Err   error
}

func (s Section[T]) OK() bool {
	return s.Err == nil
}

// OfferRow is an offer prepared for display: the raw record plus the startup
// name and the action flags the viewer's role permits.
type OfferRow struct {
	Offer        entity.Offer
	StartupName  string
	CanAccept    bool
	CanNegotiate bool
}

type InvestorDashboard struct {
	Offers        Section[OfferRow]
	Transactions  Section[entity.Transaction]
	Notifications Section[entity.Notification]
}

type StartupDashboard struct {
	Profile       entity.StartupProfile
	ProfileErr    error
	Offers        Section[OfferRow]
	Transactions  Section[entity.Transaction]
	PitchDecks    Section[entity.PitchDeck]
	Notifications Section[entity.Notification]
}

type AdminDashboard struct {
	Investors    Section[entity.InvestorProfile]
	Startups     Section[entity.StartupProfile]
	Transactions Section[entity.Transaction]
}

type Service struct {
	startups      StartupsClient
	investors     InvestorsClient
	transactions  TransactionsClient
	notifications NotificationsClient
	pitchDecks    PitchDecksClient
}

func NewService(
	startups StartupsClient,
	investors InvestorsClient,
	transactions TransactionsClient,
	notifications NotificationsClient,
	pitchDecks PitchDecksClient,
) *Service {
	return &Service{
		startups:      startups,
		investors:     investors,
		transactions:  transactions,
		notifications: notifications,
		pitchDecks:    pitchDecks,
	}
}

// Investor assembles the investor view. The three sections load
// concurrently and independently.
func (s *Service) Investor(ctx context.Context, viewer entity.User) InvestorDashboard {
	var (
		dash InvestorDashboard
		wg   sync.WaitGroup
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		dash.Offers = s.marketOffers(ctx, viewer)
	}()

	go func() {
		defer wg.Done()

		profile, err := s.investors.Profile(ctx)
		if err != nil {
			dash.Transactions = Section[entity.Transaction]{Err: err}
			return
		}

		items, err := s.transactions.ByInvestor(ctx, profile.ID)
		dash.Transactions = Section[entity.Transaction]{Items: items, Err: err}
	}()

	go func() {
		defer wg.Done()

		items, err := s.notifications.List(ctx, viewer.ID)
		dash.Notifications = Section[entity.Notification]{Items: items, Err: err}
	}()

	wg.Wait()

	return dash
}

// Startup assembles the startup view. Everything below the profile needs the
// profile id, so a profile failure cascades into those sections.
func (s *Service) Startup(ctx context.Context, viewer entity.User) StartupDashboard {
	var dash StartupDashboard

	profile, err := s.startups.Profile(ctx)
	if err != nil {
		dash.ProfileErr = err
		dash.Offers = Section[OfferRow]{Err: err}
		dash.Transactions = Section[entity.Transaction]{Err: err}
		dash.PitchDecks = Section[entity.PitchDeck]{Err: err}

		items, nErr := s.notifications.List(ctx, viewer.ID)
		dash.Notifications = Section[entity.Notification]{Items: items, Err: nErr}

		return dash
	}

	dash.Profile = profile

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()

		offers, err := s.startups.Offers(ctx, profile.ID)
		dash.Offers = Section[OfferRow]{Items: rows(offers, profile.CompanyName, viewer.Role), Err: err}
	}()

	go func() {
		defer wg.Done()

		items, err := s.transactions.ByStartup(ctx, profile.ID)
		dash.Transactions = Section[entity.Transaction]{Items: items, Err: err}
	}()

	go func() {
		defer wg.Done()

		items, err := s.pitchDecks.ByStartup(ctx, profile.ID)
		dash.PitchDecks = Section[entity.PitchDeck]{Items: items, Err: err}
	}()

	go func() {
		defer wg.Done()

		items, err := s.notifications.List(ctx, viewer.ID)
		dash.Notifications = Section[entity.Notification]{Items: items, Err: err}
	}()

	wg.Wait()

	return dash
}

// Admin assembles the admin view over the full rosters and ledger.
func (s *Service) Admin(ctx context.Context) AdminDashboard {
	var (
		dash AdminDashboard
		wg   sync.WaitGroup
	)

	wg.Add(3)

	go func() {
		defer wg.Done()

		items, err := s.investors.AdminList(ctx)
		dash.Investors = Section[entity.InvestorProfile]{Items: items, Err: err}
	}()

	go func() {
		defer wg.Done()

		items, err := s.startups.List(ctx)
		dash.Startups = Section[entity.StartupProfile]{Items: items, Err: err}
	}()

	go func() {
		defer wg.Done()

		items, err := s.transactions.All(ctx)
		dash.Transactions = Section[entity.Transaction]{Items: items, Err: err}
	}()

	wg.Wait()

	return dash
}

// MarketOffers is the standalone offer browser: every startup's offers as
// display rows for the given viewer.
func (s *Service) MarketOffers(ctx context.Context, viewer entity.User) Section[OfferRow] {
	return s.marketOffers(ctx, viewer)
}

// marketOffers flattens every startup's offers into display rows. A single
// startup whose offers fail to load is skipped rather than sinking the whole
// section; a failing roster fails the section.
func (s *Service) marketOffers(ctx context.Context, viewer entity.User) Section[OfferRow] {
	startups, err := s.startups.List(ctx)
	if err != nil {
		return Section[OfferRow]{Err: err}
	}

	var all []OfferRow

	for _, startup := range startups {
		offers, err := s.startups.Offers(ctx, startup.ID)
		if err != nil {
			continue
		}

		all = append(all, rows(offers, startup.CompanyName, viewer.Role)...)
	}

	return Section[OfferRow]{Items: all}
}

func rows(offers []entity.Offer, startupName string, viewerRole value.Role) []OfferRow {
	out := make([]OfferRow, 0, len(offers))

	for _, offer := range offers {
		actionable := offer.Actionable() && viewerRole == value.RoleInvestor

		out = append(out, OfferRow{
			Offer:        offer,
			StartupName:  startupName,
			CanAccept:    actionable,
			CanNegotiate: actionable,
		})
	}

	return out
}
