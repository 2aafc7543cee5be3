package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/tests"
)

type fakeStartups struct {
	profiles   []entity.StartupProfile
	profile    entity.StartupProfile
	profileErr error
	offers     map[int64][]entity.Offer
	offersErr  map[int64]error
}

func (f *fakeStartups) List(context.Context) ([]entity.StartupProfile, error) {
	return f.profiles, nil
}

func (f *fakeStartups) Profile(context.Context) (entity.StartupProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeStartups) Offers(_ context.Context, startupID int64) ([]entity.Offer, error) {
	if err := f.offersErr[startupID]; err != nil {
		return nil, err
	}

	return f.offers[startupID], nil
}

type fakeInvestors struct {
	profile entity.InvestorProfile
	roster  []entity.InvestorProfile
}

func (f *fakeInvestors) Profile(context.Context) (entity.InvestorProfile, error) {
	return f.profile, nil
}

func (f *fakeInvestors) AdminList(context.Context) ([]entity.InvestorProfile, error) {
	return f.roster, nil
}

type fakeTransactions struct {
	items []entity.Transaction
	err   error
}

func (f *fakeTransactions) All(context.Context) ([]entity.Transaction, error) {
	return f.items, f.err
}

func (f *fakeTransactions) ByInvestor(context.Context, int64) ([]entity.Transaction, error) {
	return f.items, f.err
}

func (f *fakeTransactions) ByStartup(context.Context, int64) ([]entity.Transaction, error) {
	return f.items, f.err
}

type fakeNotifications struct {
	items []entity.Notification
}

func (f *fakeNotifications) List(context.Context, int64) ([]entity.Notification, error) {
	return f.items, nil
}

type fakePitchDecks struct {
	items []entity.PitchDeck
}

func (f *fakePitchDecks) ByStartup(context.Context, int64) ([]entity.PitchDeck, error) {
	return f.items, nil
}

func investor() entity.User {
	return entity.User{ID: 70, Role: value.RoleInvestor}
}

func TestService_InvestorDashboard(t *testing.T) {
	startups := &fakeStartups{
		profiles: []entity.StartupProfile{
			{ID: 1, CompanyName: "Acme"},
			{ID: 2, CompanyName: "Globex"},
			{ID: 3, CompanyName: "Initech"},
		},
		offers: map[int64][]entity.Offer{
			1: {{ID: 10, StartupID: 1, Status: value.OfferStatusActive}},
			2: {{ID: 20, StartupID: 2, Status: value.OfferStatusClosed}},
		},
		offersErr: map[int64]error{3: errors.New("boom")},
	}

	svc := NewService(
		startups,
		&fakeInvestors{profile: entity.InvestorProfile{ID: 7}},
		&fakeTransactions{items: []entity.Transaction{{ID: 1}}},
		&fakeNotifications{items: []entity.Notification{{ID: 5}}},
		&fakePitchDecks{},
	)

	dash := svc.Investor(context.Background(), investor())

	require.True(t, dash.Offers.OK())
	// Initech's failing offer list is skipped, not fatal.
	require.Len(t, dash.Offers.Items, 2)

	byID := map[int64]OfferRow{}
	for _, row := range dash.Offers.Items {
		byID[row.Offer.ID] = row
	}

	require.Equal(t, "Acme", byID[10].StartupName)
	require.True(t, byID[10].CanAccept)
	require.True(t, byID[10].CanNegotiate)

	// Closed offers render but stay non-actionable.
	require.False(t, byID[20].CanAccept)
	require.False(t, byID[20].CanNegotiate)

	require.True(t, dash.Transactions.OK())
	require.Len(t, dash.Transactions.Items, 1)
	require.Len(t, dash.Notifications.Items, 1)
}

func TestService_InvestorDashboard_SectionIsolation(t *testing.T) {
	svc := NewService(
		&fakeStartups{profiles: []entity.StartupProfile{{ID: 1, CompanyName: "Acme"}}},
		&fakeInvestors{},
		&fakeTransactions{err: errors.New("ledger down")},
		&fakeNotifications{items: []entity.Notification{{ID: 5}}},
		&fakePitchDecks{},
	)

	dash := svc.Investor(context.Background(), investor())

	require.False(t, dash.Transactions.OK())
	require.True(t, dash.Offers.OK())
	require.True(t, dash.Notifications.OK())
}

func TestService_StartupDashboard_ProfileFailureCascades(t *testing.T) {
	svc := NewService(
		&fakeStartups{profileErr: errors.New("no profile")},
		&fakeInvestors{},
		&fakeTransactions{},
		&fakeNotifications{items: []entity.Notification{{ID: 5}}},
		&fakePitchDecks{},
	)

	dash := svc.Startup(context.Background(), entity.User{ID: 30, Role: value.RoleStartup})

	require.Error(t, dash.ProfileErr)
	require.False(t, dash.Offers.OK())
	require.False(t, dash.Transactions.OK())
	require.False(t, dash.PitchDecks.OK())

	// Notifications key off the user, not the profile, so they still load.
	require.True(t, dash.Notifications.OK())
	require.Len(t, dash.Notifications.Items, 1)
}

func TestService_StartupDashboard_OwnOffersNotActionable(t *testing.T) {
	svc := NewService(
		&fakeStartups{
			profile: entity.StartupProfile{ID: 1, CompanyName: "Acme"},
			offers:  map[int64][]entity.Offer{1: {{ID: 10, StartupID: 1, Status: value.OfferStatusActive}}},
		},
		&fakeInvestors{},
		&fakeTransactions{},
		&fakeNotifications{},
		&fakePitchDecks{items: []entity.PitchDeck{{ID: 9}}},
	)

	dash := svc.Startup(context.Background(), entity.User{ID: 30, Role: value.RoleStartup})

	require.Len(t, dash.Offers.Items, 1)
	require.False(t, dash.Offers.Items[0].CanAccept)
	require.False(t, dash.Offers.Items[0].CanNegotiate)
	require.Len(t, dash.PitchDecks.Items, 1)
}

func TestService_AdminDashboard(t *testing.T) {
	svc := NewService(
		&fakeStartups{profiles: []entity.StartupProfile{{ID: 1}}},
		&fakeInvestors{roster: []entity.InvestorProfile{{ID: 7}, {ID: 8}}},
		&fakeTransactions{items: []entity.Transaction{{ID: 1}, {ID: 2}, {ID: 3}}},
		&fakeNotifications{},
		&fakePitchDecks{},
	)

	dash := svc.Admin(context.Background())

	require.Len(t, dash.Investors.Items, 2)
	require.Len(t, dash.Startups.Items, 1)
	require.Len(t, dash.Transactions.Items, 3)
}

func TestExportTransactionsCSV(t *testing.T) {
	txs := []entity.Transaction{
		{
			ID:              1,
			OfferID:         42,
			InvestorID:      7,
			StartupID:       3,
			Amount:          400000,
			Status:          value.TransactionStatusNegotiating,
			TransactionType: value.TransactionTypeNegotiation,
			TransactionDate: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
		},
		{ID: 2, Status: value.TransactionStatusAccepted, TransactionType: value.TransactionTypeAccept},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTransactionsCSV(&buf, txs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "id,offer_id,investor_id,startup_id,amount,status,type,date", lines[0])
	require.Contains(t, lines[1], "400000.00")
	require.Contains(t, lines[1], "2026-03-01T10:00:00Z")
	require.Contains(t, lines[2], "ACCEPTED")
}

func TestExportTransactionsCSV_AmountFormatting(t *testing.T) {
	random := tests.NewRandomizer()

	tx := entity.Transaction{
		ID:     3,
		Amount: random.Float64() * 1_000_000,
		Status: value.TransactionStatusAccepted,
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTransactionsCSV(&buf, []entity.Transaction{tx}))

	require.Contains(t, buf.String(), strconv.FormatFloat(tx.Amount, 'f', 2, 64))
}
