package server

import (
	"context"
	"fmt"
	"net/http"

	"startupconnect/internal/dashboard"
	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/internal/domain/value"
	"startupconnect/pkg/errcodes"
	"startupconnect/pkg/httpx/reply"
	"startupconnect/pkg/rest"
)

type dashboardService interface {
	Investor(ctx context.Context, viewer entity.User) dashboard.InvestorDashboard
	Startup(ctx context.Context, viewer entity.User) dashboard.StartupDashboard
	Admin(ctx context.Context) dashboard.AdminDashboard
	MarketOffers(ctx context.Context, viewer entity.User) dashboard.Section[dashboard.OfferRow]
}

type transactionLister interface {
	All(ctx context.Context) ([]entity.Transaction, error)
}

type conversationLister interface {
	ConversationUsers(ctx context.Context, userID int64) ([]entity.User, error)
}

type DashboardServer struct {
	dashboards    dashboardService
	transactions  transactionLister
	conversations conversationLister
	sessions      sessionReader
}

func NewDashboardServer(
	dashboards dashboardService,
	transactions transactionLister,
	conversations conversationLister,
	sessions sessionReader,
) DashboardServer {
	return DashboardServer{
		dashboards:    dashboards,
		transactions:  transactions,
		conversations: conversations,
		sessions:      sessions,
	}
}

func (s DashboardServer) getV1Offers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sess, err := s.viewer(value.RoleInvestor, value.RoleAdmin)
	if err != nil {
		return err
	}

	section := s.dashboards.MarketOffers(ctx, sess.User)
	if section.Err != nil {
		return fmt.Errorf("dashboards.MarketOffers: %w", section.Err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTOffers(section.Items))

	return nil
}

func (s DashboardServer) getV1InvestorDashboard(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sess, err := s.viewer(value.RoleInvestor)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTInvestorDashboard(s.dashboards.Investor(ctx, sess.User)))

	return nil
}

func (s DashboardServer) getV1StartupDashboard(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sess, err := s.viewer(value.RoleStartup)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTStartupDashboard(s.dashboards.Startup(ctx, sess.User)))

	return nil
}

func (s DashboardServer) getV1AdminDashboard(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if _, err := s.viewer(value.RoleAdmin); err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAdminDashboard(s.dashboards.Admin(ctx)))

	return nil
}

// getV1Conversations lists the users the viewer has exchanged messages with,
// the entry points of the chat block.
func (s DashboardServer) getV1Conversations(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sess, ok := s.sessions.Current()
	if !ok {
		return domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	users, err := s.conversations.ConversationUsers(ctx, sess.User.ID)
	if err != nil {
		return fmt.Errorf("conversations.ConversationUsers: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Conversations{Users: newRESTUsers(users)})

	return nil
}

func (s DashboardServer) getV1TransactionsCSV(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if _, err := s.viewer(value.RoleAdmin); err != nil {
		return err
	}

	transactions, err := s.transactions.All(ctx)
	if err != nil {
		return fmt.Errorf("transactions.All: %w", err)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := dashboard.ExportTransactionsCSV(w, transactions); err != nil {
		return fmt.Errorf("dashboard.ExportTransactionsCSV: %w", err)
	}

	return nil
}

// viewer returns the session when its role is one of the allowed ones.
func (s DashboardServer) viewer(roles ...value.Role) (entity.Session, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return entity.Session{}, domain.NewError(errcodes.NotAuthenticated, "you must be logged in")
	}

	for _, role := range roles {
		if sess.User.Role == role {
			return sess, nil
		}
	}

	return entity.Session{}, domain.NewError(errcodes.Forbidden, "this dashboard is not available for your role")
}
