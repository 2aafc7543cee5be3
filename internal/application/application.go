package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"startupconnect/internal/config"
	"startupconnect/internal/dashboard"
	"startupconnect/internal/domain/service/negotiation"
	"startupconnect/internal/domain/service/payment"
	"startupconnect/internal/infrastructure/api"
	"startupconnect/internal/infrastructure/persistence"
	"startupconnect/internal/server"
	"startupconnect/internal/session"
	"startupconnect/internal/worker"
	"startupconnect/pkg/application/connectors"
	"startupconnect/pkg/application/modules"
	"startupconnect/pkg/logx"
	"startupconnect/pkg/middlewarex"
)

const (
	Name    = "startupconnect"
	Version = "1.0.0"
)

// Run wires the gateway together and blocks until the context is canceled
// or a module fails.
func Run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	sessions, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newSessionStore: %w", err)
	}
	defer closeStore()

	httpClient := api.NewHTTPClient(sessions, cfg.API.LogFieldMaxLen)
	httpClient.Timeout = cfg.API.Timeout

	base := api.NewClient(cfg.API.BaseURL, sessions, httpClient)

	auth := api.NewAuthClient(base)
	startups := api.NewStartupsClient(base)
	investors := api.NewInvestorsClient(base)
	transactions := api.NewTransactionsClient(base)
	messages := api.NewMessagesClient(base)
	notifications := api.NewNotificationsClient(base)
	pitchDecks := api.NewPitchDecksClient(base)
	users := api.NewUsersClient(base)

	workflow := negotiation.NewService(startups, transactions, messages, payment.NewValidator())

	// Domain state lives in the remote backend; Postgres only journals
	// workflow attempts and stays optional.
	if cfg.Postgres.DSN != "" {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		db := pg.Client(ctx)
		defer pg.Close(ctx)

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("db.PingContext: %w", err)
		}

		workflow = workflow.WithJournal(persistence.NewAttemptRepository(db))
	} else {
		log.Info("attempt journal disabled, PG_DSN is empty")
	}

	dashboards := dashboard.NewService(startups, investors, transactions, notifications, pitchDecks)

	events := make(chan worker.Event, 64)

	coordinator := worker.NewCoordinator(notifications, messages, events, cfg.Poll.SeenTTL).
		WithInterval(cfg.Poll.Interval)

	// Logout invalidates the token every poller runs on.
	sessions.OnClear(coordinator.StopAll)

	go consumeEvents(ctx, log, events)

	srv := server.NewServer(
		server.NewAuthServer(auth, sessions),
		server.NewWorkflowServer(workflow, startups, investors, sessions),
		server.NewManageServer(startups, investors, pitchDecks, notifications, sessions),
		server.NewDashboardServer(dashboards, transactions, messages, sessions),
		server.NewPollServer(ctx, coordinator, users, sessions),
	)

	router := chi.NewRouter()

	masker := logx.NewSensitiveDataMasker()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.API.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.API.LogFieldMaxLen),
	)

	srv.RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(gCtx, g, httpServer)
	modules.ProbeServer{
		Name:          Name,
		Version:       Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(gCtx, g)
	modules.MetricServer{ListenAddress: cfg.Server.MetricsListenAddress}.Run(gCtx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	coordinator.StopAll()

	return nil
}

func newSessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case "redis":
		rd := &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}

		return session.NewRedisStore(rd.Client(ctx), cfg.Session.Key), func() { rd.Close(ctx) }, nil
	case "file":
		return session.NewFileStore(cfg.Session.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// consumeEvents drains the poll event stream. The gateway has no push
// channel to the caller, so observed items are surfaced through the log.
func consumeEvents(ctx context.Context, log *slog.Logger, events <-chan worker.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			switch event.Kind {
			case worker.EventNotification:
				log.Info("new notification",
					slog.String("poll_key", event.PollKey),
					slog.Int64("notification_id", event.Notification.ID),
					slog.String("message", event.Notification.Message),
				)
			case worker.EventMessage:
				log.Info("new message",
					slog.String("poll_key", event.PollKey),
					slog.Int64("message_id", event.Message.ID),
					slog.Int64("sender_id", event.Message.SenderID),
				)
			}
		}
	}
}
