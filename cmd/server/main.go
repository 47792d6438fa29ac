package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/config"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/dashboard"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/database"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/employee"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/inventory"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/logging"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/metrics"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/router"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	version          = "1.0.0"
	recentOrderLimit = 10
	shutdownTimeout  = 15 * time.Second
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	revoker, closeRevoker, err := newRevoker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRevoker()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		pool, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
	}

	// Roster
	var store employee.Store = employee.NewMemoryStore()
	if pool != nil {
		store = database.NewEmployeeStore(pool)
	}
	employees := employee.NewService(store)
	if n, err := employees.Seed(ctx, employee.DefaultSeeds()); err != nil {
		return fmt.Errorf("seed roster: %w", err)
	} else if n > 0 {
		slog.Info("roster seeded", "created", n)
	}

	provider, err := newProvider(cfg, employees)
	if err != nil {
		return err
	}

	// Orders
	hub := ws.NewHub()
	go hub.Run(ctx)

	recent, err := newRecentOrders(ctx, pool)
	if err != nil {
		return err
	}
	var sink order.Sink = order.NewNotifySink()
	if cfg.OrderSink == enum.OrderSinkPostgres {
		sink = database.NewOrderSink(pool)
	}
	registry := order.NewRegistry(order.RecordingSink{Next: sink, Recorder: recent}, hub)

	r := router.New(cfg, router.Deps{
		Provider:  provider,
		Revoker:   revoker,
		Sessions:  employees,
		Employees: employees,
		Composers: registry,
		Catalog:   menu.DefaultCatalog(),
		Inventory: inventory.Default(),
		Tasks:     dashboard.DefaultTasks(),
		Recent:    recent,
		Hub:       hub,
		Metrics:   metrics.New(registry.Len),
		Version:   version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"port", cfg.Port,
			"auth_provider", cfg.AuthProvider,
			"order_sink", cfg.OrderSink,
			"persistent_roster", pool != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRevoker(ctx context.Context, cfg *config.Config) (auth.Revoker, func(), error) {
	if cfg.RedisURL == "" {
		return auth.NewMemoryRevoker(), func() {}, nil
	}
	rr, err := auth.NewRedisRevoker(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return rr, func() {
		if err := rr.Close(); err != nil {
			slog.Warn("close redis", "error", err)
		}
	}, nil
}

// newProvider picks the identity backend. The mock keeps the fixed admin
// login and checks employees against the roster.
func newProvider(cfg *config.Config, roster auth.RosterVerifier) (auth.IdentityProvider, error) {
	if cfg.AuthProvider == enum.AuthProviderREST {
		return auth.NewRESTProvider(cfg.AuthBackendURL), nil
	}

	p, err := auth.NewMockProvider(auth.DefaultAdminAccounts(), roster)
	if err != nil {
		return nil, fmt.Errorf("mock provider: %w", err)
	}
	return p, nil
}

func newRecentOrders(ctx context.Context, pool *pgxpool.Pool) (*dashboard.RecentOrders, error) {
	if pool == nil {
		return dashboard.NewRecentOrders(recentOrderLimit, dashboard.SampleRecentOrders()), nil
	}
	stored, err := database.RecentOrders(ctx, pool, recentOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent orders: %w", err)
	}
	return dashboard.NewRecentOrders(recentOrderLimit, stored), nil
}
