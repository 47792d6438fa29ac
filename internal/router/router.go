package router

import (
	"log/slog"
	"net/http"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/config"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/dashboard"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/handler"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/inventory"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/metrics"
	mw "github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/middleware"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the long-lived components the routes are built from.
type Deps struct {
	Provider  auth.IdentityProvider
	Revoker   auth.Revoker
	Sessions  auth.SessionChecker
	Employees handler.EmployeeService
	Composers *order.Registry
	Catalog   *menu.Catalog
	Inventory *inventory.Inventory
	Tasks     []dashboard.Task
	Recent    handler.RecentOrderLister
	Hub       *ws.Hub
	Metrics   *metrics.Metrics
	Version   string
}

// New creates a Chi router with all application routes wired up.
// Applies authentication and permission middleware as needed.
func New(cfg *config.Config, d Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	handler.RegisterPublicRoutes(r, d.Version)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	authHandler := handler.NewAuthHandler(d.Provider, d.Revoker, d.Composers, d.Metrics, cfg.JWTSecret, cfg.AccessTokenTTL)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/notifications", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(d.Hub, cfg.JWTSecret, d.Revoker, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret, d.Revoker, d.Sessions))

		authHandler.RegisterSessionRoutes(r)

		// Administrator portal
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.RequirePermission(auth.ManageEmployees))
			handler.NewEmployeeHandler(d.Employees, d.Composers).RegisterRoutes(r)
		})

		// Employee portal
		r.Route("/employee", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePermission(auth.ViewDashboard))
				handler.NewDashboardHandler(d.Tasks, d.Recent).RegisterRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePermission(auth.ViewInventory))
				handler.NewInventoryHandler(d.Inventory).RegisterRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePermission(auth.TakeOrders))
				handler.NewMenuHandler(d.Catalog).RegisterRoutes(r)
				cartHandler := handler.NewCartHandler(d.Composers, d.Catalog, d.Metrics, cfg.SinkTimeout)
				r.Route("/orders", cartHandler.RegisterRoutes)
			})
		})
	})

	slog.Debug("router initialized")
	return r
}
