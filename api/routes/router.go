package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/littlelemonco/littlelemon-backend/api/controllers"
	"github.com/littlelemonco/littlelemon-backend/api/middleware"
	"github.com/littlelemonco/littlelemon-backend/internal/accesscontrol"
	internalauth "github.com/littlelemonco/littlelemon-backend/internal/auth"
	"github.com/littlelemonco/littlelemon-backend/internal/cart"
	"github.com/littlelemonco/littlelemon-backend/internal/catalog"
	"github.com/littlelemonco/littlelemon-backend/internal/orders"
	"github.com/littlelemonco/littlelemon-backend/internal/roster"
	"github.com/littlelemonco/littlelemon-backend/pkg/auth/session"
	"github.com/littlelemonco/littlelemon-backend/pkg/config"
	"github.com/littlelemonco/littlelemon-backend/pkg/db"
	"github.com/littlelemonco/littlelemon-backend/pkg/logger"
	"github.com/littlelemonco/littlelemon-backend/pkg/metrics"
	"github.com/littlelemonco/littlelemon-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	Sessions       session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	AuthService    internalauth.Service
	CatalogService catalog.Service
	CartService    cart.Service
	OrdersService  orders.Service
	RosterService  roster.Service
	AccessControl  accesscontrol.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(d.DB, d.Redis, logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(d.AuthService, logg))
		r.Post("/login", controllers.Login(d.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.Logout(d.AuthService, logg))
	})

	throttle := middleware.UserRateLimit(middleware.RateLimitPolicy{
		Window:    cfg.RateLimit.Window,
		UserLimit: cfg.RateLimit.UserLimit,
	}, d.Redis, logg)
	requireManager := middleware.RequireManager(d.AccessControl, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg), throttle)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(d.CatalogService, logg))
			r.With(requireManager).Post("/", controllers.CreateCategory(d.CatalogService, logg))
			r.Get("/{categoryId}", controllers.GetCategory(d.CatalogService, logg))
			r.With(requireManager).Patch("/{categoryId}", controllers.UpdateCategory(d.CatalogService, logg))
			r.With(requireManager).Delete("/{categoryId}", controllers.DeleteCategory(d.CatalogService, logg))
		})

		r.Route("/menu-items", func(r chi.Router) {
			r.Get("/", controllers.ListMenuItems(d.CatalogService, logg))
			r.With(requireManager).Post("/", controllers.CreateMenuItem(d.CatalogService, logg))
			r.Get("/{menuItemId}", controllers.GetMenuItem(d.CatalogService, logg))
			r.With(requireManager).Patch("/{menuItemId}", controllers.UpdateMenuItem(d.CatalogService, logg))
			r.With(requireManager).Delete("/{menuItemId}", controllers.DeleteMenuItem(d.CatalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(d.CartService, logg))
			r.Post("/", controllers.AddToCart(d.CartService, logg))
			r.Delete("/", controllers.ClearCart(d.CartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(d.OrdersService, logg))
			r.Post("/", controllers.Checkout(d.OrdersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(d.OrdersService, logg))
			r.Patch("/{orderId}", controllers.UpdateOrder(d.OrdersService, logg))
			r.With(requireManager).Delete("/{orderId}", controllers.DeleteOrder(d.OrdersService, logg))
		})

		r.Route("/groups/{group}/users", func(r chi.Router) {
			r.Use(requireManager)
			r.Get("/", controllers.ListGroupMembers(d.RosterService, logg))
			r.Post("/", controllers.AddGroupMember(d.RosterService, logg))
			r.Delete("/{userId}", controllers.RemoveGroupMember(d.RosterService, logg))
		})
	})

	return r
}
