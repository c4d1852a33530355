package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/littlelemonco/littlelemon-backend/api/routes"
	"github.com/littlelemonco/littlelemon-backend/internal/accesscontrol"
	"github.com/littlelemonco/littlelemon-backend/internal/auth"
	"github.com/littlelemonco/littlelemon-backend/internal/cart"
	"github.com/littlelemonco/littlelemon-backend/internal/catalog"
	"github.com/littlelemonco/littlelemon-backend/internal/orders"
	"github.com/littlelemonco/littlelemon-backend/internal/roster"
	"github.com/littlelemonco/littlelemon-backend/internal/users"
	"github.com/littlelemonco/littlelemon-backend/pkg/auth/session"
	"github.com/littlelemonco/littlelemon-backend/pkg/config"
	"github.com/littlelemonco/littlelemon-backend/pkg/db"
	"github.com/littlelemonco/littlelemon-backend/pkg/logger"
	"github.com/littlelemonco/littlelemon-backend/pkg/metrics"
	"github.com/littlelemonco/littlelemon-backend/pkg/migrate"
	"github.com/littlelemonco/littlelemon-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	rosterRepo := roster.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	accessControl := accesscontrol.NewService(rosterRepo)

	lockProvider := orders.LockProvider(func(scope string) (orders.Locker, error) {
		lock, err := redis.NewLock(redisClient, redisClient.LockKey(scope), cfg.Checkout.LockTTL)
		if err != nil {
			return nil, err
		}
		return lock, nil
	})

	authService := auth.NewService(userRepo, sessionManager, cfg.JWT, cfg.Password)
	catalogService := catalog.NewService(catalogRepo)
	cartService := cart.NewService(cartRepo, catalogRepo)
	ordersService := orders.NewService(orderRepo, cartRepo, accessControl, dbClient, lockProvider, logg)
	rosterService := roster.NewService(rosterRepo, userRepo)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Sessions:       sessionManager,
			HTTPMetrics:    httpMetrics,
			AuthService:    authService,
			CatalogService: catalogService,
			CartService:    cartService,
			OrdersService:  ordersService,
			RosterService:  rosterService,
			AccessControl:  accessControl,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
