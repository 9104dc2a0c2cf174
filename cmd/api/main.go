package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fieldline/fieldline-backend/api/routes"
	"github.com/fieldline/fieldline-backend/internal/agents"
	"github.com/fieldline/fieldline-backend/internal/auth"
	"github.com/fieldline/fieldline-backend/internal/bookings"
	"github.com/fieldline/fieldline-backend/internal/dispositions"
	"github.com/fieldline/fieldline-backend/internal/notifications"
	"github.com/fieldline/fieldline-backend/internal/regions"
	"github.com/fieldline/fieldline-backend/internal/search"
	"github.com/fieldline/fieldline-backend/internal/timesheets"
	"github.com/fieldline/fieldline-backend/pkg/auth/session"
	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/db"
	"github.com/fieldline/fieldline-backend/pkg/geo"
	"github.com/fieldline/fieldline-backend/pkg/kafka"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"github.com/fieldline/fieldline-backend/pkg/migrate"
	"github.com/fieldline/fieldline-backend/pkg/redis"
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

	geocoder, err := geo.NewGeocoder(cfg.Geocoder.UserAgent,
		geo.WithBaseURL(cfg.Geocoder.BaseURL),
		geo.WithHTTPClient(&http.Client{Timeout: cfg.Geocoder.Timeout}),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create geocoder", err)
		os.Exit(1)
	}

	var events notifications.Publisher = notifications.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka, cfg.Kafka.BookingsTopic)
		if err != nil {
			logg.Error(context.Background(), "failed to create kafka producer", err)
			os.Exit(1)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logg.Error(context.Background(), "error closing kafka producer", err)
			}
		}()

		events, err = notifications.NewKafkaPublisher(producer, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create event publisher", err)
			os.Exit(1)
		}
	}

	gormDB := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		Accounts:       auth.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	requireService(logg, "auth", err)

	bookingsService, err := bookings.NewService(bookings.NewRepository(gormDB), dbClient, events, geocoder, logg)
	requireService(logg, "bookings", err)

	searchService, err := search.NewService(search.NewRepository(gormDB), logg)
	requireService(logg, "search", err)

	dispositionsService, err := dispositions.NewService(dispositions.NewRepository(gormDB), dbClient, logg)
	requireService(logg, "dispositions", err)

	regionsService, err := regions.NewService(regions.NewRepository(gormDB), logg)
	requireService(logg, "regions", err)

	agentsService, err := agents.NewService(agents.NewRepository(gormDB), dbClient, geocoder, cfg.Password, logg)
	requireService(logg, "agents", err)

	timesheetsService, err := timesheets.NewService(timesheets.NewRepository(gormDB), dbClient, logg)
	requireService(logg, "timesheets", err)

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
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, redisClient, sessionManager, routes.Services{
			Auth:         authService,
			Bookings:     bookingsService,
			Search:       searchService,
			Dispositions: dispositionsService,
			Regions:      regionsService,
			Agents:       agentsService,
			Timesheets:   timesheetsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+name+" service", err)
		os.Exit(1)
	}
}
