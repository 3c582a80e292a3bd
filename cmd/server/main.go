package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/config"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/db"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/handler"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/router"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "eventms-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store selection: Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		st   store.Store
		pool *pgxpool.Pool
	)
	if cfg.DatabaseURL != "" {
		if err := store.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}

		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		st = store.NewPostgres(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	}
	defer st.Close()

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	cache.InstrumentWith(handler.Metrics.CacheHits, handler.Metrics.CacheMisses)
	defer cache.Close()

	listing := service.NewListingService(st)
	catalog := service.NewCatalogService(st)
	hosts := service.NewHostService(st, cache)
	votes := service.NewVoteService(st, cache)

	auditor := service.NewLedgerAuditor(st, cache, cfg.AuditInterval, cfg.AuditWorkers)
	auditor.InstrumentWith(handler.Metrics.AuditRepairsTotal)
	go auditor.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "EventMS API",
		ServerHeader: "EventMS",
	})

	router.Setup(app, &router.Handlers{
		Event:  handler.NewEventHandler(listing, catalog),
		Venue:  handler.NewVenueHandler(listing, catalog),
		Host:   handler.NewHostHandler(listing, hosts),
		Vote:   handler.NewVoteHandler(votes),
		Stats:  handler.NewStatsHandler(hosts),
		Export: handler.NewExportHandler(hosts),
		Admin:  handler.NewAdminHandler(auditor),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Environment).
			Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped cleanly")
}
