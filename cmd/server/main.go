package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dropofhope/internal/donation"
	"dropofhope/internal/donor"
	"dropofhope/internal/fulfillment"
	fulfillmentMetrics "dropofhope/internal/fulfillment/metrics"
	"dropofhope/internal/matching"
	matchingMetrics "dropofhope/internal/matching/metrics"
	"dropofhope/internal/platform/config"
	"dropofhope/internal/platform/httpserver"
	"dropofhope/internal/platform/logger"
	"dropofhope/internal/platform/metrics"
	"dropofhope/internal/platform/postgres"
	platformRedis "dropofhope/internal/platform/redis"
	"dropofhope/internal/ratelimit"
	"dropofhope/internal/request"
	httptransport "dropofhope/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.New()

	// Stores: postgres when DATABASE_URL is set, in-memory otherwise so the
	// service runs without infrastructure in development.
	var (
		db            *sql.DB
		donationStore donation.Store
		requestStore  request.Store
		donorStore    donor.Store
		txRunner      fulfillment.TxRunner
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("failed to run migrations", "error", err.Error())
			os.Exit(1)
		}
		donationStore = donation.NewPostgres(db)
		requestStore = request.NewPostgres(db)
		donorStore = donor.NewPostgres(db)
		txRunner = fulfillment.NewSQLTxRunner(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		dm := donation.NewInMemoryStore()
		rm := request.NewInMemoryStore()
		donationStore = dm
		requestStore = rm
		donorStore = donor.NewInMemoryStore()
		txRunner = fulfillment.NewMemoryTxRunner(dm, rm)
	}

	checks := map[string]func(context.Context) error{}
	if db != nil {
		checks["postgres"] = db.PingContext
	}

	// Rate limiting: redis fixed window when configured, in-memory otherwise.
	var limiterStore ratelimit.Store = ratelimit.NewMemoryStore()
	rdb, err := platformRedis.New(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, falling back to in-memory rate limiting", "error", err.Error())
	} else if rdb != nil {
		defer rdb.Close()
		limiterStore = ratelimit.NewRedisStore(rdb.Client)
		checks["redis"] = rdb.Health
	}

	ranker := matching.NewRanker(matching.DefaultCompatibilityTable(), cfg.MatchRadiusKm)

	donorSvc := donor.NewService(donorStore, log)
	donationSvc := donation.NewService(donationStore, requestStore, log, appMetrics)
	requestSvc := request.NewService(requestStore, log, appMetrics)
	matchSvc := matching.NewService(ranker, donationStore, requestStore, donorStore, log, matchingMetrics.New())
	fulfillSvc := fulfillment.NewService(donationStore, requestStore, txRunner,
		matching.DefaultCompatibilityTable(), log, fulfillmentMetrics.New())

	router := httptransport.NewRouter(httptransport.Deps{
		Donors:    httptransport.NewDonorHandler(donorSvc, log),
		Donations: httptransport.NewDonationHandler(donationSvc, log),
		Requests:  httptransport.NewRequestHandler(requestSvc, fulfillSvc, log),
		Matches:   httptransport.NewMatchHandler(matchSvc, log),
		Limiter:   ratelimit.NewMiddleware(limiterStore, cfg.RateLimit, log),
		Logger:    log,
		Metrics:   appMetrics,
		Checks:    checks,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting dropofhope", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
