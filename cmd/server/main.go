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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	carthandler "boxoffice/internal/cart/handler"
	cartservice "boxoffice/internal/cart/service"
	cartstore "boxoffice/internal/cart/store"
	"boxoffice/internal/cart/watcher"
	checkouthandler "boxoffice/internal/checkout/handler"
	checkoutservice "boxoffice/internal/checkout/service"
	checkoutstore "boxoffice/internal/checkout/store"
	"boxoffice/internal/event"
	httpapi "boxoffice/internal/http"
	"boxoffice/internal/platform/config"
	"boxoffice/internal/platform/httpserver"
	"boxoffice/internal/platform/logger"
	"boxoffice/internal/platform/metrics"
	"boxoffice/internal/platform/redis"
	"boxoffice/internal/selection"
	selectionhandler "boxoffice/internal/selection/handler"
	venuehandler "boxoffice/internal/venue/handler"
	venueservice "boxoffice/internal/venue/service"
	venuestore "boxoffice/internal/venue/store"
)

// main wires dependencies and runs the server and the reservation expiry
// watcher until interrupted. Business logic lives in the internal services.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Venue and order storage: Postgres when configured, otherwise the
	// in-memory demo venue.
	var venueStore venueservice.Store
	var orderStore checkoutstore.Store
	var checkoutOpts []checkoutservice.Option
	checks := map[string]httpapi.HealthChecker{}
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		venueStore = venuestore.NewPostgres(db)
		orderStore = checkoutstore.NewPostgres(db)
		checkoutOpts = append(checkoutOpts, checkoutservice.WithStoreTx(checkoutstore.NewPostgresTx(db)))
		checks["postgres"] = pingChecker{db}
	} else {
		venueStore = venuestore.NewMemory(venuestore.SeedVenue())
		orderStore = checkoutstore.NewMemory()
		log.Info("no postgres configured, serving the demo venue from memory")
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		venueStore = venuestore.NewCached(venueStore, redisClient, cfg.VenueCacheTTL, log)
		checks["redis"] = redisClient
	}

	var publisher event.Publisher = event.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := event.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	venues := venueservice.New(venueStore, log, m)
	selections := selection.New(venues)
	carts := cartstore.NewMemory()
	cartSvc := cartservice.New(venues, carts, cfg.HoldDuration, log, m)
	checkoutSvc := checkoutservice.New(cartSvc, selections, orderStore, publisher, log, m, checkoutOpts...)
	expiry := watcher.New(carts, publisher, cfg.ExpiryPollInterval, log, m)

	router := httpapi.NewRouter(httpapi.Config{
		Logger:  log,
		Metrics: m,
		Handlers: []httpapi.Registrar{
			venuehandler.New(venues, selections, cartSvc, log),
			selectionhandler.New(selections, log),
			carthandler.New(cartSvc, log),
			checkouthandler.New(checkoutSvc, log),
		},
		Checks: checks,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting boxoffice", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := expiry.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

type pingChecker struct {
	db *sql.DB
}

func (c pingChecker) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
