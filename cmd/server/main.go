package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	personhandler "phonebook/internal/person/handler"
	personmetrics "phonebook/internal/person/metrics"
	"phonebook/internal/person/service"
	"phonebook/internal/person/store"
	"phonebook/internal/platform/config"
	"phonebook/internal/platform/httpserver"
	"phonebook/internal/platform/logger"
	platformmetrics "phonebook/internal/platform/metrics"
	platformredis "phonebook/internal/platform/redis"
	httptransport "phonebook/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	personStore, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store init failed", "backend", cfg.StoreKind, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	persons := service.New(personStore, log, personmetrics.New())
	handler := personhandler.New(persons, log)
	router := httptransport.NewRouter(handler, log, platformmetrics.New(), cfg.StaticDir)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting phonebook server", "addr", cfg.Addr, "store", cfg.StoreKind)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildStore selects the collection store backend from configuration. The
// returned cleanup closes whatever connection the backend holds.
func buildStore(ctx context.Context, cfg config.Server) (store.Store, func(), error) {
	switch cfg.StoreKind {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil
	case config.StoreRedis:
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedis(client), func() { _ = client.Close() }, nil
	default:
		return store.NewInMemory(), func() {}, nil
	}
}
