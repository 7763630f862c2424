package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deskbook/internal/auth"
	"deskbook/internal/config"
	"deskbook/internal/httpapi"
	"deskbook/internal/logging"
	"deskbook/internal/store"
	"deskbook/internal/store/memory"
	"deskbook/internal/store/postgres"
	"deskbook/internal/store/sqlite"
)

func main() {
	bootLog := logging.New(os.Stdout, "info")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error(context.Background(), "load config", "err", err.Error())
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error(context.Background(), "deskbook stopped", "err", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, logger logging.Logger) error {
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	st, err := openStore(rootCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	registry, closeRegistry, err := openRegistry(rootCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRegistry()

	srv, err := httpapi.NewServer(cfg, httpapi.Deps{Store: st, Registry: registry, Logger: logger})
	if err != nil {
		return err
	}
	if err := srv.Seed(rootCtx); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(rootCtx, "deskbook listening", "addr", cfg.ListenAddr())
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-stop:
		logger.Info(rootCtx, "shutdown requested")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	cancelRoot()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	return serveErr
}

func openStore(ctx context.Context, cfg config.Config, logger logging.Logger) (store.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "using postgres store")
		return pg, nil
	case config.StoreMemory:
		logger.Warn(ctx, "using memory store, data is lost on exit")
		return memory.NewStore(), nil
	default:
		sq, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "using sqlite store", "path", cfg.SQLitePath)
		return sq, nil
	}
}

// openRegistry prefers Redis so sessions survive restarts and are shared
// between replicas. The in-memory registry is purged periodically.
func openRegistry(ctx context.Context, cfg config.Config, logger logging.Logger) (auth.Registry, func(), error) {
	if cfg.RedisURL != "" {
		rr, err := auth.NewRedisRegistry(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info(ctx, "using redis session registry")
		return rr, func() { _ = rr.Close() }, nil
	}

	mr := auth.NewMemoryRegistry()
	go runSessionPurgeLoop(ctx, mr, cfg.SessionPurgeInterval(), logger)
	return mr, func() {}, nil
}

func runSessionPurgeLoop(
	ctx context.Context,
	purger interface {
		PurgeExpired(ctx context.Context, now time.Time) (int, error)
	},
	interval time.Duration,
	logger logging.Logger,
) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	runOnce := func() {
		n, err := purger.PurgeExpired(ctx, time.Now())
		if err != nil {
			logger.Error(ctx, "session purge failed", "err", err.Error())
			return
		}
		if n > 0 {
			logger.Info(ctx, "purged expired sessions", "count", n)
		}
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOnce()
		}
	}
}
