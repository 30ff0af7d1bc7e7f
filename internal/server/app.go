// Package server wires the gatekeeper application: store selection and
// migrations, the authorization engine, demo seeding, and the gRPC, HTTP and
// metrics listeners with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/gatekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/roles"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"

	gs "github.com/dmitrijs2005/gatekeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	auth    *services.AuthorizationService
	metrics *metrics.Metrics
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// NewApp connects the store and builds the engine. A store that stays
// unreachable for StoreConnectTimeout is a fatal startup error.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := auth.NewHasher(c.PasswordHashAlgorithm, c.PasswordPepper)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger, metrics: metrics.New()}

	var ur users.Repository
	var rr roles.Repository
	var tx services.Transactor

	if c.UsesMemoryStore() {
		logger.Warn(ctx, "Using in-memory store, data is lost on exit")
		store := memory.NewStore()
		ur, rr = store, store
	} else {
		db, err := openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := connectWithRetry(ctx, db, c.StoreConnectTimeout, logger); err != nil {
			db.Close()
			return nil, err
		}

		rm := repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		app.db = db
		ur, rr = rm.Users(db), rm.Roles(db)
		tx = repomanager.NewTxRunner(db, rm)
	}

	app.auth = services.NewAuthorizationService(ur, rr, hasher, c.TokenTTL, logger)
	if tx != nil {
		app.auth.WithTransactor(tx)
	}

	if c.SeedDemoUsers {
		n, err := app.auth.Seed(ctx, services.DemoUsers)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("seeding demo users: %w", err)
		}
		logger.Info(ctx, "Demo users seeded", "created", n)
	}

	return app, nil
}

// connectWithRetry pings db with exponential backoff until it answers or
// timeout elapses.
func connectWithRetry(ctx context.Context, db *sql.DB, timeout time.Duration, logger logging.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = timeout

	err := backoff.RetryNotify(
		func() error { return db.PingContext(ctx) },
		backoff.WithContext(b, ctx),
		func(err error, next time.Duration) {
			logger.Warn(ctx, "Store unreachable, retrying", "error", err, "next", next)
		},
	)
	if err != nil {
		return fmt.Errorf("store unreachable after %s: %w", timeout, err)
	}
	return nil
}

// Authorization exposes the engine, mainly for tests.
func (app *App) Authorization() *services.AuthorizationService {
	return app.auth
}

// Close releases the database connection pool, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.auth, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.auth, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
