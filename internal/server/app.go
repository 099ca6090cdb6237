// Package server wires the journal server together: it opens the encrypted
// record store, builds the services and runs the REST API until a shutdown
// signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/config"
	"github.com/dmitrijs2005/musicjournal/internal/server/httpapi"
	"github.com/dmitrijs2005/musicjournal/internal/server/ratelimit"
	"github.com/dmitrijs2005/musicjournal/internal/server/services"
	"github.com/dmitrijs2005/musicjournal/internal/server/store"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	limiterCleanup    = time.Minute
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *store.Store
	limiter *ratelimit.RateLimiter
	api     *httpapi.Server
}

// NewApp validates c, opens the store and builds every service. The caller
// owns the returned App and must call Run, which releases its resources.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	key, err := c.Key()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	st, err := store.Open(ctx, c.DatabaseDSN, key, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	identity := services.NewIdentityService(st, logger)
	limiter := ratelimit.NewRateLimiter(ratelimit.Config{
		RPS:             c.RateLimitRPS,
		Burst:           c.RateLimitBurst,
		CleanupInterval: limiterCleanup,
	})

	api := httpapi.NewServer(httpapi.Deps{
		Journal:       services.NewJournalService(st, logger),
		Users:         st,
		Spotify:       services.NewSpotifyService(c, identity, st, logger),
		Images:        services.NewImageService(c),
		Limiter:       limiter,
		Logger:        logger,
		SecretKey:     []byte(c.SecretKey),
		SessionTTL:    c.SessionValidityDuration,
		SecureCookies: strings.HasPrefix(c.SpotifyRedirectURL, "https://"),
	})

	return &App{config: c, logger: logger, store: st, limiter: limiter, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func (app *App) startHTTPServer(ctx context.Context) error {
	listen, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           app.api.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listen)
	}()
	app.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// stops the limiter and closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	stopSignals := app.initSignalHandler(cancelFunc)
	defer stopSignals()

	err := app.startHTTPServer(ctx)

	app.limiter.Stop()
	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(ctx, "store close failed", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
