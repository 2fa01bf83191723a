package devapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/reeldesk/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *Config
	logger  logging.Logger
	users   *Users
	content *Content
}

// NewApp seeds the stores from c.
func NewApp(c *Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	users := NewUsers(c, 0)
	if _, err := users.Create(c.SeedEmail, "Admin", c.SeedPassword); err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return &App{config: c, logger: logger, users: users, content: NewContent()}, nil
}

func (app *App) Handler() http.Handler {
	return NewRouter(app.users, app.content, app.logger, app.config.AllowedOrigins)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx ends or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "dev api listening", "addr", ln.Addr().String(), "seed_email", app.config.SeedEmail)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
