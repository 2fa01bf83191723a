package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/config"
	"github.com/dmitrijs2005/reeldesk/internal/client/guard"
	"github.com/dmitrijs2005/reeldesk/internal/client/services"
	"github.com/dmitrijs2005/reeldesk/internal/client/session"
	"github.com/dmitrijs2005/reeldesk/internal/client/storage"
	"github.com/dmitrijs2005/reeldesk/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	auth    *services.AuthService
	content *services.ContentService
	guard   *guard.Guard
	reader  *bufio.Reader
	out     io.Writer

	// path is the screen currently shown.
	path string
}

// NewApp opens the state database and wires the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.StateDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return newApp(c, logger, db, nil, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, httpClient *http.Client, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	store := session.NewStore(storage.NewCredentialStore(db), logger)
	api := client.NewHTTPClient(c.APIBaseURL, httpClient, store.Token, logger)

	a := &App{
		config:  c,
		logger:  logger,
		db:      db,
		auth:    services.NewAuthService(api, store, logger, c.RequestTimeout),
		content: services.NewContentService(api, logger, c.RequestTimeout),
		reader:  bufio.NewReader(in),
		out:     out,
		path:    "/",
	}
	a.guard = guard.New(a.auth, logger,
		guard.WithRedirect(c.RedirectTo),
		guard.WithLoading(c.ShowLoading),
		guard.WithRetries(c.VerifyRetries, c.VerifyRetryDelay),
		guard.OnLoading(func() { fmt.Fprintln(a.out, "Checking your session...") }),
		guard.OnTransition(func(from, to guard.Status) {
			logger.Debug(context.Background(), "guard transition", "from", from.String(), "to", to.String())
		}),
	)
	return a
}

// Run restores any saved session and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to the reeldesk admin client (type 'help' for commands)")
	if a.auth.CheckAuth(ctx) {
		fmt.Fprintf(a.out, "Found a saved session for %s.\n", a.auth.Session().User.DisplayName())
	}
	_ = a.Open(ctx, "/")

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "close state database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session().IsAuthenticated
}

func (a *App) getStatus() string {
	s := a.path
	if u := a.auth.Session().User; u != nil {
		s = u.DisplayName() + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
