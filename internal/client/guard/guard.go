// Package guard decides whether a protected screen may be shown.
//
// Each Evaluate call is one mount of the protected content. It never grants
// access on local data alone: a session restored from storage is confirmed
// with the backend first, and a confirmation failure ends in a logout. A
// caller that goes away mid-check is denied but keeps its stored session. A
// session already confirmed in this process skips the network.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/models"
	"github.com/dmitrijs2005/reeldesk/internal/client/session"
	"github.com/dmitrijs2005/reeldesk/internal/logging"
	"github.com/sethvargo/go-retry"
)

// ErrAbandoned is reported when the caller went away before the backend
// answered. The persisted session is left as it was.
var ErrAbandoned = errors.New("session check abandoned")

// Auth is what the guard needs from the auth service.
type Auth interface {
	Session() session.State
	CheckAuth(ctx context.Context) bool
	GetCurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Status Status
	User   *models.User
	// RedirectTo is set when access is denied.
	RedirectTo string
	// Err is the verification failure that caused the denial, if any.
	Err error
}

func (d Decision) Allowed() bool {
	return d.Status == StatusAuthenticated
}

type Guard struct {
	auth Auth
	log  logging.Logger

	redirectTo  string
	showLoading bool
	retries     uint64
	retryDelay  time.Duration

	onLoading    func()
	onRedirect   func(to string)
	onTransition func(from, to Status)
}

func New(auth Auth, log logging.Logger, opts ...Option) *Guard {
	if log == nil {
		log = logging.Discard()
	}
	g := &Guard{
		auth:        auth,
		log:         log,
		redirectTo:  DefaultRedirect,
		showLoading: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guard) RedirectTo() string { return g.redirectTo }

// evaluation tracks the state of a single mount.
type evaluation struct {
	g      *Guard
	status Status
}

func (e *evaluation) move(to Status) {
	from := e.status
	e.status = to
	if e.g.onTransition != nil {
		e.g.onTransition(from, to)
	}
}

// Evaluate runs the guard once. It blocks while the backend is consulted.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	e := &evaluation{g: g, status: StatusInit}
	e.move(StatusLocalCheck)

	if err := ctx.Err(); err != nil {
		e.move(StatusUnauthenticated)
		return g.abandon(err)
	}

	if st := g.auth.Session(); st.IsAuthenticated && st.Verified {
		e.move(StatusAuthenticated)
		return Decision{Status: StatusAuthenticated, User: st.User}
	}

	if !g.auth.CheckAuth(ctx) {
		e.move(StatusUnauthenticated)
		return g.deny(nil)
	}

	e.move(StatusVerifying)
	if g.showLoading && g.onLoading != nil {
		g.onLoading()
	}

	user, err := g.verify(ctx)
	if err != nil && abandoned(ctx, err) {
		g.log.Debug(ctx, "session verification abandoned", "error", err)
		e.move(StatusUnauthenticated)
		return g.abandon(err)
	}
	if err != nil {
		g.log.Info(ctx, "session verification failed", "error", err)
		if lerr := g.auth.Logout(ctx); lerr != nil {
			g.log.Warn(ctx, "logout after failed verification", "error", lerr)
		}
		e.move(StatusUnauthenticated)
		return g.deny(err)
	}

	e.move(StatusAuthenticated)
	return Decision{Status: StatusAuthenticated, User: user}
}

func (g *Guard) deny(err error) Decision {
	if g.onRedirect != nil {
		g.onRedirect(g.redirectTo)
	}
	return Decision{Status: StatusUnauthenticated, RedirectTo: g.redirectTo, Err: err}
}

func (g *Guard) abandon(err error) Decision {
	return Decision{
		Status:     StatusUnauthenticated,
		RedirectTo: g.redirectTo,
		Err:        fmt.Errorf("%w: %v", ErrAbandoned, err),
	}
}

// abandoned reports whether err stems from the caller's context ending
// rather than from the backend.
func abandoned(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

// verify asks the backend for the current user. Unreachable and timed out
// attempts are retried within the budget; anything else ends at once.
func (g *Guard) verify(ctx context.Context) (*models.User, error) {
	if g.retries == 0 {
		return g.auth.GetCurrentUser(ctx)
	}

	var user *models.User
	attempt := func(ctx context.Context) error {
		u, err := g.auth.GetCurrentUser(ctx)
		if err != nil {
			if client.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		user = u
		return nil
	}

	delay := g.retryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	b := retry.WithMaxRetries(g.retries, retry.NewConstant(delay))
	if err := retry.Do(ctx, b, attempt); err != nil {
		return nil, err
	}
	return user, nil
}
