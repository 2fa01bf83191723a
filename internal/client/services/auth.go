package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/models"
	"github.com/dmitrijs2005/reeldesk/internal/client/session"
	"github.com/dmitrijs2005/reeldesk/internal/logging"
	"golang.org/x/sync/semaphore"
)

// MinPasswordLength is enforced before a new password is sent.
const MinPasswordLength = 6

// AuthService wraps the backend authentication endpoints.
//
// Failures come back as errors whose Error() is the message to show the
// user; the same message is mirrored into session.State.AuthError. Use
// errors.Is with the client kinds (client.ErrUnauthorized,
// client.ErrUnavailable, client.ErrTimeout) to tell them apart.
type AuthService struct {
	api     client.AuthAPI
	store   *session.Store
	log     logging.Logger
	timeout time.Duration
	slot    *semaphore.Weighted
}

// NewAuthService binds the service to its API and session store. A
// non-positive timeout disables the per-request deadline.
func NewAuthService(api client.AuthAPI, store *session.Store, log logging.Logger, timeout time.Duration) *AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &AuthService{
		api:     api,
		store:   store,
		log:     log,
		timeout: timeout,
		slot:    semaphore.NewWeighted(1),
	}
}

// Session exposes the read-only state.
func (a *AuthService) Session() session.State {
	return a.store.Snapshot()
}

// CheckAuth restores the session from local storage. No network.
func (a *AuthService) CheckAuth(ctx context.Context) bool {
	return a.store.CheckAuth(ctx)
}

func (a *AuthService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// run executes fn with loading/error bookkeeping. exclusive calls hold the
// mutation slot for their whole duration.
func (a *AuthService) run(ctx context.Context, exclusive bool, fn func(ctx context.Context) error) error {
	if exclusive {
		if err := a.slot.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("%w: %v", ErrBusy, err)
		}
		defer a.slot.Release(1)
	}

	a.store.Begin()
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	err := fn(ctx)
	a.store.Finish(err)
	return err
}

func validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Login exchanges credentials for a session. On failure the store is left
// untouched.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	var user *models.User

	err := a.run(ctx, true, func(ctx context.Context) error {
		if email == "" || password == "" {
			return validation("email and password are required")
		}
		res, err := a.api.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if err := a.store.Persist(ctx, res.Token, res.User); err != nil {
			return err
		}
		a.store.Confirm(res.User)
		user = res.User.Clone()
		return nil
	})
	if err != nil {
		a.log.Info(ctx, "login failed", "email", email, "error", err)
		return nil, err
	}
	a.log.Info(ctx, "login succeeded", "email", email)
	return user, nil
}

// Logout notifies the backend (best effort) and always clears the local
// session. Only a local storage failure is returned. Logging out twice is
// harmless.
func (a *AuthService) Logout(ctx context.Context) error {
	// The slot is awaited without the caller's cancellation: the holder is
	// bounded by its own request timeout and local teardown must happen.
	local := context.WithoutCancel(ctx)
	if err := a.slot.Acquire(local, 1); err != nil {
		return fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer a.slot.Release(1)

	a.store.Begin()
	token, err := a.store.Token(local)
	if err != nil {
		a.log.Warn(ctx, "cannot read token before logout", "error", err)
	}
	if token != "" {
		reqCtx, cancel := a.withTimeout(ctx)
		if err := a.api.Logout(reqCtx); err != nil {
			a.log.Warn(ctx, "logout notification failed", "error", err)
		}
		cancel()
	}

	err = a.store.Clear(local)
	a.store.Finish(err)
	return err
}

// GetCurrentUser asks the backend who owns the stored token. Failure does
// not clear the session; callers decide what it means.
func (a *AuthService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user *models.User
	err := a.run(ctx, true, func(ctx context.Context) error {
		u, err := a.api.Me(ctx)
		if err != nil {
			return err
		}
		a.store.Confirm(u)
		user = u.Clone()
		return nil
	})
	if err != nil {
		a.log.Debug(ctx, "current user lookup failed", "error", err)
		return nil, err
	}
	return user, nil
}

// VerifyToken checks token with the backend; "" means the stored token.
func (a *AuthService) VerifyToken(ctx context.Context, token string) (bool, error) {
	var valid bool
	err := a.run(ctx, false, func(ctx context.Context) error {
		if token == "" {
			t, err := a.store.Token(ctx)
			if err != nil {
				return err
			}
			token = t
		}
		if token == "" {
			return validation("no token to verify")
		}
		v, err := a.api.VerifyToken(ctx, token)
		valid = v
		return err
	})
	return valid, err
}

// GetSecurityQuestion fetches the recovery question of an account.
func (a *AuthService) GetSecurityQuestion(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	var question string
	err := a.run(ctx, false, func(ctx context.Context) error {
		if email == "" {
			return validation("email is required")
		}
		q, err := a.api.GetSecurityQuestion(ctx, email)
		question = q
		return err
	})
	return question, err
}

// VerifySecurityQuestion checks the recovery answer and returns the reset
// token minted by the backend. It is the only source of reset tokens.
func (a *AuthService) VerifySecurityQuestion(ctx context.Context, email, answer string) (string, error) {
	email = strings.TrimSpace(email)
	var resetToken string
	err := a.run(ctx, false, func(ctx context.Context) error {
		if email == "" || answer == "" {
			return validation("email and answer are required")
		}
		t, err := a.api.VerifySecurityAnswer(ctx, email, answer)
		resetToken = t
		return err
	})
	return resetToken, err
}

// ResetPasswordWithSecurity finalizes the reset. resetToken must be the value
// returned by VerifySecurityQuestion; the backend rejects anything else.
func (a *AuthService) ResetPasswordWithSecurity(ctx context.Context, resetToken, newPassword, answer string) error {
	return a.run(ctx, false, func(ctx context.Context) error {
		if resetToken == "" {
			return validation("reset token is required")
		}
		if len(newPassword) < MinPasswordLength {
			return validation(fmt.Sprintf("password must be at least %d characters long", MinPasswordLength))
		}
		return a.api.ResetPasswordWithSecurity(ctx, resetToken, newPassword, answer)
	})
}

// SetSecurityQuestion sets or replaces the recovery Q&A. The backend
// re-issues the token, which replaces the stored one.
func (a *AuthService) SetSecurityQuestion(ctx context.Context, question, answer, currentPassword string) error {
	question = strings.TrimSpace(question)
	return a.run(ctx, true, func(ctx context.Context) error {
		if question == "" || answer == "" || currentPassword == "" {
			return validation("question, answer and current password are required")
		}
		token, err := a.api.SetSecurityQuestion(ctx, question, answer, currentPassword)
		if err != nil {
			return err
		}
		u := a.store.Snapshot().User
		if u == nil {
			return a.store.ReplaceToken(ctx, token)
		}
		u.SecurityQuestion = &models.SecurityQuestion{Question: question}
		if err := a.store.Persist(ctx, token, u); err != nil {
			return err
		}
		a.store.Confirm(u)
		return nil
	})
}

// UpdatePassword changes the password. The re-issued token replaces the
// stored one; the old token is dead server-side.
func (a *AuthService) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	return a.run(ctx, true, func(ctx context.Context) error {
		if currentPassword == "" {
			return validation("current password is required")
		}
		if len(newPassword) < MinPasswordLength {
			return validation(fmt.Sprintf("password must be at least %d characters long", MinPasswordLength))
		}
		token, err := a.api.UpdatePassword(ctx, currentPassword, newPassword)
		if err != nil {
			return err
		}
		return a.store.ReplaceToken(ctx, token)
	})
}
