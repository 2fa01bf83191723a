// Package session owns the client's notion of "am I logged in and as whom".
//
// Store keeps the in-memory State and its persisted backing (the token/user
// pair). Other packages read it through Snapshot; mutation happens only via
// the named operations below, which the auth service drives.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/reeldesk/internal/client/models"
	"github.com/dmitrijs2005/reeldesk/internal/logging"
)

// CredentialStore persists the token/user pair. storage.CredentialStore
// is the production implementation.
type CredentialStore interface {
	Load(ctx context.Context) (token string, user []byte, err error)
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string, user []byte) error
	ReplaceToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// State is a read-only copy of the session.
//
// IsAuthenticated implies User != nil. Verified means the backend confirmed
// the session during this process lifetime.
type State struct {
	User            *models.User
	IsAuthenticated bool
	Verified        bool
	AuthLoading     bool
	AuthError       string
}

type Store struct {
	creds CredentialStore
	log   logging.Logger

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	verified      bool
	inFlight      int
	authErr       string
}

func NewStore(creds CredentialStore, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{creds: creds, log: log}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		IsAuthenticated: s.authenticated,
		Verified:        s.verified,
		AuthLoading:     s.inFlight > 0,
		AuthError:       s.authErr,
	}
	st.User = s.user.Clone()
	return st
}

// CheckAuth restores the session from persisted storage without touching
// the network. A missing or malformed pair is purged and reported as false.
func (s *Store) CheckAuth(ctx context.Context) bool {
	token, raw, err := s.creds.Load(ctx)
	if err != nil && ctx.Err() != nil {
		return false
	}
	if err != nil {
		s.log.Warn(ctx, "cannot read persisted credential", "error", err)
		s.purge(ctx)
		return false
	}

	if token == "" || len(raw) == 0 {
		s.purge(ctx)
		return false
	}

	user, err := models.ParseUser(raw)
	if err != nil {
		s.log.Warn(ctx, "discarding malformed persisted user", "error", err)
		s.purge(ctx)
		return false
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
	return true
}

// Persist stores a fresh credential pair and marks the session authenticated.
// The store keeps its own copy of user.
func (s *Store) Persist(ctx context.Context, token string, user *models.User) error {
	if user == nil {
		return fmt.Errorf("persist credential: nil user")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	if err := s.creds.Save(ctx, token, raw); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.user = user.Clone()
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// Confirm records that the backend vouched for user in this process lifetime.
func (s *Store) Confirm(user *models.User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.Clone()
	s.authenticated = true
	s.verified = true
}

// ReplaceToken swaps the persisted token after the backend re-issued it.
func (s *Store) ReplaceToken(ctx context.Context, token string) error {
	if err := s.creds.ReplaceToken(ctx, token); err != nil {
		return fmt.Errorf("replace token: %w", err)
	}
	return nil
}

// Token returns the persisted bearer token, or "".
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.creds.Token(ctx)
}

// Clear removes the persisted pair and resets the state. The in-memory
// state is reset even when storage fails; the storage error is returned.
func (s *Store) Clear(ctx context.Context) error {
	err := s.creds.Clear(ctx)
	s.reset()
	if err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *Store) purge(ctx context.Context) {
	if err := s.Clear(ctx); err != nil {
		s.log.Warn(ctx, "cannot purge persisted credential", "error", err)
	}
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
	s.verified = false
}

// Begin marks an auth operation as in flight and clears the last error.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight++
	s.authErr = ""
}

// Finish ends an operation started with Begin, recording err if non-nil.
func (s *Store) Finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		s.inFlight--
	}
	if err != nil {
		s.authErr = err.Error()
	}
}
