package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Persisted keys of the credential pair.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNoCredential is returned by ReplaceToken when no user is persisted,
// so a token alone would break the pair.
var ErrNoCredential = errors.New("no persisted credential")

// CredentialStore keeps the token/user pair in the metadata table.
type CredentialStore struct {
	db *sql.DB
}

func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Load returns whatever is persisted; absent keys come back empty.
func (s *CredentialStore) Load(ctx context.Context) (token string, user []byte, err error) {
	repo := NewSQLiteRepository(s.db)

	t, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return "", nil, err
	}
	u, err := repo.Get(ctx, KeyUser)
	if err != nil {
		return "", nil, err
	}
	return string(t), u, nil
}

// Token returns the persisted bearer token, or "" when there is none.
func (s *CredentialStore) Token(ctx context.Context) (string, error) {
	t, err := NewSQLiteRepository(s.db).Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(t), nil
}

// Save writes token and user in a single transaction.
func (s *CredentialStore) Save(ctx context.Context, token string, user []byte) error {
	if token == "" || len(user) == 0 {
		return fmt.Errorf("save credential: token and user are both required")
	}
	return WithTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, user)
	})
}

// ReplaceToken swaps the token of an existing pair.
func (s *CredentialStore) ReplaceToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("replace token: empty token")
	}
	return WithTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		repo := NewSQLiteRepository(tx)
		user, err := repo.Get(ctx, KeyUser)
		if err != nil {
			return err
		}
		if len(user) == 0 {
			return ErrNoCredential
		}
		return repo.Set(ctx, KeyToken, []byte(token))
	})
}

// Clear removes both keys in one transaction. Clearing an empty store is
// not an error.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return WithTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyUser)
	})
}
