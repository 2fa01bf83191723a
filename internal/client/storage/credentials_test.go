package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_SaveLoadClear(t *testing.T) {
	s := NewCredentialStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc", []byte(`{"id":1,"email":"a@b.com"}`)))

	token, user, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.JSONEq(t, `{"id":1,"email":"a@b.com"}`, string(user))

	require.NoError(t, s.Clear(ctx))
	token, user, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	require.NoError(t, s.Clear(ctx), "clearing an empty store is fine")
}

func TestCredentialStore_SaveRejectsHalfPair(t *testing.T) {
	db := openTestDB(t)
	s := NewCredentialStore(db)
	ctx := context.Background()

	require.Error(t, s.Save(ctx, "", []byte(`{}`)))
	require.Error(t, s.Save(ctx, "abc", nil))
	require.Equal(t, 0, countMetadata(t, db))
}

func TestCredentialStore_ReplaceToken(t *testing.T) {
	db := openTestDB(t)
	s := NewCredentialStore(db)
	ctx := context.Background()

	require.ErrorIs(t, s.ReplaceToken(ctx, "new"), ErrNoCredential)
	require.Equal(t, 0, countMetadata(t, db), "no lone token may be written")

	require.NoError(t, s.Save(ctx, "old", []byte(`{"id":1}`)))
	require.NoError(t, s.ReplaceToken(ctx, "new"))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", token)

	require.Error(t, s.ReplaceToken(ctx, ""))
}

func TestCredentialStore_ClearOnClosedDB(t *testing.T) {
	db := openTestDB(t)
	s := NewCredentialStore(db)
	require.NoError(t, db.Close())

	require.Error(t, s.Clear(context.Background()))
}
