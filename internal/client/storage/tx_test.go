package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func countMetadata(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		return NewSQLiteRepository(tx).Set(ctx, "a", []byte("1"))
	})
	require.NoError(t, err)
	require.Equal(t, 1, countMetadata(t, db))
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := openTestDB(t)

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, NewSQLiteRepository(tx).Set(ctx, "a", []byte("1")))
		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, 0, countMetadata(t, db), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openTestDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countMetadata(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, NewSQLiteRepository(tx).Set(ctx, "a", []byte("1")))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}
