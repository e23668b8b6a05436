package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/assocportal/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestOpen_EmptyDSNIsMemory(t *testing.T) {
	m, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepositoryManager{}, m)
	assert.NoError(t, m.RunMigrations(context.Background()))
	assert.NoError(t, m.Close())
}

func TestPostgres_UsersIsPostgresRepository(t *testing.T) {
	db, _ := newDB(t)
	m := NewPostgresRepositoryManager(db)

	var _ RepositoryManager = m
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	stubGoose(t, func(ctx context.Context, _ *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	})

	require.NoError(t, NewPostgresRepositoryManager(db).RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager(db).RunMigrations(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestPostgres_WithinTx_CommitsAndRollsBack(t *testing.T) {
	db, mock := newDB(t)
	m := NewPostgresRepositoryManager(db)
	update := regexp.QuoteMeta(`UPDATE users SET password_hash = $1 WHERE id = $2`)

	mock.ExpectBegin()
	mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.WithinTx(context.Background(), func(ctx context.Context, repo users.Repository) error {
		return repo.UpdatePassword(ctx, "u-1", []byte("h"))
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = m.WithinTx(context.Background(), func(context.Context, users.Repository) error { return boom })
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemory_WithinTx_UsesSharedRepository(t *testing.T) {
	m := NewMemoryRepositoryManager()

	var seen users.Repository
	err := m.WithinTx(context.Background(), func(_ context.Context, repo users.Repository) error {
		seen = repo
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, m.Users(), seen)
}
