package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertUserQuery  = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*full_name,\s*password_hash,\s*role\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+created_at$`
	selectByEmail    = `(?s)^SELECT\s+id,\s*email,\s*full_name,\s*password_hash,\s*role,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`
	selectByID       = `(?s)^SELECT\s+id,\s*email,\s*full_name,\s*password_hash,\s*role,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	updatePassword   = `(?s)^UPDATE\s+users\s+SET\s+password_hash\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2$`
	upsertResetCode  = `(?s)^INSERT\s+INTO\s+password_reset_codes.*ON\s+CONFLICT\s+\(user_id\)\s+DO\s+UPDATE`
	deleteResetCode  = `(?s)^DELETE\s+FROM\s+password_reset_codes\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+code\s*=\s*\$2\s+AND\s+expires_at\s*>\s*\$3$`
	dbErrorPattern   = `db error: .*boom`
)

var userColumns = []string{"id", "email", "full_name", "password_hash", "role", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("u-1", "ada@example.com", nil, []byte("hash"), "HABITANT").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	u := &models.User{ID: "u-1", Email: "ada@example.com", PasswordHash: []byte("hash"), Role: models.RoleHabitant}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Email: "ada@example.com", Role: models.RoleHabitant})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Email: "a@b.c", Role: models.RoleHabitant})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(dbErrorPattern), err.Error())
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectByEmail).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "ada@example.com", "Ada", []byte("hash"), "ADMIN", created))

	got, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, models.RoleAdmin, got.Role)
	require.NotNil(t, got.FullName)
	assert.Equal(t, "Ada", *got.FullName)
	assert.Equal(t, []byte("hash"), got.PasswordHash)
}

func TestGetByID_NullFullName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByID).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "ada@example.com", nil, []byte("hash"), "HABITANT", time.Now()))

	got, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Nil(t, got.FullName)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByEmail).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByID).WithArgs("u-1").WillReturnError(errors.New("boom"))

	_, err := repo.GetByID(context.Background(), "u-1")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(dbErrorPattern), err.Error())
}

func TestUpdatePassword(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updatePassword).WithArgs([]byte("new"), "u-1").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdatePassword(context.Background(), "u-1", []byte("new")))
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updatePassword).WithArgs([]byte("new"), "u-9").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePassword(context.Background(), "u-9", []byte("new")), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updatePassword).WillReturnError(errors.New("boom"))

		err := repo.UpdatePassword(context.Background(), "u-1", []byte("new"))
		require.Error(t, err)
		assert.Regexp(t, regexp.MustCompile(dbErrorPattern), err.Error())
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updatePassword).WillReturnResult(sqlmock.NewErrorResult(errors.New("boom")))

		err := repo.UpdatePassword(context.Background(), "u-1", []byte("new"))
		require.Error(t, err)
		assert.Regexp(t, regexp.MustCompile(dbErrorPattern), err.Error())
	})
}

func TestSaveResetCode(t *testing.T) {
	expires := time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)

	t.Run("upserts", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(upsertResetCode).WithArgs("u-1", "abcd", expires).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveResetCode(context.Background(), &models.ResetCode{UserID: "u-1", Code: "abcd", ExpiresAt: expires}))
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(upsertResetCode).WillReturnError(errors.New("boom"))

		err := repo.SaveResetCode(context.Background(), &models.ResetCode{UserID: "u-1", Code: "abcd", ExpiresAt: expires})
		require.Error(t, err)
		assert.Regexp(t, regexp.MustCompile(dbErrorPattern), err.Error())
	})
}

func TestConsumeResetCode(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 10, 0, 0, time.UTC)

	t.Run("consumed", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteResetCode).WithArgs("u-1", "abcd", now).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ConsumeResetCode(context.Background(), "u-1", "abcd", now))
	})

	t.Run("no matching code", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteResetCode).WithArgs("u-1", "nope", now).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ConsumeResetCode(context.Background(), "u-1", "nope", now), common.ErrInvalidResetCode)
	})
}
