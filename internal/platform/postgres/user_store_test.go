package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewPostgresUserStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "birth_date",
		"address", "phone_number", "created_at", "updated_at",
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, mock := newTestStore(t)
		id := uuid.New()
		birth := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(userRows().AddRow(
				id.String(), "a@x.com", "Ann", "Lee", birth, "", "", fixedNow, fixedNow))

		user, err := s.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, birth, user.BirthDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newTestStore(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		user, err := s.GetByID(ctx, id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, store.IsNotFoundError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_SaveInsertsNewUser(t *testing.T) {
	s, mock := newTestStore(t)
	birth := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	user := domain.NewUser("a@x.com", "Ann", "Lee", birth, "1 Main St", "555")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "Ann", "Lee", birth, "1 Main St", "555", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := s.Save(context.Background(), user)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.True(t, user.IsNew(), "input must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_SaveUpdatesExistingUser(t *testing.T) {
	birth := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("updated", func(t *testing.T) {
		s, mock := newTestStore(t)
		user := domain.NewUser("b@x.com", "Bo", "Ng", birth, "", "")
		user.ID = uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs("b@x.com", "Bo", "Ng", birth, "", "", fixedNow, user.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		saved, err := s.Save(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, user.ID, saved.ID)
		assert.Equal(t, fixedNow, saved.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		s, mock := newTestStore(t)
		user := domain.NewUser("b@x.com", "Bo", "Ng", birth, "", "")
		user.ID = uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := s.Save(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_SaveMapsConstraintErrors(t *testing.T) {
	s, mock := newTestStore(t)
	user := domain.NewUser("a@x.com", "Ann", "Lee", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), "", "")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "email"})

	_, err := s.Save(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		s, mock := newTestStore(t)
		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newTestStore(t)
		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(ctx, id), store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_Exists(t *testing.T) {
	ctx := context.Background()
	s, mock := newTestStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("b@x.com").
		WillReturnError(errors.New("connection reset"))

	exists, err := s.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.ExistsByEmail(ctx, "b@x.com")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_FindByBirthDateRange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("matches", func(t *testing.T) {
		s, mock := newTestStore(t)
		id1, id2 := uuid.New(), uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("WHERE birth_date BETWEEN $1 AND $2")).
			WithArgs(start, end).
			WillReturnRows(userRows().
				AddRow(id1.String(), "a@x.com", "Ann", "Lee", time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), "", "", fixedNow, fixedNow).
				AddRow(id2.String(), "b@x.com", "Bo", "Ng", end, "", "", fixedNow, fixedNow))

		users, err := s.FindByBirthDateRange(ctx, start, end)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, id1, users[0].ID)
		assert.Equal(t, id2, users[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		s, mock := newTestStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE birth_date BETWEEN $1 AND $2")).
			WithArgs(start, end).
			WillReturnRows(userRows())

		users, err := s.FindByBirthDateRange(ctx, start, end)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	s, mock := newTestStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	db, ok := s.db.(*sql.DB)
	require.True(t, ok)

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, id)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
