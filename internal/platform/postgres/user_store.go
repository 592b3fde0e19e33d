package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/platform/logger"
	"github.com/phrazzld/profile-api/internal/store"
)

const userColumns = `id, email, first_name, last_name, birth_date, address, phone_number, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx returns a new UserStore instance that uses the provided transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
		now:    s.now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.BirthDate,
		&u.Address,
		&u.PhoneNumber,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.BirthDate = domain.TruncateToDate(u.BirthDate)
	return &u, nil
}

// GetByID retrieves a user by their unique ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by ID", slog.String("user_id", id.String()))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user: %w", MapError(err))
	}

	return user, nil
}

// Save inserts a new user or replaces every mutable field of an existing one.
// New users receive a fresh ID and creation timestamp.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: user is nil", store.ErrInvalidEntity)
	}
	if user.IsNew() {
		return s.insert(ctx, user)
	}
	return s.update(ctx, user)
}

func (s *PostgresUserStore) insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	saved := *user
	saved.ID = uuid.New()
	saved.BirthDate = domain.TruncateToDate(user.BirthDate)
	saved.CreatedAt = s.now()
	saved.UpdatedAt = saved.CreatedAt

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		saved.ID,
		saved.Email,
		saved.FirstName,
		saved.LastName,
		saved.BirthDate,
		saved.Address,
		saved.PhoneNumber,
		saved.CreatedAt,
		saved.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert user: %w", MapError(err))
	}

	log.Debug("user inserted", slog.String("user_id", saved.ID.String()))
	return &saved, nil
}

func (s *PostgresUserStore) update(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	saved := *user
	saved.BirthDate = domain.TruncateToDate(user.BirthDate)
	saved.UpdatedAt = s.now()

	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, birth_date = $4,
			address = $5, phone_number = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		saved.Email,
		saved.FirstName,
		saved.LastName,
		saved.BirthDate,
		saved.Address,
		saved.PhoneNumber,
		saved.UpdatedAt,
		saved.ID,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("user_id", saved.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to check update result",
				slog.String("user_id", saved.ID.String()),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Debug("user updated", slog.String("user_id", saved.ID.String()))
	return &saved, nil
}

// Delete removes a user permanently.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Debug("user deleted", slog.String("user_id", id.String()))
	return nil
}

// ExistsByEmail reports whether any user has the given email.
func (s *PostgresUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email existence",
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to check email existence: %w", MapError(err))
	}
	return exists, nil
}

// ExistsByID reports whether a user with the given ID exists.
func (s *PostgresUserStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check user existence",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to check user existence: %w", MapError(err))
	}
	return exists, nil
}

// FindByBirthDateRange returns users born between start and end inclusive,
// ordered by creation time.
func (s *PostgresUserStore) FindByBirthDateRange(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	start, end = domain.TruncateToDate(start), domain.TruncateToDate(end)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE birth_date BETWEEN $1 AND $2
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		log.Error("failed to query users by birth date",
			slog.String("start", domain.FormatDate(start)),
			slog.String("end", domain.FormatDate(end)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find users: %w", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", MapError(err))
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", MapError(err))
	}

	log.Debug("users found by birth date range",
		slog.String("start", domain.FormatDate(start)),
		slog.String("end", domain.FormatDate(end)),
		slog.Int("count", len(users)))
	return users, nil
}
