package service

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

// UserService provides the user profile operations and enforces their rules.
type UserService interface {
	// CreateUser registers a new user after checking email uniqueness and the minimum age.
	CreateUser(ctx context.Context, params UserParams) (*domain.User, error)

	// UpdateUser replaces every mutable field of an existing user.
	// Age and email uniqueness are not re-checked.
	UpdateUser(ctx context.Context, id uuid.UUID, params UserParams) (*domain.User, error)

	// UpdateUserFields overwrites only the fields that are set in params.
	UpdateUserFields(ctx context.Context, id uuid.UUID, params UserFieldsParams) (*domain.User, error)

	// RemoveUser deletes an existing user permanently.
	RemoveUser(ctx context.Context, id uuid.UUID) error

	// FindUsersByBirthDateRange returns users born between start and end inclusive.
	FindUsersByBirthDateRange(ctx context.Context, start, end time.Time) ([]*domain.User, error)
}

// UserParams holds the six mutable fields of a user.
type UserParams struct {
	Email       string
	FirstName   string
	LastName    string
	BirthDate   time.Time
	Address     string
	PhoneNumber string
}

// UserFieldsParams holds optional replacements for a partial update.
// A nil field leaves the stored value unchanged.
type UserFieldsParams struct {
	Email       *string
	FirstName   *string
	LastName    *string
	BirthDate   *time.Time
	Address     *string
	PhoneNumber *string
}

// Option configures a UserServiceImpl.
type Option func(*UserServiceImpl)

// WithClock overrides the time source used for age computation.
func WithClock(now func() time.Time) Option {
	return func(s *UserServiceImpl) {
		s.now = now
	}
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	minAge    int
	logger    *slog.Logger
	now       func() time.Time
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
// When db is nil, operations run directly against userStore without a transaction.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	minAge int,
	log *slog.Logger,
	opts ...Option,
) *UserServiceImpl {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &UserServiceImpl{
		userStore: userStore,
		db:        db,
		minAge:    minAge,
		logger:    log.With(slog.String("component", "user_service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// inTx runs fn with a transaction-bound store when a database is configured.
func (s *UserServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context, users store.UserStore) error) error {
	if s.db == nil {
		return fn(ctx, s.userStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.userStore.WithTx(tx))
	})
}

// CreateUser registers a new user.
// Returns ErrEmailAlreadyExists or ErrUserLowAge without writing anything.
func (s *UserServiceImpl) CreateUser(ctx context.Context, params UserParams) (*domain.User, error) {
	log := s.log(ctx)
	var created *domain.User

	err := s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		exists, err := users.ExistsByEmail(ctx, params.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return emailAlreadyExists(params.Email)
		}

		if domain.AgeOn(params.BirthDate, s.now()) < s.minAge {
			return userLowAge(s.minAge)
		}

		user := domain.NewUser(
			params.Email,
			params.FirstName,
			params.LastName,
			params.BirthDate,
			params.Address,
			params.PhoneNumber,
		)
		created, err = users.Save(ctx, user)
		if err != nil {
			if store.IsDuplicateError(err) {
				return emailAlreadyExists(params.Email)
			}
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(log, "create user", err)
		return nil, err
	}

	log.Info("user created", slog.String("user_id", created.ID.String()))
	return created, nil
}

// UpdateUser replaces all mutable fields of the user with the given ID.
// Returns ErrUserNotFound if the user does not exist.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, params UserParams) (*domain.User, error) {
	return s.update(ctx, id, "update user", func(user *domain.User) {
		user.Email = params.Email
		user.FirstName = params.FirstName
		user.LastName = params.LastName
		user.BirthDate = params.BirthDate
		user.Address = params.Address
		user.PhoneNumber = params.PhoneNumber
	})
}

// UpdateUserFields overwrites the non-nil fields of params on the user with the given ID.
// Returns ErrUserNotFound if the user does not exist.
func (s *UserServiceImpl) UpdateUserFields(
	ctx context.Context,
	id uuid.UUID,
	params UserFieldsParams,
) (*domain.User, error) {
	return s.update(ctx, id, "update user fields", func(user *domain.User) {
		if params.Email != nil {
			user.Email = *params.Email
		}
		if params.FirstName != nil {
			user.FirstName = *params.FirstName
		}
		if params.LastName != nil {
			user.LastName = *params.LastName
		}
		if params.BirthDate != nil {
			user.BirthDate = *params.BirthDate
		}
		if params.Address != nil {
			user.Address = *params.Address
		}
		if params.PhoneNumber != nil {
			user.PhoneNumber = *params.PhoneNumber
		}
	})
}

// update fetches the user, applies mutate and saves the result.
func (s *UserServiceImpl) update(
	ctx context.Context,
	id uuid.UUID,
	op string,
	mutate func(*domain.User),
) (*domain.User, error) {
	log := s.log(ctx)
	var updated *domain.User

	err := s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return userNotFound(id)
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		mutate(user)

		updated, err = users.Save(ctx, user)
		if err != nil {
			if store.IsNotFoundError(err) {
				return userNotFound(id)
			}
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(log, op, err, slog.String("user_id", id.String()))
		return nil, err
	}

	log.Info("user updated", slog.String("user_id", id.String()), slog.String("operation", op))
	return updated, nil
}

// RemoveUser deletes the user with the given ID.
// Returns ErrUserNotFound if the user does not exist.
func (s *UserServiceImpl) RemoveUser(ctx context.Context, id uuid.UUID) error {
	log := s.log(ctx)

	err := s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		exists, err := users.ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !exists {
			return userNotFound(id)
		}

		if err := users.Delete(ctx, id); err != nil {
			if store.IsNotFoundError(err) {
				return userNotFound(id)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(log, "remove user", err, slog.String("user_id", id.String()))
		return err
	}

	log.Info("user removed", slog.String("user_id", id.String()))
	return nil
}

// FindUsersByBirthDateRange returns the users born between start and end inclusive.
// Returns ErrInvalidDateRange when start is after end. No match yields an empty slice.
func (s *UserServiceImpl) FindUsersByBirthDateRange(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.User, error) {
	log := s.log(ctx)

	if start.After(end) {
		err := invalidDateRange()
		s.logFailure(log, "find users", err)
		return nil, err
	}

	users, err := s.userStore.FindByBirthDateRange(ctx, start, end)
	if err != nil {
		err = fmt.Errorf("failed to find users: %w", err)
		s.logFailure(log, "find users", err)
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}

	log.Debug("users found by birth date range",
		slog.String("start", domain.FormatDate(start)),
		slog.String("end", domain.FormatDate(end)),
		slog.Int("count", len(users)))
	return users, nil
}

// logFailure logs rule violations at debug level and anything else as an error.
func (s *UserServiceImpl) logFailure(log *slog.Logger, op string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("operation", op), slog.String("error", err.Error()))

	var userErr *UserError
	if errors.As(err, &userErr) {
		log.Debug("user rule violation", attrs...)
		return
	}
	log.Error("user operation failed", attrs...)
}
