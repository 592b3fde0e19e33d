package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/profile-api/internal/domain"
)

// UserStore defines the interface for user profile persistence.
// Each method is atomic in isolation; callers needing several calls to be
// observed together run them through WithTx inside RunInTransaction.
type UserStore interface {
	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Save inserts the user when it has no ID yet, assigning a new one, or
	// replaces every stored field of the existing record otherwise.
	// Returns the saved record. Returns ErrUserNotFound when replacing a
	// user that does not exist.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// Delete removes a user permanently.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail reports whether any user has the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// FindByBirthDateRange returns every user whose birth date lies in
	// [start, end], both ends inclusive, in insertion order.
	// An empty result is not an error.
	FindByBirthDateRange(ctx context.Context, start, end time.Time) ([]*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// Stores without transactional support return themselves.
	WithTx(tx *sql.Tx) UserStore
}
