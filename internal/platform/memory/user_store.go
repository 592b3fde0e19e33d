// Package memory provides an in-process implementation of store.UserStore,
// used when no database is configured and in tests.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/store"
)

// UserStore is an in-memory implementation of store.UserStore.
// Records are copied on the way in and out so callers never share state with the store.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
	order []uuid.UUID
	now   func() time.Time
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[uuid.UUID]*domain.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithTx returns the store itself; the in-memory store has no transactions.
func (s *UserStore) WithTx(_ *sql.Tx) store.UserStore {
	return s
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

func (s *UserStore) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: user is nil", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *user
	saved.BirthDate = domain.TruncateToDate(user.BirthDate)
	saved.UpdatedAt = s.now()

	if saved.IsNew() {
		saved.ID = uuid.New()
		saved.CreatedAt = saved.UpdatedAt
		s.order = append(s.order, saved.ID)
	} else {
		existing, ok := s.users[saved.ID]
		if !ok {
			return nil, store.ErrUserNotFound
		}
		saved.CreatedAt = existing.CreatedAt
	}

	s.users[saved.ID] = &saved
	result := saved
	return &result, nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *UserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

// FindByBirthDateRange returns matching users in insertion order.
func (s *UserStore) FindByBirthDateRange(_ context.Context, start, end time.Time) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0)
	for _, id := range s.order {
		user := s.users[id]
		if user.BirthDateBetween(start, end) {
			found := *user
			result = append(result, &found)
		}
	}
	return result, nil
}
