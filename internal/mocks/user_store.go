package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore is a mock of store.UserStore for use with testify/mock.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.UserStore.Save
func (m *UserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if saved, ok := args.Get(0).(*domain.User); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExistsByEmail is a mock implementation of store.UserStore.ExistsByEmail
func (m *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// ExistsByID is a mock implementation of store.UserStore.ExistsByID
func (m *UserStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// FindByBirthDateRange is a mock implementation of store.UserStore.FindByBirthDateRange
func (m *UserStore) FindByBirthDateRange(ctx context.Context, start, end time.Time) ([]*domain.User, error) {
	args := m.Called(ctx, start, end)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself so expectations apply inside transactions.
func (m *UserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}
