package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/mocks"
	"github.com/phrazzld/profile-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUserCommitsTransaction(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mockUserStore := new(mocks.UserStore)
	mockUserStore.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
	mockUserStore.On("Save", mock.Anything, mock.Anything).Return(&domain.User{ID: uuid.New()}, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := service.NewUserService(mockUserStore, db, 18, testLogger(),
		service.WithClock(func() time.Time { return today }))

	_, err = svc.CreateUser(context.Background(), validParams())
	require.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	mockUserStore.AssertExpectations(t)
}

func TestUserService_RuleViolationRollsBack(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	mockUserStore := new(mocks.UserStore)
	mockUserStore.On("ExistsByID", mock.Anything, id).Return(false, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := service.NewUserService(mockUserStore, db, 18, testLogger())

	err = svc.RemoveUser(context.Background(), id)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
