// Package mocks provides centralized mock implementations for testing.
//
// Mocks are built on testify/mock so tests declare expectations with On and
// verify them with AssertExpectations:
//
//	userStore := new(mocks.UserStore)
//	userStore.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
//	// ...exercise the code under test...
//	userStore.AssertExpectations(t)
package mocks
