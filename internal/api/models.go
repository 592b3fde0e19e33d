package api

import (
	"github.com/phrazzld/profile-api/internal/domain"
)

// UserRequest is the payload for creating a user and for full updates.
type UserRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	BirthDate   string `json:"birthDate"   validate:"required,datetime=2006-01-02,past"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateUserFieldsRequest is the payload for partial updates.
// Absent or null fields are left unchanged.
type UpdateUserFieldsRequest struct {
	Email       *string `json:"email"       validate:"omitempty,email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	BirthDate   *string `json:"birthDate"   validate:"omitempty,datetime=2006-01-02,past"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
}

// DateRangeRequest is the payload for the birth date search.
type DateRangeRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate"   validate:"required,datetime=2006-01-02"`
}

// UserResponse is the public view of a user.
// Address and phone number are intentionally not exposed.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// toUserResponse converts a domain.User to a UserResponse
func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: domain.FormatDate(user.BirthDate),
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses
}
