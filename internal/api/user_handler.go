package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/profile-api/internal/api/shared"
	"github.com/phrazzld/profile-api/internal/domain"
	"github.com/phrazzld/profile-api/internal/platform/logger"
	"github.com/phrazzld/profile-api/internal/service"
)

const msgUserDeleted = "User was deleted successfully"

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService service.UserService
	validator   *RequestValidator
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userService service.UserService,
	validator *RequestValidator,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		panic("logger cannot be nil for UserHandler")
	}
	if validator == nil {
		validator = NewRequestValidator(nil)
	}
	return &UserHandler{
		userService: userService,
		validator:   validator,
		logger:      log.With(slog.String("component", "user_handler")),
	}
}

// RegisterRoutes mounts the user routes on r under /user.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Post("/_search", h.SearchUsers)
		r.Put("/{id}", h.UpdateUser)
		r.Patch("/{id}", h.UpdateUserFields)
		r.Delete("/{id}", h.RemoveUser)
	})
}

// decodeAndValidate reads the JSON body into req and validates it.
// It writes the error response and returns false on failure.
func (h *UserHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("invalid request body", slog.String("error", err.Error()))
		HandleAPIError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err))
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}

func (h *UserHandler) userParams(req UserRequest) (service.UserParams, error) {
	birthDate, err := parseDateField("birthDate", req.BirthDate)
	if err != nil {
		return service.UserParams{}, err
	}
	return service.UserParams{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		BirthDate:   birthDate,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}, nil
}

// CreateUser handles POST /api/user requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params, err := h.userParams(req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toUserResponse(user))
}

// UpdateUser handles PUT /api/user/{id} requests
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params, err := h.userParams(req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toUserResponse(user))
}

// UpdateUserFields handles PATCH /api/user/{id} requests
func (h *UserHandler) UpdateUserFields(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateUserFieldsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	birthDate, err := parseOptionalDate("birthDate", req.BirthDate)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.UpdateUserFields(r.Context(), id, service.UserFieldsParams{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		BirthDate:   birthDate,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toUserResponse(user))
}

// RemoveUser handles DELETE /api/user/{id} requests
func (h *UserHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.userService.RemoveUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: msgUserDeleted})
}

// SearchUsers handles POST /api/user/_search requests
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var req DateRangeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start, err := parseDateField("startDate", req.StartDate)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	end, err := parseDateField("endDate", req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	users, err := h.userService.FindUsersByBirthDateRange(r.Context(), start, end)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toUserResponses(users))
}
