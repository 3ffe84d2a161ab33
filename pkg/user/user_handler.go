package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/spendwise/spendwise/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string    `json:"uid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{userService: userService}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new user in the system
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Username already taken"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", rest.CodeInvalidBody)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), User{Username: dto.Username, DisplayName: dto.DisplayName})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserDataInvalid):
			rest.WriteError(w, http.StatusBadRequest, "Username and display name are required", "INVALID_USER")
		case errors.Is(err, ErrUsernameTaken):
			rest.WriteError(w, http.StatusConflict, "Username already taken", "USERNAME_TAKEN")
		default:
			rest.WriteInternalError(w, err)
		}
		return
	}
	log.Tracef("Created user: %+v", created)

	rest.WriteJSON(w, http.StatusCreated, userToDTO(created))
}

// CurrentUser godoc
// @Summary Get the current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 401 {object} rest.ErrorResponse "Missing or unknown user"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	current, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		WriteAuthError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(current))
}

// Authenticated writes a 401 and returns false when the request carries no user.
func Authenticated(w http.ResponseWriter, r *http.Request) bool {
	if _, err := CurrentId(r.Context()); err != nil {
		WriteAuthError(w, err)
		return false
	}
	return true
}

// WriteAuthError answers 401 when err means the caller is not authenticated and 500 otherwise.
func WriteAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", rest.CodeMissingToken)
	case errors.Is(err, ErrUserNotFound):
		rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", rest.CodeInvalidToken)
	default:
		rest.WriteInternalError(w, err)
	}
}

func userToDTO(u User) UserDTO {
	return UserDTO{Uid: u.Uid, Username: u.Username, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}
