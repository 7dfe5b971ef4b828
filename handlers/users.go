package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tech-arch1tect/taskbox/apperr"
	"github.com/tech-arch1tect/taskbox/services/auth"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"github.com/tech-arch1tect/taskbox/session"
)

type UsersHandler struct {
	users  *auth.Service
	logger *logging.Service
}

func NewUsersHandler(users *auth.Service, logger *logging.Service) *UsersHandler {
	return &UsersHandler{
		users:  users,
		logger: logger,
	}
}

func (h *UsersHandler) Me(c echo.Context) error {
	user, err := h.users.GetUserByID(session.GetUserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return apperr.Unauthorized("Authentication required")
		}
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteMe hard-deletes the account and everything it owns, then destroys
// the caller's session cookie.
func (h *UsersHandler) DeleteMe(c echo.Context) error {
	userID := session.GetUserID(c)

	if err := h.users.DeleteAccount(userID); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	session.Logout(c)

	return c.NoContent(http.StatusNoContent)
}
