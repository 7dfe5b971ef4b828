package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tech-arch1tect/taskbox/apperr"
	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/auth"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"github.com/tech-arch1tect/taskbox/session"
	"github.com/tech-arch1tect/taskbox/validation"
)

type AuthHandler struct {
	config *config.Config
	users  *auth.Service
	logger *logging.Service
}

func NewAuthHandler(cfg *config.Config, users *auth.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		users:  users,
		logger: logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidJSON()
	}

	if err := validation.Email(req.Email); err != nil {
		return err
	}
	if err := validation.Password(req.Password); err != nil {
		return err
	}
	if err := validation.Username(req.Username); err != nil {
		return err
	}

	user, err := h.users.Register(auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			return apperr.Conflict("Email already registered")
		case errors.Is(err, auth.ErrUsernameTaken):
			return apperr.Conflict("Username already taken")
		default:
			return err
		}
	}

	token, err := h.users.IssueVerificationToken(user.ID)
	if err != nil {
		return err
	}

	// Registration succeeds even when the verification email cannot be sent;
	// the user can request a resend.
	if err := h.users.SendVerificationEmail(user.Email, token.Token); err != nil {
		h.logger.Error("failed to send verification email",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Registration successful. Please check your email for verification instructions.",
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidJSON()
	}

	if err := validation.Email(req.Email); err != nil {
		return err
	}
	if err := validation.Password(req.Password); err != nil {
		return err
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return apperr.Unauthorized("Invalid email or password")
		}
		return err
	}

	session.Login(c, user.ID)

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	session.Logout(c)
	return c.NoContent(http.StatusNoContent)
}

// Verify consumes the emailed token and redirects to the outcome page. The
// browser lands here from the email link, so failures redirect rather than
// returning JSON.
func (h *AuthHandler) Verify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return apperr.New(apperr.CodeMissingToken, "Token is required", http.StatusBadRequest)
	}

	_, err := h.users.ConsumeVerificationToken(token)
	if err != nil {
		var message string
		switch {
		case errors.Is(err, auth.ErrTokenInvalid):
			message = "Invalid token"
		case errors.Is(err, auth.ErrTokenExpired):
			message = "Token expired"
		case errors.Is(err, auth.ErrAlreadyVerified):
			message = "Email already verified"
		case errors.Is(err, auth.ErrUserNotFound):
			message = "User not found"
		default:
			return err
		}
		return c.Redirect(http.StatusFound, "/auth/verify-error?error="+url.QueryEscape(message))
	}

	return c.Redirect(http.StatusFound, "/auth/verify-success")
}

type resendRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidJSON()
	}

	if err := validation.Email(req.Email); err != nil {
		return err
	}

	if err := h.users.RequestVerification(req.Email); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return apperr.NotFound("User not found")
		case errors.Is(err, auth.ErrAlreadyVerified):
			return apperr.New(apperr.CodeAlreadyVerified, "Email already verified", http.StatusBadRequest)
		case errors.Is(err, auth.ErrEmailSendFailed):
			return apperr.New(apperr.CodeEmailSendFailed, "Failed to send verification email", http.StatusInternalServerError)
		default:
			return err
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Verification email sent successfully",
	})
}
