package session

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tech-arch1tect/taskbox/apperr"
	"github.com/tech-arch1tect/taskbox/services/auth"
)

const (
	UserIDKey        = "_user_id"
	AuthenticatedKey = "_authenticated"
)

func Login(c echo.Context, userID string) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	ctx := c.Request().Context()

	// Fresh token on privilege change.
	_ = manager.RenewToken(ctx)
	manager.Put(ctx, UserIDKey, userID)
	manager.Put(ctx, AuthenticatedKey, true)

	if tracking := GetTrackingService(c); tracking != nil {
		if token := manager.Token(ctx); token != "" {
			expiresAt := time.Now().Add(manager.config.MaxAge)
			_ = tracking.Track(userID, token, c.RealIP(), c.Request().UserAgent(), expiresAt)
		}
	}
}

func Logout(c echo.Context) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	ctx := c.Request().Context()

	if tracking := GetTrackingService(c); tracking != nil {
		if token := manager.Token(ctx); token != "" {
			_ = tracking.RemoveByToken(token)
		}
	}

	manager.Remove(ctx, UserIDKey)
	manager.Remove(ctx, AuthenticatedKey)
	_ = manager.Destroy(ctx)
}

func GetUserID(c echo.Context) string {
	manager := GetManager(c)
	if manager == nil {
		return ""
	}
	return manager.GetString(c.Request().Context(), UserIDKey)
}

func IsAuthenticated(c echo.Context) bool {
	manager := GetManager(c)
	if manager == nil {
		return false
	}
	return manager.GetBool(c.Request().Context(), AuthenticatedKey)
}

func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAuthenticated(c) || GetUserID(c) == "" {
				return apperr.Unauthorized("Authentication required")
			}
			return next(c)
		}
	}
}

// RequireVerified rejects authenticated-but-unverified users. The verified
// flag is read from the user row, not the session, so verifying mid-session
// takes effect on the next request.
func RequireVerified(users *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if !IsAuthenticated(c) || userID == "" {
				return apperr.Unauthorized("Authentication required")
			}

			user, err := users.GetUserByID(userID)
			if err != nil {
				return apperr.Unauthorized("Authentication required")
			}
			if !user.IsVerified() {
				return apperr.Forbidden("Email not verified")
			}

			return next(c)
		}
	}
}
