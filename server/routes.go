package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/handlers"
	"github.com/tech-arch1tect/taskbox/middleware/ratelimit"
	"github.com/tech-arch1tect/taskbox/openapi"
	"github.com/tech-arch1tect/taskbox/services/auth"
	"github.com/tech-arch1tect/taskbox/session"
)

// RegisterRoutes wires the HTTP surface. Auth endpoints sit behind a per-IP
// rate limit; task routes require a verified email, account deletion only an
// authenticated session.
func RegisterRoutes(
	srv *Server,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	tasksHandler *handlers.TasksHandler,
	usersHandler *handlers.UsersHandler,
	users *auth.Service,
) {
	e := srv.Echo()

	doc := openapi.New(cfg.App.Name, "1.0.0", cfg.App.URL)
	e.GET("/openapi.json", doc.ServeJSON)
	e.GET("/openapi.yaml", doc.ServeYAML)

	authGroup := e.Group("/api/auth")
	if cfg.RateLimit.Enabled {
		authGroup.Use(ratelimit.Middleware(&ratelimit.Config{
			Rate:   cfg.RateLimit.Rate,
			Period: cfg.RateLimit.Period,
		}))
	}
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/verify", authHandler.Verify)
	authGroup.POST("/verify/resend", authHandler.ResendVerification)

	tasksGroup := e.Group("/api/tasks", session.RequireVerified(users))
	tasksGroup.GET("", tasksHandler.List)
	tasksGroup.POST("", tasksHandler.Create)
	tasksGroup.GET("/:id", tasksHandler.Get)
	tasksGroup.PUT("/:id", tasksHandler.Update)
	tasksGroup.DELETE("/:id", tasksHandler.Delete)
	tasksGroup.PATCH("/:id/restore", tasksHandler.Restore)
	tasksGroup.PATCH("/:id/toggle", tasksHandler.Toggle)

	usersGroup := e.Group("/api/users", session.RequireAuth())
	usersGroup.GET("/me", usersHandler.Me)
	usersGroup.DELETE("/me", usersHandler.DeleteMe)

	// Verification outcome pages; the SPA serves richer versions in
	// production deployments.
	e.GET("/auth/verify-success", func(c echo.Context) error {
		return c.String(http.StatusOK, "Email verified. You can close this page and log in.")
	})
	e.GET("/auth/verify-error", func(c echo.Context) error {
		msg := c.QueryParam("error")
		if msg == "" {
			msg = "Verification failed"
		}
		return c.String(http.StatusOK, msg)
	})
}
