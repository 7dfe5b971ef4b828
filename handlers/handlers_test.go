package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tech-arch1tect/taskbox/apperr"
	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/auth"
	"github.com/tech-arch1tect/taskbox/services/tasks"
	"github.com/tech-arch1tect/taskbox/session"
	"github.com/tech-arch1tect/taskbox/testutils"
)

type mockMail struct {
	sent int
	err  error
	data map[string]any
}

func (m *mockMail) SendTemplate(templateName string, to []string, subject string, data map[string]any) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	m.data = data
	return nil
}

type testApp struct {
	echo  *echo.Echo
	db    *gorm.DB
	cfg   *config.Config
	users *auth.Service
	tasks *tasks.Service
	mail  *mockMail
}

// setupTestApp stands up the API surface the way the server package wires it,
// minus the rate limiter and real SMTP.
func setupTestApp(t *testing.T) *testApp {
	cfg := testutils.GetTestConfig()
	db := testutils.SetupTestDB(t,
		&auth.User{}, &auth.Account{}, &auth.VerificationToken{},
		&tasks.Task{}, &session.UserSession{})

	manager, err := session.ProvideSessionManager(cfg, db)
	require.NoError(t, err)
	tracking := session.NewTrackingService(db, manager)

	mail := &mockMail{}
	users := auth.NewService(cfg, db, nil)
	users.SetMailService(mail)
	users.SetSessionRevoker(tracking)
	tasksSvc := tasks.NewService(cfg, db, nil)

	authHandler := NewAuthHandler(cfg, users, nil)
	tasksHandler := NewTasksHandler(cfg, tasksSvc, nil)
	usersHandler := NewUsersHandler(users, nil)

	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(nil, false)
	e.Use(session.Middleware(manager, tracking))

	authGroup := e.Group("/api/auth")
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

	return &testApp{echo: e, db: db, cfg: cfg, users: users, tasks: tasksSvc, mail: mail}
}

func (a *testApp) request(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

// createUser registers directly through the service and optionally marks the
// email verified, skipping the HTTP registration flow.
func (a *testApp) createUser(t *testing.T, email, username string, verified bool) *auth.User {
	t.Helper()
	user, err := a.users.Register(auth.RegisterInput{
		Email:    email,
		Password: "password123",
		Username: username,
	})
	require.NoError(t, err)

	if verified {
		now := time.Now()
		require.NoError(t, a.db.Model(&auth.User{}).Where("id = ?", user.ID).Update("email_verified", now).Error)
	}
	return user
}

func (a *testApp) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/auth/login",
		`{"email":"`+email+`","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
