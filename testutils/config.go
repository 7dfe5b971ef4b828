package testutils

import (
	"time"

	"github.com/tech-arch1tect/taskbox/config"
	"golang.org/x/crypto/bcrypt"
)

// GetTestConfig returns a config with fast, deterministic defaults for unit
// tests. Bcrypt runs at minimum cost so account fixtures stay cheap.
func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "taskbox-test",
			URL:  "http://localhost:8080",
			Env:  "test",
		},
		Auth: config.AuthConfig{
			BcryptCost:              bcrypt.MinCost,
			VerificationTokenLength: 32,
			VerificationExpiry:      24 * time.Hour,
		},
		Tasks: config.TasksConfig{
			MaxPerUser:      100,
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Session: config.SessionConfig{
			Store:    "memory",
			Name:     "taskbox_session",
			MaxAge:   time.Hour,
			Path:     "/",
			HttpOnly: true,
			SameSite: "lax",
		},
	}
}
