package app

import (
	"go.uber.org/fx"

	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/database"
	"github.com/tech-arch1tect/taskbox/handlers"
	"github.com/tech-arch1tect/taskbox/server"
	"github.com/tech-arch1tect/taskbox/services/auth"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"github.com/tech-arch1tect/taskbox/services/mail"
	"github.com/tech-arch1tect/taskbox/services/tasks"
	"github.com/tech-arch1tect/taskbox/session"
)

// Module combines every application module. Database models are registered
// here so the schema lives in one place.
func Module() fx.Option {
	return fx.Options(
		config.Module,
		logging.Module,

		fx.Supply(database.WithModels(
			&auth.User{},
			&auth.Account{},
			&auth.VerificationToken{},
			&tasks.Task{},
			&session.UserSession{},
		)),
		database.Module,

		mail.Module,
		auth.Module,
		tasks.Module,
		session.Module,
		handlers.Module,
		server.Module,
	)
}
