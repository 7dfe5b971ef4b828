package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/tech-arch1tect/taskbox/app"
	"github.com/tech-arch1tect/taskbox/services/logging"
)

func main() {
	fx.New(
		app.Module(),
		fx.WithLogger(func(logger *logging.Service) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Logger()}
		}),
	).Run()
}
