package mail

import (
	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(func(cfg *config.Config, logger *logging.Service) (*Service, error) {
		return NewService(&cfg.Mail, logger)
	}),
	fx.Provide(func(s *Service) Sender { return s }),
)
