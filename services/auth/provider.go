package auth

import (
	"github.com/tech-arch1tect/taskbox/services/mail"
	"go.uber.org/fx"
)

type OptionalMailService struct {
	fx.In
	MailService mail.Sender `optional:"true"`
}

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(func(svc *Service, optMail OptionalMailService) {
		if optMail.MailService != nil {
			svc.SetMailService(optMail.MailService)
		}
	}),
)
