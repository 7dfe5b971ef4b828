package server

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tech-arch1tect/taskbox/services/logging"
)

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(func(lc fx.Lifecycle, srv *Server, logger *logging.Service) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						logger.Error("server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				logger.Info("shutting down server")
				return srv.Shutdown(ctx)
			},
		})
	}),
)
