package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tech-arch1tect/taskbox/apperr"
	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"github.com/tech-arch1tect/taskbox/session"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logging.Service
}

func New(cfg *config.Config, logger *logging.Service, sessionManager *session.Manager, tracking *session.TrackingService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger, cfg.App.IsProduction())

	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(logger))
	e.Use(session.Middleware(sessionManager, tracking))

	return &Server{
		echo:   e,
		config: cfg,
		logger: logger,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("starting server", zap.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
