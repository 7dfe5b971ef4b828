package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	sessionManagerKey  = "session_manager"
	sessionTrackingKey = "session_tracking"
)

// Middleware runs every request through scs's LoadAndSave and exposes the
// manager and tracking service to handlers via the echo context.
func Middleware(manager *Manager, tracking *TrackingService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if manager == nil {
				return next(c)
			}

			c.Set(sessionManagerKey, manager)
			if tracking != nil {
				c.Set(sessionTrackingKey, tracking)
			}

			var handlerErr error

			rw := &responseWriterWrapper{
				ResponseWriter: c.Response().Writer,
				echo:           c.Response(),
			}

			handler := manager.SessionManager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// scs swaps in the request context that carries session
				// state; echo must see it too.
				c.SetRequest(r)
				c.Response().Writer = w
				handlerErr = next(c)
			}))

			handler.ServeHTTP(rw, c.Request())
			return handlerErr
		}
	}
}

// responseWriterWrapper keeps echo's response status bookkeeping accurate
// while SCS wraps the writer.
type responseWriterWrapper struct {
	http.ResponseWriter
	echo *echo.Response
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if w.echo.Status == 0 {
		w.echo.Status = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func GetManager(c echo.Context) *Manager {
	if manager, ok := c.Get(sessionManagerKey).(*Manager); ok {
		return manager
	}
	return nil
}

func GetTrackingService(c echo.Context) *TrackingService {
	if tracking, ok := c.Get(sessionTrackingKey).(*TrackingService); ok {
		return tracking
	}
	return nil
}
