package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tech-arch1tect/taskbox/services/logging"
)

type errorBody struct {
	Error *Error `json:"error"`
}

// HTTPErrorHandler renders every failure as the uniform
// {"error":{code,message,field?}} body. Uncategorized errors become
// INTERNAL_ERROR; in production their message is replaced with a generic one.
func HTTPErrorHandler(logger *logging.Service, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *Error
		switch {
		case errors.As(err, &appErr):
		default:
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				appErr = fromHTTPError(httpErr)
			} else {
				logger.Error("unhandled request error",
					zap.Error(err),
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()))
				msg := err.Error()
				if production {
					msg = "Internal server error"
				}
				appErr = Internal(msg)
			}
		}

		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("code", appErr.Code),
				zap.Int("status", appErr.Status),
				zap.String("path", c.Path()))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(appErr.Status)
			return
		}
		_ = c.JSON(appErr.Status, errorBody{Error: appErr})
	}
}

func fromHTTPError(httpErr *echo.HTTPError) *Error {
	msg := http.StatusText(httpErr.Code)
	if s, ok := httpErr.Message.(string); ok {
		msg = s
	}

	switch httpErr.Code {
	case http.StatusUnauthorized:
		return Unauthorized(msg)
	case http.StatusForbidden:
		return Forbidden(msg)
	case http.StatusNotFound:
		return NotFound(msg)
	default:
		return New(CodeInternal, msg, httpErr.Code)
	}
}
