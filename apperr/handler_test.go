package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := Validation("Title is required", "title")
	assert.Equal(t, "VALIDATION_ERROR: Title is required", err.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		code   string
		status int
	}{
		{"validation", Validation("bad", "field"), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid json", InvalidJSON(), CodeInvalidJSON, http.StatusBadRequest},
		{"unauthorized", Unauthorized(""), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden(""), CodeForbidden, http.StatusForbidden},
		{"not found", NotFound(""), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict(""), CodeConflict, http.StatusConflict},
		{"limit exceeded", LimitExceeded(""), CodeLimitExceeded, http.StatusRequestEntityTooLarge},
		{"internal", Internal(""), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func serveError(t *testing.T, err error, production bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil, production)
	e.GET("/boom", func(c echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "error")
	return body["error"]
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Run("application error rendered with code and field", func(t *testing.T) {
		rec := serveError(t, Validation("Title is required", "title"), false)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errBody := decodeErrorBody(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
		assert.Equal(t, "Title is required", errBody["message"])
		assert.Equal(t, "title", errBody["field"])
	})

	t.Run("field omitted when empty", func(t *testing.T) {
		rec := serveError(t, NotFound("Task not found"), false)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		errBody := decodeErrorBody(t, rec)
		assert.Equal(t, "NOT_FOUND", errBody["code"])
		assert.NotContains(t, errBody, "field")
	})

	t.Run("wrapped application error unwrapped", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), Conflict("Email already registered"))
		rec := serveError(t, wrapped, false)

		assert.Equal(t, http.StatusConflict, rec.Code)
		errBody := decodeErrorBody(t, rec)
		assert.Equal(t, "CONFLICT", errBody["code"])
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		rec := serveError(t, errors.New("database exploded"), false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		errBody := decodeErrorBody(t, rec)
		assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
		assert.Equal(t, "database exploded", errBody["message"])
	})

	t.Run("production hides internal details", func(t *testing.T) {
		rec := serveError(t, errors.New("database exploded"), true)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		errBody := decodeErrorBody(t, rec)
		assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
		assert.Equal(t, "Internal server error", errBody["message"])
	})

	t.Run("echo 404 mapped to the taxonomy", func(t *testing.T) {
		e := echo.New()
		e.HTTPErrorHandler = HTTPErrorHandler(nil, false)

		req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		errBody := decodeErrorBody(t, rec)
		assert.Equal(t, "NOT_FOUND", errBody["code"])
	})
}
