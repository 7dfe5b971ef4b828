package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	doc := New("taskbox", "1.0.0", "http://localhost:8080")
	spec := doc.Spec()

	t.Run("document validates", func(t *testing.T) {
		require.NoError(t, spec.Validate(context.Background()))
	})

	t.Run("covers the whole surface", func(t *testing.T) {
		expected := []string{
			"/api/auth/register",
			"/api/auth/login",
			"/api/auth/logout",
			"/api/auth/verify",
			"/api/auth/verify/resend",
			"/api/tasks",
			"/api/tasks/{id}",
			"/api/tasks/{id}/restore",
			"/api/tasks/{id}/toggle",
			"/api/users/me",
		}
		for _, path := range expected {
			assert.NotNil(t, spec.Paths.Value(path), path)
		}
		assert.Equal(t, len(expected), spec.Paths.Len())
	})

	t.Run("list operation documents its query parameters", func(t *testing.T) {
		listOp := spec.Paths.Value("/api/tasks").Get
		require.NotNil(t, listOp)

		var names []string
		for _, param := range listOp.Parameters {
			names = append(names, param.Value.Name)
		}
		assert.ElementsMatch(t, []string{"status", "q", "limit", "cursor"}, names)
	})
}

func TestServe(t *testing.T) {
	doc := New("taskbox", "1.0.0", "http://localhost:8080")
	e := echo.New()

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, doc.ServeJSON(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"openapi":"3.0.3"`)
	})

	t.Run("yaml", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, doc.ServeYAML(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "openapi:"))
	})
}
