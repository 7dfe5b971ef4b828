package openapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

// Document builds the OpenAPI 3 description of the HTTP API and serves it as
// JSON and YAML.
type Document struct {
	spec *openapi3.T
}

func New(title, version, serverURL string) *Document {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: "Personal task tracking API with email-verified accounts.",
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: serverURL},
		},
		Paths: openapi3.NewPaths(),
	}

	d := &Document{spec: spec}
	d.addAuthPaths()
	d.addTaskPaths()
	d.addUserPaths()
	return d
}

func (d *Document) Spec() *openapi3.T {
	return d.spec
}

func (d *Document) ServeJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, d.spec)
}

func (d *Document) ServeYAML(c echo.Context) error {
	// kin-openapi types only know how to marshal themselves as JSON, so the
	// YAML rendering goes through a JSON round trip.
	raw, err := d.spec.MarshalJSON()
	if err != nil {
		return err
	}
	var intermediate map[string]any
	if err := json.Unmarshal(raw, &intermediate); err != nil {
		return err
	}
	data, err := yaml.Marshal(intermediate)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/yaml", data)
}

func (d *Document) addAuthPaths() {
	d.add("/api/auth/register", http.MethodPost, op("Register a new account", "register",
		resp(201, "Account created, verification email dispatched"),
		resp(409, "Email or username already taken"),
		resp(422, "Validation failed")))
	d.add("/api/auth/login", http.MethodPost, op("Log in with email and password", "login",
		resp(200, "Authenticated; session cookie set"),
		resp(401, "Invalid credentials")))
	d.add("/api/auth/logout", http.MethodPost, op("Log out", "logout",
		resp(204, "Session destroyed")))
	d.add("/api/auth/verify", http.MethodGet, withQuery(op("Consume an email verification token", "verifyEmail",
		resp(302, "Redirect to verification outcome page"),
		resp(400, "Token missing")), "token", true))
	d.add("/api/auth/verify/resend", http.MethodPost, op("Resend the verification email", "resendVerification",
		resp(200, "Verification email sent"),
		resp(400, "Email already verified"),
		resp(404, "No account with that email")))
}

func (d *Document) addTaskPaths() {
	listOp := op("List tasks", "listTasks",
		resp(200, "Page of tasks with cursor"),
		resp(401, "Not authenticated"),
		resp(403, "Email not verified"))
	for _, name := range []string{"status", "q", "limit", "cursor"} {
		listOp = withQuery(listOp, name, false)
	}
	d.add("/api/tasks", http.MethodGet, listOp)
	d.add("/api/tasks", http.MethodPost, op("Create a task", "createTask",
		resp(201, "Task created"),
		resp(413, "Task quota exceeded"),
		resp(422, "Validation failed")))
	d.add("/api/tasks/{id}", http.MethodGet, op("Fetch a task", "getTask",
		resp(200, "The task"),
		resp(404, "Task not found")))
	d.add("/api/tasks/{id}", http.MethodPut, op("Retitle a task", "updateTask",
		resp(200, "Updated task"),
		resp(404, "Task not found"),
		resp(422, "Validation failed")))
	d.add("/api/tasks/{id}", http.MethodDelete, op("Soft-delete a task", "deleteTask",
		resp(204, "Task marked deleted"),
		resp(404, "Task not found")))
	d.add("/api/tasks/{id}/restore", http.MethodPatch, op("Restore a soft-deleted task", "restoreTask",
		resp(200, "Restored task"),
		resp(404, "Task not found")))
	d.add("/api/tasks/{id}/toggle", http.MethodPatch, op("Toggle task completion", "toggleTask",
		resp(200, "Toggled task"),
		resp(404, "Task not found")))
}

func (d *Document) addUserPaths() {
	d.add("/api/users/me", http.MethodGet, op("Fetch the current user", "getCurrentUser",
		resp(200, "The authenticated user"),
		resp(401, "Not authenticated")))
	d.add("/api/users/me", http.MethodDelete, op("Delete the current account and everything it owns", "deleteCurrentUser",
		resp(204, "Account deleted"),
		resp(401, "Not authenticated")))
}

func (d *Document) add(path, method string, operation *openapi3.Operation) {
	item := d.spec.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		d.spec.Paths.Set(path, item)
	}
	item.SetOperation(method, operation)
}

func op(summary, operationID string, responses ...responseDef) *openapi3.Operation {
	operation := openapi3.NewOperation()
	operation.Summary = summary
	operation.OperationID = operationID
	operation.Responses = openapi3.NewResponses()
	for _, r := range responses {
		desc := r.description
		operation.Responses.Set(r.status, &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: &desc},
		})
	}
	return operation
}

func withQuery(operation *openapi3.Operation, name string, required bool) *openapi3.Operation {
	operation.Parameters = append(operation.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:     name,
			In:       "query",
			Required: required,
			Schema:   openapi3.NewStringSchema().NewRef(),
		},
	})
	return operation
}

type responseDef struct {
	status      string
	description string
}

func resp(status int, description string) responseDef {
	return responseDef{status: strconv.Itoa(status), description: description}
}
