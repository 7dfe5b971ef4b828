package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tech-arch1tect/taskbox/apperr"
	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"github.com/tech-arch1tect/taskbox/services/tasks"
	"github.com/tech-arch1tect/taskbox/session"
	"github.com/tech-arch1tect/taskbox/validation"
)

type TasksHandler struct {
	config *config.Config
	tasks  *tasks.Service
	logger *logging.Service
}

func NewTasksHandler(cfg *config.Config, tasksSvc *tasks.Service, logger *logging.Service) *TasksHandler {
	return &TasksHandler{
		config: cfg,
		tasks:  tasksSvc,
		logger: logger,
	}
}

func (h *TasksHandler) List(c echo.Context) error {
	userID := session.GetUserID(c)

	params := tasks.ListParams{
		Search: c.QueryParam("q"),
		Limit:  h.config.Tasks.DefaultPageSize,
	}

	switch status := c.QueryParam("status"); status {
	case "", tasks.StatusActive, tasks.StatusCompleted, tasks.StatusDeleted:
		params.Status = status
	default:
		return apperr.Validation("Invalid status filter", "status")
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("Invalid limit", "limit")
		}
		params.Limit = min(max(limit, 1), h.config.Tasks.MaxPageSize)
	}

	if raw := c.QueryParam("cursor"); raw != "" {
		cursor, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return apperr.Validation("Invalid cursor", "cursor")
		}
		params.Cursor = &cursor
	}

	result, err := h.tasks.List(userID, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

type taskRequest struct {
	Title string `json:"title"`
}

func (h *TasksHandler) Create(c echo.Context) error {
	userID := session.GetUserID(c)

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidJSON()
	}

	title, err := validation.TaskTitle(req.Title)
	if err != nil {
		return err
	}

	task, err := h.tasks.Create(userID, title)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskLimitExceeded) {
			return apperr.LimitExceeded(fmt.Sprintf("Maximum %d tasks per user allowed", h.config.Tasks.MaxPerUser))
		}
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *TasksHandler) Get(c echo.Context) error {
	userID := session.GetUserID(c)

	id := c.Param("id")
	if err := validation.UUID(id); err != nil {
		return err
	}

	task, err := h.tasks.Get(userID, id)
	if err != nil {
		return mapTaskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TasksHandler) Update(c echo.Context) error {
	userID := session.GetUserID(c)

	id := c.Param("id")
	if err := validation.UUID(id); err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidJSON()
	}

	title, err := validation.TaskTitle(req.Title)
	if err != nil {
		return err
	}

	task, err := h.tasks.Update(userID, id, title)
	if err != nil {
		return mapTaskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TasksHandler) Delete(c echo.Context) error {
	userID := session.GetUserID(c)

	id := c.Param("id")
	if err := validation.UUID(id); err != nil {
		return err
	}

	if err := h.tasks.SoftDelete(userID, id); err != nil {
		return mapTaskError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TasksHandler) Restore(c echo.Context) error {
	userID := session.GetUserID(c)

	id := c.Param("id")
	if err := validation.UUID(id); err != nil {
		return err
	}

	task, err := h.tasks.Restore(userID, id)
	if err != nil {
		return mapTaskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TasksHandler) Toggle(c echo.Context) error {
	userID := session.GetUserID(c)

	id := c.Param("id")
	if err := validation.UUID(id); err != nil {
		return err
	}

	task, err := h.tasks.ToggleCompletion(userID, id)
	if err != nil {
		return mapTaskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func mapTaskError(err error) error {
	if errors.Is(err, tasks.ErrTaskNotFound) {
		return apperr.NotFound("Task not found")
	}
	return err
}
