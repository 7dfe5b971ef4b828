package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tech-arch1tect/taskbox/config"
	"github.com/tech-arch1tect/taskbox/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskLimitExceeded = errors.New("task limit exceeded")
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDeleted   = "deleted"
)

type Service struct {
	config *config.Config
	db     *gorm.DB
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

type ListParams struct {
	Status string
	Search string
	Cursor *time.Time
	Limit  int
}

type ListResult struct {
	Tasks      []Task     `json:"tasks"`
	NextCursor *time.Time `json:"nextCursor"`
	HasMore    bool       `json:"hasMore"`
}

// List returns the user's tasks newest-first. The cursor is the creation
// timestamp of the last item on the previous page; only strictly older rows
// are returned. One extra row is fetched to decide whether more pages exist.
func (s *Service) List(userID string, params ListParams) (*ListResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = s.config.Tasks.DefaultPageSize
	}
	if limit > s.config.Tasks.MaxPageSize {
		limit = s.config.Tasks.MaxPageSize
	}

	query := s.db.Where("user_id = ?", userID)

	switch params.Status {
	case StatusActive:
		query = query.Where("completed = ? AND deleted_at IS NULL", false)
	case StatusCompleted:
		query = query.Where("completed = ? AND deleted_at IS NULL", true)
	case StatusDeleted:
		query = query.Where("deleted_at IS NOT NULL")
	default:
		query = query.Where("deleted_at IS NULL")
	}

	if params.Search != "" {
		// LOWER on both sides keeps the match case-insensitive on every
		// supported driver.
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	if params.Cursor != nil {
		query = query.Where("created_at < ?", *params.Cursor)
	}

	var results []Task
	if err := query.Order("created_at DESC").Limit(limit + 1).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := &ListResult{Tasks: results}
	if len(results) > limit {
		result.Tasks = results[:limit]
		last := result.Tasks[limit-1].CreatedAt
		result.NextCursor = &last
		result.HasMore = true
	}
	if result.Tasks == nil {
		result.Tasks = []Task{}
	}

	return result, nil
}

// Create inserts a new active task unless the user already holds the maximum
// number of non-deleted tasks.
func (s *Service) Create(userID, title string) (*Task, error) {
	count, err := s.CountActive(userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.config.Tasks.MaxPerUser) {
		s.logger.Warn("task quota reached",
			zap.String("user_id", userID),
			zap.Int("max_per_user", s.config.Tasks.MaxPerUser))
		return nil, ErrTaskLimitExceeded
	}

	task := &Task{
		UserID: userID,
		Title:  title,
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// CountActive counts the user's non-deleted tasks, completed or not.
func (s *Service) CountActive(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&Task{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Get fetches a task by id scoped to its owner. A missing row and somebody
// else's row are both ErrTaskNotFound.
func (s *Service) Get(userID, id string) (*Task, error) {
	var task Task
	if err := s.db.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}
	return &task, nil
}

// Update retitles a task. Soft-deleted tasks stay editable through this path.
func (s *Service) Update(userID, id, title string) (*Task, error) {
	task, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(task).Update("title", title).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *Service) ToggleCompletion(userID, id string) (*Task, error) {
	task, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(task).Update("completed", !task.Completed).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return task, nil
}

// SoftDelete marks the task deleted. Repeating it just refreshes the marker.
func (s *Service) SoftDelete(userID, id string) error {
	task, err := s.Get(userID, id)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.db.Model(task).Update("deleted_at", now).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Restore clears the soft-delete marker. Restoring a task that is not
// deleted is a no-op, not an error.
func (s *Service) Restore(userID, id string) (*Task, error) {
	task, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if !task.IsDeleted() {
		return task, nil
	}

	if err := s.db.Model(task).Update("deleted_at", nil).Error; err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}
	return task, nil
}
