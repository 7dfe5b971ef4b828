package tasks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a short text item owned by exactly one user. DeletedAt is a
// soft-delete marker: nil means alive, non-nil hides the task until restore.
type Task struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	UserID    string     `json:"user_id" gorm:"size:36;index;not null"`
	Title     string     `json:"title" gorm:"size:100;not null"`
	Completed bool       `json:"completed" gorm:"not null;default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}
