package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item owned by exactly one user.
//
// CompletedAt is derived state: it is stamped when Status transitions to
// TaskStatusCompleted and cleared when Status transitions away from it.
type Task struct {
	// ID is the server-assigned task identifier.
	ID uuid.UUID `json:"id"`

	// UserID is the owner of the task. Immutable after creation and never
	// taken from a request body.
	UserID int64 `json:"-"`

	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`

	// DueDate is optional; nil means the task has no deadline.
	DueDate *time.Time `json:"dueDate,omitempty"`

	// CompletedAt is non-nil exactly while Status == TaskStatusCompleted.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Labels is an ordered list of non-empty, trimmed tags.
	Labels []string `json:"labels"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}
