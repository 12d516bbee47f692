package store

import (
	"context"

	"github.com/avoronin/go-task-keeper/models"
	"github.com/google/uuid"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks up an account by its normalized email.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks up an account by its identifier.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateUserName changes the display name of an account and returns the
	// updated record.
	UpdateUserName(ctx context.Context, userID int64, name string) (models.User, error)

	// ListUsers returns every registered account.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// TaskRepository is the data-access contract for tasks. Every operation that
// touches an existing task is scoped by the owner's user id; a task belonging
// to a different user behaves exactly like a missing one.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, userID int64, taskID uuid.UUID) (models.Task, error)

	// UpdateTask overwrites the mutable fields of the task identified by
	// task.ID and task.UserID. Returns ErrTaskNotFound when no owned row
	// matches.
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)

	// DeleteTask removes the owned task. Returns ErrTaskNotFound when no
	// owned row matches; repeating the call yields the same error.
	DeleteTask(ctx context.Context, userID int64, taskID uuid.UUID) error
}
