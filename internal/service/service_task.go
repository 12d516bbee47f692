package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/google/uuid"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
)

// taskService is the concrete implementation of TaskService.
// Every operation is scoped to the acting user's UserID; a task belonging to
// a different user is indistinguishable from a task that does not exist.
type taskService struct {
	taskRepository store.TaskRepository
	logger         *logger.Logger
}

// NewTaskService constructs a new TaskService backed by the given TaskRepository.
func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		logger:         logger,
	}
}

// Create validates the request and persists a new task owned by userID.
//
// Status defaults to "todo" and priority to "medium" when omitted. A due
// date that cannot be parsed is silently dropped rather than rejected. A
// task created directly in the completed status gets its CompletedAt stamp
// immediately.
//
// Returns the persisted task or a *ValidationError carrying per-field messages.
func (t *taskService) Create(ctx context.Context, userID int64, req models.CreateTaskRequest) (models.Task, error) {
	log := logger.FromContext(ctx)

	task := models.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		DueDate:     parseDueDate(req.DueDate),
		Labels:      normalizeLabels(req.Labels),
	}
	if req.Status != "" {
		task.Status = models.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}

	if err := validateTask(task); err != nil {
		log.Error().Int64("user_id", userID).Msg("invalid task data provided")
		return models.Task{}, err
	}

	if task.Status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	createdTask, err := t.taskRepository.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return createdTask, nil
}

// List returns the caller's tasks narrowed and ordered by the given filter.
// An empty filter yields every task the caller owns, newest first.
func (t *taskService) List(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	tasks, err := t.taskRepository.ListTasks(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("task listing failed: %w", err)
	}

	return tasks, nil
}

// Get returns a single task owned by userID.
// Returns store.ErrTaskNotFound when no such task exists for this owner.
func (t *taskService) Get(ctx context.Context, userID int64, taskID uuid.UUID) (models.Task, error) {
	task, err := t.taskRepository.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("task search failed: %w", err)
	}

	return task, nil
}

// Update applies a partial update to a task owned by userID.
//
// Absent fields keep their prior values: an empty string leaves the
// corresponding field untouched, and a nil labels slice leaves the label set
// untouched while a present slice replaces it entirely, even when empty.
// Unparsable due dates are silently dropped, preserving the prior value.
//
// Transitioning into the completed status stamps CompletedAt; transitioning
// out of it clears the stamp.
//
// Returns the updated task, a *ValidationError, or store.ErrTaskNotFound.
func (t *taskService) Update(ctx context.Context, userID int64, taskID uuid.UUID, req models.UpdateTaskRequest) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := t.taskRepository.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("task search failed: %w", err)
	}

	previousStatus := task.Status

	if title := strings.TrimSpace(req.Title); title != "" {
		task.Title = title
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		task.Description = description
	}
	if req.Status != "" {
		task.Status = models.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}
	if dueDate := parseDueDate(req.DueDate); dueDate != nil {
		task.DueDate = dueDate
	}
	if req.Labels != nil {
		task.Labels = normalizeLabels(req.Labels)
	}

	if err := validateTask(task); err != nil {
		log.Error().Int64("user_id", userID).Str("task_id", taskID.String()).Msg("invalid task data provided")
		return models.Task{}, err
	}

	switch {
	case task.Status == models.TaskStatusCompleted && previousStatus != models.TaskStatusCompleted:
		now := time.Now()
		task.CompletedAt = &now
	case task.Status != models.TaskStatusCompleted && previousStatus == models.TaskStatusCompleted:
		task.CompletedAt = nil
	}

	updatedTask, err := t.taskRepository.UpdateTask(ctx, task)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("task_id", taskID.String()).Msg("task update ended with error")
		return models.Task{}, fmt.Errorf("task update ended with error: %w", err)
	}

	return updatedTask, nil
}

// Delete removes a task owned by userID.
// Returns store.ErrTaskNotFound when no such task exists for this owner.
func (t *taskService) Delete(ctx context.Context, userID int64, taskID uuid.UUID) error {
	if err := t.taskRepository.DeleteTask(ctx, userID, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("task deletion failed: %w", err)
	}

	return nil
}

// parseDueDate interprets a client-supplied due date string.
// It accepts RFC 3339 timestamps and plain YYYY-MM-DD dates; anything else,
// including the empty string, yields nil.
func parseDueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed
	}

	return nil
}

// normalizeLabels trims each label and drops the empty ones.
// A nil input stays nil so callers can tell "absent" from "present but empty".
func normalizeLabels(labels []string) []string {
	if labels == nil {
		return nil
	}

	normalized := make([]string, 0, len(labels))
	for _, label := range labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}

	return normalized
}

// validateTask checks the field constraints of a task and collects every
// failure into a single *ValidationError.
func validateTask(task models.Task) error {
	validationErr := NewValidationError()

	if task.Title == "" {
		validationErr.Add("title", "please add a task title")
	} else if utf8.RuneCountInString(task.Title) > maxTitleLength {
		validationErr.Add("title", fmt.Sprintf("title cannot be more than %d characters", maxTitleLength))
	}

	if utf8.RuneCountInString(task.Description) > maxDescriptionLength {
		validationErr.Add("description", fmt.Sprintf("description cannot be more than %d characters", maxDescriptionLength))
	}

	if !task.Status.Valid() {
		validationErr.Add("status", "status must be one of: todo, in-progress, completed")
	}

	if !task.Priority.Valid() {
		validationErr.Add("priority", "priority must be one of: low, medium, high")
	}

	if validationErr.HasErrors() {
		return validationErr
	}

	return nil
}

// validateFilter rejects unknown status and priority filter values so typos
// surface as 400s instead of silently returning an unfiltered list. Unknown
// sort modes are not an error; the query falls back to the default order.
func validateFilter(filter models.TaskFilter) error {
	validationErr := NewValidationError()

	if filter.Status != "" && !models.TaskStatus(filter.Status).Valid() {
		validationErr.Add("status", "status must be one of: todo, in-progress, completed")
	}

	if filter.Priority != "" && !models.TaskPriority(filter.Priority).Valid() {
		validationErr.Add("priority", "priority must be one of: low, medium, high")
	}

	if validationErr.HasErrors() {
		return validationErr
	}

	return nil
}
