package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/google/uuid"
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
// It executes all task CRUD operations against the "tasks" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, task_id, etc.).
type taskRepository struct {
	*DB
	logger *logger.Logger
}

// NewTaskRepository constructs a [TaskRepository] backed by
// the provided database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateTask inserts a fully validated task and returns its canonical
// database representation including server-assigned timestamps.
func (t *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	labels, err := marshalLabels(task.Labels)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.CreateTask").
			Int64("user_id", task.UserID).
			Msg("failed to encode labels")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := t.DB.QueryRowContext(ctx, createTask,
		task.ID, task.UserID, task.Title, task.Description,
		task.Status, task.Priority, task.DueDate, task.CompletedAt, labels)

	created, err := scanTask(row)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.CreateTask").
			Int64("user_id", task.UserID).
			Msg("failed to insert task")
		return models.Task{}, t.wrapDBError(ErrExecutingStatement, err)
	}

	return created, nil
}

// ListTasks retrieves the caller's tasks matching the given filter.
//
// The query is built by [buildListTasksQuery]; the ownership constraint is
// always applied regardless of the filter contents. Returns an empty slice
// when nothing matches.
func (t *taskRepository) ListTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTasksQuery(userID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.ListTasks").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := t.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.ListTasks").
			Int64("user_id", userID).
			Msg("failed to execute query for listing tasks")
		return nil, t.wrapDBError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Task, 0, 50)

	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "taskRepository.ListTasks").
				Int64("user_id", userID).
				Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "taskRepository.ListTasks").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, t.wrapDBError(ErrScanningRows, rowsErr)
	}

	return results, nil
}

// GetTask retrieves a single task by id, scoped to its owner. A task that
// does not exist and a task owned by a different user both yield
// [ErrTaskNotFound].
func (t *taskRepository) GetTask(ctx context.Context, userID int64, taskID uuid.UUID) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := t.DB.QueryRowContext(ctx, getTask, taskID, userID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).
			Str("func", "taskRepository.GetTask").
			Int64("user_id", userID).
			Str("task_id", taskID.String()).
			Msg("failed to get task")
		return models.Task{}, t.wrapDBError(ErrExecutingQuery, err)
	}

	return task, nil
}

// UpdateTask overwrites the mutable columns of the task identified by
// task.ID and task.UserID and returns the stored result. Concurrent updates
// are last-write-wins; no version check is performed.
func (t *taskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	labels, err := marshalLabels(task.Labels)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.UpdateTask").
			Int64("user_id", task.UserID).
			Msg("failed to encode labels")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := t.DB.QueryRowContext(ctx, updateTask,
		task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CompletedAt, labels, task.ID, task.UserID)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).
			Str("func", "taskRepository.UpdateTask").
			Int64("user_id", task.UserID).
			Str("task_id", task.ID.String()).
			Msg("failed to update task")
		return models.Task{}, t.wrapDBError(ErrExecutingStatement, err)
	}

	return updated, nil
}

// DeleteTask removes the owned task. Zero affected rows — a missing id or a
// foreign owner — yields [ErrTaskNotFound], so repeated deletes of the same
// id are safe and uniform.
func (t *taskRepository) DeleteTask(ctx context.Context, userID int64, taskID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := t.DB.ExecContext(ctx, deleteTask, taskID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.DeleteTask").
			Int64("user_id", userID).
			Str("task_id", taskID.String()).
			Msg("failed to delete task")
		return t.wrapDBError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.DeleteTask").
			Int64("user_id", userID).
			Msg("failed to read affected rows")
		return t.wrapDBError(ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for [scanTask].
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in the canonical [taskColumns] order and
// decodes the labels payload.
func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var labels []byte

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CompletedAt,
		&labels,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	if task.Labels, err = unmarshalLabels(labels); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// marshalLabels encodes the labels slice as the JSONB column payload.
// A nil slice is stored as an empty array so reads never yield null.
func marshalLabels(labels []string) ([]byte, error) {
	if labels == nil {
		labels = []string{}
	}
	return json.Marshal(labels)
}

func unmarshalLabels(payload []byte) ([]string, error) {
	if len(payload) == 0 {
		return []string{}, nil
	}

	var labels []string
	if err := json.Unmarshal(payload, &labels); err != nil {
		return nil, fmt.Errorf("failed to decode labels payload: %w", err)
	}
	return labels, nil
}
