package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taskRequest builds an authenticated request with the given task id bound as
// a chi URL parameter.
func taskRequest(method, target, body string, taskID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = withAuthUser(req, authedUser)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("taskID", taskID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

// ─────────────────────────────────────────────
// createTask
// ─────────────────────────────────────────────

func TestCreateTask_Success(t *testing.T) {
	tasks := &mockTaskService{
		createFn: func(_ context.Context, userID int64, req models.CreateTaskRequest) (models.Task, error) {
			assert.Equal(t, authedUser.UserID, userID)
			return models.Task{ID: uuid.New(), Title: req.Title, Status: models.TaskStatusTodo}, nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	body := jsonBody(t, models.CreateTaskRequest{Title: "Buy milk"})
	req := withAuthUser(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body)), authedUser)
	rec := httptest.NewRecorder()

	h.createTask(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Task
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, "Buy milk", resp.Title)
}

func TestCreateTask_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, &mockTaskService{})

	req := withAuthUser(httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader("nope")), authedUser)
	rec := httptest.NewRecorder()

	h.createTask(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTask_NoIdentity(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, &mockTaskService{})

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()

	h.createTask(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// listTasks
// ─────────────────────────────────────────────

func TestListTasks_FilterFromQuery(t *testing.T) {
	tasks := &mockTaskService{
		listFn: func(_ context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
			assert.Equal(t, authedUser.UserID, userID)
			assert.Equal(t, models.TaskFilter{
				Status:   "todo",
				Priority: "high",
				Search:   "milk",
				Sort:     models.SortDueDateAsc,
			}, filter)
			return []models.Task{{ID: uuid.New()}}, nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := withAuthUser(
		httptest.NewRequest(http.MethodGet, "/api/tasks?status=todo&priority=high&search=milk&sort=dueDate-asc", nil),
		authedUser)
	rec := httptest.NewRecorder()

	h.listTasks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListTasks_EmptyResultIsJSONArray(t *testing.T) {
	tasks := &mockTaskService{
		listFn: func(_ context.Context, _ int64, _ models.TaskFilter) ([]models.Task, error) {
			return nil, nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := withAuthUser(httptest.NewRequest(http.MethodGet, "/api/tasks", nil), authedUser)
	rec := httptest.NewRecorder()

	h.listTasks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ─────────────────────────────────────────────
// getTask
// ─────────────────────────────────────────────

func TestGetTask_Success(t *testing.T) {
	taskID := uuid.New()
	tasks := &mockTaskService{
		getFn: func(_ context.Context, userID int64, id uuid.UUID) (models.Task, error) {
			assert.Equal(t, authedUser.UserID, userID)
			assert.Equal(t, taskID, id)
			return models.Task{ID: id, Title: "Buy milk"}, nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := taskRequest(http.MethodGet, "/api/tasks/"+taskID.String(), "", taskID.String())
	rec := httptest.NewRecorder()

	h.getTask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTask_MalformedIDIsNotFound(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, &mockTaskService{})

	req := taskRequest(http.MethodGet, "/api/tasks/not-a-uuid", "", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.getTask(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTask_ForeignTaskIsNotFound(t *testing.T) {
	taskID := uuid.New()
	tasks := &mockTaskService{
		getFn: func(_ context.Context, _ int64, _ uuid.UUID) (models.Task, error) {
			return models.Task{}, store.ErrTaskNotFound
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := taskRequest(http.MethodGet, "/api/tasks/"+taskID.String(), "", taskID.String())
	rec := httptest.NewRecorder()

	h.getTask(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// updateTask
// ─────────────────────────────────────────────

func TestUpdateTask_Success(t *testing.T) {
	taskID := uuid.New()
	tasks := &mockTaskService{
		updateFn: func(_ context.Context, _ int64, id uuid.UUID, req models.UpdateTaskRequest) (models.Task, error) {
			assert.Equal(t, taskID, id)
			return models.Task{ID: id, Title: req.Title}, nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := taskRequest(http.MethodPut, "/api/tasks/"+taskID.String(), `{"title":"Updated"}`, taskID.String())
	rec := httptest.NewRecorder()

	h.updateTask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Task
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, "Updated", resp.Title)
}

func TestUpdateTask_NotFound(t *testing.T) {
	taskID := uuid.New()
	tasks := &mockTaskService{
		updateFn: func(_ context.Context, _ int64, _ uuid.UUID, _ models.UpdateTaskRequest) (models.Task, error) {
			return models.Task{}, store.ErrTaskNotFound
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := taskRequest(http.MethodPut, "/api/tasks/"+taskID.String(), `{"title":"x"}`, taskID.String())
	rec := httptest.NewRecorder()

	h.updateTask(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// deleteTask
// ─────────────────────────────────────────────

func TestDeleteTask_Success(t *testing.T) {
	taskID := uuid.New()
	tasks := &mockTaskService{
		deleteFn: func(_ context.Context, userID int64, id uuid.UUID) error {
			assert.Equal(t, authedUser.UserID, userID)
			assert.Equal(t, taskID, id)
			return nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := taskRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), "", taskID.String())
	rec := httptest.NewRecorder()

	h.deleteTask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MessageResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, "task removed", resp.Message)
}

func TestDeleteTask_NotFound(t *testing.T) {
	taskID := uuid.New()
	tasks := &mockTaskService{
		deleteFn: func(_ context.Context, _ int64, _ uuid.UUID) error {
			return store.ErrTaskNotFound
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := taskRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), "", taskID.String())
	rec := httptest.NewRecorder()

	h.deleteTask(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// taskInsights
// ─────────────────────────────────────────────

func TestTaskInsights_Success(t *testing.T) {
	tasks := &mockTaskService{
		insightsFn: func(_ context.Context, userID int64) (models.Insights, error) {
			assert.Equal(t, authedUser.UserID, userID)
			return models.Insights{
				TotalTasks:     4,
				CompletedTasks: 2,
				CompletionRate: 50,
			}, nil
		},
	}

	h := newTestHandler(t, &mockAuthService{}, tasks)
	req := withAuthUser(httptest.NewRequest(http.MethodGet, "/api/tasks/insights", nil), authedUser)
	rec := httptest.NewRecorder()

	h.taskInsights(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Insights
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, 4, resp.TotalTasks)
	assert.Equal(t, 50, resp.CompletionRate)
}
