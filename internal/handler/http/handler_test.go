package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/avoronin/go-task-keeper/internal/config"
	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/service"
	"github.com/avoronin/go-task-keeper/internal/utils"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn  func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn         func(ctx context.Context, req models.LoginRequest) (models.User, error)
	getUserByIDFn   func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn func(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)
	listUsersFn     func(ctx context.Context) ([]models.User, error)
	createTokenFn   func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserByIDFn(ctx, userID)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	return m.updateProfileFn(ctx, userID, req)
}

func (m *mockAuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock TaskService
// ─────────────────────────────────────────────

type mockTaskService struct {
	createFn   func(ctx context.Context, userID int64, req models.CreateTaskRequest) (models.Task, error)
	listFn     func(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	getFn      func(ctx context.Context, userID int64, taskID uuid.UUID) (models.Task, error)
	updateFn   func(ctx context.Context, userID int64, taskID uuid.UUID, req models.UpdateTaskRequest) (models.Task, error)
	deleteFn   func(ctx context.Context, userID int64, taskID uuid.UUID) error
	insightsFn func(ctx context.Context, userID int64) (models.Insights, error)
}

func (m *mockTaskService) Create(ctx context.Context, userID int64, req models.CreateTaskRequest) (models.Task, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockTaskService) List(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	return m.listFn(ctx, userID, filter)
}

func (m *mockTaskService) Get(ctx context.Context, userID int64, taskID uuid.UUID) (models.Task, error) {
	return m.getFn(ctx, userID, taskID)
}

func (m *mockTaskService) Update(ctx context.Context, userID int64, taskID uuid.UUID, req models.UpdateTaskRequest) (models.Task, error) {
	return m.updateFn(ctx, userID, taskID, req)
}

func (m *mockTaskService) Delete(ctx context.Context, userID int64, taskID uuid.UUID) error {
	return m.deleteFn(ctx, userID, taskID)
}

func (m *mockTaskService) Insights(ctx context.Context, userID int64) (models.Insights, error) {
	return m.insightsFn(ctx, userID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler with the given service mocks.
func newTestHandler(t *testing.T, auth service.AuthService, tasks service.TaskService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService: auth,
		TaskService: tasks,
	}
	return NewHandler(svcs, config.Server{RequestTimeout: time.Second}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// withAuthUser returns a request whose context carries the given user, as the
// auth middleware would have stored it.
func withAuthUser(r *http.Request, user models.User) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
	return r.WithContext(ctx)
}

// decodeJSON unmarshals the response body into dst.
func decodeJSON(t *testing.T, body []byte, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, dst))
}

// authedUser is a convenience fixture used across multiple tests.
var authedUser = models.User{
	UserID: 7,
	Name:   "Alice",
	Email:  "alice@example.com",
	Role:   models.RoleUser,
}
