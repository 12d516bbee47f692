package service

import (
	"context"

	"github.com/avoronin/go-task-keeper/models"
	"github.com/google/uuid"
)

// AuthService owns the credential and session-token lifecycle.
type AuthService interface {
	// RegisterUser validates the registration request, hashes the password,
	// and persists a new account with the default role.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies the supplied credentials and returns the account.
	// Unknown email and wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// GetUserByID resolves an account by id; used by the authentication
	// middleware to turn a token subject into an identity.
	GetUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile changes the caller's display name. Email and password
	// are outside this path.
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)

	// ListUsers returns every account; restricted to admins at the
	// transport layer.
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// TaskService owns task validation, ownership-scoped CRUD, and the derived
// insights computation.
type TaskService interface {
	Create(ctx context.Context, userID int64, req models.CreateTaskRequest) (models.Task, error)
	List(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, userID int64, taskID uuid.UUID) (models.Task, error)
	Update(ctx context.Context, userID int64, taskID uuid.UUID, req models.UpdateTaskRequest) (models.Task, error)
	Delete(ctx context.Context, userID int64, taskID uuid.UUID) error

	// Insights computes the caller's aggregate task statistics in a single
	// in-memory pass.
	Insights(ctx context.Context, userID int64) (models.Insights, error)
}

// PasswordHasher is the contract the auth service uses for CPU-bound
// credential work. Implemented by the workers hash pool so hashing is an
// independently schedulable unit with caller-side timeouts.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hashed, password string) error
}
