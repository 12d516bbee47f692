package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avoronin/go-task-keeper/internal/config"
	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn    func(ctx context.Context, userID int64) (models.User, error)
	updateUserNameFn  func(ctx context.Context, userID int64, name string) (models.User, error)
	listUsersFn       func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdateUserName(ctx context.Context, userID int64, name string) (models.User, error) {
	if m.updateUserNameFn != nil {
		return m.updateUserNameFn(ctx, userID, name)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: PasswordHasher
// ─────────────────────────────────────────────

// mockHasher hashes synchronously with plain bcrypt at the minimum cost so
// tests stay fast and deterministic.
type mockHasher struct {
	hashFn    func(ctx context.Context, password string) (string, error)
	compareFn func(ctx context.Context, hashed, password string) error
}

func (m *mockHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(ctx, password)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hashed), err
}

func (m *mockHasher) Compare(ctx context.Context, hashed, password string) error {
	if m.compareFn != nil {
		return m.compareFn(ctx, hashed, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestAuthService(repo *mockUserRepository, hasher *mockHasher) AuthService {
	return NewAuthService(repo, hasher, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-task-keeper",
		TokenDuration: time.Hour,
	}, logger.Nop())
}

var errRepository = errors.New("repository error")

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			user.UserID = 42
			return user, nil
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	registered, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "  John Doe  ",
		Email:    "John.Doe@Example.COM",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
	assert.Equal(t, "John Doe", registered.Name)
	assert.Equal(t, "john.doe@example.com", registered.Email)
	assert.Equal(t, models.RoleUser, registered.Role)
	assert.NotEmpty(t, registered.PasswordHash)
	assert.NotEqual(t, "secret123", registered.PasswordHash)
}

func TestAuthService_RegisterUser_ValidationFailures(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})

	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"missing name", models.RegisterRequest{Email: "a@b.com", Password: "secret123"}, "name"},
		{"missing email", models.RegisterRequest{Name: "John", Password: "secret123"}, "email"},
		{"malformed email", models.RegisterRequest{Name: "John", Email: "not-an-email", Password: "secret123"}, "email"},
		{"missing password", models.RegisterRequest{Name: "John", Email: "a@b.com"}, "password"},
		{"short password", models.RegisterRequest{Name: "John", Email: "a@b.com", Password: "abc"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tt.req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}
}

func TestAuthService_RegisterUser_CollectsAllFieldErrors(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 3)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "John",
		Email:    "taken@example.com",
		Password: "secret123",
	})

	require.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_RegisterUser_HasherError(t *testing.T) {
	hasher := &mockHasher{
		hashFn: func(_ context.Context, _ string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	svc := newTestAuthService(&mockUserRepository{}, hasher)

	_, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "John",
		Email:    "a@b.com",
		Password: "secret123",
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			assert.Equal(t, "john@example.com", email)
			return models.User{UserID: 7, Email: email, PasswordHash: string(hashed)}, nil
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	authenticated, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "John@Example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), authenticated.UserID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 7, Email: email, PasswordHash: string(hashed)}, nil
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "john@example.com",
		Password: "wrong-password",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})

	_, err := svc.Login(context.Background(), models.LoginRequest{})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	repo := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, errRepository
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "john@example.com",
		Password: "secret123",
	})

	require.ErrorIs(t, err, errRepository)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ─────────────────────────────────────────────
// UpdateProfile
// ─────────────────────────────────────────────

func TestAuthService_UpdateProfile_Success(t *testing.T) {
	repo := &mockUserRepository{
		updateUserNameFn: func(_ context.Context, userID int64, name string) (models.User, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, "New Name", name)
			return models.User{UserID: userID, Name: name}, nil
		},
	}
	svc := newTestAuthService(repo, &mockHasher{})

	updated, err := svc.UpdateProfile(context.Background(), 7, models.UpdateProfileRequest{Name: "  New Name "})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}

func TestAuthService_UpdateProfile_EmptyName(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})

	_, err := svc.UpdateProfile(context.Background(), 7, models.UpdateProfileRequest{Name: "   "})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 99})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(99), parsed.UserID)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	expiredSvc := NewAuthService(&mockUserRepository{}, &mockHasher{}, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-task-keeper",
		TokenDuration: -time.Minute,
	}, logger.Nop())

	token, err := expiredSvc.CreateToken(context.Background(), models.User{UserID: 99})
	require.NoError(t, err)

	_, err = expiredSvc.ParseToken(context.Background(), token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})

	tests := []struct {
		name        string
		tokenString string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), tt.tokenString)
			require.ErrorIs(t, err, ErrTokenIsInvalid)
		})
	}
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockHasher{})
	otherSvc := NewAuthService(&mockUserRepository{}, &mockHasher{}, config.App{
		TokenSignKey:  "different-sign-key",
		TokenIssuer:   "go-task-keeper",
		TokenDuration: time.Hour,
	}, logger.Nop())

	token, err := otherSvc.CreateToken(context.Background(), models.User{UserID: 99})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsInvalid)
}
