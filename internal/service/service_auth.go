package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avoronin/go-task-keeper/internal/config"
	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/internal/utils"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxNameLength     = 50
	minPasswordLength = 6
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the JWT token
// lifecycle using a UserRepository for persistence and a PasswordHasher for
// bcrypt work.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher offloads bcrypt hashing and comparison to dedicated workers so
	// the request-serving goroutines stay responsive.
	hasher PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and PasswordHasher and populated with security parameters
// from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, hasher PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates the name, email, and password constraints, normalizes the
// email to lower case, hashes the password on the worker pool, and delegates
// persistence to the UserRepository. The stored record never contains the
// plaintext password.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - A *ValidationError carrying per-field messages if any constraint fails.
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - A wrapped storage or hashing error otherwise.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if err := validateRegistration(req); err != nil {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, err
	}

	passwordHash, err := a.hasher.Hash(ctx, req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by normalized email and compares the supplied
// password against the stored bcrypt hash on the worker pool. A missing
// account and a failed comparison are reported identically.
//
// Returns the authenticated user record or:
//   - ErrInvalidCredentials if the email is unknown or the password wrong.
//   - A wrapped storage or hashing error otherwise.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := a.hasher.Compare(ctx, foundUser.PasswordHash, req.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Int64("id", foundUser.UserID).Msg("password comparison failed")
		return models.User{}, fmt.Errorf("password comparison failed: %w", err)
	}

	return foundUser, nil
}

// GetUserByID resolves the account with the given identifier.
func (a *authService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// UpdateProfile changes the caller's display name after validating it.
// The password hash is never recomputed on this path.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		validationErr := NewValidationError()
		validationErr.Add("name", fmt.Sprintf("name is required and cannot be more than %d characters", maxNameLength))
		return models.User{}, validationErr
	}

	updatedUser, err := a.userRepository.UpdateUserName(ctx, userID, name)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updatedUser, nil
}

// ListUsers returns every registered account. Role enforcement happens at
// the transport layer.
func (a *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Expiry is kept distinguishable from every other
// validation failure so callers can answer "session expired" and "invalid
// session" differently.
//
// Returns ErrTokenIsExpired for an expired token and ErrTokenIsInvalid for
// any other validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}

// normalizeEmail lowercases and trims an email address; uniqueness and
// lookups operate on the normalized form only.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateRegistration checks the field constraints of a registration
// request and collects every failure into a single *ValidationError.
func validateRegistration(req models.RegisterRequest) error {
	validationErr := NewValidationError()

	if req.Name == "" {
		validationErr.Add("name", "please provide a name")
	} else if utf8.RuneCountInString(req.Name) > maxNameLength {
		validationErr.Add("name", fmt.Sprintf("name cannot be more than %d characters", maxNameLength))
	}

	if req.Email == "" {
		validationErr.Add("email", "please provide an email")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		validationErr.Add("email", "please provide a valid email")
	}

	if req.Password == "" {
		validationErr.Add("password", "please provide a password")
	} else if len(req.Password) < minPasswordLength {
		validationErr.Add("password", fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}

	if validationErr.HasErrors() {
		return validationErr
	}

	return nil
}
