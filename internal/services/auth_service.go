package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/passwords"
	"todo/internal/repository/sqlite"
	"todo/internal/validation"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown user, so both failure paths do one bcrypt comparison.
const dummyPassword = "todo:no-such-user"

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	userValidator *validation.UserValidator
	cost          int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService instance
func NewAuthService(repo sqlite.Repository, opts Options) AuthService {
	opts = opts.withDefaults()
	return &authServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		userValidator: validation.NewUserValidator(),
		cost:          opts.BcryptCost,
	}
}

func (a *authServiceImpl) dummy() []byte {
	a.dummyOnce.Do(func() {
		hash, err := passwords.Hash(dummyPassword, a.cost)
		if err != nil {
			slog.Warn("dummy password hash unavailable", "error", err)
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

// Register creates a user with a bcrypt hash of password. The username is
// stored exactly as given.
func (a *authServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := a.userValidator.ValidateUsername(username); err != nil {
		return nil, err
	}

	hash, err := passwords.Hash(password, a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dbUser := &sqlite.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := a.repo.CreateUser(ctx, dbUser); err != nil {
		if stderrors.Is(err, errors.ErrDuplicateUsername) {
			slog.Debug("registration rejected", "username", username, "reason", "duplicate")
		}
		return nil, err
	}

	slog.Info("user registered", "user_id", dbUser.ID, "username", dbUser.Username)
	user := a.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// Authenticate returns the user when username exists and password matches
// its stored hash. Any mismatch yields the same invalid-credentials error.
func (a *authServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	dbUser, err := a.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		_ = passwords.Compare(a.dummy(), password)
		slog.Debug("login failed", "username", username)
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := passwords.Compare([]byte(dbUser.PasswordHash), password); err != nil {
		slog.Debug("login failed", "username", username)
		return nil, errors.NewInvalidCredentialsError()
	}

	user := a.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}

// GetUser retrieves a user by ID
func (a *authServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, errors.NewValidationError("invalid user ID", nil)
	}

	dbUser, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user := a.mapper.User.FromDatabase(*dbUser)
	return &user, nil
}
