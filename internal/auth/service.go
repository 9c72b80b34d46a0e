package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/models"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/storage"
)

// UserStore is the persistence the account service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service registers and authenticates accounts.
type Service struct {
	users UserStore
}

// NewService creates a new Service instance.
func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register validates the credentials, hashes the password and stores the
// account. Duplicate usernames or emails surface as storage.ErrConflict.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, models.Invalid("username", err.Error())
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, models.Invalid("email", err.Error())
	}
	if err := ValidatePassword(password); err != nil {
		return nil, models.Invalid("password", err.Error())
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.CreateUser(ctx, username, email, hash)
}

// Login returns the user when password matches the stored hash and
// ErrInvalidCredentials for an unknown user or a wrong password alike.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		SpendTime(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
