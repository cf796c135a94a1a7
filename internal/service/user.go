package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/healthwallet/healthwallet/internal/auth"
	"github.com/healthwallet/healthwallet/internal/model"
	"github.com/healthwallet/healthwallet/internal/repository"
)

// UserService handles registration and login.
type UserService struct {
	store         UserStore
	tokenSecret   []byte
	tokenValidity time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, tokenSecret []byte, tokenValidity time.Duration) *UserService {
	if tokenValidity <= 0 {
		tokenValidity = auth.TokenValidity
	}
	return &UserService{
		store:         store,
		tokenSecret:   tokenSecret,
		tokenValidity: tokenValidity,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account and returns it with a signed token.
// Email uniqueness is enforced by the store, so concurrent registrations
// of the same email produce exactly one account.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             ulid.Make().String(),
		Username:       input.Username,
		Email:          input.Email,
		CredentialHash: hash,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.IssueToken(user.ID, s.tokenSecret, s.tokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password both come back as
// ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.CredentialHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID, s.tokenSecret, s.tokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetUser returns the user for an authenticated id.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
