package service

import (
	"context"
	"errors"

	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/repository"
	"github.com/taskforge/taskmanager/internal/security"
)

const (
	credentialsRequired = "Username and password are required"
	passwordTooLong     = "Password must be at most 72 bytes"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, issuer TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Register stores a new user with a salted password hash and returns a token
// for it. A taken username is reported as a conflict whether it is seen by
// the lookup or by the unique index on insert.
func (s *AuthService) Register(ctx context.Context, input Credentials) (*AuthResult, error) {
	if err := validateInput(input, credentialsRequired); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	switch {
	case err == nil && existing != nil:
		return nil, domain.Conflict("Username already exists")
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, domain.Storage("Database query failed", err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			return nil, domain.Validation(passwordTooLong)
		}
		return nil, domain.Crypto("Password hashing failed", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("Username already exists")
		}
		return nil, domain.Storage("Database insertion failed", err)
	}

	return s.issue(user)
}

// Authenticate verifies the credentials and returns a freshly issued token.
func (s *AuthService) Authenticate(ctx context.Context, input Credentials) (*AuthResult, error) {
	if err := validateInput(input, credentialsRequired); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Username not found")
		}
		return nil, domain.Storage("Database query failed", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, domain.Unauthorized("Invalid password")
		}
		return nil, domain.Crypto("Password comparison failed", err)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(user.Username)
	if err != nil {
		return nil, domain.Crypto("Token generation failed", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
