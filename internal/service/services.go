package service

import (
	"github.com/taskforge/taskmanager/internal/config"
	"github.com/taskforge/taskmanager/internal/repository"
	"github.com/taskforge/taskmanager/internal/security"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

type Services struct {
	Auth *AuthService
	Task *TaskService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	hasher := security.NewPasswordHasher()
	issuer := security.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())

	return &Services{
		Auth: NewAuthService(repos.User, hasher, issuer),
		Task: NewTaskService(repos.Task, repos.User),
	}
}
