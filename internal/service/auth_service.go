package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c5sim/coverage-sim-go/internal/auth"
	"github.com/c5sim/coverage-sim-go/internal/config"
	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/repository"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email is already registered")
	// ErrBadCredentials is returned on a failed login
	ErrBadCredentials = errors.New("incorrect email or password")
)

// AuthService handles operator registration and login
type AuthService struct {
	users *repository.UserRepository
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates an operator account with a normalized email and a
// bcrypt password hash
func (s *AuthService) Register(in models.UserCreate) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:          strings.TrimSpace(in.Name),
		FirstSurname:  strings.TrimSpace(in.FirstSurname),
		SecondSurname: strings.TrimSpace(in.SecondSurname),
		Email:         email,
		PasswordHash:  hash,
	}

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a JWT
func (s *AuthService) Login(in models.LoginRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, "", ErrBadCredentials
	}

	token, err := auth.IssueToken(s.cfg.JWTSecret, user.ID, user.Email, s.cfg.JWTExpiry)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
