package services

import (
	"fmt"
	"time"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

// AuthService handles the registration and login workflows.
type AuthService struct {
	userRepo repositories.UserRepository
	issuer   *Issuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, issuer *Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token string
	User  map[string]interface{}
}

// Register validates the input, hashes the password and persists a new
// user. The existence check is a best-effort pre-check; the store's unique
// constraint is the authoritative guard and a racing insert still surfaces
// as a conflict. Returns the persisted user as a field map without the
// password hash.
func (s *AuthService) Register(username, password string) (map[string]interface{}, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("username and password are required")
	}
	if len(username) < 3 {
		return nil, apperrors.Validation("username must be at least 3 characters long")
	}
	if len(password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters long")
	}

	existing, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("username already exists")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user.PublicMap(), nil
}

// Login verifies the credentials and issues a session token. A missing
// user and a wrong password produce the identical error so callers cannot
// enumerate usernames. No store writes happen here.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if user == nil {
		return nil, apperrors.Authentication("invalid credentials")
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Authentication("invalid credentials")
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  user.PublicMap(),
	}, nil
}
