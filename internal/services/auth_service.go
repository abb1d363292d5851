package services

import (
	"context"
	"dashboard-service/internal/models"
	"dashboard-service/internal/repository"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService provides session-cookie authentication for the admin portal.
type AuthService struct {
	users    UserStore
	sessions repository.SessionRepository
}

func NewAuthService(users UserStore, sessions repository.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Login verifies credentials and creates a session. The error is the same
// whether the username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", models.ErrBadRequest)
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		slog.Warn("Login failed: unknown user", "username", username)
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("Login failed: password mismatch", "username", username)
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("Admin logged in", "username", username)
	return session, nil
}

// Logout destroys a session. A missing or already-expired session is not an
// error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Validate resolves a session cookie value to its session.
func (s *AuthService) Validate(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("authentication required: %w", models.ErrUnauthorized)
	}
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("authentication required: %w", models.ErrUnauthorized)
	}
	return session, nil
}

// SeedDefaultAdmin creates the default admin account when no account with
// that username exists yet.
func (s *AuthService) SeedDefaultAdmin(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := s.users.CreateIfAbsent(username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}
	if created {
		slog.Info("Default admin user created", "username", username)
	}
	return nil
}
