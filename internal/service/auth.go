// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/clientbook/clientbook/internal/auth"
	"github.com/clientbook/clientbook/internal/metrics"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/repository"
)

// MinPasswordLength is the shortest password accepted at registration and reset.
const MinPasswordLength = 6

// Confirmation messages returned by the password reset flow.
const (
	MsgResetRequested = "Password reset instructions sent to your email"
	MsgResetDone      = "Password reset successfully"
)

// AuthService handles registration, login, tokens and profile management.
type AuthService struct {
	users   UserStore
	cache   ProfileCache
	tokens  *auth.TokenManager
	metrics metrics.Recorder
	logger  *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService. cache may be nil.
func NewAuthService(users UserStore, cache ProfileCache, tokens *auth.TokenManager, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:   users,
		cache:   cache,
		tokens:  tokens,
		metrics: recorder,
		logger:  logger,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// AuthResult is the user projection plus a freshly issued session token.
type AuthResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// ProfilePatch carries profile fields to change. Empty strings leave
// FullName, Email and ProfilePicture untouched; a non-nil Phone always applies.
type ProfilePatch struct {
	FullName       string
	Email          string
	Phone          *string
	ProfilePicture string
}

// Register creates a user and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, invalid("fullName", "is required")
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validatePassword("password", input.Password); err != nil {
		return nil, err
	}

	_, err := s.users.GetUserByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           generateULID(),
		FullName:     fullName,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	s.logger.Info("user registered", "user_id", user.ID)

	return s.issue(user)
}

// Login verifies credentials and issues a new, independent session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		_, _ = auth.VerifyPassword(password, s.dummy())
		return nil, s.loginFailed("missing_fields", "")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		// Burn the same hashing cost as a real comparison.
		_, _ = auth.VerifyPassword(password, s.dummy())
		return nil, s.loginFailed("unknown_email", "")
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash unreadable", "user_id", user.ID, "error", err)
		return nil, s.loginFailed("bad_hash", user.ID)
	}
	if !ok {
		return nil, s.loginFailed("password_mismatch", user.ID)
	}

	s.metrics.IncLogin(metrics.LoginSuccess)
	return s.issue(user)
}

// VerifyToken checks signature and expiry and returns the encoded identity.
func (s *AuthService) VerifyToken(token string) (*model.Identity, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return identity, nil
}

// GetProfile returns the user without credentials, served from cache when possible.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProfile(ctx, userID)
		if err != nil {
			s.logger.Warn("profile cache read failed", "user_id", userID, "error", err)
		}
		if cached != nil {
			s.metrics.IncProfileCacheHit()
			return cached, nil
		}
		s.metrics.IncProfileCacheMiss()
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.AddProfile(ctx, user); err != nil {
			s.logger.Warn("profile cache write failed", "user_id", userID, "error", err)
		}
	}

	return user, nil
}

// UpdateProfile applies patch to the user's mutable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if name := strings.TrimSpace(patch.FullName); name != "" {
		user.FullName = name
	}
	if patch.Email != "" {
		if err := validateEmail(patch.Email); err != nil {
			return nil, err
		}
		user.Email = patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.ProfilePicture != "" {
		user.ProfilePicture = patch.ProfilePicture
	}

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.refreshProfile(ctx, user)
	return user, nil
}

// RequestPasswordReset confirms the account exists. No token is issued and no email is sent.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", invalid("email", "is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return MsgResetRequested, nil
}

// ResetPassword overwrites the password hash of the account with the given email.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) (string, error) {
	if email == "" {
		return "", invalid("email", "is required")
	}
	if err := validatePassword("newPassword", newPassword); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to reset password: %w", err)
	}

	s.metrics.IncPasswordReset()
	s.invalidateProfile(ctx, user.ID)
	s.logger.Info("password reset", "user_id", user.ID)

	return MsgResetDone, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) loginFailed(reason, userID string) error {
	s.metrics.IncLogin(metrics.LoginFailure)
	s.logger.Info("login failed", "reason", reason, "user_id", userID)
	return ErrInvalidCredentials
}

func (s *AuthService) hashPassword(password string) (string, error) {
	start := time.Now()
	hash, err := auth.HashPassword(password)
	s.metrics.ObservePasswordHashDuration(time.Since(start))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// refreshProfile overwrites the cached profile so concurrent read-through
// fills of the old row cannot replace it.
func (s *AuthService) refreshProfile(ctx context.Context, user *model.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetProfile(ctx, user); err != nil {
		s.logger.Warn("profile cache refresh failed", "user_id", user.ID, "error", err)
		s.invalidateProfile(ctx, user.ID)
	}
}

func (s *AuthService) invalidateProfile(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteProfile(ctx, userID); err != nil {
		s.logger.Warn("profile cache invalidation failed", "user_id", userID, "error", err)
	}
}

// dummy returns a valid hash used to equalize timing for unknown emails.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword(generateULID())
		if err != nil {
			s.logger.Error("dummy hash generation failed", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "is not a valid address")
	}
	return nil
}

func validatePassword(field, password string) error {
	if password == "" {
		return invalid(field, "is required")
	}
	if len(password) < MinPasswordLength {
		return invalid(field, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// generateULID generates a new ULID string.
func generateULID() string {
	return ulid.Make().String()
}
