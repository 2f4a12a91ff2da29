package resolver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/taskhub/internal/logger"
	"github.com/existflow/taskhub/internal/model"
	"github.com/existflow/taskhub/internal/policy"
	"github.com/existflow/taskhub/internal/store"

	"github.com/google/uuid"
)

// MinPasswordLength is enforced at registration.
const MinPasswordLength = 8

// Register creates an account and an initial session. A duplicate
// email fails with a conflict.
func (r *Resolver) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, policy.ErrInvalidInput("name, email, and password required")
	}
	if len(password) < MinPasswordLength {
		return nil, policy.ErrInvalidInput(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			logger.Warn("Registration attempted with existing email", logger.F("email", email))
			return nil, policy.ErrConflict("Email already in use")
		}
		return nil, err
	}

	session, err := r.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", logger.F("user_id", user.ID), logger.F("email", email))

	return &AuthResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      user,
	}, nil
}

// Login verifies credentials and creates a session. The error does
// not reveal whether the email exists.
func (r *Resolver) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := r.store.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		logger.Warn("Login failed - user not found", logger.F("email", email))
		return nil, policy.ErrInvalidCredentials()
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login failed - invalid password", logger.F("user_id", user.ID))
		return nil, policy.ErrInvalidCredentials()
	}

	session, err := r.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", logger.F("user_id", user.ID), logger.F("email", email))

	return &AuthResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      *user,
	}, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (r *Resolver) Logout(ctx context.Context, token string) error {
	return r.store.DeleteSession(ctx, token)
}

// CurrentUser returns the caller's user record, or nil for an
// anonymous caller. This is the one operation that does not fail on
// a missing identity.
func (r *Resolver) CurrentUser(ctx context.Context, callerID string) (*model.User, error) {
	if callerID == "" {
		return nil, nil
	}
	user, err := r.store.UserByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// CallerFromToken resolves a session token to a user ID. Invalid or
// expired tokens yield an empty ID, never an error, so requests can
// proceed unauthenticated.
func (r *Resolver) CallerFromToken(ctx context.Context, token string) string {
	if token == "" {
		return ""
	}
	session, err := r.store.SessionByToken(ctx, token)
	if err != nil || session.IsExpired() {
		return ""
	}
	return session.UserID
}

func (r *Resolver) createSession(ctx context.Context, userID string) (*model.Session, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	session := model.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     hex.EncodeToString(tokenBytes),
		ExpiresAt: time.Now().Add(r.sessionTTL),
		CreatedAt: time.Now().UTC(),
	}

	if err := r.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}
