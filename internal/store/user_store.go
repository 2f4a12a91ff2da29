package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/existflow/taskhub/internal/model"
)

// CreateUser inserts a new user. A duplicate email yields
// ErrDuplicate.
func (s *SQLStore) CreateUser(ctx context.Context, u model.User) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UserByID retrieves a user by ID.
func (s *SQLStore) UserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &u, nil
}

// UserByEmail retrieves a user by email.
func (s *SQLStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return &u, nil
}

// UsersByIDs retrieves the users whose IDs are in the given set.
// Missing IDs are skipped, not errors.
func (s *SQLStore) UsersByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("building user query: %w", err)
	}

	var users []model.User
	if err := s.db.SelectContext(ctx, &users, s.q(query), args...); err != nil {
		return nil, fmt.Errorf("getting users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// CreateSession inserts a new session.
func (s *SQLStore) CreateSession(ctx context.Context, sess model.Session) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		sess.ID, sess.UserID, sess.Token, sess.ExpiresAt, sess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// SessionByToken retrieves a session by its token.
func (s *SQLStore) SessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var sess model.Session
	err := s.db.GetContext(ctx, &sess, s.q(`SELECT * FROM sessions WHERE token = ?`), token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes the session with the given token.
func (s *SQLStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM sessions WHERE token = ?`), token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
