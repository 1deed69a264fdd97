package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ssokit/svcregistry/internal/domain/model"
	"github.com/ssokit/svcregistry/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByEmail retrieves a registered user by email. Returns nil, nil if no
// user holds the email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, user_email, user_role, created_at FROM sso_users WHERE user_email = ?`

	var user model.User
	var role string
	var createdAt string

	err := r.db.Reader.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}

	user.Role = model.UserRole(role)
	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &user, nil
}

// Upsert inserts a user or, on email conflict, replaces the role. Used by
// provisioning tooling rather than the request path.
func (r *UserRepo) Upsert(ctx context.Context, user model.User) error {
	const query = `
		INSERT INTO sso_users (user_email, user_role)
		VALUES (?, ?)
		ON CONFLICT(user_email) DO UPDATE SET
			user_role = excluded.user_role
	`

	_, err := r.db.Writer.ExecContext(ctx, query, user.Email, string(user.Role))
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.Email, err)
	}

	return nil
}
