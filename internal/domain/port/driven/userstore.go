package driven

import (
	"context"

	"github.com/ssokit/svcregistry/internal/domain/model"
)

// UserStore defines the driven port for SSO account lookups.
type UserStore interface {
	// GetByEmail returns the account with the given email, or (nil, nil)
	// when no account exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Upsert creates the account or replaces its role. Used by provisioning
	// tooling; request handling never writes accounts.
	Upsert(ctx context.Context, user model.User) error
}
