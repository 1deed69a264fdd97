package driven

import (
	"context"
	"errors"

	"github.com/ssokit/svcregistry/internal/domain/model"
)

// Sentinel errors returned by ClientStore implementations.
var (
	// ErrDuplicateAppKey indicates an insert lost the check-then-insert race
	// and hit the unique index on the app key.
	ErrDuplicateAppKey = errors.New("app key already exists")

	// ErrClientNotFound indicates no credential matched the given owner and
	// app key combination.
	ErrClientNotFound = errors.New("client credential not found")

	// ErrAlreadyApproved indicates the service was approved previously.
	ErrAlreadyApproved = errors.New("service already approved")
)

// ClientStore defines the driven port for issued-credential persistence.
// Lookups return (nil, nil) when no row matches; mutations report missing
// rows through sentinel errors.
type ClientStore interface {
	// Insert persists a freshly issued credential as a single atomic write.
	// Returns ErrDuplicateAppKey when the app key is already taken.
	Insert(ctx context.Context, client model.Client) error

	// ExistsAppKey reports whether any credential holds the given app key.
	ExistsAppKey(ctx context.Context, appKey string) (bool, error)

	// FindByAppKey returns the credential holding the given app key, or
	// (nil, nil) when none does.
	FindByAppKey(ctx context.Context, appKey string) (*model.Client, error)

	// ListByEmail returns all credentials owned by the given email, oldest
	// first.
	ListByEmail(ctx context.Context, email string) ([]model.Client, error)

	// ListAll returns every credential in the registry, oldest first.
	ListAll(ctx context.Context) ([]model.Client, error)

	// UpdateService replaces the service metadata on the (email, app key)
	// credential and clears its approval, pending a fresh review. Returns
	// ErrClientNotFound when the combination does not exist.
	UpdateService(ctx context.Context, email, appKey, name, domain, uri string) error

	// Approve marks the (email, app key) credential approved. Returns
	// ErrClientNotFound when the combination does not exist and
	// ErrAlreadyApproved when it was approved before.
	Approve(ctx context.Context, email, appKey string) error
}
