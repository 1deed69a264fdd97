package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ssokit/svcregistry/internal/domain/model"
	"github.com/ssokit/svcregistry/internal/domain/port/driven"
)

var (
	// ErrUserNotFound is returned when the requesting email is not a
	// registered platform user.
	ErrUserNotFound = errors.New("user not registered")

	// ErrServiceNotFound is returned when a listing or lookup matches no
	// stored service.
	ErrServiceNotFound = errors.New("no services found")

	// ErrUnauthorizedRole is returned when the requesting user's role grants
	// no access to the operation.
	ErrUnauthorizedRole = errors.New("role not authorized")
)

// ServiceListing is one row of the role-filtered service list. The app
// secret is deliberately absent; EncAppKey carries the wrapped identifier
// so callers can hand it to browsers and third parties.
type ServiceListing struct {
	ServiceName   string
	ServiceDomain string
	ServiceURI    string
	AppKey        string
	EncAppKey     string
	Approved      bool
	CreatedAt     time.Time
}

// RegistryService exposes the registered-service operations: role-based
// listing, metadata registration, approval, and lookup by wrapped
// identifier. It depends only on port interfaces and the Codec.
type RegistryService struct {
	clients driven.ClientStore
	users   driven.UserStore
	codec   *Codec
}

// NewRegistryService creates a new RegistryService with the required
// dependencies.
func NewRegistryService(clients driven.ClientStore, users driven.UserStore, codec *Codec) *RegistryService {
	return &RegistryService{
		clients: clients,
		users:   users,
		codec:   codec,
	}
}

// ListServices returns the services visible to the given user. CL-USER sees
// services registered to their own email, ADMIN-USER sees every service, and
// any other role is rejected. Each listing carries a freshly wrapped app key.
func (s *RegistryService) ListServices(ctx context.Context, email string) ([]ServiceListing, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up user %s: %w", email, err)
	}
	if user == nil {
		return nil, fmt.Errorf("list services for %s: %w", email, ErrUserNotFound)
	}

	var clients []model.Client
	switch user.Role {
	case model.RoleClient:
		clients, err = s.clients.ListByEmail(ctx, email)
	case model.RoleAdmin:
		clients, err = s.clients.ListAll(ctx)
	default:
		return nil, fmt.Errorf("list services for %s, role %q: %w", email, user.Role, ErrUnauthorizedRole)
	}
	if err != nil {
		return nil, err
	}

	if len(clients) == 0 {
		return nil, fmt.Errorf("list services for %s: %w", email, ErrServiceNotFound)
	}

	listings := make([]ServiceListing, 0, len(clients))
	for _, client := range clients {
		encKey, err := s.codec.Wrap(client.AppKey)
		if err != nil {
			return nil, fmt.Errorf("wrap app key: %w", err)
		}

		listings = append(listings, ServiceListing{
			ServiceName:   client.ServiceName,
			ServiceDomain: client.ServiceDomain,
			ServiceURI:    client.ServiceURI,
			AppKey:        client.AppKey,
			EncAppKey:     encKey,
			Approved:      client.Approved,
			CreatedAt:     client.CreatedAt,
		})
	}

	return listings, nil
}

// RegisterService stores service metadata on the credential matching the
// email and app key, sending the record back through approval.
func (s *RegistryService) RegisterService(ctx context.Context, email, appKey, name, domain, uri string) error {
	return s.clients.UpdateService(ctx, email, appKey, name, domain, uri)
}

// ApproveService marks the credential matching the email and app key as
// approved. The store reports an absent combination and a repeated approval
// as distinct errors.
func (s *RegistryService) ApproveService(ctx context.Context, email, appKey string) error {
	return s.clients.Approve(ctx, email, appKey)
}

// FetchClient resolves a wrapped identifier to the full stored credential,
// including the app secret.
func (s *RegistryService) FetchClient(ctx context.Context, wrappedID string) (*model.Client, error) {
	appKey, err := s.codec.Unwrap(wrappedID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByAppKey(ctx, appKey)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("fetch client: %w", driven.ErrClientNotFound)
	}

	return client, nil
}
