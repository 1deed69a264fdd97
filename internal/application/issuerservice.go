package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ssokit/svcregistry/internal/domain/model"
	"github.com/ssokit/svcregistry/internal/domain/port/driven"
)

// maxKeyAttempts bounds the issuance loop. The keyspace is 2^256 so hitting
// this cap means something is broken, not that the keys ran out.
const maxKeyAttempts = 1000

// ErrKeyspaceExhausted is returned when issuance gives up after too many
// consecutive app key collisions.
var ErrKeyspaceExhausted = errors.New("app key generation exhausted retry budget")

// IssuerService issues client credentials: a store-unique app key paired
// with a fresh secret. It depends only on the ClientStore port.
type IssuerService struct {
	clients driven.ClientStore
	logger  *slog.Logger
}

// NewIssuerService creates a new IssuerService.
func NewIssuerService(clients driven.ClientStore) *IssuerService {
	return &IssuerService{
		clients: clients,
		logger:  slog.Default(),
	}
}

// IssueCredential generates an app key, verifies it is not already held,
// pairs it with a new secret, and persists the client record. A key that
// collides, either at the existence check or at insert, is discarded and
// regenerated; any other store failure aborts the issuance. Service metadata
// starts empty and approval starts false, both filled in later through
// registration and review.
func (s *IssuerService) IssueCredential(ctx context.Context, email string) (*model.Client, error) {
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		appKey, err := GenerateAppKey()
		if err != nil {
			return nil, fmt.Errorf("generate app key: %w", err)
		}

		exists, err := s.clients.ExistsAppKey(ctx, appKey)
		if err != nil {
			return nil, fmt.Errorf("check app key: %w", err)
		}
		if exists {
			s.logger.Warn("app key collision, regenerating", "attempt", attempt)
			continue
		}

		secret, err := GenerateAppSecret()
		if err != nil {
			return nil, fmt.Errorf("generate app secret: %w", err)
		}

		client := model.Client{
			ClientEmail: email,
			AppKey:      appKey,
			AppSecret:   secret,
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}

		err = s.clients.Insert(ctx, client)
		if errors.Is(err, driven.ErrDuplicateAppKey) {
			// Lost a race with a concurrent issuance of the same key.
			s.logger.Warn("app key collision on insert, regenerating", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		return &client, nil
	}

	return nil, ErrKeyspaceExhausted
}
