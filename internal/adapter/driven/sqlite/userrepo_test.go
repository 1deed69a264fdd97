package sqlite

import (
	"context"
	"testing"

	"github.com/ssokit/svcregistry/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	err := repo.Upsert(ctx, model.User{Email: "alice@example.com", Role: model.RoleClient})
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, model.RoleClient, got.Role)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserRepo_Upsert_ReplacesRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, model.User{Email: "alice@example.com", Role: model.RoleClient}))
	require.NoError(t, repo.Upsert(ctx, model.User{Email: "alice@example.com", Role: model.RoleAdmin}))

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.RoleAdmin, got.Role)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	got, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got, "unknown user should return nil without error")
}
