package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqr-labs/halal-catalog/internal/models"
)

func TestUsersStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("register and get by email", func(t *testing.T) {
		uid, err := storage.RegisterUser(ctx, models.User{
			Email:        "admin@example.com",
			Name:         "Admin",
			PasswordHash: "$2a$10$hash",
			Labels:       []string{models.AdminLabel},
		})
		require.NoError(t, err)
		require.NotEmpty(t, uid)

		got, err := storage.GetUserByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, uid, got.UID)
		assert.Equal(t, "Admin", got.Name)
		assert.Equal(t, "$2a$10$hash", got.PasswordHash)
		assert.Equal(t, []string{models.AdminLabel}, got.Labels)
		assert.True(t, got.IsAdmin())
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("labels survive round trip", func(t *testing.T) {
		uid, err := storage.RegisterUser(ctx, models.User{
			Email:        "staff@example.com",
			Name:         "Staff",
			PasswordHash: "$2a$10$hash",
			Labels:       []string{"viewer", "editor"},
		})
		require.NoError(t, err)

		got, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, []string{"viewer", "editor"}, got.Labels)
		assert.False(t, got.IsAdmin())
	})

	t.Run("empty labels read back as nil", func(t *testing.T) {
		uid, err := storage.RegisterUser(ctx, models.User{
			Email:        "nolabels@example.com",
			Name:         "No Labels",
			PasswordHash: "$2a$10$hash",
		})
		require.NoError(t, err)

		got, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Nil(t, got.Labels)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := storage.RegisterUser(ctx, models.User{
			Email:        "admin@example.com",
			Name:         "Impostor",
			PasswordHash: "$2a$10$hash",
		})
		assert.Error(t, err)
	})

	t.Run("missing user by email", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing user by uid", func(t *testing.T) {
		_, err := storage.GetUser(ctx, uuid.New().String())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
