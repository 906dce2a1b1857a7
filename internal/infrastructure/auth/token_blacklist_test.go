package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blacklistContract runs the behavior every TokenBlacklist must share.
func blacklistContract(t *testing.T, bl auth.TokenBlacklist) {
	ctx := context.Background()

	t.Run("revoked jti until ttl lapses", func(t *testing.T) {
		logout := uuid.NewString()
		rotated := uuid.NewString()
		require.NoError(t, bl.AddToBlacklist(ctx, logout, time.Minute))
		require.NoError(t, bl.AddToBlacklist(ctx, rotated, 1100*time.Millisecond))

		revoked, err := bl.IsBlacklisted(ctx, logout)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = bl.IsBlacklisted(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, revoked)

		assert.Eventually(t, func() bool {
			revoked, err := bl.IsBlacklisted(ctx, rotated)
			return err == nil && !revoked
		}, 3*time.Second, 50*time.Millisecond)
	})

	t.Run("user revocation covers earlier tokens only", func(t *testing.T) {
		clerk := uuid.NewString()
		issued := time.Now().Add(-10 * time.Minute)

		invalid, err := bl.IsUserTokenInvalidated(ctx, clerk, issued)
		require.NoError(t, err)
		assert.False(t, invalid, "no revocation recorded yet")

		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, clerk, time.Hour))

		invalid, err = bl.IsUserTokenInvalidated(ctx, clerk, issued)
		require.NoError(t, err)
		assert.True(t, invalid)

		invalid, err = bl.IsUserTokenInvalidated(ctx, clerk, time.Now().Add(2*time.Second))
		require.NoError(t, err)
		assert.False(t, invalid, "tokens from a later login stay valid")

		invalid, err = bl.IsUserTokenInvalidated(ctx, uuid.NewString(), issued)
		require.NoError(t, err)
		assert.False(t, invalid, "other users are untouched")
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	blacklistContract(t, auth.NewInMemoryTokenBlacklist())
}

func TestInMemoryTokenBlacklist_ZeroTTLNeverLapses(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "manager-1", 0))

	invalid, err := bl.IsUserTokenInvalidated(ctx, "manager-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, invalid)
}
