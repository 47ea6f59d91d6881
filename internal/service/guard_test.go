package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanda/api/internal/apperr"
	"qanda/api/internal/models"
	"qanda/api/internal/repository/memstore"
)

func TestResolveSession(t *testing.T) {
	store := memstore.New()

	user := &models.User{UUID: "u-1", Username: "alice", Role: models.RoleNonAdmin}
	require.NoError(t, store.Users().Create(context.Background(), user))

	now := time.Now()
	session := &models.AuthSession{
		UUID:        user.UUID,
		UserID:      user.ID,
		AccessToken: "live-token",
		LoginAt:     now,
		ExpiresAt:   now.Add(8 * time.Hour),
	}
	require.NoError(t, store.Sessions().Create(context.Background(), session))

	resolved, err := resolveSession(context.Background(), store, "live-token", "signed out")
	require.NoError(t, err)
	assert.Equal(t, user.UUID, resolved.User.UUID)
	assert.Equal(t, "alice", resolved.User.Username)
}

func TestResolveSessionUnknownToken(t *testing.T) {
	store := memstore.New()

	_, err := resolveSession(context.Background(), store, "never-issued", "signed out")
	assert.Equal(t, apperr.CodeNotSignedIn, apperr.CodeOf(err))
}

func TestResolveSessionSignedOutUsesCallerMessage(t *testing.T) {
	store := memstore.New()

	user := &models.User{UUID: "u-1", Username: "alice"}
	require.NoError(t, store.Users().Create(context.Background(), user))

	loggedOut := time.Now()
	session := &models.AuthSession{
		UserID:      user.ID,
		AccessToken: "stale-token",
		LoginAt:     loggedOut.Add(-time.Hour),
		ExpiresAt:   loggedOut.Add(7 * time.Hour),
		LogoutAt:    &loggedOut,
	}
	require.NoError(t, store.Sessions().Create(context.Background(), session))

	_, err := resolveSession(context.Background(), store, "stale-token", "Sign in first to post a question")
	assert.Equal(t, apperr.CodeSignedOut, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "Sign in first to post a question")
}

// The logout stamp is the only liveness signal; a session past its window
// but never signed out still resolves.
func TestResolveSessionIgnoresExpiry(t *testing.T) {
	store := memstore.New()

	user := &models.User{UUID: "u-1", Username: "alice"}
	require.NoError(t, store.Users().Create(context.Background(), user))

	session := &models.AuthSession{
		UserID:      user.ID,
		AccessToken: "expired-token",
		LoginAt:     time.Now().Add(-24 * time.Hour),
		ExpiresAt:   time.Now().Add(-16 * time.Hour),
	}
	require.NoError(t, store.Sessions().Create(context.Background(), session))

	resolved, err := resolveSession(context.Background(), store, "expired-token", "signed out")
	require.NoError(t, err)
	assert.Equal(t, user.UUID, resolved.User.UUID)
}
