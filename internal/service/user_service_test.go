package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qanda/api/internal/apperr"
	"qanda/api/internal/models"
)

func TestProfile(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.signedInUser(t, "alice", models.RoleNonAdmin)
	_, bobToken := f.signedInUser(t, "bob", models.RoleNonAdmin)

	profile, err := f.users.Profile(context.Background(), bobToken, alice.UUID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
}

func TestProfileRequiresSession(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.signedInUser(t, "alice", models.RoleNonAdmin)

	_, err := f.users.Profile(context.Background(), "never-issued", alice.UUID)
	assert.Equal(t, apperr.CodeNotSignedIn, apperr.CodeOf(err))
}

func TestProfileUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, token := f.signedInUser(t, "alice", models.RoleNonAdmin)

	_, err := f.users.Profile(context.Background(), token, "no-such-user")
	assert.Equal(t, apperr.CodeUserNotFound, apperr.CodeOf(err))
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.signedInUser(t, "alice", models.RoleNonAdmin)
	_, bobToken := f.signedInUser(t, "bob", models.RoleNonAdmin)

	err := f.users.Delete(context.Background(), bobToken, alice.UUID)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

// The role check runs before target existence: a nonadmin deleting a
// nonexistent user still gets the authorization failure.
func TestDeleteUserRoleCheckedBeforeExistence(t *testing.T) {
	f := newFixture(t)
	_, bobToken := f.signedInUser(t, "bob", models.RoleNonAdmin)

	err := f.users.Delete(context.Background(), bobToken, "no-such-user")
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestDeleteUserAsAdmin(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.signedInUser(t, "alice", models.RoleNonAdmin)
	_, adminToken := f.signedInUser(t, "root", models.RoleAdmin)

	require.NoError(t, f.users.Delete(context.Background(), adminToken, alice.UUID))

	_, err := f.users.Profile(context.Background(), adminToken, alice.UUID)
	assert.Equal(t, apperr.CodeUserNotFound, apperr.CodeOf(err))
}

func TestDeleteUnknownUserAsAdmin(t *testing.T) {
	f := newFixture(t)
	_, adminToken := f.signedInUser(t, "root", models.RoleAdmin)

	err := f.users.Delete(context.Background(), adminToken, "no-such-user")
	assert.Equal(t, apperr.CodeUserNotFound, apperr.CodeOf(err))
}
