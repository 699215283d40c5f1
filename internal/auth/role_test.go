package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromFlags(t *testing.T) {
	assert.Equal(t, RoleUser, RoleFromFlags(false, false))
	assert.Equal(t, RoleModerator, RoleFromFlags(false, true))
	assert.Equal(t, RoleAdmin, RoleFromFlags(true, false))

	// Admin wins when both flags are set.
	assert.Equal(t, RoleAdmin, RoleFromFlags(true, true))
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleModerator, false},
		{RoleUser, RoleAdmin, false},
		{RoleModerator, RoleUser, true},
		{RoleModerator, RoleModerator, true},
		{RoleModerator, RoleAdmin, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleModerator, true},
		{RoleAdmin, RoleAdmin, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.AtLeast(tc.min), "%s >= %s", tc.role, tc.min)
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "moderator", RoleModerator.String())
	assert.Equal(t, "admin", RoleAdmin.String())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}
