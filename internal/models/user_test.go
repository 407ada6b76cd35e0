package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("correct horse battery staple"))

	assert.NotEmpty(t, u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "correct horse")

	assert.True(t, u.CheckPassword("correct horse battery staple"))
	assert.False(t, u.CheckPassword("wrong password"))
	assert.False(t, u.CheckPassword(""))
}

func TestHashesAreSalted(t *testing.T) {
	a, b := &User{}, &User{}
	require.NoError(t, a.SetPassword("password123"))
	require.NoError(t, b.SetPassword("password123"))

	// bcrypt salts per hash, so identical passwords differ on disk.
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
	assert.True(t, a.CheckPassword("password123"))
	assert.True(t, b.CheckPassword("password123"))
}

func TestCheckPasswordAgainstGarbageHash(t *testing.T) {
	u := &User{PasswordHash: "not-a-bcrypt-digest"}
	assert.False(t, u.CheckPassword("anything"))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleOther.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
