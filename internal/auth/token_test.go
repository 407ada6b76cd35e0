package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall-io/rollcall/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Role:     models.RoleTeacher,
		FullName: "Grace Hopper",
		Username: "ghopper",
		Email:    "ghopper@example.com",
	}
}

func TestIssueAndParse(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	token, expiresAt, err := tm.Issue(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ghopper", claims.Username)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.NotEmpty(t, claims.ID, "every token carries a unique jti")
}

func TestParseRejectsWrongKey(t *testing.T) {
	issuer, err := NewTokenManager("secret-one", "HS256", time.Minute)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-two", "HS256", time.Minute)
	require.NoError(t, err)

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", -time.Minute)
	require.NoError(t, err)

	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseRejectsIncompleteClaims(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)

	// Signed with the right key but missing identity claims.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "ghost",
		"exp":      time.Now().Add(time.Minute).Unix(),
	})
	token, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerValidation(t *testing.T) {
	_, err := NewTokenManager("", "HS256", time.Minute)
	assert.Error(t, err)

	_, err = NewTokenManager("secret", "RS256", time.Minute)
	assert.Error(t, err)

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		_, err := NewTokenManager("secret", alg, time.Minute)
		assert.NoError(t, err)
	}
}
