package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall-io/rollcall/internal/config"
	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "auth_test.db"),
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *database.DB, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Role:     role,
		FullName: "Test " + username,
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, u.SetPassword("password123"))
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func TestAuthenticateHappyPath(t *testing.T) {
	db := newTestDB(t)
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	a := NewAuthenticator(tm, db)

	user := createTestUser(t, db, "alice", models.RoleAdmin)
	token, expiresAt, err := tm.Issue(user)
	require.NoError(t, err)
	require.NoError(t, db.ReplaceToken(context.Background(), user.ID, token, expiresAt))

	identity, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	require.NotNil(t, identity.User)
	assert.Equal(t, user.Email, identity.User.Email)
}

func TestAuthenticateRejectsUnstoredToken(t *testing.T) {
	db := newTestDB(t)
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	a := NewAuthenticator(tm, db)

	user := createTestUser(t, db, "bob", models.RoleTeacher)
	token, _, err := tm.Issue(user)
	require.NoError(t, err)

	// Never persisted: signature is fine but the store has no row.
	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsSupersededToken(t *testing.T) {
	db := newTestDB(t)
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	a := NewAuthenticator(tm, db)

	user := createTestUser(t, db, "carol", models.RoleTeacher)

	first, firstExp, err := tm.Issue(user)
	require.NoError(t, err)
	require.NoError(t, db.ReplaceToken(context.Background(), user.ID, first, firstExp))

	second, secondExp, err := tm.Issue(user)
	require.NoError(t, err)
	require.NoError(t, db.ReplaceToken(context.Background(), user.ID, second, secondExp))

	_, err = a.Authenticate(context.Background(), first)
	assert.ErrorIs(t, err, ErrInvalidToken, "superseded token must be rejected")

	identity, err := a.Authenticate(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestAuthenticateRejectsExpiredStoredToken(t *testing.T) {
	db := newTestDB(t)
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	a := NewAuthenticator(tm, db)

	user := createTestUser(t, db, "dave", models.RoleOther)
	token, _, err := tm.Issue(user)
	require.NoError(t, err)
	// Stored expiry already in the past, even though the JWT exp is not.
	require.NoError(t, db.ReplaceToken(context.Background(), user.ID, token, time.Now().Add(-time.Minute)))

	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	db := newTestDB(t)
	tm, err := NewTokenManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)
	a := NewAuthenticator(tm, db)

	user := createTestUser(t, db, "erin", models.RoleTeacher)
	token, expiresAt, err := tm.Issue(user)
	require.NoError(t, err)
	require.NoError(t, db.ReplaceToken(context.Background(), user.ID, token, expiresAt))
	require.NoError(t, db.DeleteUser(context.Background(), user.ID))

	// The token still byte-matches the store; the failure is the missing
	// identity, not the token.
	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrIdentityGone)
}

func TestRoleGates(t *testing.T) {
	admin := &Identity{Role: models.RoleAdmin}
	teacher := &Identity{Role: models.RoleTeacher}
	other := &Identity{Role: models.RoleOther}

	assert.NoError(t, RequireAdmin(admin))
	assert.ErrorIs(t, RequireAdmin(teacher), ErrForbidden)
	assert.ErrorIs(t, RequireAdmin(other), ErrForbidden)

	assert.NoError(t, RequireAdminOrTeacher(admin))
	assert.NoError(t, RequireAdminOrTeacher(teacher))
	assert.ErrorIs(t, RequireAdminOrTeacher(other), ErrForbidden)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	identity := &Identity{UserID: 7, Username: "frank", Role: models.RoleAdmin}
	ctx := WithIdentity(context.Background(), identity)

	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, identity, got)

	_, ok = IdentityFromContext(context.Background())
	assert.False(t, ok)
}
