package auth

import (
	"context"
	"errors"

	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

var (
	// ErrIdentityGone means the token checked out but its user no longer
	// exists, e.g. the account was deleted after issuance.
	ErrIdentityGone = errors.New("user for token no longer exists")

	// ErrForbidden means the identity is valid but lacks the role the
	// operation requires.
	ErrForbidden = errors.New("insufficient role")
)

// Identity is the result of a successful token validation, consumed by the
// role gates and by handlers for submitted_by attribution.
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
	User     *models.User
}

// Authenticator validates presented bearer tokens against the signing key
// and the token store. Every request re-reads the store; there is no
// in-process cache, so revocation by re-login is visible immediately.
type Authenticator struct {
	tokens *TokenManager
	db     *database.DB
}

func NewAuthenticator(tokens *TokenManager, db *database.DB) *Authenticator {
	return &Authenticator{tokens: tokens, db: db}
}

// Authenticate runs the full validation sequence for a presented token:
// signature and claims, then the store check (the stored token must
// byte-match and be unexpired; a later login replaces it), then identity
// resolution. Token-level failures return ErrInvalidToken; a missing user
// returns ErrIdentityGone; anything else is a store error.
func (a *Authenticator) Authenticate(ctx context.Context, tokenString string) (*Identity, error) {
	claims, err := a.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	stored, err := a.db.GetTokenByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if stored.Token != tokenString || stored.IsExpired() {
		return nil, ErrInvalidToken
	}

	user, err := a.db.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrIdentityGone
		}
		return nil, err
	}

	return &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		User:     user,
	}, nil
}

// RequireAdmin passes the identity through if it is an admin.
func RequireAdmin(identity *Identity) error {
	if identity.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// RequireAdminOrTeacher passes the identity through if it may record
// attendance.
func RequireAdminOrTeacher(identity *Identity) error {
	if identity.Role != models.RoleAdmin && identity.Role != models.RoleTeacher {
		return ErrForbidden
	}
	return nil
}

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}
