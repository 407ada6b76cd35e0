package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

// ReplaceToken deletes every token owned by userID and inserts the new one
// in a single transaction, so a concurrent reader never observes zero or
// two live tokens for a user. This is the single-session policy: logging
// in again anywhere invalidates the previous token immediately.
func (db *DB) ReplaceToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin token transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, db.rebind("DELETE FROM tokens WHERE user_id = ?"), userID); err != nil {
		return fmt.Errorf("failed to evict previous tokens: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		db.rebind("INSERT INTO tokens (user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?)"),
		userID, token, expiresAt, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return tx.Commit()
}

// GetTokenByUserID returns the user's live token row, or ErrNotFound.
func (db *DB) GetTokenByUserID(ctx context.Context, userID int64) (*models.Token, error) {
	var t models.Token
	err := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT id, user_id, token, expires_at, created_at FROM tokens WHERE user_id = ?"),
		userID,
	).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CountTokensForUser reports how many token rows a user owns. The store
// invariant keeps this at zero or one.
func (db *DB) CountTokensForUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, db.rebind("SELECT COUNT(*) FROM tokens WHERE user_id = ?"), userID).Scan(&n)
	return n, err
}
