package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

const userColumns = "id, role, full_name, username, email, password_hash, submitted_by, created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Role, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.SubmittedBy, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. The password hash must already be set.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()
	id, err := db.insert(ctx,
		"INSERT INTO users (role, full_name, username, email, password_hash, submitted_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.Role, u.FullName, u.Username, u.Email, u.PasswordHash, u.SubmittedBy, u.CreatedAt,
	)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	return scanUser(row)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+userColumns+" FROM users WHERE username = ?"), username)
	return scanUser(row)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	return scanUser(row)
}

func (db *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Role, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.SubmittedBy, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites all mutable columns of the user row.
func (db *DB) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE users SET role = ?, full_name = ?, username = ?, email = ?, password_hash = ?, submitted_by = ? WHERE id = ?"),
		u.Role, u.FullName, u.Username, u.Email, u.PasswordHash, u.SubmittedBy, u.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

// DeleteUser hard-deletes the user. Any live token rows for the user are
// deliberately left behind; they fail validation at identity resolution.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
