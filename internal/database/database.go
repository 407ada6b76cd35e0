package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rollcall-io/rollcall/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("record not found")

// DB wraps the sql connection pool together with the driver it was opened
// with, so queries can be written once with ? placeholders and rebound for
// PostgreSQL.
type DB struct {
	conn   *sql.DB
	driver string
}

// Connect opens the configured database and verifies the connection.
func Connect(cfg *config.Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch cfg.DatabaseType {
	case "postgres":
		conn, err = openPostgres(cfg)
	case "sqlite":
		conn, err = openSQLite(cfg.DatabasePath)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, driver: cfg.DatabaseType}, nil
}

func openPostgres(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)
	return conn, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" && !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// SQLite supports a single writer.
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// EnsureDatabase makes sure the target PostgreSQL database exists, creating
// it if it does not. It connects to the maintenance database to do so. For
// SQLite this is a no-op: the file is created on first open.
func EnsureDatabase(cfg *config.Config) error {
	if cfg.DatabaseType != "postgres" {
		return nil
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseSSLMode,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer conn.Close()

	var exists bool
	err = conn.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DatabaseName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %s: %w", cfg.DatabaseName, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot take a bind parameter; the name comes from
	// our own configuration, quoted as an identifier.
	if _, err := conn.Exec(fmt.Sprintf("CREATE DATABASE %q", cfg.DatabaseName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DatabaseName, err)
	}
	log.Printf("Database %q created", cfg.DatabaseName)
	return nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return runMigrations(db.conn, db.driver)
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// rebind rewrites ? placeholders to $1..$N for PostgreSQL. Queries in this
// package are written with ? and must not contain literal question marks.
func (db *DB) rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// insert runs an INSERT and returns the generated id, using RETURNING on
// PostgreSQL and LastInsertId on SQLite.
func (db *DB) insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if db.driver == "postgres" {
		var id int64
		err := db.conn.QueryRowContext(ctx, db.rebind(query)+" RETURNING id", args...).Scan(&id)
		return id, err
	}

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
