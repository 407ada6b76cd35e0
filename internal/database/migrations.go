package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// Migration is a single versioned schema change.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

func getMigrations(dbType string) []Migration {
	if dbType == "postgres" {
		return postgresMigrations()
	}
	return sqliteMigrations()
}

func postgresMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users table",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				role VARCHAR(50) NOT NULL,
				full_name VARCHAR(255) NOT NULL,
				username VARCHAR(255) UNIQUE NOT NULL,
				email VARCHAR(255) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				submitted_by INTEGER,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     2,
			Description: "Create tokens table",
			// No foreign key on user_id: a deleted user's token row must
			// survive so validation can fail at identity resolution.
			SQL: `CREATE TABLE IF NOT EXISTS tokens (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL,
				token TEXT UNIQUE NOT NULL,
				expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     3,
			Description: "Create departments table",
			SQL: `CREATE TABLE IF NOT EXISTS departments (
				id SERIAL PRIMARY KEY,
				dept_name VARCHAR(255) UNIQUE NOT NULL,
				submitted_by INTEGER NOT NULL
			)`,
		},
		{
			Version:     4,
			Description: "Create students table",
			SQL: `CREATE TABLE IF NOT EXISTS students (
				id SERIAL PRIMARY KEY,
				full_name VARCHAR(255) NOT NULL,
				class_name VARCHAR(255) NOT NULL,
				department_id INTEGER NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
				submitted_by INTEGER NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     5,
			Description: "Create courses table",
			SQL: `CREATE TABLE IF NOT EXISTS courses (
				id SERIAL PRIMARY KEY,
				course_name VARCHAR(255) UNIQUE NOT NULL,
				class_name VARCHAR(255) UNIQUE NOT NULL,
				semester VARCHAR(50) NOT NULL,
				lecture_hours INTEGER NOT NULL,
				department_id INTEGER NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
				submitted_by INTEGER NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			)`,
		},
		{
			Version:     6,
			Description: "Create attendance_logs table",
			SQL: `CREATE TABLE IF NOT EXISTS attendance_logs (
				id SERIAL PRIMARY KEY,
				present BOOLEAN NOT NULL,
				student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
				course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
				submitted_by INTEGER NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				UNIQUE (course_id, student_id)
			)`,
		},
		{
			Version:     7,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
				CREATE INDEX IF NOT EXISTS idx_users_submitted_by ON users(submitted_by);
				CREATE INDEX IF NOT EXISTS idx_tokens_user_id ON tokens(user_id);
				CREATE INDEX IF NOT EXISTS idx_students_department_id ON students(department_id);
				CREATE INDEX IF NOT EXISTS idx_courses_department_id ON courses(department_id);
				CREATE INDEX IF NOT EXISTS idx_attendance_logs_student_id ON attendance_logs(student_id);
				CREATE INDEX IF NOT EXISTS idx_attendance_logs_course_id ON attendance_logs(course_id);`,
		},
	}
}

func sqliteMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users table",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				role TEXT NOT NULL,
				full_name TEXT NOT NULL,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				submitted_by INTEGER,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
		{
			Version:     2,
			Description: "Create tokens table",
			SQL: `CREATE TABLE IF NOT EXISTS tokens (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				token TEXT UNIQUE NOT NULL,
				expires_at DATETIME NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
		{
			Version:     3,
			Description: "Create departments table",
			SQL: `CREATE TABLE IF NOT EXISTS departments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				dept_name TEXT UNIQUE NOT NULL,
				submitted_by INTEGER NOT NULL
			)`,
		},
		{
			Version:     4,
			Description: "Create students table",
			SQL: `CREATE TABLE IF NOT EXISTS students (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				full_name TEXT NOT NULL,
				class_name TEXT NOT NULL,
				department_id INTEGER NOT NULL,
				submitted_by INTEGER NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (department_id) REFERENCES departments(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     5,
			Description: "Create courses table",
			SQL: `CREATE TABLE IF NOT EXISTS courses (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				course_name TEXT UNIQUE NOT NULL,
				class_name TEXT UNIQUE NOT NULL,
				semester TEXT NOT NULL,
				lecture_hours INTEGER NOT NULL,
				department_id INTEGER NOT NULL,
				submitted_by INTEGER NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (department_id) REFERENCES departments(id) ON DELETE CASCADE
			)`,
		},
		{
			Version:     6,
			Description: "Create attendance_logs table",
			SQL: `CREATE TABLE IF NOT EXISTS attendance_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				present BOOLEAN NOT NULL,
				student_id INTEGER NOT NULL,
				course_id INTEGER NOT NULL,
				submitted_by INTEGER NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
				FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE,
				UNIQUE (course_id, student_id)
			)`,
		},
		{
			Version:     7,
			Description: "Create indexes",
			SQL: `CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
				CREATE INDEX IF NOT EXISTS idx_users_submitted_by ON users(submitted_by);
				CREATE INDEX IF NOT EXISTS idx_tokens_user_id ON tokens(user_id);
				CREATE INDEX IF NOT EXISTS idx_students_department_id ON students(department_id);
				CREATE INDEX IF NOT EXISTS idx_courses_department_id ON courses(department_id);
				CREATE INDEX IF NOT EXISTS idx_attendance_logs_student_id ON attendance_logs(student_id);
				CREATE INDEX IF NOT EXISTS idx_attendance_logs_course_id ON attendance_logs(course_id);`,
		},
	}
}

func createMigrationsTable(conn *sql.DB, dbType string) error {
	var query string
	if dbType == "postgres" {
		query = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`
	} else {
		query = `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	}
	_, err := conn.Exec(query)
	return err
}

func appliedMigrations(conn *sql.DB) (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := conn.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return applied, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return applied, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func recordMigration(conn *sql.DB, dbType string, version int) error {
	query := "INSERT INTO schema_migrations (version) VALUES (?)"
	if dbType == "postgres" {
		query = "INSERT INTO schema_migrations (version) VALUES ($1)"
	}
	_, err := conn.Exec(query, version)
	return err
}

// runMigrations applies all pending migrations in version order. Applying
// an already-migrated database is a no-op.
func runMigrations(conn *sql.DB, dbType string) error {
	if err := createMigrationsTable(conn, dbType); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(conn)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, migration := range getMigrations(dbType) {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Applying migration %d: %s", migration.Version, migration.Description)

		for _, stmt := range strings.Split(migration.SQL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := conn.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
			}
		}

		if err := recordMigration(conn, dbType, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
