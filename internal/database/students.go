package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

const studentColumns = "id, full_name, class_name, department_id, submitted_by, updated_at"

func scanStudent(row *sql.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.FullName, &s.ClassName, &s.DepartmentID, &s.SubmittedBy, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) CreateStudent(ctx context.Context, s *models.Student) error {
	s.UpdatedAt = time.Now().UTC()
	id, err := db.insert(ctx,
		"INSERT INTO students (full_name, class_name, department_id, submitted_by, updated_at) VALUES (?, ?, ?, ?, ?)",
		s.FullName, s.ClassName, s.DepartmentID, s.SubmittedBy, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (db *DB) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+studentColumns+" FROM students WHERE id = ?"), id)
	return scanStudent(row)
}

func (db *DB) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return db.queryStudents(ctx, "SELECT "+studentColumns+" FROM students ORDER BY id")
}

func (db *DB) ListStudentsByDepartment(ctx context.Context, departmentID int64) ([]*models.Student, error) {
	return db.queryStudents(ctx,
		db.rebind("SELECT "+studentColumns+" FROM students WHERE department_id = ? ORDER BY id"),
		departmentID,
	)
}

func (db *DB) queryStudents(ctx context.Context, query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.FullName, &s.ClassName, &s.DepartmentID, &s.SubmittedBy, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}

func (db *DB) UpdateStudent(ctx context.Context, s *models.Student) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE students SET full_name = ?, class_name = ?, department_id = ?, submitted_by = ?, updated_at = ? WHERE id = ?"),
		s.FullName, s.ClassName, s.DepartmentID, s.SubmittedBy, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (db *DB) DeleteStudent(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM students WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}
