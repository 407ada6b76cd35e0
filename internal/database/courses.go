package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

const courseColumns = "id, course_name, class_name, semester, lecture_hours, department_id, submitted_by, updated_at"

func scanCourse(row *sql.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.CourseName, &c.ClassName, &c.Semester, &c.LectureHours, &c.DepartmentID, &c.SubmittedBy, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) CreateCourse(ctx context.Context, c *models.Course) error {
	c.UpdatedAt = time.Now().UTC()
	id, err := db.insert(ctx,
		"INSERT INTO courses (course_name, class_name, semester, lecture_hours, department_id, submitted_by, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		c.CourseName, c.ClassName, c.Semester, c.LectureHours, c.DepartmentID, c.SubmittedBy, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (db *DB) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+courseColumns+" FROM courses WHERE id = ?"), id)
	return scanCourse(row)
}

func (db *DB) GetCourseByName(ctx context.Context, name string) (*models.Course, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+courseColumns+" FROM courses WHERE course_name = ?"), name)
	return scanCourse(row)
}

func (db *DB) GetCourseByClassName(ctx context.Context, className string) (*models.Course, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+courseColumns+" FROM courses WHERE class_name = ?"), className)
	return scanCourse(row)
}

func (db *DB) ListCourses(ctx context.Context) ([]*models.Course, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+courseColumns+" FROM courses ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CourseName, &c.ClassName, &c.Semester, &c.LectureHours, &c.DepartmentID, &c.SubmittedBy, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}

func (db *DB) UpdateCourse(ctx context.Context, c *models.Course) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE courses SET course_name = ?, class_name = ?, semester = ?, lecture_hours = ?, department_id = ?, submitted_by = ?, updated_at = ? WHERE id = ?"),
		c.CourseName, c.ClassName, c.Semester, c.LectureHours, c.DepartmentID, c.SubmittedBy, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (db *DB) DeleteCourse(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM courses WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}
