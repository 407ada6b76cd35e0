package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

const attendanceColumns = "id, present, student_id, course_id, submitted_by, updated_at"

func scanAttendance(row *sql.Row) (*models.AttendanceLog, error) {
	var a models.AttendanceLog
	err := row.Scan(&a.ID, &a.Present, &a.StudentID, &a.CourseID, &a.SubmittedBy, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) CreateAttendance(ctx context.Context, a *models.AttendanceLog) error {
	a.UpdatedAt = time.Now().UTC()
	id, err := db.insert(ctx,
		"INSERT INTO attendance_logs (present, student_id, course_id, submitted_by, updated_at) VALUES (?, ?, ?, ?, ?)",
		a.Present, a.StudentID, a.CourseID, a.SubmittedBy, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (db *DB) GetAttendanceByID(ctx context.Context, id int64) (*models.AttendanceLog, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+attendanceColumns+" FROM attendance_logs WHERE id = ?"), id)
	return scanAttendance(row)
}

// GetAttendanceByCourseStudent looks up the entry for a (course, student)
// pair, which is unique by construction.
func (db *DB) GetAttendanceByCourseStudent(ctx context.Context, courseID, studentID int64) (*models.AttendanceLog, error) {
	row := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT "+attendanceColumns+" FROM attendance_logs WHERE course_id = ? AND student_id = ?"),
		courseID, studentID,
	)
	return scanAttendance(row)
}

// ListAttendanceDetails returns attendance entries joined with student and
// course names for display.
func (db *DB) ListAttendanceDetails(ctx context.Context) ([]*models.AttendanceDetail, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT a.id, a.present, s.full_name, c.course_name, c.class_name, a.submitted_by, a.updated_at
		FROM attendance_logs a
		JOIN students s ON a.student_id = s.id
		JOIN courses c ON a.course_id = c.id
		ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*models.AttendanceDetail
	for rows.Next() {
		var d models.AttendanceDetail
		if err := rows.Scan(&d.ID, &d.Present, &d.FullName, &d.CourseName, &d.ClassName, &d.SubmittedBy, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

func (db *DB) UpdateAttendance(ctx context.Context, a *models.AttendanceLog) error {
	a.UpdatedAt = time.Now().UTC()
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE attendance_logs SET present = ?, student_id = ?, course_id = ?, submitted_by = ?, updated_at = ? WHERE id = ?"),
		a.Present, a.StudentID, a.CourseID, a.SubmittedBy, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (db *DB) DeleteAttendance(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM attendance_logs WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}
